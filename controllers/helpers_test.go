package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"whisp/config"
	"whisp/controllers"
	"whisp/logger"
	"whisp/routes"
	"whisp/store"
	"whisp/uploader"
	"whisp/utils"
	"whisp/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG, as a browser would submit it.
const tinyPNGDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

type testApp struct {
	router *gin.Engine
	store  *store.Memory
	hub    *ws.Hub
	cfg    *config.Config
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.Server{Port: "0", Environment: "development"},
		JWT:    config.JWT{Secret: "test-secret", ExpiredInDays: 7},
		Upload: config.Upload{Dir: t.TempDir(), MaxBytes: 5 * 1024 * 1024},
		Logger: config.LoggerMode{Level: "error", Format: "text"},
		CORS:   config.CORS{Origins: []string{"http://localhost:5173"}},
	}
}

// newTestApp assembles the full router over the in-memory store. An
// optional uploader override lets tests simulate asset-host failures.
func newTestApp(t *testing.T, up uploader.Uploader) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t)
	log := logger.New("test", "error", "text")
	st := store.NewMemory()

	if up == nil {
		up = uploader.NewLocal(cfg.Upload.Dir, cfg.Upload.MaxBytes, log)
	}

	hub := ws.NewHub(log)
	go hub.Run()

	r := gin.New()
	routes.Register(r, routes.Controllers{
		Auth:    controllers.NewAuthController(st, up, cfg, log),
		Message: controllers.NewMessageController(st, up, hub, log),
		WS:      controllers.NewWSController(hub, log),
	}, st, cfg)

	return &testApp{router: r, store: st, hub: hub, cfg: cfg}
}

func (a *testApp) request(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signup registers a user and returns their session cookie.
func (a *testApp) signup(t *testing.T, fullName, email, password string) *http.Cookie {
	t.Helper()

	w := a.request(t, http.MethodPost, "/api/auth/signup", gin.H{
		"fullName": fullName,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return authCookie(t, w)
}

func authCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.AuthCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no auth cookie in response")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func errMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &body)
	return body.Message
}
