package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"whisp/logger"
	"whisp/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHub() *Hub {
	h := NewHub(logger.New("ws-test", "error", "text"))
	go h.Run()
	return h
}

// dial spins up a tiny upgrade server, connects to it, and registers
// the server side of the connection with the hub.
func dial(t *testing.T, h *Hub, userID uuid.UUID) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Register(NewClient(userID, conn))
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) models.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev models.Event
	require.NoError(t, json.Unmarshal(frame, &ev))
	return ev
}

func TestRegister_AnnouncesPresence(t *testing.T) {
	h := testHub()
	userID := uuid.New()
	conn := dial(t, h, userID)

	ev := readEvent(t, conn)
	assert.Equal(t, models.EventOnlineUsers, ev.Event)

	var payload models.OnlineUsersPayload
	require.NoError(t, json.Unmarshal(ev.Data, &payload))
	assert.Contains(t, payload.UserIDs, userID.String())

	assert.True(t, h.IsOnline(userID))
	assert.False(t, h.IsOnline(uuid.New()))
}

func TestSendToUser_OnlyTargetReceives(t *testing.T) {
	h := testHub()
	alice, bob := uuid.New(), uuid.New()

	aliceConn := dial(t, h, alice)
	readEvent(t, aliceConn) // presence for alice

	bobConn := dial(t, h, bob)
	readEvent(t, aliceConn) // presence refresh after bob joins
	readEvent(t, bobConn)

	ev, err := models.NewEvent(models.EventMessageReceived, models.MessageReceivedPayload{
		Message: models.Message{Text: "hi bob"},
	})
	require.NoError(t, err)
	h.SendToUser(bob, ev)

	got := readEvent(t, bobConn)
	assert.Equal(t, models.EventMessageReceived, got.Event)

	var payload models.MessageReceivedPayload
	require.NoError(t, json.Unmarshal(got.Data, &payload))
	assert.Equal(t, "hi bob", payload.Message.Text)

	// Alice must not see bob's message; the next frame she could
	// ever get is a presence refresh, so probe with a short timeout.
	require.NoError(t, aliceConn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = aliceConn.ReadMessage()
	assert.Error(t, err)
}

func TestSendToUser_OfflineIsNoop(t *testing.T) {
	h := testHub()

	ev, err := models.NewEvent(models.EventUserTyping, models.TypingPayload{IsTyping: true})
	require.NoError(t, err)
	h.SendToUser(uuid.New(), ev) // must not panic or block
}

func TestMultipleConnectionsPerUser(t *testing.T) {
	h := testHub()
	userID := uuid.New()

	first := dial(t, h, userID)
	readEvent(t, first)
	second := dial(t, h, userID)
	readEvent(t, first)
	readEvent(t, second)

	ev, err := models.NewEvent(models.EventMessageRead, models.ReadPayload{MessageID: "m1"})
	require.NoError(t, err)
	h.SendToUser(userID, ev)

	assert.Equal(t, models.EventMessageRead, readEvent(t, first).Event)
	assert.Equal(t, models.EventMessageRead, readEvent(t, second).Event)

	assert.Len(t, h.OnlineUserIDs(), 1)
}
