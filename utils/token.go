package utils

import (
	"net/http"
	"time"

	"whisp/apperrors"
	"whisp/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthCookie is the cookie carrying the session token.
const AuthCookie = "jwt"

// Claims is the session token payload: the user id plus standard
// expiry fields. Nothing else is persisted server-side.
type Claims struct {
	UserID string `json:"userID"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the given user.
func GenerateToken(userID uuid.UUID, cfg *config.Config) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWT.TokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken verifies signature and expiry and returns the embedded
// user id. Any failure maps to the same Unauthorized error.
func ParseToken(tokenString string, cfg *config.Config) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return uuid.Nil, apperrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidToken
	}
	return userID, nil
}

// SetAuthCookie attaches the token as an HTTP-only strict-same-site
// cookie, Secure outside development.
func SetAuthCookie(c *gin.Context, token string, cfg *config.Config) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookie, token, int(cfg.JWT.TokenTTL().Seconds()), "/", "", cfg.Server.Production(), true)
}

// ClearAuthCookie overwrites the cookie with an expired empty value.
// Always succeeds, so logout stays idempotent.
func ClearAuthCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookie, "", -1, "/", "", cfg.Server.Production(), true)
}
