package utils

import (
	"testing"
	"time"

	"whisp/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWT{Secret: "test-secret", ExpiredInDays: 7},
	}
}

func TestTokenRoundtrip(t *testing.T) {
	cfg := testConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := ParseToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestParseToken_WrongSecret(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken(uuid.New(), cfg)
	require.NoError(t, err)

	other := &config.Config{JWT: config.JWT{Secret: "other-secret", ExpiredInDays: 7}}
	_, err = ParseToken(token, other)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	cfg := testConfig()

	claims := &Claims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)

	_, err = ParseToken(token, cfg)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testConfig())
	assert.Error(t, err)
}
