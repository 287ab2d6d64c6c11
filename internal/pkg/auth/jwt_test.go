package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/vinyl-store/internal/config"
)

func testJWTConfig(accessExpiry time.Duration) *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough-0",
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig(time.Hour))

	token, err := manager.GenerateAccessToken(7, "buyer@example.com")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig(time.Hour))

	token, err := manager.GenerateRefreshToken(7, "buyer@example.com")
	require.NoError(t, err)

	claims, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeConfusionRejected(t *testing.T) {
	manager := NewJWTManager(testJWTConfig(time.Hour))

	refresh, err := manager.GenerateRefreshToken(7, "buyer@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err, "a refresh token must not pass as an access token")
}

func TestExpiredTokenDetected(t *testing.T) {
	manager := NewJWTManager(testJWTConfig(-time.Minute))

	token, err := manager.GenerateAccessToken(7, "buyer@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	require.Error(t, err)
	assert.True(t, IsExpired(err))
}

func TestTamperedTokenRejected(t *testing.T) {
	manager := NewJWTManager(testJWTConfig(time.Hour))

	token, err := manager.GenerateAccessToken(7, "buyer@example.com")
	require.NoError(t, err)

	other := NewJWTManager(&config.Config{
		JWT: config.JWTConfig{
			Secret:             "a-completely-different-signing-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	})

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.False(t, IsExpired(err))
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "correct horse battery"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
}

func TestValidatePasswordBounds(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long enough"))
	assert.Error(t, ValidatePassword(string(make([]byte, 80))))
}
