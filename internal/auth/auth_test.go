package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("admin", secret, time.Hour)
	require.NoError(t, err)

	username, err := VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := GenerateToken("admin", secret, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	token, err := GenerateToken("admin", secret, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := VerifyToken("not-a-token", secret)
	assert.Error(t, err)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Username: "admin"})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyToken(tokenString, secret)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not a hash", "anything"))
}
