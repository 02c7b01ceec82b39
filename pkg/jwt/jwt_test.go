package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "super-secret-jwt-token-with-at-least-32-characters"

func TestParseToken(t *testing.T) {
	tokenStr, err := GenToken(BuildClaims(time.Now().Add(time.Hour), "9b2f6f7e-6a0d-4f7e-9a55-0f5a3f0c1d2e", "ana@x.com", "admin"), secret)
	require.NoError(t, err)

	claims, err := ParseToken(tokenStr, secret)
	require.NoError(t, err)
	assert.Equal(t, "9b2f6f7e-6a0d-4f7e-9a55-0f5a3f0c1d2e", claims.UserId())
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.True(t, claims.IsAdministrator("admin"))
	assert.False(t, claims.IsAdministrator(""))
}

func TestParseToken_Rejects(t *testing.T) {
	valid := BuildClaims(time.Now().Add(time.Hour), "u1", "a@x.com", "")

	tokenStr, _ := GenToken(valid, secret)
	_, err := ParseToken(tokenStr, "another-secret")
	assert.Error(t, err)

	_, err = ParseToken(tokenStr, "")
	assert.Error(t, err)

	expired, _ := GenToken(BuildClaims(time.Now().Add(-time.Minute), "u1", "a@x.com", ""), secret)
	_, err = ParseToken(expired, secret)
	assert.Error(t, err)

	anon := BuildClaims(time.Now().Add(time.Hour), "", "", "")
	anon.Role = "anon"
	anonStr, _ := GenToken(anon, secret)
	_, err = ParseToken(anonStr, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, valid).SignedString([]byte(secret))
	_, err = ParseToken(hs512, secret)
	assert.Error(t, err)
}
