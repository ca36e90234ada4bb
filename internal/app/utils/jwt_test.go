package utils

import (
	"testing"
	"time"

	"irrigation-dashboard/internal/app/ds"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims ds.JWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("reads exp without the secret", func(t *testing.T) {
		token := signed(t, ds.JWTClaims{
			StandardClaims: jwt.StandardClaims{ExpiresAt: exp.Unix()},
			Email:          "op@farm.br",
		})

		got, ok := TokenExpiry(token)
		require.True(t, ok)
		assert.True(t, exp.Equal(got))

		claims, err := ParseClaims(token)
		require.NoError(t, err)
		assert.Equal(t, "op@farm.br", claims.Email)
	})

	t.Run("token without exp", func(t *testing.T) {
		_, ok := TokenExpiry(signed(t, ds.JWTClaims{Email: "op@farm.br"}))
		assert.False(t, ok)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, ok := TokenExpiry("not-a-jwt")
		assert.False(t, ok)
	})
}
