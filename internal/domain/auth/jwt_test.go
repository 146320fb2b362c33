package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestValidateToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "stockyard"})

	tokenString := signToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "stockyard",
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:   "u-1",
		UserName: "Dana",
	})

	actor, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "u-1", actor.UserID)
	assert.Equal(t, "Dana", actor.UserName)
}

func TestValidateToken_SubjectFallback(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret"})

	tokenString := signToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-2",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	actor, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "u-2", actor.UserID)
}

func TestValidateToken_Rejections(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "stockyard"})

	t.Run("wrong secret", func(t *testing.T) {
		tokenString := signToken(t, "other-secret", Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "stockyard",
				Subject:   "u-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		_, err := svc.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		tokenString := signToken(t, "test-secret", Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "stockyard",
				Subject:   "u-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		_, err := svc.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tokenString := signToken(t, "test-secret", Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				Subject:   "u-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		_, err := svc.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("no subject", func(t *testing.T) {
		tokenString := signToken(t, "test-secret", Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "stockyard",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		_, err := svc.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}
