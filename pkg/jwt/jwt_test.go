package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing-purposes"

func TestNewService(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	assert.NotNil(t, service)
	assert.Equal(t, testSecret, service.secret)
	assert.Equal(t, time.Hour, service.tokenExpiry)
}

func TestGenerate(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	token, err := service.Generate("admin", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidate(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	t.Run("Malformed Token", func(t *testing.T) {
		claims, err := service.Validate("not-a-token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := NewService("a-different-secret-entirely", time.Hour)
		token, err := other.Generate("admin", "admin")
		require.NoError(t, err)

		claims, err := service.Validate(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Expired Token", func(t *testing.T) {
		expired := NewService(testSecret, -time.Minute)
		token, err := expired.Generate("admin", "admin")
		require.NoError(t, err)

		claims, err := service.Validate(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Wrong Signing Method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Subject: "admin", Role: "admin"})
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		claims, err := service.Validate(tokenString)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
