package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjae/jobbridge/internal/config"
)

func newTestJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          secret,
		ExpirationHours: 1,
	})
}

// TestJWTService_RoundTrip tests token generation and validation
func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "jobseeker")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, "jobseeker", claims.GetUserType())
}

// TestJWTService_WrongSecret tests that tokens signed elsewhere are rejected
func TestJWTService_WrongSecret(t *testing.T) {
	token, err := newTestJWTService("secret-one").GenerateToken(uuid.New(), "company")
	require.NoError(t, err)

	_, err = newTestJWTService("secret-two").ValidateToken(token)
	assert.Error(t, err)
}

// TestJWTService_EmptyToken tests validation of an empty token string
func TestJWTService_EmptyToken(t *testing.T) {
	svc := newTestJWTService("test-secret")

	_, err := svc.ValidateToken("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

// TestJWTService_MalformedToken tests validation of garbage input
func TestJWTService_MalformedToken(t *testing.T) {
	svc := newTestJWTService("test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

// TestJWTService_RoleCarried tests the role claim survives the round trip
func TestJWTService_RoleCarried(t *testing.T) {
	svc := newTestJWTService("test-secret")

	for _, role := range []string{"jobseeker", "company"} {
		token, err := svc.GenerateToken(uuid.New(), role)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, role, claims.GetUserType())
	}
}
