package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClaims struct {
	userID   uuid.UUID
	userType string
}

func (c *fakeClaims) GetUserID() uuid.UUID { return c.userID }
func (c *fakeClaims) GetUserType() string  { return c.userType }

type fakeValidator struct {
	claims *fakeClaims
	err    error
}

func (v *fakeValidator) ValidateToken(token string) (ClaimsGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

// TestAuthMiddleware_ValidToken checks identity lands in the request context
func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{claims: &fakeClaims{userID: userID, userType: "jobseeker"}}

	var gotID uuid.UUID
	var gotType string
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotID, err = GetUserID(r)
		require.NoError(t, err)
		gotType, err = GetUserType(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/profiles/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "jobseeker", gotType)
}

// TestAuthMiddleware_MissingHeader checks requests without a token are refused
func TestAuthMiddleware_MissingHeader(t *testing.T) {
	validator := &fakeValidator{claims: &fakeClaims{userID: uuid.New()}}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/profiles/me", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddleware_MalformedHeader checks non-Bearer headers are refused
func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	validator := &fakeValidator{claims: &fakeClaims{userID: uuid.New()}}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"Basic abc", "Bearer", "Bearer  "} {
		req := httptest.NewRequest(http.MethodGet, "/profiles/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

// TestAuthMiddleware_InvalidToken checks validation failures are refused
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	validator := &fakeValidator{err: fmt.Errorf("token expired")}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/profiles/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestRequireRole checks role gating inside the auth chain
func TestRequireRole(t *testing.T) {
	validator := &fakeValidator{claims: &fakeClaims{userID: uuid.New(), userType: "company"}}

	protected := RequireRole("company", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler := AuthMiddleware(validator)(protected)

	req := httptest.NewRequest(http.MethodPost, "/job-postings", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong role is refused
	validator.claims.userType = "jobseeker"
	req = httptest.NewRequest(http.MethodPost, "/job-postings", nil)
	req.Header.Set("Authorization", "Bearer token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
