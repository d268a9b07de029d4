package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seapgd/docket-core/internal/user/entity"
)

func TestSessionIssueVerifyRoundTrip(t *testing.T) {
	sessions, err := NewSessions("docket-test")
	require.NoError(t, err)

	token, err := sessions.Issue(7, "Maria Souza", entity.RoleAdmin, "12345")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "Maria Souza", claims.Name)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, "12345", claims.Matricula)
	assert.NotEmpty(t, claims.ID)
}

func TestSessionVerifyRejectsForeignToken(t *testing.T) {
	a, err := NewSessions("docket-test")
	require.NoError(t, err)
	b, err := NewSessions("docket-test")
	require.NoError(t, err)

	token, err := a.Issue(1, "Maria", entity.RoleUser, "111")
	require.NoError(t, err)

	// signed with a different key
	_, err = b.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionVerifyRejectsGarbage(t *testing.T) {
	sessions, err := NewSessions("docket-test")
	require.NoError(t, err)
	_, err = sessions.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRequireSessionMiddleware(t *testing.T) {
	sessions, err := NewSessions("docket-test")
	require.NoError(t, err)
	token, err := sessions.Issue(7, "Maria", entity.RoleUser, "12345")
	require.NoError(t, err)

	var seen *SessionClaims
	h := RequireSession(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	// missing header
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// bad token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid token reaches the handler with claims attached
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.UserID)
}

func TestRequireAdmin(t *testing.T) {
	sessions, err := NewSessions("docket-test")
	require.NoError(t, err)

	h := RequireSession(sessions)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	userToken, err := sessions.Issue(1, "Maria", entity.RoleUser, "111")
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/reset-system", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := sessions.Issue(2, "Chefe", entity.RoleAdmin, "222")
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/reset-system", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoginLegacySecrets(t *testing.T) {
	sessions, err := NewSessions("docket-test")
	require.NoError(t, err)
	svc := &Service{
		sessions: sessions,
		legacy:   LegacyConfig{AdminPassword: "Guardiao", UserPassword: "Usuario123"},
	}

	userType, token, err := svc.LoginLegacy("Guardiao")
	require.NoError(t, err)
	assert.Equal(t, "admin", userType)
	claims, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Zero(t, claims.UserID)

	userType, _, err = svc.LoginLegacy("Usuario123")
	require.NoError(t, err)
	assert.Equal(t, "user", userType)

	_, _, err = svc.LoginLegacy("errada")
	assert.ErrorIs(t, err, ErrLegacyPassword)
}
