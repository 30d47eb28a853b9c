package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRequireAuth_NoCookie(t *testing.T) {
	handler := RequireAuth(&stubAuthService{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/documents", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidSession(t *testing.T) {
	svc := &stubAuthService{sessionErr: errors.New("not found")}
	handler := RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an invalid session")
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_PutsSessionInContext(t *testing.T) {
	sess := testSession(domainauth.RoleCustomer)
	svc := &stubAuthService{session: &sess}

	var got *domainauth.Session
	handler := RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := GetSessionFromContext(r.Context())
		require.True(t, ok)
		got = s
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "jamie@example.com", got.Principal.Email)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     domainauth.Role
		required domainauth.Role
		want     int
	}{
		{"admin allowed", domainauth.RoleAdmin, domainauth.RoleAdmin, http.StatusOK},
		{"employee rejected from admin route", domainauth.RoleEmployeeAgent, domainauth.RoleAdmin, http.StatusForbidden},
		{"customer rejected from admin route", domainauth.RoleCustomer, domainauth.RoleAdmin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := testSession(tt.role)
			svc := &stubAuthService{session: &sess}
			handler := RequireRole(svc, tt.required)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
			r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	handler := RequireRole(&stubAuthService{}, domainauth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/applications", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecover_PanicReturns500(t *testing.T) {
	handler := Recover(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogging_PassesThrough(t *testing.T) {
	handler := Logging(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}
