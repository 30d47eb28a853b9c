package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	apperrors "github.com/tripgate/portal-api/internal/errors"
	"github.com/tripgate/portal-api/internal/service"
)

// stubAuthService is a hand-rolled AuthServiceInterface double.
type stubAuthService struct {
	beginResult    *service.BeginLoginResult
	beginErr       error
	beginKind      domainauth.TenantKind
	beginRedirect  string
	completeResult *service.CompleteLoginResult
	completeErr    error
	completeInput  service.CompleteLoginInput
	session        *domainauth.Session
	sessionErr     error
	logoutIDs      []string
}

func (s *stubAuthService) BeginLogin(_ context.Context, kind domainauth.TenantKind, redirectURI string) (*service.BeginLoginResult, error) {
	s.beginKind = kind
	s.beginRedirect = redirectURI
	return s.beginResult, s.beginErr
}

func (s *stubAuthService) CompleteLogin(_ context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
	s.completeInput = input
	return s.completeResult, s.completeErr
}

func (s *stubAuthService) GetSession(_ context.Context, _ string) (*domainauth.Session, error) {
	return s.session, s.sessionErr
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) error {
	s.logoutIDs = append(s.logoutIDs, sessionID)
	return nil
}

func testSession(role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		ID: "sess-1",
		Principal: domainauth.Principal{
			Email:       "jamie@example.com",
			DisplayName: "Jamie",
			TenantKind:  domainauth.TenantCustomer,
			Role:        role,
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestLogin_RedirectsToAuthority(t *testing.T) {
	svc := &stubAuthService{beginResult: &service.BeginLoginResult{
		AuthURL: "https://idp.example/authorize?state=abc",
		State:   "abc",
	}}
	h := &AuthHandlers{Svc: svc}

	r := httptest.NewRequest(http.MethodGet, "/auth/login?tenant=agent&redirect_uri=/bookings", nil)
	w := httptest.NewRecorder()
	h.Login(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://idp.example/authorize?state=abc", w.Header().Get("Location"))
	assert.Equal(t, domainauth.TenantAgent, svc.beginKind)
	assert.Equal(t, "/bookings", svc.beginRedirect)
}

func TestLogin_DefaultsToCustomerTenant(t *testing.T) {
	svc := &stubAuthService{beginResult: &service.BeginLoginResult{AuthURL: "https://idp.example/a"}}
	h := &AuthHandlers{Svc: svc}

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, domainauth.TenantCustomer, svc.beginKind)
}

func TestLogin_RejectsUnknownTenant(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodGet, "/auth/login?tenant=vendor", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_SanitizesAbsoluteRedirect(t *testing.T) {
	svc := &stubAuthService{beginResult: &service.BeginLoginResult{AuthURL: "https://idp.example/a"}}
	h := &AuthHandlers{Svc: svc}

	r := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https://evil.example/phish", nil)
	w := httptest.NewRecorder()
	h.Login(w, r)

	assert.Equal(t, "/", svc.beginRedirect)
}

func TestCallback_SetsOpaqueSessionCookie(t *testing.T) {
	sess := testSession(domainauth.RoleCustomer)
	svc := &stubAuthService{completeResult: &service.CompleteLoginResult{
		Session:     sess,
		RedirectURI: "/bookings",
	}}
	h := &AuthHandlers{Svc: svc}

	r := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=xyz", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "old-sess"})
	w := httptest.NewRecorder()
	h.Callback(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/bookings", w.Header().Get("Location"))
	assert.Equal(t, "abc", svc.completeInput.Code)
	assert.Equal(t, "xyz", svc.completeInput.State)
	assert.Equal(t, "old-sess", svc.completeInput.PriorSessionID)

	c := sessionCookie(w)
	require.NotNil(t, c)
	assert.Equal(t, "sess-1", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.False(t, c.Secure, "plain http request gets non-secure cookie")
	assert.Greater(t, c.MaxAge, 0)
}

func TestCallback_SecureCookieBehindProxy(t *testing.T) {
	svc := &stubAuthService{completeResult: &service.CompleteLoginResult{
		Session: testSession(domainauth.RoleCustomer),
	}}
	h := &AuthHandlers{Svc: svc}

	r := httptest.NewRequest(http.MethodGet, "/auth/callback?code=c&state=s", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	h.Callback(w, r)

	c := sessionCookie(w)
	require.NotNil(t, c)
	assert.True(t, c.Secure)
}

func TestCallback_FailureRedirectsOpaquely(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"state mismatch", apperrors.New(apperrors.ErrCodeStateMismatch, "unknown state"), "/?auth_error=try_again"},
		{"replay", apperrors.New(apperrors.ErrCodeReplayedCallback, "state already redeemed"), "/?auth_error=try_again"},
		{"idp denied", apperrors.New(apperrors.ErrCodeIdpDenied, "AADB2C90091: user cancelled"), "/?auth_error=auth_failed"},
		{"exchange failed", apperrors.New(apperrors.ErrCodeTokenExchange, "502 from token endpoint"), "/?auth_error=auth_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &AuthHandlers{Svc: &stubAuthService{completeErr: tt.err}}

			w := httptest.NewRecorder()
			h.Callback(w, httptest.NewRequest(http.MethodGet, "/auth/callback?state=s", nil))

			assert.Equal(t, http.StatusFound, w.Code)
			loc := w.Header().Get("Location")
			assert.Equal(t, tt.want, loc)
			// Raw IdP error text must not leak into the redirect.
			assert.NotContains(t, loc, "AADB2C90091")
			assert.Nil(t, sessionCookie(w))
		})
	}
}

func TestLogout_ClearsCookieAndInvalidates(t *testing.T) {
	svc := &stubAuthService{}
	h := &AuthHandlers{Svc: svc}

	r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()
	h.Logout(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, []string{"sess-1"}, svc.logoutIDs)

	c := sessionCookie(w)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}

func TestLogout_AJAXReturnsJSON(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	h.Logout(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
}

func TestLogout_NoCookieStillSucceeds(t *testing.T) {
	svc := &stubAuthService{}
	h := &AuthHandlers{Svc: svc}

	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, svc.logoutIDs)
}

func TestStatus_Authenticated(t *testing.T) {
	sess := testSession(domainauth.RoleEmployeeAgent)
	h := &AuthHandlers{Svc: &stubAuthService{session: &sess}}

	r := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
	w := httptest.NewRecorder()
	h.Status(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["authenticated"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "jamie@example.com", user["email"])
	assert.Equal(t, string(domainauth.RoleEmployeeAgent), user["role"])
}

func TestStatus_InvalidSessionClearsCookie(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{sessionErr: errors.New("expired")}}

	r := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale"})
	w := httptest.NewRecorder()
	h.Status(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])

	c := sessionCookie(w)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

func TestStatus_NoCookie(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	w := httptest.NewRecorder()
	h.Status(w, httptest.NewRequest(http.MethodGet, "/auth/status", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"/bookings", "/bookings"},
		{"/bookings?tab=upcoming", "/bookings?tab=upcoming"},
		{"https://evil.example/", "/"},
		{"//evil.example/path", "/"},
		{"bookings", "/"},
		{"javascript:alert(1)", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectPath(tt.in), "input %q", tt.in)
	}
}
