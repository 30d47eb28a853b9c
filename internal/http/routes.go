package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Documents    DocumentServiceInterface
	Applications ApplicationServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	documentHandlers := &DocumentHandlers{Svc: services.Documents, Logger: services.Logger}
	applicationHandlers := &ApplicationHandlers{Svc: services.Applications, Logger: services.Logger}

	registerAuthRoutes(mux, authHandlers)
	registerDocumentRoutes(mux, documentHandlers, services.Auth)
	registerApplicationRoutes(mux, applicationHandlers, services.Auth)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("GET /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("GET /auth/callback", http.HandlerFunc(h.Callback))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(h.Status))
}

func registerDocumentRoutes(mux *http.ServeMux, h *DocumentHandlers, auth AuthServiceInterface) {
	authed := RequireAuth(auth)
	mux.Handle("GET /api/documents", authed(http.HandlerFunc(h.List)))
	mux.Handle("PUT /api/documents/{key...}", authed(http.HandlerFunc(h.Upload)))
	mux.Handle("DELETE /api/documents/{key...}", authed(http.HandlerFunc(h.Delete)))
	mux.Handle("GET /api/documents/link/{key...}", authed(http.HandlerFunc(h.DownloadLink)))
}

func registerApplicationRoutes(mux *http.ServeMux, h *ApplicationHandlers, auth AuthServiceInterface) {
	// Submission is public; review endpoints are admin only.
	mux.Handle("POST /api/applications", http.HandlerFunc(h.Submit))

	admin := RequireRole(auth, domainauth.RoleAdmin)
	mux.Handle("GET /api/applications", admin(http.HandlerFunc(h.ListByStatus)))
	mux.Handle("GET /api/applications/{id}", admin(http.HandlerFunc(h.GetByID)))
}
