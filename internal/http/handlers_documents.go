package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	domainstorage "github.com/tripgate/portal-api/internal/domain/storage"
	apperrors "github.com/tripgate/portal-api/internal/errors"
)

// maxUploadBytes caps document upload request bodies.
const maxUploadBytes = 32 << 20 // 32 MiB

// DocumentServiceInterface defines the interface for document operations.
type DocumentServiceInterface interface {
	List(ctx context.Context, sess domainauth.Session, prefix string) ([]domainstorage.Object, error)
	Upload(ctx context.Context, sess domainauth.Session, key string, body []byte, contentType string) error
	Delete(ctx context.Context, sess domainauth.Session, key string) error
	DownloadLink(ctx context.Context, sess domainauth.Session, key string) (string, error)
}

// DocumentHandlers provides HTTP handlers for tenant document operations.
type DocumentHandlers struct {
	Svc    DocumentServiceInterface
	Logger *slog.Logger
}

// List handles GET /api/documents?prefix=<prefix>.
func (h *DocumentHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	objects, err := h.Svc.List(r.Context(), *sess, r.URL.Query().Get("prefix"))
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"objects": objects})
}

// Upload handles PUT /api/documents/{key...}.
func (h *DocumentHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	key := r.PathValue("key")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusRequestEntityTooLarge,
			ErrCode: "body_too_large",
			Err:     err,
		})
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.Svc.Upload(r.Context(), *sess, key, body, contentType); err != nil {
		writeDocumentError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"key": key})
}

// Delete handles DELETE /api/documents/{key...}.
func (h *DocumentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	key := r.PathValue("key")
	if err := h.Svc.Delete(r.Context(), *sess, key); err != nil {
		writeDocumentError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadLink handles GET /api/documents/{key...}/link.
func (h *DocumentHandlers) DownloadLink(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	key := r.PathValue("key")
	link, err := h.Svc.DownloadLink(r.Context(), *sess, key)
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"url": link})
}

func writeUnauthenticated(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: string(apperrors.ErrCodeUnauthenticated),
		Err:     apperrors.New(apperrors.ErrCodeUnauthenticated, "authentication required"),
	})
}

// writeDocumentError maps domain error codes onto HTTP statuses. Denials
// come back as 403 without leaking which prefix rule rejected the path.
func writeDocumentError(w http.ResponseWriter, err error) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodePathTraversal, apperrors.ErrCodeRoleNotPermitted:
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "forbidden",
			Err:     err,
		})
	case apperrors.ErrCodeValidation:
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: string(apperrors.ErrCodeValidation),
			Err:     err,
		})
	case apperrors.ErrCodeNotFound:
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: string(apperrors.ErrCodeNotFound),
			Err:     err,
		})
	case apperrors.ErrCodeFederation:
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: string(apperrors.ErrCodeFederation),
			Err:     err,
		})
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal",
			Err:     err,
		})
	}
}
