package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tripgate/portal-api/internal/domain/model"
	apperrors "github.com/tripgate/portal-api/internal/errors"
)

// ApplicationServiceInterface defines the interface for partner application operations.
type ApplicationServiceInterface interface {
	Submit(ctx context.Context, app model.Application) (model.Application, error)
	GetByID(ctx context.Context, id string) (model.Application, error)
	ListByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.Application, error)
}

// ApplicationHandlers provides HTTP handlers for partner onboarding applications.
type ApplicationHandlers struct {
	Svc    ApplicationServiceInterface
	Logger *slog.Logger
}

type submitApplicationRequest struct {
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
	Message      string `json:"message"`
}

// Submit handles POST /api/applications. The endpoint is open to the
// public so prospective partners can apply before they have an account.
func (h *ApplicationHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.Svc.Submit(r.Context(), model.Application{
		CompanyName:  req.CompanyName,
		ContactEmail: req.ContactEmail,
		Message:      req.Message,
	})
	if err != nil {
		writeApplicationError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, app)
}

// GetByID handles GET /api/applications/{id}. Admin only (enforced by routing middleware).
func (h *ApplicationHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	app, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeApplicationError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, app)
}

// ListByStatus handles GET /api/applications?status=<status>. Admin only.
func (h *ApplicationHandlers) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := model.ApplicationStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = model.ApplicationPending
	}

	apps, err := h.Svc.ListByStatus(r.Context(), status)
	if err != nil {
		writeApplicationError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

func writeApplicationError(w http.ResponseWriter, err error) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: string(apperrors.ErrCodeValidation),
			Err:     err,
		})
	case apperrors.ErrCodeConflict:
		WriteError(w, ErrorParams{
			Code:    http.StatusConflict,
			ErrCode: string(apperrors.ErrCodeConflict),
			Err:     err,
		})
	case apperrors.ErrCodeNotFound:
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: string(apperrors.ErrCodeNotFound),
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
