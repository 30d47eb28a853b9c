package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tripgate/portal-api/internal/domain/model"
	"github.com/tripgate/portal-api/internal/ports"
)

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Registry ports.ApplicationRegistry
	// Notifier is optional; submissions still succeed if the relay is down.
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// ApplicationService handles partner application submission and lookup.
type ApplicationService struct {
	registry ports.ApplicationRegistry
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationService{
		registry: opts.Registry,
		notifier: opts.Notifier,
		logger:   logger,
	}
}

// Submit records a new partner application and acknowledges the contact by
// email. Notification failure never fails the submission.
func (s *ApplicationService) Submit(ctx context.Context, app model.Application) (model.Application, error) {
	out, err := s.registry.Submit(ctx, app)
	if err != nil {
		return model.Application{}, fmt.Errorf("submit application: %w", err)
	}

	if s.notifier != nil {
		notifyErr := s.notifier.Send(ctx, ports.Notification{
			To:       out.ContactEmail,
			Template: "partner-application-received",
			Data: map[string]string{
				"company_name":   out.CompanyName,
				"application_id": out.ID,
			},
		})
		if notifyErr != nil {
			s.logger.WarnContext(ctx, "application notification failed",
				"application_id", out.ID, "error", notifyErr)
		}
	}

	return out, nil
}

// GetByID returns one application.
func (s *ApplicationService) GetByID(ctx context.Context, id string) (model.Application, error) {
	return s.registry.GetByID(ctx, id)
}

// ListByStatus returns applications in the given status.
func (s *ApplicationService) ListByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.Application, error) {
	return s.registry.ListByStatus(ctx, status)
}
