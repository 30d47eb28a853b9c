package ports

import (
	"context"

	"github.com/tripgate/portal-api/internal/domain/model"
)

// ApplicationRegistry is the append-only store of partner applications.
type ApplicationRegistry interface {
	Submit(ctx context.Context, app model.Application) (model.Application, error)
	GetByID(ctx context.Context, id string) (model.Application, error)
	ListByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.Application, error)
}

// Notifier sends a templated notification (e.g. application received).
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// Notification is a minimal templated message.
type Notification struct {
	To       string
	Template string
	Data     map[string]string
}
