package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/tripgate/portal-api/config"
	"github.com/tripgate/portal-api/internal/adapters/notify"
	"github.com/tripgate/portal-api/internal/adapters/postgres"
	"github.com/tripgate/portal-api/internal/ports"
	"github.com/tripgate/portal-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth         *service.AuthService
	Documents    *service.DocumentService
	Applications *service.ApplicationService
	Federator    *service.CredentialFederator
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	Pool        *pgxpool.Pool
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// InitServices builds the full service container. Order matters: the
// document stack first so the auth service can drop cached credentials
// on logout.
func InitServices(ctx context.Context, deps ServiceDeps) (*ServiceContainer, error) {
	appRepo := postgres.NewApplicationRepo(deps.Pool)
	relRepo := postgres.NewRelationshipRepo(deps.Pool)

	if deps.Config.Postgres.EnsureSchemaOnStart {
		if err := appRepo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure application schema: %w", err)
		}
		if err := relRepo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure relationship schema: %w", err)
		}
	}

	stack, err := BuildDocumentStack(ctx, StorageConfig{
		Storage:       deps.Config.Storage,
		Relationships: relRepo,
		Logger:        deps.Logger,
	})
	if err != nil {
		return nil, err
	}

	auth, err := BuildAuthService(ctx, AuthConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Credentials: stack.Federator,
		Logger:      deps.Logger,
	})
	if err != nil {
		return nil, err
	}

	applications := service.NewApplicationService(service.ApplicationServiceOptions{
		Registry: appRepo,
		Notifier: buildNotifier(deps.Config.Notify, deps.Logger),
		Logger:   deps.Logger,
	})

	return &ServiceContainer{
		Auth:         auth,
		Documents:    stack.Documents,
		Applications: applications,
		Federator:    stack.Federator,
	}, nil
}

// buildNotifier returns nil when the relay is not configured; submissions
// then proceed without acknowledgement mail.
//
//nolint:ireturn // optional port
func buildNotifier(cfg config.NotifyConfig, logger *slog.Logger) ports.Notifier {
	if cfg.WebhookURL == "" {
		if logger != nil {
			logger.Info("mail relay not configured, application notifications disabled")
		}
		return nil
	}

	client, err := notify.NewClient(notify.Config{
		WebhookURL: cfg.WebhookURL,
		From:       cfg.From,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("mail relay misconfigured, application notifications disabled", "error", err)
		}
		return nil
	}
	return client
}
