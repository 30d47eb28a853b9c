package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/tripgate/portal-api/config"
	"github.com/tripgate/portal-api/internal/adapters/devauth"
	"github.com/tripgate/portal-api/internal/adapters/entra"
	"github.com/tripgate/portal-api/internal/adapters/oidc"
	redisadapter "github.com/tripgate/portal-api/internal/adapters/redis"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	apperrors "github.com/tripgate/portal-api/internal/errors"
	"github.com/tripgate/portal-api/internal/ports"
	"github.com/tripgate/portal-api/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	// Credentials is optional; when set, logout also drops cached
	// federated credentials.
	Credentials service.CredentialDropper
	Logger      *slog.Logger
}

// BuildAuthService creates the auth service for the configured auth mode.
// Authority configuration problems fail startup rather than degrading into
// a half-working login flow.
func BuildAuthService(ctx context.Context, cfg AuthConfig) (*service.AuthService, error) {
	if cfg.RedisClient == nil {
		return nil, apperrors.Config("auth requires a redis client")
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")
	pendingStore := redisadapter.NewPendingAuthStore(cfg.RedisClient, cfg.Auth.PendingTTL)

	providers, err := buildProviders(ctx, cfg.Auth)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Providers:       providers,
		Pending:         pendingStore,
		Sessions:        sessionStore,
		Normalizer:      domainauth.Normalizer{AdminRole: cfg.Auth.AdminRole},
		Credentials:     cfg.Credentials,
		SessionTTL:      cfg.Auth.SessionTTL,
		ExchangeTimeout: cfg.Auth.ExchangeTimeout,
		Logger:          cfg.Logger,
	}), nil
}

func buildProviders(
	ctx context.Context,
	cfg config.AuthConfig,
) (map[domainauth.TenantKind]ports.AuthProvider, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		return buildDevProviders(cfg.DevAuth)
	case config.AuthModeOIDC:
		return buildOIDCProviders(ctx, cfg)
	default:
		return nil, apperrors.Configf("unsupported auth mode %q", cfg.Mode)
	}
}

// buildDevProviders serves the same fixed identity from both tenant
// authorities so either login path works against a local stack.
func buildDevProviders(cfg config.DevAuthConfig) (map[domainauth.TenantKind]ports.AuthProvider, error) {
	prov, err := devauth.NewProvider(devauth.Config{
		Email:    cfg.Email,
		UserType: cfg.UserType,
		Roles:    cfg.Roles,
	})
	if err != nil {
		return nil, fmt.Errorf("create dev auth provider: %w", err)
	}

	return map[domainauth.TenantKind]ports.AuthProvider{
		domainauth.TenantCustomer: prov,
		domainauth.TenantAgent:    prov,
	}, nil
}

func buildOIDCProviders(
	ctx context.Context,
	cfg config.AuthConfig,
) (map[domainauth.TenantKind]ports.AuthProvider, error) {
	resolver, err := entra.NewResolver(cfg)
	if err != nil {
		return nil, err
	}

	providers := make(map[domainauth.TenantKind]ports.AuthProvider, 2)
	for _, kind := range []domainauth.TenantKind{domainauth.TenantCustomer, domainauth.TenantAgent} {
		authority, resolveErr := resolver.Resolve(kind)
		if resolveErr != nil {
			return nil, resolveErr
		}

		prov, provErr := oidc.NewProvider(ctx, oidc.ProviderConfig{
			Authority:      authority,
			RedirectURL:    cfg.RedirectURL,
			RolesClaimPath: cfg.RolesClaimPath,
		})
		if provErr != nil {
			return nil, fmt.Errorf("create %s oidc provider: %w", kind, provErr)
		}
		providers[kind] = prov
	}

	return providers, nil
}
