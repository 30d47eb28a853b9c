package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/tripgate/portal-api/config"
	"github.com/tripgate/portal-api/internal/adapters/s3"
	"github.com/tripgate/portal-api/internal/adapters/sts"
	"github.com/tripgate/portal-api/internal/ports"
	"github.com/tripgate/portal-api/internal/service"
)

// StorageConfig contains configuration for the document stack.
type StorageConfig struct {
	Storage       config.StorageConfig
	Relationships ports.RelationshipDirectory
	Logger        *slog.Logger
}

// DocumentStack groups the credential federator and the document service
// built on top of it.
type DocumentStack struct {
	Federator *service.CredentialFederator
	Documents *service.DocumentService
}

// BuildDocumentStack wires the credential broker, federator, access
// authorizer and document store into a document service.
func BuildDocumentStack(ctx context.Context, cfg StorageConfig) (*DocumentStack, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	broker, err := sts.NewBroker(sts.BrokerConfig{
		Client:          awssts.NewFromConfig(awsCfg),
		AgentRoleARN:    cfg.Storage.AgentRoleARN,
		CustomerRoleARN: cfg.Storage.CustomerRoleARN,
		Duration:        cfg.Storage.CredentialTTL,
		Timeout:         cfg.Storage.FederationTimeout,
	})
	if err != nil {
		return nil, err
	}

	store, err := s3.NewDocumentStore(s3.Config{
		Bucket:   cfg.Storage.Bucket,
		Region:   cfg.Storage.Region,
		Endpoint: cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("create document store: %w", err)
	}

	federator := service.NewCredentialFederator(broker)
	documents := service.NewDocumentService(service.DocumentServiceOptions{
		Authorizer: service.NewAccessAuthorizer(cfg.Relationships),
		Federator:  federator,
		Store:      store,
		PresignTTL: cfg.Storage.PresignTTL,
	})

	return &DocumentStack{Federator: federator, Documents: documents}, nil
}
