package config

import "time"

// StorageConfig contains credential federation and document store configuration.
type StorageConfig struct {
	// Region is the cloud region for STS and the document bucket.
	Region string `env:"REGION" envDefault:"us-east-1"`

	// Bucket holds customer and agent documents.
	Bucket string `env:"BUCKET"`

	// AgentRoleARN is assumed for agent-family roles (employee, guest, admin).
	AgentRoleARN string `env:"AGENT_ROLE_ARN"`

	// CustomerRoleARN is assumed for customer logins.
	CustomerRoleARN string `env:"CUSTOMER_ROLE_ARN"`

	// CredentialTTL is the requested federated-credential duration.
	CredentialTTL time.Duration `env:"CREDENTIAL_TTL" envDefault:"1h"`

	// FederationTimeout bounds the AssumeRole call.
	FederationTimeout time.Duration `env:"FEDERATION_TIMEOUT" envDefault:"10s"`

	// PresignTTL is how long presigned download links stay valid.
	PresignTTL time.Duration `env:"PRESIGN_TTL" envDefault:"15m"`

	// Endpoint overrides the S3 endpoint (local stacks, tests).
	Endpoint string `env:"ENDPOINT"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	if s.CredentialTTL < 15*time.Minute || s.CredentialTTL > 12*time.Hour {
		s.CredentialTTL = time.Hour
	}
	if s.FederationTimeout <= 0 {
		s.FederationTimeout = 10 * time.Second
	}
	if s.PresignTTL <= 0 {
		s.PresignTTL = 15 * time.Minute
	}
}

// NotifyConfig configures the mail-relay webhook used for partner
// application notifications.
type NotifyConfig struct {
	WebhookURL string        `env:"WEBHOOK_URL"`
	From       string        `env:"FROM"    envDefault:"noreply@tripgate.example"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"5s"`
}
