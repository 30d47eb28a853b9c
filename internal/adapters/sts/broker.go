package sts

// Package sts federates a resolved portal role into temporary scoped
// object-storage credentials via AssumeRole.

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/google/uuid"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	domainstorage "github.com/tripgate/portal-api/internal/domain/storage"
	apperrors "github.com/tripgate/portal-api/internal/errors"
	"github.com/tripgate/portal-api/internal/ports"
)

// AssumeRoleAPI is the subset of the STS client the broker uses.
type AssumeRoleAPI interface {
	AssumeRole(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error)
}

// Broker exchanges a role for short-lived credentials. Agent-family roles
// (employee, guest, admin) map to the agent policy role; customers map to
// the customer policy role.
type Broker struct {
	client          AssumeRoleAPI
	agentRoleARN    string
	customerRoleARN string
	duration        time.Duration
	timeout         time.Duration
}

var _ ports.CredentialBroker = (*Broker)(nil)

// BrokerConfig holds configuration for the credential broker.
type BrokerConfig struct {
	Client          AssumeRoleAPI
	AgentRoleARN    string
	CustomerRoleARN string
	Duration        time.Duration // default 1h
	Timeout         time.Duration // default 10s
}

// NewBroker creates a credential broker, failing fast on missing role ARNs.
func NewBroker(cfg BrokerConfig) (*Broker, error) {
	if cfg.Client == nil {
		return nil, apperrors.Config("sts client is required")
	}
	if cfg.AgentRoleARN == "" {
		return nil, apperrors.MissingField("agent_role_arn")
	}
	if cfg.CustomerRoleARN == "" {
		return nil, apperrors.MissingField("customer_role_arn")
	}

	duration := cfg.Duration
	if duration <= 0 {
		duration = time.Hour
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Broker{
		client:          cfg.Client,
		agentRoleARN:    cfg.AgentRoleARN,
		customerRoleARN: cfg.CustomerRoleARN,
		duration:        duration,
		timeout:         timeout,
	}, nil
}

// Assume obtains a bounded-duration credential scoped to the role's
// policy. Failures are surfaced as federation errors and never retried
// here; serving a stale credential must not silently grant access.
func (b *Broker) Assume(ctx context.Context, role domainauth.Role, email string) (domainstorage.FederatedCredential, error) {
	roleARN := b.customerRoleARN
	if role.IsAgentFamily() {
		roleARN = b.agentRoleARN
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	input := &awssts.AssumeRoleInput{
		RoleArn: aws.String(roleARN),
		// Unique suffix so concurrent requests from the same role never
		// collide on session name.
		RoleSessionName: aws.String(sessionName(role)),
		DurationSeconds: aws.Int32(int32(b.duration.Seconds())),
	}
	if email != "" {
		// Ties the assumed session back to the authenticated user in
		// CloudTrail without widening the session name.
		input.SourceIdentity = aws.String(email)
	}

	out, err := b.client.AssumeRole(ctx, input)
	if err != nil {
		return domainstorage.FederatedCredential{}, apperrors.Wrapf(err, apperrors.ErrCodeFederation, "assume role for %s", role)
	}
	if out.Credentials == nil {
		return domainstorage.FederatedCredential{}, apperrors.Newf(apperrors.ErrCodeFederation, "assume role for %s returned no credentials", role)
	}

	cred := domainstorage.FederatedCredential{
		AccessKey:    aws.ToString(out.Credentials.AccessKeyId),
		SecretKey:    aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken: aws.ToString(out.Credentials.SessionToken),
		ScopeRole:    role,
	}
	if out.Credentials.Expiration != nil {
		cred.ExpiresAt = *out.Credentials.Expiration
	} else {
		cred.ExpiresAt = time.Now().Add(b.duration)
	}

	return cred, nil
}

// sessionName builds an STS-safe session name from the role and a unique suffix.
func sessionName(role domainauth.Role) string {
	return fmt.Sprintf("portal-%s-%s", role, uuid.NewString()[:8])
}
