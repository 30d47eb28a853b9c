package notify

// Package notify delivers templated email through the company mail-relay
// webhook. Templates render relay-side; we only send the template name
// and its data.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tripgate/portal-api/internal/ports"
)

// Config captures the subset of mail-relay behaviour we need.
type Config struct {
	WebhookURL string
	From       string
	Timeout    time.Duration
	Client     *http.Client
}

// Client posts notifications to the mail relay.
type Client struct {
	webhookURL string
	from       string
	client     *http.Client
}

var _ ports.Notifier = (*Client)(nil)

// NewClient builds a mail-relay client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("mail relay webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = "noreply@tripgate.example"
	}

	return &Client{
		webhookURL: webhookURL,
		from:       from,
		client:     hc,
	}, nil
}

type relayPayload struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}

// Send posts one templated message to the relay.
func (c *Client) Send(ctx context.Context, n ports.Notification) error {
	if n.To == "" {
		return errors.New("notification recipient is required")
	}
	if n.Template == "" {
		return errors.New("notification template is required")
	}

	body, err := json.Marshal(relayPayload{
		From:     c.from,
		To:       n.To,
		Template: n.Template,
		Data:     n.Data,
	})
	if err != nil {
		return fmt.Errorf("encode relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to mail relay: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}
	return nil
}
