// Package mailer sends transactional mail through the internal relay
// service. The relay is a separate HTTPS endpoint that does the actual SMTP
// work; this package only speaks its small JSON contract.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bcmenu/benglish-api/internal/config"
	"github.com/bcmenu/benglish-api/internal/platform/logger"
)

// internalTokenHeader authenticates this service to the relay.
const internalTokenHeader = "x-internal-token"

// maxAttempts bounds delivery retries for one message.
const maxAttempts = 3

// Mailer sends password-reset mail.
type Mailer interface {
	// SendPasswordReset delivers a reset mail carrying both deep links.
	// The caller treats delivery as best-effort; errors are for logging,
	// never for leaking account existence to clients.
	SendPasswordReset(ctx context.Context, toEmail, webLink, appLink string) error
}

// resetMailPayload is the relay's request body for reset mail.
type resetMailPayload struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Template string `json:"template"`
	WebLink  string `json:"webLink"`
	AppLink  string `json:"appLink"`
}

// RelayMailer implements Mailer against the HTTPS mail relay.
type RelayMailer struct {
	relayURL   string
	relayToken string
	from       string
	client     *http.Client
	logger     *slog.Logger
}

var _ Mailer = (*RelayMailer)(nil)

// NewRelayMailer creates a Mailer for the configured relay. When no relay
// URL is configured it returns a disabled mailer that drops mail with a
// warning, so environments without a relay still boot.
func NewRelayMailer(cfg config.MailConfig, log *slog.Logger) Mailer {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "mailer"))

	if cfg.RelayURL == "" {
		log.Warn("mail relay not configured, password reset mail disabled")
		return &disabledMailer{logger: log}
	}

	return &RelayMailer{
		relayURL:   cfg.RelayURL,
		relayToken: cfg.RelayToken,
		from:       cfg.From,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     log,
	}
}

// SendPasswordReset implements Mailer.SendPasswordReset.
func (m *RelayMailer) SendPasswordReset(ctx context.Context, toEmail, webLink, appLink string) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	body, err := json.Marshal(resetMailPayload{
		From:     m.from,
		To:       toEmail,
		Template: "password-reset",
		WebLink:  webLink,
		AppLink:  appLink,
	})
	if err != nil {
		return fmt.Errorf("failed to encode reset mail payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = m.post(ctx, body)
		if lastErr == nil {
			log.Debug("reset mail relayed", slog.Int("attempt", attempt))
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("reset mail aborted: %w", ctx.Err())
		}
		log.Warn("reset mail attempt failed",
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()))
	}
	return fmt.Errorf("reset mail failed after %d attempts: %w", maxAttempts, lastErr)
}

func (m *RelayMailer) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.relayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(internalTokenHeader, m.relayToken)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("relay responded with status %d", resp.StatusCode)
	}
	return nil
}

// disabledMailer drops all mail. Used when no relay is configured.
type disabledMailer struct {
	logger *slog.Logger
}

var _ Mailer = (*disabledMailer)(nil)

func (m *disabledMailer) SendPasswordReset(ctx context.Context, toEmail, webLink, appLink string) error {
	m.logger.Warn("dropping password reset mail, relay not configured")
	return nil
}
