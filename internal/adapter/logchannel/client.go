package logchannel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yellowjack/loyaltybot/internal/domain/model"
)

// TooManyRequestsError represents a rate limiting signal from the log channel.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client publishes audit records to the moderation log channel.
type Client interface {
	Publish(ctx context.Context, record model.AuditRecord) error
}

// HTTPClient delivers audit records to a webhook endpoint.
type HTTPClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// payload mirrors the JSON body sent to the webhook.
type payload struct {
	Actor     string `json:"actor"`
	Target    string `json:"target"`
	Amount    int64  `json:"amount"`
	Direction string `json:"direction"`
	At        string `json:"at"`
}

// NewHTTPClient creates a webhook publisher with a default timeout.
func NewHTTPClient(endpoint string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse log channel url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("log channel url must be absolute")
	}
	return &HTTPClient{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Publish posts the record as JSON. A 429 response surfaces as
// TooManyRequestsError so the dispatcher can back off.
func (c *HTTPClient) Publish(ctx context.Context, record model.AuditRecord) error {
	body, err := json.Marshal(payload{
		Actor:     record.Actor,
		Target:    record.Target,
		Amount:    record.Amount,
		Direction: string(record.Direction),
		At:        record.At.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return TooManyRequestsError{RetryAfter: retryAfter}
	default:
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("log channel request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		return fmt.Errorf("log channel error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}

// LogClient writes audit records to the structured log. It is the fallback
// when no webhook endpoint is configured, so audit events never disappear
// silently.
type LogClient struct {
	logger *slog.Logger
}

// NewLogClient creates the logging fallback publisher.
func NewLogClient(logger *slog.Logger) *LogClient {
	return &LogClient{logger: logger}
}

// Publish records the audit event in the service log.
func (c *LogClient) Publish(_ context.Context, record model.AuditRecord) error {
	c.logger.Info("audit event",
		slog.String("actor", record.Actor),
		slog.String("target", record.Target),
		slog.Int64("amount", record.Amount),
		slog.String("direction", string(record.Direction)),
		slog.Time("at", record.At),
	)
	return nil
}
