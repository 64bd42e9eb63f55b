// Package brevo sends waitlist confirmation emails through Brevo's transactional email API.
package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/sethvargo/go-retry"

	"github.com/spicebox/waitlist-api/internal/platform/config"
	"github.com/spicebox/waitlist-api/internal/ports/out/notifier"
)

const sendPath = "/smtp/email"

type contact struct {
	Name  string              `json:"name,omitempty"`
	Email openapi_types.Email `json:"email"`
}

type sendRequest struct {
	Sender      contact   `json:"sender"`
	To          []contact `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

// StatusError is returned when Brevo answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("brevo: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client implements notifier.Notifier against Brevo.
type Client struct {
	cfg  config.EmailConfig
	http *http.Client
}

var _ notifier.Notifier = (*Client)(nil)

// NewClient returns a Brevo client. A nil httpClient uses a default client; per-attempt
// deadlines come from cfg.Timeout.
func NewClient(cfg config.EmailConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{cfg: cfg, http: httpClient}
}

func (c *Client) SendWaitlistConfirmation(ctx context.Context, to notifier.Recipient) error {
	body, err := json.Marshal(sendRequest{
		Sender:      contact{Name: c.cfg.SenderName, Email: openapi_types.Email(c.cfg.SenderAddress)},
		To:          []contact{{Name: to.Name, Email: openapi_types.Email(to.Email)}},
		Subject:     c.cfg.Subject,
		HTMLContent: confirmationHTML(to.Name),
	})
	if err != nil {
		return fmt.Errorf("brevo: encode request: %w", err)
	}

	delay := c.cfg.RetryDelay
	if delay <= 0 {
		// retry.NewConstant rejects non-positive durations.
		delay = time.Millisecond
	}
	b := retry.WithMaxRetries(c.cfg.MaxRetries, retry.NewConstant(delay))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := c.send(ctx, body)
		if isRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) send(ctx context.Context, body []byte) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("brevo: build request: %w", err)
	}
	req.Header.Set("api-key", c.cfg.APIKey)
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("brevo: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 || se.StatusCode == http.StatusTooManyRequests
	}
	// Transport failure. A cancelled caller context stops retry.Do on its own.
	return true
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(
	`<html><body>` +
		`<h1>Welcome to the SpiceBox waitlist, {{.}}!</h1>` +
		`<p>Thanks for signing up. We'll let you know as soon as SpiceBox is delivering near you.</p>` +
		`<p>The SpiceBox team</p>` +
		`</body></html>`))

func confirmationHTML(name string) string {
	var sb strings.Builder
	// The template is static and name is escaped; Execute only fails on writer errors.
	_ = confirmationTemplate.Execute(&sb, name)
	return sb.String()
}

// Disabled is the notifier used when no Brevo credentials are configured.
type Disabled struct{}

func (Disabled) SendWaitlistConfirmation(context.Context, notifier.Recipient) error {
	return notifier.ErrNotConfigured
}
