// internal/mail/brevo.go
//
// Transactional email over the Brevo REST API.
//
// Context
// -------
// Three messages leave the platform: a welcome email when a site goes
// live, a failure email when a deployment breaks, and a relay of
// contact-form submissions to the site owner.  All three are
// best-effort: callers log a send failure and carry on, because the
// state transition that triggered the email has already been committed
// and must not be rolled back over a mail outage.
//
// Notes
// -----
//   • A missing API key is a configuration choice (local dev, tests),
//     not an error path worth a stack trace.  Send methods return
//     ErrNotConfigured and callers downgrade it to a warning.
//   • Bodies live in bodies.go.  User-entered text is escaped before it
//     reaches the HTML variant.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wowsites/platform/internal/metrics"
)

const (
	brevoBaseURL = "https://api.brevo.com"
	sendPath     = "/v3/smtp/email"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("email service not configured")

// Config carries everything the mailer needs; values come from the
// `email` and `site` config sections.
type Config struct {
	APIKey       string
	SenderEmail  string
	SenderName   string
	SupportEmail string
	AppURL       string // dashboard links
	BaseDomain   string // site URLs: https://<subdomain>.<BaseDomain>
}

// Brevo sends transactional email.  Safe for concurrent use.
type Brevo struct {
	client *resty.Client
	cfg    Config
}

// NewBrevo builds the mailer.  The client retries transient failures
// twice with resty's default backoff.
func NewBrevo(cfg Config) *Brevo {
	c := resty.New().
		SetBaseURL(brevoBaseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetHeader("api-key", cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	return &Brevo{client: c, cfg: cfg}
}

/*──────────────────────────── wire types ───────────────────────────────────*/

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type smtpEmail struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
	TextContent string  `json:"textContent"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

/*──────────────────────────── send ─────────────────────────────────────────*/

// send posts one message.  kind labels the metric ("welcome",
// "failure", "contact").
func (b *Brevo) send(ctx context.Context, kind, to, subject, html, text string) error {
	if b.cfg.APIKey == "" {
		return ErrNotConfigured
	}

	var apiErr apiError
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(smtpEmail{
			Sender:      party{Name: b.cfg.SenderName, Email: b.cfg.SenderEmail},
			To:          []party{{Email: to}},
			Subject:     subject,
			HTMLContent: html,
			TextContent: text,
		}).
		SetError(&apiErr).
		Post(sendPath)
	if err != nil {
		metrics.EmailErrorsTotal.WithLabelValues(kind).Inc()
		return fmt.Errorf("brevo send: %w", err)
	}
	if resp.IsError() {
		metrics.EmailErrorsTotal.WithLabelValues(kind).Inc()
		msg := apiErr.Message
		if msg == "" {
			msg = resp.Status()
		}
		return fmt.Errorf("brevo send: %s", msg)
	}

	metrics.EmailsSentTotal.WithLabelValues(kind).Inc()
	return nil
}

// SendWelcome tells the owner their site is live.
func (b *Brevo) SendWelcome(ctx context.Context, to, subdomain, businessName string) error {
	siteURL := fmt.Sprintf("https://%s.%s", subdomain, b.cfg.BaseDomain)
	subject, html, text := welcomeBody(businessName, siteURL, b.cfg.AppURL+"/dashboard")
	return b.send(ctx, "welcome", to, subject, html, text)
}

// SendFailure tells the owner a deployment broke and support is on it.
func (b *Brevo) SendFailure(ctx context.Context, to, businessName, reason string) error {
	subject, html, text := failureBody(businessName, reason, b.cfg.SupportEmail, b.cfg.AppURL+"/dashboard")
	return b.send(ctx, "failure", to, subject, html, text)
}

// SendContact relays a visitor's contact-form submission to the site
// owner.
func (b *Brevo) SendContact(ctx context.Context, to, businessName, visitorName, visitorEmail, visitorPhone, message string) error {
	subject, html, text := contactBody(businessName, visitorName, visitorEmail, visitorPhone, message)
	return b.send(ctx, "contact", to, subject, html, text)
}
