// internal/schema/webhook.go
//
// Schemas for inbound payloads that arrive from outside the signup
// flow: the deploy-workflow callback and the contact form embedded in
// every generated site.
package schema

import "strings"

// WebhookPayload is the deploy-workflow status callback body.  Secret
// is checked by the handler before validation and never logged.
type WebhookPayload struct {
	Secret        string `json:"secret,omitempty"`
	ClientID      string `json:"clientId"`
	Status        string `json:"status"`
	DeploymentURL string `json:"deploymentUrl,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ValidStatus reports whether v is one of the lifecycle states.
func ValidStatus(v string) bool {
	switch v {
	case StatusPending, StatusDeploying, StatusActive, StatusFailed:
		return true
	}
	return false
}

// ValidateWebhookPayload checks the callback body: clientId is
// required, status must be a known state, and deploymentUrl must parse
// when present.  The error field is free text and passes through.
func ValidateWebhookPayload(p WebhookPayload) FieldErrors {
	var errs FieldErrors
	if p.ClientID == "" {
		errs = append(errs, FieldError{"clientId", "Client ID is required"})
	}
	if !ValidStatus(p.Status) {
		errs = append(errs, FieldError{"status", "Invalid status"})
	}
	if p.DeploymentURL != "" {
		errs = append(errs, ValidateURL("deploymentUrl", p.DeploymentURL)...)
	}
	return errs
}

// ContactMessage is posted by the contact form on a generated site.
// The subdomain identifies which tenant should receive the relay.
type ContactMessage struct {
	Subdomain string `json:"subdomain"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// ValidateContactMessage applies the same rules the generated page
// hints at client-side; this server-side pass is authoritative.
func ValidateContactMessage(m ContactMessage) FieldErrors {
	var errs FieldErrors
	errs = append(errs, ValidateSubdomain(m.Subdomain)...)
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	}
	errs = append(errs, ValidateEmail("email", m.Email)...)
	errs = append(errs, ValidatePhone("phone", m.Phone)...)
	if strings.TrimSpace(m.Message) == "" {
		errs = append(errs, FieldError{"message", "Message is required"})
	}
	return errs
}
