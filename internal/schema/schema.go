// internal/schema/schema.go
//
// Canonical validation primitives for the provisioning platform.
//
// Context
// -------
// Every surface that accepts tenant input (signup wizard, HTTP API,
// generated-site contact forms) validates through this one package, so
// rules and error strings cannot drift between them.  Validators are
// total functions: they never panic, and they return an ordered list of
// field-scoped errors instead of stopping at the first failure.
//
// Workflow
// --------
//  1. Leaf validators (ValidateSubdomain, ValidateEmail, ValidatePhone,
//     ...) check one value and return zero or more FieldErrors.
//  2. Object validators (client.go, webhook.go) run every leaf rule,
//     concatenate the results in field declaration order, and return
//     the aggregate.
//  3. Callers render FieldErrors as JSON `details` (HTTP 400) or as
//     inline wizard messages; tests assert on the exact strings, so
//     messages here are frozen.
//
// Notes
// -----
//   - Subdomain validation does NOT lowercase; callers fold case before
//     any uniqueness lookup.
//   - Oxford commas, two spaces after periods.
package schema

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

// -----------------------------------------------------------------------------
// Error types
// -----------------------------------------------------------------------------

// FieldError describes a single validation failure, scoped to the input
// field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is an ordered list of failures.  A nil or empty slice
// means the input validated cleanly.
type FieldErrors []FieldError

// Error satisfies the error interface so handlers can pass FieldErrors
// through plain error returns and recover them with errors.As.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation passed"
	}
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

// ByField returns the first message recorded for field, or "".
func (fe FieldErrors) ByField(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// -----------------------------------------------------------------------------
// Frozen messages
// -----------------------------------------------------------------------------

// User-facing strings.  Tests assert on these verbatim; change them only
// together with every surface that renders them.
const (
	MsgSubdomainTooShort   = "Subdomain must be at least 3 characters"
	MsgSubdomainTooLong    = "Subdomain must be at most 30 characters"
	MsgSubdomainCharset    = "Subdomain can only contain lowercase letters, numbers, and hyphens"
	MsgSubdomainHyphenEdge = "Subdomain cannot start or end with a hyphen"
	MsgEmailInvalid        = "Please enter a valid email address"
	MsgPhoneTooShort       = "Phone number must be at least 10 digits"
	MsgPhoneCharset        = "Please enter a valid phone number"
	MsgURLInvalid          = "Please enter a valid URL"
)

// -----------------------------------------------------------------------------
// Leaf validators
// -----------------------------------------------------------------------------

var (
	subdomainRe = regexp.MustCompile(`^[a-z0-9-]+$`)
	phoneRe     = regexp.MustCompile(`^[0-9\s\-+()]+$`)
)

// ValidateSubdomain enforces the slug rules for tenant subdomains:
// 3-30 chars, [a-z0-9-], and no leading or trailing hyphen.  Input is
// checked as-is; case folding is the caller's job.
func ValidateSubdomain(s string) FieldErrors {
	var errs FieldErrors
	if len(s) < 3 {
		errs = append(errs, FieldError{"subdomain", MsgSubdomainTooShort})
	}
	if len(s) > 30 {
		errs = append(errs, FieldError{"subdomain", MsgSubdomainTooLong})
	}
	if s != "" && !subdomainRe.MatchString(s) {
		errs = append(errs, FieldError{"subdomain", MsgSubdomainCharset})
	}
	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		errs = append(errs, FieldError{"subdomain", MsgSubdomainHyphenEdge})
	}
	return errs
}

// ValidateEmail accepts RFC-shaped, non-empty addresses.
func ValidateEmail(field, s string) FieldErrors {
	if s == "" {
		return FieldErrors{{field, MsgEmailInvalid}}
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return FieldErrors{{field, MsgEmailInvalid}}
	}
	return nil
}

// ValidatePhone requires at least 10 characters of raw input (not digit
// count) restricted to digits, spaces, "+", "-", and parentheses.
func ValidatePhone(field, s string) FieldErrors {
	var errs FieldErrors
	if len(s) < 10 {
		errs = append(errs, FieldError{field, MsgPhoneTooShort})
	}
	if s != "" && !phoneRe.MatchString(s) {
		errs = append(errs, FieldError{field, MsgPhoneCharset})
	}
	return errs
}

// ValidateURL accepts absolute http(s) URLs.  Empty strings are the
// caller's concern; this helper rejects them.
func ValidateURL(field, s string) FieldErrors {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return FieldErrors{{field, MsgURLInvalid}}
	}
	return nil
}
