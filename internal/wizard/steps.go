// internal/wizard/steps.go
//
// Per-step validation rules.
//
// Each step gates only the fields it collects, and with looser rules
// than the final schema: a visitor on step 1 should not be blocked by a
// missing email three steps ahead.  The preview step re-runs the full
// schema so nothing invalid ever reaches provisioning.
package wizard

import (
	"strings"

	"github.com/wowsites/platform/internal/schema"
)

// Wizard steps, in order.
const (
	StepBusinessBasics  = 1
	StepContactInfo     = 2
	StepBusinessDetails = 3
	StepSocialLinks     = 4
	StepPreview         = 5

	StepCount = 5
)

// StepNames maps step numbers to display labels.
var StepNames = map[int]string{
	StepBusinessBasics:  "Business Basics",
	StepContactInfo:     "Contact Info",
	StepBusinessDetails: "Business Details",
	StepSocialLinks:     "Social Links",
	StepPreview:         "Preview",
}

// validateStep checks the fields a step collects.  The preview step
// delegates to the full schema.
func validateStep(step int, d *Draft) schema.FieldErrors {
	var errs schema.FieldErrors

	switch step {
	case StepBusinessBasics:
		if d.Data.BusinessName == "" {
			errs = append(errs, schema.FieldError{Field: "businessName", Message: "Business name is required"})
		}
		if d.Data.Subdomain == "" {
			errs = append(errs, schema.FieldError{Field: "subdomain", Message: "Subdomain is required"})
		} else if d.SubdomainAvailable != nil && !*d.SubdomainAvailable {
			errs = append(errs, schema.FieldError{Field: "subdomain", Message: "Subdomain is not available"})
		}
		if d.Data.Industry == "" {
			errs = append(errs, schema.FieldError{Field: "industry", Message: "Please select an industry"})
		}

	case StepContactInfo:
		if d.Data.Email == "" {
			errs = append(errs, schema.FieldError{Field: "email", Message: "Email is required"})
		} else if len(schema.ValidateEmail("email", d.Data.Email)) > 0 {
			errs = append(errs, schema.FieldError{Field: "email", Message: "Please enter a valid email"})
		}
		if d.Data.Phone == "" {
			errs = append(errs, schema.FieldError{Field: "phone", Message: "Phone is required"})
		}

	case StepBusinessDetails:
		if len(d.Data.AboutUs) < 10 {
			errs = append(errs, schema.FieldError{Field: "aboutUs", Message: "About us must be at least 10 characters"})
		}
		if len(d.Data.Services) < 3 {
			errs = append(errs, schema.FieldError{Field: "services", Message: "Please add at least 3 services"})
		} else {
			for _, s := range d.Data.Services {
				if strings.TrimSpace(s) == "" {
					errs = append(errs, schema.FieldError{Field: "services", Message: "All services must have a name"})
					break
				}
			}
		}

	case StepSocialLinks:
		// Optional fields only; the full schema vets the URLs on
		// submit.

	case StepPreview:
		errs = schema.ValidateClientData(d.Data)
	}

	return errs
}
