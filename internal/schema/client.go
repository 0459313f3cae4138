// internal/schema/client.go
//
// Client-record schema: the full business profile a tenant submits.
//
// Context
// -------
// ClientData mirrors the signup payload end to end: business basics,
// contact info, business details, and optional social links.  The
// aggregate validator runs every field rule and returns all failures in
// declaration order, so the wizard can highlight each broken field in a
// single pass instead of ping-ponging one error at a time.
package schema

import "strings"

// Industry values double as template identifiers; provisioning copies
// the industry into templateId verbatim.
const (
	IndustryRestaurant = "restaurant"
	IndustrySalon      = "salon"
	IndustryPlumber    = "plumber"
)

// Industries lists the supported verticals in display order.
var Industries = []string{IndustryRestaurant, IndustrySalon, IndustryPlumber}

// Deployment lifecycle states for a client record.
const (
	StatusPending   = "pending"
	StatusDeploying = "deploying"
	StatusActive    = "active"
	StatusFailed    = "failed"
)

// Weekdays orders the keys of BusinessHours for rendering.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// BusinessHours maps weekday to a free-text time range.  An empty value
// means closed that day.
type BusinessHours struct {
	Monday    string `json:"monday,omitempty"`
	Tuesday   string `json:"tuesday,omitempty"`
	Wednesday string `json:"wednesday,omitempty"`
	Thursday  string `json:"thursday,omitempty"`
	Friday    string `json:"friday,omitempty"`
	Saturday  string `json:"saturday,omitempty"`
	Sunday    string `json:"sunday,omitempty"`
}

// ByDay returns the hours text for a lowercase weekday name.
func (h BusinessHours) ByDay(day string) string {
	switch day {
	case "monday":
		return h.Monday
	case "tuesday":
		return h.Tuesday
	case "wednesday":
		return h.Wednesday
	case "thursday":
		return h.Thursday
	case "friday":
		return h.Friday
	case "saturday":
		return h.Saturday
	case "sunday":
		return h.Sunday
	}
	return ""
}

// Empty reports whether no day carries any hours text.
func (h BusinessHours) Empty() bool {
	for _, d := range Weekdays {
		if h.ByDay(d) != "" {
			return false
		}
	}
	return true
}

// SocialLinks carries up to three optional profile URLs.  Each entry is
// either empty or a well-formed URL.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Empty reports whether every link is blank.
func (s SocialLinks) Empty() bool {
	return s.Facebook == "" && s.Instagram == "" && s.Website == ""
}

// ClientData is the validated signup payload.
type ClientData struct {
	// Step 1: business basics.
	BusinessName string `json:"businessName"`
	Subdomain    string `json:"subdomain"`
	Industry     string `json:"industry"`

	// Step 2: contact information.
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`

	// Step 3: business details.
	AboutUs  string         `json:"aboutUs"`
	Services []string       `json:"services"`
	Hours    *BusinessHours `json:"hours,omitempty"`

	// Step 4: social links.
	SocialLinks *SocialLinks `json:"socialLinks,omitempty"`
}

// ValidIndustry reports whether v names a supported vertical.
func ValidIndustry(v string) bool {
	return v == IndustryRestaurant || v == IndustrySalon || v == IndustryPlumber
}

// ValidateClientData runs the full schema and aggregates every failure.
// Field order follows the struct declaration so the wizard surfaces
// errors top to bottom.
func ValidateClientData(d ClientData) FieldErrors {
	var errs FieldErrors

	if d.BusinessName == "" {
		errs = append(errs, FieldError{"businessName", "Business name is required"})
	} else if len(d.BusinessName) > 100 {
		errs = append(errs, FieldError{"businessName", "Business name must be at most 100 characters"})
	}

	errs = append(errs, ValidateSubdomain(d.Subdomain)...)

	if !ValidIndustry(d.Industry) {
		errs = append(errs, FieldError{"industry", "Please select an industry"})
	}

	errs = append(errs, ValidateEmail("email", d.Email)...)
	errs = append(errs, ValidatePhone("phone", d.Phone)...)

	if len(d.Address) > 200 {
		errs = append(errs, FieldError{"address", "Address must be at most 200 characters"})
	}

	if len(d.AboutUs) < 10 {
		errs = append(errs, FieldError{"aboutUs", "About us must be at least 10 characters"})
	} else if len(d.AboutUs) > 500 {
		errs = append(errs, FieldError{"aboutUs", "About us must be at most 500 characters"})
	}

	if len(d.Services) < 3 {
		errs = append(errs, FieldError{"services", "Please add at least 3 services"})
	}
	for _, s := range d.Services {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, FieldError{"services", "Service name cannot be empty"})
			break
		}
	}

	if d.SocialLinks != nil {
		if d.SocialLinks.Facebook != "" {
			errs = append(errs, ValidateURL("socialLinks.facebook", d.SocialLinks.Facebook)...)
		}
		if d.SocialLinks.Instagram != "" {
			errs = append(errs, ValidateURL("socialLinks.instagram", d.SocialLinks.Instagram)...)
		}
		if d.SocialLinks.Website != "" {
			errs = append(errs, ValidateURL("socialLinks.website", d.SocialLinks.Website)...)
		}
	}

	return errs
}
