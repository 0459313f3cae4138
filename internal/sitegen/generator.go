// internal/sitegen/generator.go
//
// Static site generation for provisioned clients.
//
// Context
// -------
// Every industry the signup wizard offers maps to one page template:
// a self-contained HTML document (Tailwind via CDN, inline script, no
// build step) rendered from the client's stored profile.  The deploy
// workflow receives the client data and regenerates the same page on
// its side; this package is the canonical renderer used for previews,
// cached copies, and regeneration.
//
// Workflow
// --------
//   Generate(templateID, data)
//     1. Reject unknown template IDs.
//     2. Build the page view model (ordered hours, maps link, meta
//        description, copyright year).
//     3. Execute the per-industry template.  html/template escapes all
//        client-entered text on the way out, so a business name of
//        `<script>` renders inert.
//
// Notes
// -----
//   • The rendered contact form posts to the platform's contact-message
//     endpoint; the generator is configured with that URL at startup.
//   • Output is deterministic for fixed input and clock, which lets the
//     provisioning layer cache it and diff regenerations.
package sitegen

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/wowsites/platform/internal/schema"
)

// ErrUnknownTemplate is returned when the template ID does not match a
// supported industry.
var ErrUnknownTemplate = errors.New("unknown template id")

// metaDescriptionMax caps the <meta name="description"> excerpt.
const metaDescriptionMax = 160

/*──────────────────────────── generator ────────────────────────────────────*/

// Generator renders client sites.  Safe for concurrent use.
type Generator struct {
	contactEndpoint string
	now             func() time.Time
}

// New returns a Generator whose rendered contact forms post to
// contactEndpoint (the platform's public contact-message URL).
func New(contactEndpoint string) *Generator {
	return &Generator{contactEndpoint: contactEndpoint, now: time.Now}
}

// Generate renders the page for templateID from the client profile.
func (g *Generator) Generate(templateID string, data schema.ClientData) (string, error) {
	if !schema.ValidIndustry(templateID) {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, templateID, g.pageFor(templateID, data)); err != nil {
		return "", fmt.Errorf("render %s template: %w", templateID, err)
	}
	return buf.String(), nil
}

/*──────────────────────────── view model ───────────────────────────────────*/

// hourRow is one line of the business-hours table, in display order.
type hourRow struct {
	Day  string
	Time string
}

// page is the view model shared by all industry templates.  Accent
// selects the Tailwind color family; the variant-specific sections live
// in the per-industry template text.
type page struct {
	Data   schema.ClientData
	Meta   string
	Title  string // <title> suffix, e.g. "Restaurant"
	Year   int
	Accent string

	ContactBg string // Tailwind class behind the contact-info section

	Endpoint string // contact-message relay URL
	MapsURL  string // empty when no address

	Hours     []hourRow
	HasSocial bool

	SuccessMsg   string
	DateField    bool // salon: preferred appointment date
	ServiceField bool // plumber: service-type dropdown
}

var accents = map[string]string{
	schema.IndustryRestaurant: "orange",
	schema.IndustrySalon:      "purple",
	schema.IndustryPlumber:    "blue",
}

var titles = map[string]string{
	schema.IndustryRestaurant: "Restaurant",
	schema.IndustrySalon:      "Hair Salon",
	schema.IndustryPlumber:    "Professional Plumbing Services",
}

var successMsgs = map[string]string{
	schema.IndustryRestaurant: "Thank you for your message! We will get back to you soon.",
	schema.IndustrySalon:      "Thank you for your booking request! We will contact you soon to confirm.",
	schema.IndustryPlumber:    "Thank you for your request! We will contact you soon to discuss your plumbing needs.",
}

func (g *Generator) pageFor(templateID string, data schema.ClientData) page {
	p := page{
		Data:       data,
		Meta:       data.BusinessName + " - " + truncate(data.AboutUs, metaDescriptionMax),
		Title:      titles[templateID],
		Year:       g.now().Year(),
		Accent:     accents[templateID],
		ContactBg:  "bg-white",
		Endpoint:   g.contactEndpoint,
		SuccessMsg: successMsgs[templateID],
	}

	if data.Address != "" {
		p.MapsURL = "https://maps.google.com/?q=" + url.QueryEscape(data.Address)
	}
	if data.Hours != nil && !data.Hours.Empty() {
		for _, day := range schema.Weekdays {
			p.Hours = append(p.Hours, hourRow{Day: day, Time: hoursOrClosed(data.Hours.ByDay(day))})
		}
	}
	if data.SocialLinks != nil && !data.SocialLinks.Empty() {
		p.HasSocial = true
	}

	switch templateID {
	case schema.IndustrySalon:
		p.DateField = true
		p.ContactBg = "bg-gray-50"
	case schema.IndustryPlumber:
		p.ServiceField = true
	}
	return p
}

func hoursOrClosed(t string) string {
	if t == "" {
		return "Closed"
	}
	return t
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

/*──────────────────────────── template set ─────────────────────────────────*/

// pages holds every industry template plus the shared sections they
// reference.  Parsed once at init; a parse error is a programming bug
// and panics via template.Must.
var pages = func() *template.Template {
	root := template.New("sitegen")
	for name, text := range map[string]string{
		"shared":                  sharedTmpl,
		schema.IndustryRestaurant: restaurantTmpl,
		schema.IndustrySalon:      salonTmpl,
		schema.IndustryPlumber:    plumberTmpl,
	} {
		template.Must(root.New(name).Parse(text))
	}
	return root
}()

// sharedTmpl defines the sections every industry page includes: the
// document head, business hours, contact info with social links, the
// footer, and the contact-form script that relays submissions to the
// platform.
const sharedTmpl = `{{define "head"}}<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="description" content="{{.Meta}}">
  <title>{{.Data.BusinessName}} - {{.Title}}</title>
  <script src="https://cdn.tailwindcss.com"></script>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; }
  </style>
</head>{{end}}

{{define "hoursSection"}}{{if .Hours}}
  <section class="py-16 px-4 bg-white">
    <div class="max-w-4xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-8 text-gray-900">Business Hours</h2>
      <div class="bg-gray-50 rounded-lg p-8">
        <div class="space-y-3">
          {{range .Hours}}
          <div class="flex justify-between items-center py-2 border-b border-gray-200">
            <span class="font-semibold text-gray-900 capitalize">{{.Day}}</span>
            <span class="text-gray-700">{{.Time}}</span>
          </div>
          {{end}}
        </div>
      </div>
    </div>
  </section>
{{end}}{{end}}

{{define "contactInfo"}}
  <section class="py-16 px-4 {{.ContactBg}}">
    <div class="max-w-4xl mx-auto text-center">
      <h2 class="text-4xl font-bold mb-8 text-gray-900">Contact Us</h2>
      <div class="grid md:grid-cols-2 gap-8">
        <div>
          <h3 class="text-xl font-semibold mb-4 text-gray-900">Phone</h3>
          <a href="tel:{{.Data.Phone}}" class="text-{{.Accent}}-600 hover:text-{{.Accent}}-700 text-lg">{{.Data.Phone}}</a>
        </div>
        <div>
          <h3 class="text-xl font-semibold mb-4 text-gray-900">Email</h3>
          <a href="mailto:{{.Data.Email}}" class="text-{{.Accent}}-600 hover:text-{{.Accent}}-700 text-lg">{{.Data.Email}}</a>
        </div>
      </div>
      {{if .HasSocial}}
      <div class="mt-8">
        <h3 class="text-xl font-semibold mb-4 text-gray-900">Follow Us</h3>
        <div class="flex justify-center gap-4">
          {{with .Data.SocialLinks}}{{if .Facebook}}<a href="{{.Facebook}}" target="_blank" class="text-{{$.Accent}}-600 hover:text-{{$.Accent}}-700">Facebook</a>{{end}}
          {{if .Instagram}}<a href="{{.Instagram}}" target="_blank" class="text-{{$.Accent}}-600 hover:text-{{$.Accent}}-700">Instagram</a>{{end}}{{end}}
        </div>
      </div>
      {{end}}
    </div>
  </section>
{{end}}

{{define "footer"}}
  <footer class="bg-gray-900 text-gray-400 py-8 px-4 text-center">
    <p>&copy; {{.Year}} {{.Data.BusinessName}}. All rights reserved.</p>
  </footer>
{{end}}

{{define "contactScript"}}
  <script>
    // Contact form relay.  Field rules live server-side; the page only
    // checks presence and surfaces the API's messages.
    document.getElementById('contactForm').addEventListener('submit', function(e) {
      e.preventDefault();

      var form = this;
      var formData = new FormData(form);

      var name = formData.get('name').trim();
      var email = formData.get('email').trim();
      var phone = formData.get('phone').trim();
      var message = formData.get('message').trim();

      if (!name || !email || !phone || !message) {
        showMessage('Please fill in all required fields.', 'error');
        return;
      }
      {{if .ServiceField}}
      var serviceType = formData.get('serviceType').trim();
      if (!serviceType) {
        showMessage('Please fill in all required fields.', 'error');
        return;
      }
      message = '[' + serviceType + '] ' + message;
      {{end}}{{if .DateField}}
      var preferredDate = formData.get('preferredDate');
      if (preferredDate) {
        var selectedDate = new Date(preferredDate);
        var today = new Date();
        today.setHours(0, 0, 0, 0);
        if (selectedDate < today) {
          showMessage('Please select a future date.', 'error');
          return;
        }
        message = message + ' (Preferred date: ' + preferredDate + ')';
      }
      {{end}}
      fetch('{{.Endpoint}}', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({
          subdomain: '{{.Data.Subdomain}}',
          name: name,
          email: email,
          phone: phone,
          message: message
        })
      }).then(function(res) {
        if (res.ok) {
          showMessage('{{.SuccessMsg}}', 'success');
          form.reset();
        } else {
          res.json().then(function(body) {
            if (body && body.details && body.details.length > 0) {
              showMessage(body.details[0].message, 'error');
            } else {
              showMessage((body && body.error) || 'Something went wrong. Please try again later.', 'error');
            }
          }).catch(function() {
            showMessage('Something went wrong. Please try again later.', 'error');
          });
        }
      }).catch(function() {
        showMessage('Something went wrong. Please try again later.', 'error');
      });
    });

    function showMessage(text, type) {
      var messageDiv = document.getElementById('formMessage');
      messageDiv.textContent = text;
      messageDiv.className = 'mt-4 text-center p-4 rounded-lg ' +
        (type === 'success' ? 'bg-green-100 text-green-700' : 'bg-red-100 text-red-700');
      messageDiv.classList.remove('hidden');

      setTimeout(function() {
        messageDiv.classList.add('hidden');
      }, 5000);
    }
  </script>
{{end}}`
