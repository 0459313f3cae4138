// internal/sitegen/generator_test.go
//
// Run: go test ./internal/sitegen -v

package sitegen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowsites/platform/internal/schema"
)

const testEndpoint = "https://app.saas.wow-sites.com/api/contact-message"

func testGenerator() *Generator {
	g := New(testEndpoint)
	g.now = func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }
	return g
}

func restaurantData() schema.ClientData {
	return schema.ClientData{
		BusinessName: "Joe's Pizza",
		Subdomain:    "joes-pizza",
		Industry:     schema.IndustryRestaurant,
		Email:        "joe@example.com",
		Phone:        "312-555-0100",
		Address:      "123 Main St, Chicago",
		AboutUs:      "Family-owned pizzeria since 1985.",
		Services:     []string{"Margherita", "Pepperoni", "Calzone"},
	}
}

func TestGenerate_UnknownTemplate(t *testing.T) {
	_, err := testGenerator().Generate("bakery", restaurantData())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	assert.Contains(t, err.Error(), "bakery")
}

func TestGenerate_RestaurantSections(t *testing.T) {
	html, err := testGenerator().Generate(schema.IndustryRestaurant, restaurantData())
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Joe&#39;s Pizza - Restaurant</title>")
	assert.Contains(t, html, "Our Menu")
	assert.Contains(t, html, "Margherita")
	assert.Contains(t, html, "https://maps.google.com/?q=123+Main+St%2C+Chicago")
	assert.Contains(t, html, "&copy; 2026 Joe&#39;s Pizza")

	// The form posts back to the platform with the site's subdomain.
	assert.Contains(t, html, testEndpoint)
	assert.Contains(t, html, "joes-pizza")
}

func TestGenerate_ContactFormDefersValidationToAPI(t *testing.T) {
	html, err := testGenerator().Generate(schema.IndustryRestaurant, restaurantData())
	require.NoError(t, err)

	// The page keeps only presence checks; field rules come back from
	// the contact endpoint's error envelope.
	assert.NotContains(t, html, "emailRegex")
	assert.NotContains(t, html, "phoneRegex")
	assert.Contains(t, html, "Please fill in all required fields.")
	assert.Contains(t, html, "body.details[0].message")
}

func TestGenerate_EscapesUserText(t *testing.T) {
	data := restaurantData()
	data.BusinessName = `<script>alert("x")</script>`
	data.AboutUs = `We love <b>bold</b> flavors & more`

	html, err := testGenerator().Generate(schema.IndustryRestaurant, data)
	require.NoError(t, err)

	assert.NotContains(t, html, `<script>alert`)
	assert.NotContains(t, html, "<b>bold</b>")
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt;")
}

func TestGenerate_SalonHoursAndDateField(t *testing.T) {
	data := restaurantData()
	data.Industry = schema.IndustrySalon
	data.Address = ""
	data.Services = []string{"Haircut", "Color", "Blowout"}
	data.Hours = &schema.BusinessHours{Monday: "9am-5pm", Saturday: "10am-2pm"}

	html, err := testGenerator().Generate(schema.IndustrySalon, data)
	require.NoError(t, err)

	assert.Contains(t, html, "Book an Appointment")
	assert.Contains(t, html, `name="preferredDate"`)
	assert.Contains(t, html, "9am-5pm")

	// Days without hours render as closed; the hours table lists all
	// seven days in calendar order.
	assert.Contains(t, html, "Closed")
	assert.Less(t, strings.Index(html, "monday"), strings.Index(html, "sunday"))
}

func TestGenerate_PlumberServiceDropdown(t *testing.T) {
	data := restaurantData()
	data.Industry = schema.IndustryPlumber
	data.Services = []string{"Drain Cleaning", "Water Heaters", "Repiping"}

	html, err := testGenerator().Generate(schema.IndustryPlumber, data)
	require.NoError(t, err)

	assert.Contains(t, html, "Request a Quote")
	assert.Contains(t, html, `<option value="Drain Cleaning">Drain Cleaning</option>`)
	assert.Contains(t, html, `<option value="other">Other</option>`)
	assert.Contains(t, html, "Available 24/7")
}

func TestGenerate_OmitsEmptyOptionalSections(t *testing.T) {
	data := restaurantData()
	data.Address = ""
	data.Hours = nil
	data.SocialLinks = nil

	html, err := testGenerator().Generate(schema.IndustryRestaurant, data)
	require.NoError(t, err)

	assert.NotContains(t, html, "Visit Us")
	assert.NotContains(t, html, "Business Hours")
	assert.NotContains(t, html, "Follow Us")
}

func TestGenerate_SocialLinks(t *testing.T) {
	data := restaurantData()
	data.SocialLinks = &schema.SocialLinks{Instagram: "https://instagram.com/joespizza"}

	html, err := testGenerator().Generate(schema.IndustryRestaurant, data)
	require.NoError(t, err)

	assert.Contains(t, html, "Follow Us")
	assert.Contains(t, html, `href="https://instagram.com/joespizza"`)
	assert.NotContains(t, html, ">Facebook<")
}

func TestGenerate_Deterministic(t *testing.T) {
	g := testGenerator()
	a, err := g.Generate(schema.IndustryRestaurant, restaurantData())
	require.NoError(t, err)
	b, err := g.Generate(schema.IndustryRestaurant, restaurantData())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
