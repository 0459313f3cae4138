// internal/server/handlers_test.go
//
// Run: go test ./internal/server -v

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowsites/platform/internal/availability"
	"github.com/wowsites/platform/internal/client"
	"github.com/wowsites/platform/internal/provision"
	"github.com/wowsites/platform/internal/schema"
	"github.com/wowsites/platform/internal/wizard"
)

/*──────────────────────────── fakes ────────────────────────────────────────*/

type fakeChecker struct {
	result availability.Result
	err    error
}

func (f *fakeChecker) Check(context.Context, string, string) (availability.Result, error) {
	return f.result, f.err
}

type fakeProv struct {
	createRes  *provision.CreateResult
	createErrs schema.FieldErrors
	createErr  error

	callbackRec  *client.Record
	callbackErrs schema.FieldErrors
	callbackErr  error

	relayErrs schema.FieldErrors
	relayErr  error

	gotPayload schema.WebhookPayload
	gotData    schema.ClientData
}

func (f *fakeProv) CreateSite(_ context.Context, data schema.ClientData) (*provision.CreateResult, schema.FieldErrors, error) {
	f.gotData = data
	return f.createRes, f.createErrs, f.createErr
}

func (f *fakeProv) HandleCallback(_ context.Context, p schema.WebhookPayload) (*client.Record, schema.FieldErrors, error) {
	f.gotPayload = p
	return f.callbackRec, f.callbackErrs, f.callbackErr
}

func (f *fakeProv) RelayContact(context.Context, schema.ContactMessage) (schema.FieldErrors, error) {
	return f.relayErrs, f.relayErr
}

type fakeReader struct {
	records map[string]*client.Record
}

func (f *fakeReader) ByID(_ context.Context, id string) (*client.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return rec, nil
}

func newTestServer(t *testing.T, checker Checker, prov Provisioner, reader ClientReader) *httptest.Server {
	t.Helper()
	wizChecker, ok := checker.(wizard.Checker)
	require.True(t, ok)
	wiz := wizard.New(wizard.NewMemoryStore(), wizChecker)
	srv := httptest.NewServer(NewRouter(NewHandlers(checker, prov, reader, wiz)))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func validData() schema.ClientData {
	return schema.ClientData{
		BusinessName: "Joe's Pizza",
		Subdomain:    "joes-pizza",
		Industry:     schema.IndustryRestaurant,
		Email:        "joe@example.com",
		Phone:        "312-555-0100",
		AboutUs:      "Family-owned pizzeria since 1985.",
		Services:     []string{"Margherita", "Pepperoni", "Calzone"},
	}
}

/*──────────────────────────── check-subdomain ──────────────────────────────*/

func TestCheckSubdomain(t *testing.T) {
	checker := &fakeChecker{result: availability.Result{Available: true, Message: availability.MsgAvailable}}
	srv := newTestServer(t, checker, &fakeProv{}, &fakeReader{})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/check-subdomain?subdomain=joes-pizza", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["available"])
	assert.Equal(t, availability.MsgAvailable, body["message"])
}

func TestCheckSubdomain_MissingParam(t *testing.T) {
	srv := newTestServer(t, &fakeChecker{}, &fakeProv{}, &fakeReader{})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/check-subdomain", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Subdomain parameter is required", body["message"])
}

func TestCheckSubdomain_RateLimited(t *testing.T) {
	checker := &fakeChecker{result: availability.Result{Message: availability.MsgRateLimited, RateLimited: true}}
	srv := newTestServer(t, checker, &fakeProv{}, &fakeReader{})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/check-subdomain?subdomain=joes-pizza", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, false, body["available"])
}

func TestCheckSubdomain_Invalid(t *testing.T) {
	checker := &fakeChecker{result: availability.Result{Message: schema.MsgSubdomainTooShort, Invalid: true}}
	srv := newTestServer(t, checker, &fakeProv{}, &fakeReader{})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/check-subdomain?subdomain=ab", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, schema.MsgSubdomainTooShort, body["message"])
}

/*──────────────────────────── create-site ──────────────────────────────────*/

func TestCreateSite_Success(t *testing.T) {
	prov := &fakeProv{createRes: &provision.CreateResult{
		ClientID:   "abc",
		Subdomain:  "joes-pizza",
		WebsiteURL: "https://joes-pizza.saas.wow-sites.com",
		Message:    "Site creation initiated successfully",
	}}
	srv := newTestServer(t, &fakeChecker{}, prov, &fakeReader{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/create-site", validData())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc", body["clientId"])
	assert.Equal(t, "https://joes-pizza.saas.wow-sites.com", body["websiteUrl"])
	assert.Equal(t, "joes-pizza", prov.gotData.Subdomain)
}

func TestCreateSite_Conflict(t *testing.T) {
	prov := &fakeProv{createErr: client.ErrSubdomainTaken}
	srv := newTestServer(t, &fakeChecker{}, prov, &fakeReader{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/create-site", validData())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Subdomain is already taken", body["error"])
}

func TestCreateSite_ValidationEnvelope(t *testing.T) {
	prov := &fakeProv{createErrs: schema.FieldErrors{
		{Field: "businessName", Message: "Business name is required"},
	}}
	srv := newTestServer(t, &fakeChecker{}, prov, &fakeReader{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/create-site", schema.ClientData{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["error"])

	details, ok := body["details"].([]any)
	require.True(t, ok)
	require.Len(t, details, 1)
	first := details[0].(map[string]any)
	assert.Equal(t, "businessName", first["field"])
}

func TestCreateSite_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, &fakeChecker{}, &fakeProv{}, &fakeReader{})

	resp, err := http.Post(srv.URL+"/api/create-site", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

/*──────────────────────────── update-deployment ────────────────────────────*/

func TestUpdateDeployment(t *testing.T) {
	dep := "https://joes-pizza.saas.wow-sites.com"
	prov := &fakeProv{callbackRec: &client.Record{
		ID: "abc", Status: schema.StatusActive, DeploymentURL: &dep,
	}}
	srv := newTestServer(t, &fakeChecker{}, prov, &fakeReader{})

	payload := schema.WebhookPayload{
		Secret: "shh", ClientID: "abc", Status: schema.StatusActive,
		DeploymentURL: dep,
	}
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/update-deployment", payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc", prov.gotPayload.ClientID)

	// The envelope echoes the updated record.
	cl, ok := body["client"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc", cl["id"])
	assert.Equal(t, "active", cl["status"])
	assert.Equal(t, dep, cl["deploymentUrl"])
}

func TestUpdateDeployment_BadSecret(t *testing.T) {
	prov := &fakeProv{callbackErr: provision.ErrBadSecret}
	srv := newTestServer(t, &fakeChecker{}, prov, &fakeReader{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/update-deployment", schema.WebhookPayload{Secret: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestUpdateDeployment_UnknownClient(t *testing.T) {
	prov := &fakeProv{callbackErr: client.ErrNotFound}
	srv := newTestServer(t, &fakeChecker{}, prov, &fakeReader{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/update-deployment", schema.WebhookPayload{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Client not found", body["error"])
}

/*──────────────────────────── client reads ─────────────────────────────────*/

func storedRecord() *client.Record {
	addr := "123 Main St, Chicago"
	dep := "https://joes-pizza.saas.wow-sites.com"
	return &client.Record{
		ID:            "abc",
		BusinessName:  "Joe's Pizza",
		Subdomain:     "joes-pizza",
		Industry:      schema.IndustryRestaurant,
		Email:         "joe@example.com",
		Phone:         "312-555-0100",
		Address:       &addr,
		AboutUs:       "Family-owned pizzeria since 1985.",
		Services:      client.ServiceList{"Margherita", "Pepperoni"},
		Status:        schema.StatusActive,
		DeploymentURL: &dep,
		CreatedAt:     time.Date(2026, time.February, 10, 8, 30, 0, 0, time.UTC),
	}
}

func TestClientByID(t *testing.T) {
	reader := &fakeReader{records: map[string]*client.Record{"abc": storedRecord()}}
	srv := newTestServer(t, &fakeChecker{}, &fakeProv{}, reader)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/client/abc", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Joe's Pizza", body["businessName"])
	assert.Equal(t, "2026-02-10T08:30:00Z", body["createdAt"])
	assert.Equal(t, []any{"Margherita", "Pepperoni"}, body["services"])
	assert.NotContains(t, body, "siteData")
}

func TestClientByID_NotFound(t *testing.T) {
	srv := newTestServer(t, &fakeChecker{}, &fakeProv{}, &fakeReader{})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/client/nobody", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Client not found", body["error"])
}

func TestClientStatus(t *testing.T) {
	reader := &fakeReader{records: map[string]*client.Record{"abc": storedRecord()}}
	srv := newTestServer(t, &fakeChecker{}, &fakeProv{}, reader)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/client-status?clientId=abc", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, schema.StatusActive, body["status"])
	assert.Equal(t, "joes-pizza", body["subdomain"])
}

func TestClientStatus_MissingID(t *testing.T) {
	srv := newTestServer(t, &fakeChecker{}, &fakeProv{}, &fakeReader{})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/client-status", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Client ID is required", body["error"])
}

/*──────────────────────────── contact-message ──────────────────────────────*/

func TestContactMessage(t *testing.T) {
	srv := newTestServer(t, &fakeChecker{}, &fakeProv{}, &fakeReader{})

	msg := schema.ContactMessage{
		Subdomain: "joes-pizza", Name: "Jane", Email: "jane@example.com",
		Phone: "773-555-0199", Message: "Do you cater?",
	}
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/contact-message", msg)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestContactMessage_UnknownSite(t *testing.T) {
	prov := &fakeProv{relayErr: client.ErrNotFound}
	srv := newTestServer(t, &fakeChecker{}, prov, &fakeReader{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/contact-message", schema.ContactMessage{Subdomain: "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Site not found", body["error"])
}

/*──────────────────────────── wizard flow ──────────────────────────────────*/

func TestWizardFlow(t *testing.T) {
	checker := &fakeChecker{result: availability.Result{Available: true, Message: availability.MsgAvailable}}
	prov := &fakeProv{createRes: &provision.CreateResult{
		ClientID: "abc", Subdomain: "joes-pizza",
		WebsiteURL: "https://joes-pizza.saas.wow-sites.com",
		Message:    "Site creation initiated successfully",
	}}
	srv := newTestServer(t, checker, prov, &fakeReader{})

	// Open a draft.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/wizard", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	draftID := body["id"].(string)
	assert.Equal(t, float64(1), body["step"])

	// Empty basics cannot advance.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/wizard/"+draftID+"/next", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["error"])

	// Fill everything and submit.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/wizard/"+draftID, validData())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/wizard/"+draftID+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc", body["clientId"])

	// The draft is gone after a successful submit.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/wizard/"+draftID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Draft not found", body["error"])
}
