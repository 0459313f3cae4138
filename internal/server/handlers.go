// internal/server/handlers.go
//
// HTTP handlers for the public signup API.
//
// Context
// -------
// Thin layer: decode, delegate, encode.  All business rules live in the
// availability, wizard, and provision packages; handlers only map their
// outcomes onto status codes:
//
//   400 validation failure     404 unknown client/draft
//   401 bad webhook secret     429 rate limited
//   409 subdomain conflict     500 anything else (logged, not leaked)
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wowsites/platform/internal/availability"
	"github.com/wowsites/platform/internal/client"
	"github.com/wowsites/platform/internal/provision"
	"github.com/wowsites/platform/internal/requestinfo"
	"github.com/wowsites/platform/internal/schema"
	"github.com/wowsites/platform/internal/wizard"
)

/*──────────────────────────── capabilities ─────────────────────────────────*/

// Checker answers availability probes.
type Checker interface {
	Check(ctx context.Context, callerKey, subdomain string) (availability.Result, error)
}

// Provisioner is the slice of provision.Service the handlers call.
type Provisioner interface {
	CreateSite(ctx context.Context, data schema.ClientData) (*provision.CreateResult, schema.FieldErrors, error)
	HandleCallback(ctx context.Context, p schema.WebhookPayload) (*client.Record, schema.FieldErrors, error)
	RelayContact(ctx context.Context, m schema.ContactMessage) (schema.FieldErrors, error)
}

// ClientReader serves the read-only client endpoints.
type ClientReader interface {
	ByID(ctx context.Context, id string) (*client.Record, error)
}

/*──────────────────────────── handlers ─────────────────────────────────────*/

// Handlers bundles the API's dependencies.
type Handlers struct {
	checker Checker
	svc     Provisioner
	reader  ClientReader
	wiz     *wizard.Wizard
	log     *zap.SugaredLogger
}

// NewHandlers wires the handler set.
func NewHandlers(checker Checker, svc Provisioner, reader ClientReader, wiz *wizard.Wizard) *Handlers {
	return &Handlers{
		checker: checker,
		svc:     svc,
		reader:  reader,
		wiz:     wiz,
		log:     zap.S().Named("http"),
	}
}

// callerKey is the rate-limit identity for the request, as extracted by
// the requestinfo middleware.
func callerKey(r *http.Request) string {
	if info := requestinfo.FromContext(r.Context()); info != nil {
		return info.ClientIP
	}
	return "unknown"
}

/*──────────────────────────── availability ─────────────────────────────────*/

// GET /api/check-subdomain?subdomain=...
func (h *Handlers) checkSubdomain(w http.ResponseWriter, r *http.Request) {
	sub := r.URL.Query().Get("subdomain")
	if sub == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"available": false, "message": "Subdomain parameter is required",
		})
		return
	}

	res, err := h.checker.Check(r.Context(), callerKey(r), sub)
	if err != nil {
		h.log.Errorw("availability check failed", "subdomain", sub, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"available": false, "message": "Error checking subdomain availability",
		})
		return
	}

	status := http.StatusOK
	switch {
	case res.RateLimited:
		status = http.StatusTooManyRequests
	case res.Invalid:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, res)
}

/*──────────────────────────── provisioning ─────────────────────────────────*/

// POST /api/create-site
func (h *Handlers) createSite(w http.ResponseWriter, r *http.Request) {
	var data schema.ClientData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.finishCreate(w, r, data, nil)
}

// finishCreate runs provisioning and encodes the outcome.  draftID is
// non-empty when the submit came through the wizard, whose draft is
// discarded on success.
func (h *Handlers) finishCreate(w http.ResponseWriter, r *http.Request, data schema.ClientData, draft *string) {
	res, errs, err := h.svc.CreateSite(r.Context(), data)
	switch {
	case err != nil && errors.Is(err, client.ErrSubdomainTaken):
		writeJSON(w, http.StatusConflict, map[string]any{
			"success": false, "error": "Subdomain is already taken",
		})
		return
	case err != nil:
		h.log.Errorw("create site failed", "err", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	case len(errs) > 0:
		writeValidation(w, errs)
		return
	}

	if draft != nil {
		if err := h.wiz.Finish(r.Context(), *draft); err != nil {
			h.log.Warnw("draft cleanup failed", "draft", *draft, "err", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"clientId":   res.ClientID,
		"subdomain":  res.Subdomain,
		"websiteUrl": res.WebsiteURL,
		"message":    res.Message,
	})
}

// POST /api/update-deployment
func (h *Handlers) updateDeployment(w http.ResponseWriter, r *http.Request) {
	var p schema.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, errs, err := h.svc.HandleCallback(r.Context(), p)
	switch {
	case err != nil && errors.Is(err, provision.ErrBadSecret):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	case err != nil && errors.Is(err, client.ErrNotFound):
		writeError(w, http.StatusNotFound, "Client not found")
		return
	case err != nil:
		h.log.Errorw("deployment callback failed", "client_id", p.ClientID, "err", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	case len(errs) > 0:
		writeValidation(w, errs)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Deployment status updated",
		"client": map[string]any{
			"id":            rec.ID,
			"status":        rec.Status,
			"deploymentUrl": rec.DeploymentURL,
		},
	})
}

// POST /api/contact-message
func (h *Handlers) contactMessage(w http.ResponseWriter, r *http.Request) {
	var m schema.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs, err := h.svc.RelayContact(r.Context(), m)
	switch {
	case err != nil && errors.Is(err, client.ErrNotFound):
		writeError(w, http.StatusNotFound, "Site not found")
		return
	case err != nil:
		h.log.Errorw("contact relay failed", "subdomain", m.Subdomain, "err", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	case len(errs) > 0:
		writeValidation(w, errs)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

/*──────────────────────────── client reads ─────────────────────────────────*/

type clientDetail struct {
	ID            string   `json:"id"`
	BusinessName  string   `json:"businessName"`
	Subdomain     string   `json:"subdomain"`
	Industry      string   `json:"industry"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Address       *string  `json:"address"`
	AboutUs       string   `json:"aboutUs"`
	Services      []string `json:"services"`
	Status        string   `json:"status"`
	DeploymentURL *string  `json:"deploymentUrl"`
	CreatedAt     string   `json:"createdAt"`
}

// GET /api/client/{clientId}
func (h *Handlers) clientByID(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookupClient(w, r, chi.URLParam(r, "clientId"))
	if !ok {
		return
	}

	services := []string(rec.Services)
	if services == nil {
		services = []string{}
	}
	writeJSON(w, http.StatusOK, clientDetail{
		ID:            rec.ID,
		BusinessName:  rec.BusinessName,
		Subdomain:     rec.Subdomain,
		Industry:      rec.Industry,
		Email:         rec.Email,
		Phone:         rec.Phone,
		Address:       rec.Address,
		AboutUs:       rec.AboutUs,
		Services:      services,
		Status:        rec.Status,
		DeploymentURL: rec.DeploymentURL,
		CreatedAt:     rec.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// GET /api/client-status?clientId=...
func (h *Handlers) clientStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("clientId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Client ID is required")
		return
	}

	rec, ok := h.lookupClient(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        rec.Status,
		"deploymentUrl": rec.DeploymentURL,
		"subdomain":     rec.Subdomain,
	})
}

func (h *Handlers) lookupClient(w http.ResponseWriter, r *http.Request, id string) (*client.Record, bool) {
	rec, err := h.reader.ByID(r.Context(), id)
	if errors.Is(err, client.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Client not found")
		return nil, false
	}
	if err != nil {
		h.log.Errorw("client lookup failed", "client_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return nil, false
	}
	return rec, true
}

/*──────────────────────────── wizard ───────────────────────────────────────*/

// POST /api/wizard
func (h *Handlers) wizardStart(w http.ResponseWriter, r *http.Request) {
	d, err := h.wiz.Start(r.Context())
	if err != nil {
		h.log.Errorw("wizard start failed", "err", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// GET /api/wizard/{draftId}
func (h *Handlers) wizardGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.wiz.Get(r.Context(), chi.URLParam(r, "draftId"))
	if h.draftErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// PUT /api/wizard/{draftId}
func (h *Handlers) wizardUpdate(w http.ResponseWriter, r *http.Request) {
	var data schema.ClientData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	d, err := h.wiz.Update(r.Context(), chi.URLParam(r, "draftId"), callerKey(r), data)
	if h.draftErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// POST /api/wizard/{draftId}/next
func (h *Handlers) wizardNext(w http.ResponseWriter, r *http.Request) {
	d, errs, err := h.wiz.Next(r.Context(), chi.URLParam(r, "draftId"))
	if h.draftErr(w, err) {
		return
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// POST /api/wizard/{draftId}/back
func (h *Handlers) wizardBack(w http.ResponseWriter, r *http.Request) {
	d, err := h.wiz.Back(r.Context(), chi.URLParam(r, "draftId"))
	if h.draftErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// POST /api/wizard/{draftId}/submit
func (h *Handlers) wizardSubmit(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftId")
	data, errs, err := h.wiz.Submit(r.Context(), draftID)
	if h.draftErr(w, err) {
		return
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	h.finishCreate(w, r, data, &draftID)
}

// draftErr maps wizard store errors; true means the response is
// already written.
func (h *Handlers) draftErr(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, wizard.ErrDraftNotFound) {
		writeError(w, http.StatusNotFound, "Draft not found")
		return true
	}
	h.log.Errorw("wizard operation failed", "err", err)
	writeError(w, http.StatusInternalServerError, "An error occurred")
	return true
}
