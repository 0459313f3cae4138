// internal/server/httperr.go
//
// JSON response helpers shared by every handler.  The API speaks three
// envelope shapes: {"error": ...} for simple failures, {"success":
// false, "error": "Validation failed", "details": [...]} for schema
// failures, and plain payloads on success.
package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/wowsites/platform/internal/schema"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnw("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeValidation reports schema failures with per-field details, in
// validation order.
func writeValidation(w http.ResponseWriter, errs schema.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"error":   "Validation failed",
		"details": errs,
	})
}
