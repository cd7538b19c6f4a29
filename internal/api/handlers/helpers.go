package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fleetpulse/fleetpulse-be/internal/web"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// renderView writes a template with the given status, logging render
// failures. Template data is produced by the handlers themselves, so a
// failure here is a programming error, not bad user input.
func renderView(w http.ResponseWriter, views *web.Renderer, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := views.Render(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render view")
	}
}

// renderStorageFailure shows the generic failure page for backing-store
// errors. The directory layer does not retry; the web layer just reports.
func renderStorageFailure(w http.ResponseWriter, views *web.Renderer, err error) {
	log.Error().Err(err).Msg("User directory unavailable")
	renderView(w, views, http.StatusInternalServerError, "error.html", map[string]string{
		"Message": "The user directory is temporarily unavailable. Please try again later.",
	})
}
