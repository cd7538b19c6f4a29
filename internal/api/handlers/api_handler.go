package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fleetpulse/fleetpulse-be/internal/auth"
	"github.com/fleetpulse/fleetpulse-be/internal/models"
	"github.com/fleetpulse/fleetpulse-be/internal/services"
)

// APIHandler serves the JSON endpoints used by the portal pages.
type APIHandler struct {
	chat     services.ChatServiceProvider
	schedule services.ScheduleServiceProvider
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(chat services.ChatServiceProvider, schedule services.ScheduleServiceProvider) *APIHandler {
	return &APIHandler{chat: chat, schedule: schedule}
}

// Chat answers a free-text maintenance question. A missing or unreadable
// body is treated as an empty message, which yields the describe-the-issue
// prompt.
func (h *APIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		payload.Message = ""
	}

	respondJSON(w, http.StatusOK, map[string]string{"reply": h.chat.Reply(payload.Message)})
}

// Schedule echoes a booking confirmation.
func (h *APIHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var payload models.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "Invalid request body"})
		return
	}

	confirmation, err := h.schedule.Book(payload)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, confirmation)
}

// GenerateToken issues a short service-request token tied to the session
// identity. Anonymous callers get a JSON 401 rather than a redirect; this
// endpoint is called from page scripts, not navigated to.
func (h *APIHandler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if !session.Authenticated() {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not logged in"})
		return
	}

	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		payload.Query = ""
	}

	token := strings.ToUpper(uuid.New().String()[:8])

	name := session.Name
	if name == "" {
		name = "Guest"
	}
	vehicleNo := session.VehicleNo
	if vehicleNo == "" {
		vehicleNo = "Unknown"
	}

	log.Info().Str("token", token).Str("vehicle_no", vehicleNo).Msg("Issued service request token")
	respondJSON(w, http.StatusOK, map[string]string{
		"token":       token,
		"name":        name,
		"vehicleNo":   vehicleNo,
		"vehicleType": "Sedan",
		"query":       payload.Query,
	})
}
