package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	ws "github.com/fleetpulse/fleetpulse-be/internal/websocket"
)

// WebSocketHandler upgrades portal connections onto the fleet update hub.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request. A vehicle_no query
// parameter subscribes the client to that vehicle's telemetry in addition
// to the fleet-wide updates.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, r.URL.Query().Get("vehicle_no"))
	h.hub.Register <- client

	go client.WritePump()
	go func() {
		client.ReadPump(h.handleIncomingWSMessage)
		h.hub.Unregister <- client
	}()
}

// handleIncomingWSMessage processes messages received from a websocket
// client. The portal clients are consumers; anything unexpected gets an
// error notice back.
func (h *WebSocketHandler) handleIncomingWSMessage(client *ws.Client, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Error().Err(err).Bytes("message", message).Msg("Error decoding websocket message")
		return
	}

	switch msg.Action {
	case "ping":
		// Keep-alive from older clients; the protocol-level ping handles
		// liveness, so nothing to do.
	default:
		log.Warn().Str("action", msg.Action).Msg("Unknown websocket action received")
		client.Send <- ws.NewErrorMessage("Unknown action: " + msg.Action)
	}
}
