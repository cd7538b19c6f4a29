package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewFleetUpdateMessage encodes a fleet snapshot broadcast.
func NewFleetUpdateMessage(payload interface{}) []byte {
	return encode(Message{Action: "fleet_update", Payload: payload})
}

// NewTelemetryMessage encodes a per-vehicle telemetry push.
func NewTelemetryMessage(payload interface{}) []byte {
	return encode(Message{Action: "telemetry", Payload: payload})
}

// NewErrorMessage encodes an error notice for a single client.
func NewErrorMessage(text string) []byte {
	return encode(Message{Action: "error", Payload: text})
}

func encode(m Message) []byte {
	// Payloads are plain data structs; marshalling them cannot fail.
	b, _ := json.Marshal(m)
	return b
}
