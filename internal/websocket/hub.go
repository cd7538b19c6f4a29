package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of connected portal clients and fans out fleet
// updates to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound messages for all connected clients.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Per-vehicle fan-out requests. The hub invokes the builder once per
	// followed vehicle on its own goroutine and delivers the payload to
	// that vehicle's followers, so subscription state never leaves the
	// Run loop.
	BroadcastEach chan func(vehicleNo string) []byte

	// A map of vehicle numbers to the set of clients following them.
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		BroadcastEach: make(chan func(vehicleNo string) []byte),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
			// Clients that named a vehicle on connect follow its telemetry.
			if client.VehicleNo != "" {
				h.addSubscription(client, client.VehicleNo)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		case build := <-h.BroadcastEach:
			for vehicleNo, subs := range h.subscriptions {
				message := build(vehicleNo)
				for client := range subs {
					select {
					case client.Send <- message:
					default:
						close(client.Send)
						delete(h.clients, client)
						delete(subs, client)
					}
				}
				if len(subs) == 0 {
					delete(h.subscriptions, vehicleNo)
				}
			}
		}
	}
}

func (h *Hub) addSubscription(client *Client, vehicleNo string) {
	if h.subscriptions[vehicleNo] == nil {
		h.subscriptions[vehicleNo] = make(map[*Client]bool)
	}
	h.subscriptions[vehicleNo][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for vehicleNo, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, vehicleNo)
			}
		}
	}
}
