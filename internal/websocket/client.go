package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is a middleman between a websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	// VehicleNo is the vehicle whose telemetry this client follows; empty
	// for dashboard clients that only receive fleet-wide updates.
	VehicleNo string
}

// NewClient creates a client for a freshly upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, vehicleNo string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		Send:      make(chan []byte, 64),
		VehicleNo: vehicleNo,
	}
}

// ReadPump pumps messages from the websocket connection to the handler. It
// returns when the connection drops.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Msg("Unexpected websocket close")
			}
			return
		}
		if handler != nil {
			handler(c, message)
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection and
// keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
