package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/fleetpulse/fleetpulse-be/internal/services"
	"github.com/fleetpulse/fleetpulse-be/internal/websocket"
)

// FleetBroadcaster periodically regenerates the mock fleet snapshot and
// pushes it to connected websocket clients.
type FleetBroadcaster struct {
	fleet    services.FleetServiceProvider
	hub      *websocket.Hub
	schedule cron.Schedule
	done     chan bool
}

// NewFleetBroadcaster creates a broadcaster driven by the given cron
// descriptor. Standard five-field expressions and @every descriptors are
// accepted.
func NewFleetBroadcaster(fleet services.FleetServiceProvider, hub *websocket.Hub, spec string) (*FleetBroadcaster, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &FleetBroadcaster{
		fleet:    fleet,
		hub:      hub,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the broadcast loop. It publishes one snapshot immediately,
// then follows the configured schedule.
func (b *FleetBroadcaster) Run() {
	log.Info().Msg("Starting fleet telemetry broadcaster...")

	b.broadcastSnapshot()

	for {
		timer := time.NewTimer(time.Until(b.schedule.Next(time.Now())))
		select {
		case <-b.done:
			timer.Stop()
			log.Info().Msg("Stopping fleet telemetry broadcaster.")
			return
		case <-timer.C:
			b.broadcastSnapshot()
		}
	}
}

// Stop halts the broadcast loop.
func (b *FleetBroadcaster) Stop() {
	b.done <- true
}

// broadcastSnapshot sends the fleet-wide update to everyone and a fresh
// telemetry window to the followers of each vehicle. The per-vehicle
// fan-out runs inside the hub loop so the broadcaster never touches
// subscription state from this goroutine.
func (b *FleetBroadcaster) broadcastSnapshot() {
	b.hub.Broadcast <- websocket.NewFleetUpdateMessage(b.fleet.MonitoredFleet())

	b.hub.BroadcastEach <- func(string) []byte {
		return websocket.NewTelemetryMessage(b.fleet.Telemetry())
	}
}
