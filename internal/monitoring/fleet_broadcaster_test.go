package monitoring

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetpulse/fleetpulse-be/internal/models"
	"github.com/fleetpulse/fleetpulse-be/internal/websocket"
)

// fleetStub returns fixed data so the test can assert on the payload.
type fleetStub struct{}

func (fleetStub) Summary() []models.FleetVehicle { return fleetStub{}.MonitoredFleet() }

func (fleetStub) Metrics(fleet []models.FleetVehicle) models.FleetMetrics {
	return models.FleetMetrics{ActiveVehicles: len(fleet)}
}

func (fleetStub) MonitoredFleet() []models.FleetVehicle {
	return []models.FleetVehicle{{VehicleNo: "MH1-V101", Uptime: 95.5, PredictedRisk: "Low", Condition: "Good"}}
}

func (fleetStub) Telemetry() models.Telemetry {
	return models.Telemetry{Timestamps: []string{"10:00"}, Temperature: []int{80}, Oil: []int{45}, Vibration: []float64{1.5}}
}

func (fleetStub) Maintenance(vehicleNo string) models.Maintenance {
	return models.Maintenance{VehicleNo: vehicleNo}
}

func (fleetStub) RCAReport() models.RCAReport { return models.RCAReport{} }

func TestNewFleetBroadcasterRejectsBadSchedule(t *testing.T) {
	_, err := NewFleetBroadcaster(fleetStub{}, websocket.NewHub(), "whenever")
	assert.Error(t, err)
}

func TestBroadcasterPublishesFleetUpdates(t *testing.T) {
	hub := websocket.NewHub()
	go hub.Run()

	dashboard := websocket.NewClient(hub, nil, "")
	owner := websocket.NewClient(hub, nil, "MH1-V101")
	hub.Register <- dashboard

	// Settle the registration before the broadcaster starts.
	hub.Register <- owner
	hub.Broadcast <- []byte("settle")
	<-dashboard.Send
	<-owner.Send

	// A long interval so only the immediate startup snapshot fires.
	b, err := NewFleetBroadcaster(fleetStub{}, hub, "@every 1h")
	require.NoError(t, err)
	go b.Run()
	defer b.Stop()

	var msg websocket.Message
	select {
	case raw := <-dashboard.Send:
		require.NoError(t, json.Unmarshal(raw, &msg))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for fleet update")
	}
	assert.Equal(t, "fleet_update", msg.Action)

	// The owner gets the fleet update plus a telemetry push.
	actions := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case raw := <-owner.Send:
			var m websocket.Message
			require.NoError(t, json.Unmarshal(raw, &m))
			actions[m.Action] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for owner messages")
		}
	}
	assert.True(t, actions["fleet_update"])
	assert.True(t, actions["telemetry"])
}
