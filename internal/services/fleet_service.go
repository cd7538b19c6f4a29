package services

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/fleetpulse/fleetpulse-be/internal/models"
)

// FleetServiceProvider defines the interface for mock fleet data. The core
// access flow never depends on these values for its own correctness; the
// provider exists so the views and the broadcaster have something to show.
type FleetServiceProvider interface {
	Summary() []models.FleetVehicle
	Metrics(fleet []models.FleetVehicle) models.FleetMetrics
	MonitoredFleet() []models.FleetVehicle
	Telemetry() models.Telemetry
	Maintenance(vehicleNo string) models.Maintenance
	RCAReport() models.RCAReport
}

const fleetSize = 10

var (
	riskLevels   = []string{"Low", "Medium", "High"}
	conditions   = []string{"Good", "Needs Inspection", "Critical"}
	vehicleTypes = []string{"SUV Premium", "Sedan Executive", "Hatchback Basic", "Truck"}
	locations    = []string{"Mumbai", "Delhi", "Bangalore", "Chennai"}
	vehicleModel = []string{"SUV Premium", "Sedan LX", "Hatchback X"}
)

// FleetService generates randomized fleet, telemetry and maintenance data.
type FleetService struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewFleetService creates a FleetService drawing from the given source.
// Tests pass a seeded source for reproducible output.
func NewFleetService(rng *rand.Rand) *FleetService {
	return &FleetService{rng: rng, now: time.Now}
}

// Summary produces the ten-vehicle fleet overview for the admin dashboard.
func (s *FleetService) Summary() []models.FleetVehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	fleet := make([]models.FleetVehicle, 0, fleetSize)
	for i := 1; i <= fleetSize; i++ {
		fleet = append(fleet, models.FleetVehicle{
			VehicleNo:     fmt.Sprintf("MH%d-V%d", s.rng.Intn(99)+1, 100+i),
			Uptime:        round2(85 + s.rng.Float64()*14),
			PredictedRisk: riskLevels[s.rng.Intn(len(riskLevels))],
			LastAlert:     s.now().Format("2006-01-02 15:04:05"),
			Condition:     conditions[s.rng.Intn(len(conditions))],
		})
	}
	return fleet
}

// Metrics aggregates a fleet summary into the dashboard headline numbers.
// Predicted issues counts vehicles at Medium or High risk.
func (s *FleetService) Metrics(fleet []models.FleetVehicle) models.FleetMetrics {
	metrics := models.FleetMetrics{ActiveVehicles: len(fleet)}
	if len(fleet) == 0 {
		return metrics
	}

	var total float64
	for _, v := range fleet {
		total += v.Uptime
		if v.PredictedRisk == "Medium" || v.PredictedRisk == "High" {
			metrics.PredictedIssues++
		}
	}
	metrics.AvgUptime = round2(total / float64(len(fleet)))
	return metrics
}

// MonitoredFleet returns the summary enriched with the monitoring-view
// fields (type, location, model, open issue count).
func (s *FleetService) MonitoredFleet() []models.FleetVehicle {
	fleet := s.Summary()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range fleet {
		fleet[i].VehicleType = vehicleTypes[s.rng.Intn(len(vehicleTypes))]
		fleet[i].Location = locations[s.rng.Intn(len(locations))]
		fleet[i].Model = vehicleModel[s.rng.Intn(len(vehicleModel))]
		fleet[i].ActiveIssues = s.rng.Intn(4)
	}
	return fleet
}

// Telemetry returns an eight-sample window of sensor readings.
func (s *FleetService) Telemetry() models.Telemetry {
	s.mu.Lock()
	defer s.mu.Unlock()

	const samples = 8
	t := models.Telemetry{
		Timestamps:  make([]string, samples),
		Temperature: make([]int, samples),
		Oil:         make([]int, samples),
		Vibration:   make([]float64, samples),
	}
	stamp := s.now().Format("15:04")
	for i := 0; i < samples; i++ {
		t.Timestamps[i] = stamp
		t.Temperature[i] = 70 + s.rng.Intn(26)
		t.Oil[i] = 30 + s.rng.Intn(31)
		t.Vibration[i] = round1(1.0 + s.rng.Float64()*2.5)
	}
	return t
}

// Maintenance returns the owner-facing service record for a vehicle.
func (s *FleetService) Maintenance(vehicleNo string) models.Maintenance {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.Maintenance{
		VehicleNo:             vehicleNo,
		LastService:           s.now().Format("2006-01-02"),
		NextExpectedServiceKM: 5000,
		HealthScore:           60 + s.rng.Intn(39),
	}
}

// RCAReport returns the canned root-cause analysis content for the insights
// view.
func (s *FleetService) RCAReport() models.RCAReport {
	return models.RCAReport{
		Cards: []models.RCACard{
			{Title: "Brake System", Percent: 15, Total: 100, Trend: "15.2%", BadgeClass: "danger", Common: []string{"Brake pad wear", "Rotor warping", "Hydraulic leak"}},
			{Title: "Engine Control Unit", Percent: 8, Total: 100, Trend: "8.7%", BadgeClass: "warning", Common: []string{"Software glitches", "Sensor drift"}},
			{Title: "Battery System", Percent: 12, Total: 100, Trend: "12.4%", BadgeClass: "danger", Common: []string{"Capacity degradation", "Charging failure"}},
			{Title: "Cooling System", Percent: 5, Total: 100, Trend: "5.1%", BadgeClass: "success", Common: []string{"Thermostat", "Radiator clog"}},
		},
		CAPAReports: []models.CAPAReport{
			{Title: "Brake System Enhancement", Team: "Manufacturing Team A", Status: "in-progress", StatusClass: "warning", Priority: "high", Due: "2024-02-15"},
			{Title: "ECU Firmware Update", Team: "Software Team B", Status: "open", StatusClass: "primary", Priority: "medium", Due: "2024-03-01"},
			{Title: "Battery Thermal Management", Team: "HV Team C", Status: "resolved", StatusClass: "success", Priority: "high", Due: "2024-01-10"},
		},
		Chart: models.TrendChart{
			Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
			Datasets: []models.ChartDataset{
				{Label: "Brake System", Data: []int{12, 14, 16, 15, 18, 17}, BorderColor: "#e74a3b", BackgroundColor: "rgba(231,74,59,0.08)"},
				{Label: "Engine ECU", Data: []int{8, 7, 6, 5, 4, 3}, BorderColor: "#4e73df", BackgroundColor: "rgba(78,115,223,0.08)"},
				{Label: "Battery System", Data: []int{10, 11, 12, 11, 10, 9}, BorderColor: "#f6c23e", BackgroundColor: "rgba(246,194,62,0.08)"},
			},
		},
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
