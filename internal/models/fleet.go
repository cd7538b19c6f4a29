package models

// FleetVehicle is one row of the mock fleet summary.
type FleetVehicle struct {
	VehicleNo     string  `json:"vehicle_no"`
	Uptime        float64 `json:"uptime"`
	PredictedRisk string  `json:"predicted_risk"`
	LastAlert     string  `json:"last_alert"`
	Condition     string  `json:"condition"`

	// Monitoring-view enrichment; empty on the dashboard summary. A zero
	// issue count is still a real reading, so no omitempty there.
	VehicleType  string `json:"vehicle_type,omitempty"`
	Location     string `json:"location,omitempty"`
	Model        string `json:"model,omitempty"`
	ActiveIssues int    `json:"active_issues"`
}

// FleetMetrics holds the aggregate numbers shown on the admin dashboard.
type FleetMetrics struct {
	ActiveVehicles  int     `json:"active_vehicles"`
	PredictedIssues int     `json:"predicted_issues"`
	AvgUptime       float64 `json:"avg_uptime"`
}

// Telemetry is a short window of mock sensor readings for one vehicle.
type Telemetry struct {
	Timestamps  []string  `json:"timestamps"`
	Temperature []int     `json:"temperature"`
	Oil         []int     `json:"oil"`
	Vibration   []float64 `json:"vibration"`
}

// Maintenance is the owner-facing service record shown on the user portal.
type Maintenance struct {
	VehicleNo             string `json:"vehicle_no"`
	LastService           string `json:"last_service"`
	NextExpectedServiceKM int    `json:"next_expected_service_km"`
	HealthScore           int    `json:"health_score"`
}
