package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/fleetpulse/fleetpulse-be/internal/auth"
	"github.com/fleetpulse/fleetpulse-be/internal/models"
	"github.com/fleetpulse/fleetpulse-be/internal/services"
	"github.com/fleetpulse/fleetpulse-be/internal/web"
)

// PortalHandler renders the role-gated portal views over the mock fleet
// data providers.
type PortalHandler struct {
	fleet services.FleetServiceProvider
	views *web.Renderer
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(fleet services.FleetServiceProvider, views *web.Renderer) *PortalHandler {
	return &PortalHandler{fleet: fleet, views: views}
}

// Index redirects the root to the portal chooser.
func (h *PortalHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/portal-selection", http.StatusSeeOther)
}

// PortalSelection renders the portal chooser.
func (h *PortalHandler) PortalSelection(w http.ResponseWriter, r *http.Request) {
	renderView(w, h.views, http.StatusOK, "portal_selection.html", nil)
}

// AdminDashboard renders the fleet overview for admins.
func (h *PortalHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	fleet := h.fleet.Summary()

	recent := fleet
	if len(recent) > 5 {
		recent = recent[:5]
	}

	renderView(w, h.views, http.StatusOK, "admin_dashboard.html", struct {
		Fleet        []models.FleetVehicle
		Metrics      models.FleetMetrics
		RecentAlerts []models.FleetVehicle
	}{fleet, h.fleet.Metrics(fleet), recent})
}

// RCAInsights renders the root-cause analysis view for admins.
func (h *PortalHandler) RCAInsights(w http.ResponseWriter, r *http.Request) {
	fleet := h.fleet.Summary()
	report := h.fleet.RCAReport()

	renderView(w, h.views, http.StatusOK, "rca_insights.html", struct {
		Report    models.RCAReport
		Quick     models.FleetMetrics
		ChartJSON template.JS
	}{report, h.fleet.Metrics(fleet), toJS(report.Chart)})
}

// VehicleMonitoring renders the enriched fleet with a telemetry window.
func (h *PortalHandler) VehicleMonitoring(w http.ResponseWriter, r *http.Request) {
	fleet := h.fleet.MonitoredFleet()

	selected := models.FleetVehicle{VehicleNo: "N/A", Model: "N/A", Location: "N/A"}
	if len(fleet) > 0 {
		selected = fleet[0]
	}

	telemetry := h.fleet.Telemetry()
	renderView(w, h.views, http.StatusOK, "vehicle_monitoring.html", struct {
		Fleet         []models.FleetVehicle
		Selected      models.FleetVehicle
		Telemetry     models.Telemetry
		TelemetryJSON template.JS
	}{fleet, selected, telemetry, toJS(telemetry)})
}

// Scheduling renders the service booking page, available to any
// authenticated role.
func (h *PortalHandler) Scheduling(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	renderView(w, h.views, http.StatusOK, "scheduling.html", struct {
		VehicleNo string
	}{session.VehicleNo})
}

// ChatPage renders the maintenance assistant page.
func (h *PortalHandler) ChatPage(w http.ResponseWriter, r *http.Request) {
	renderView(w, h.views, http.StatusOK, "chat.html", nil)
}

// UserPortal renders the owner's maintenance record, parametrized by the
// identity snapshot held in the session.
func (h *PortalHandler) UserPortal(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	renderView(w, h.views, http.StatusOK, "user_portal.html", struct {
		Name             string
		Maintenance      models.Maintenance
		ExpectedDelivery string
	}{session.Name, h.fleet.Maintenance(session.VehicleNo), time.Now().Format("2006-01-02")})
}

func toJS(v interface{}) template.JS {
	// Chart and telemetry payloads are plain data structs; marshalling
	// cannot fail.
	b, _ := json.Marshal(v)
	return template.JS(b)
}
