package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/fleetpulse/fleetpulse-be/internal/auth"
)

// SystemHandler reports host resource usage for the admin dashboard.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// SystemStatus is the JSON shape of the host status report.
type SystemStatus struct {
	CPUPercent  float64 `json:"cpu_percent"`
	MemoryUsed  uint64  `json:"memory_used"`
	MemoryTotal uint64  `json:"memory_total"`
	DiskUsed    uint64  `json:"disk_used"`
	DiskTotal   uint64  `json:"disk_total"`
}

// Status returns current host CPU, memory and disk usage. Admin only; as a
// script-facing endpoint it answers 401 JSON instead of redirecting.
func (h *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !auth.SessionFromContext(r.Context()).Authorize(auth.RoleAdmin) {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not logged in"})
		return
	}

	status := SystemStatus{}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	} else if err != nil {
		log.Warn().Err(err).Msg("Failed to read CPU usage")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemoryUsed = vm.Used
		status.MemoryTotal = vm.Total
	} else {
		log.Warn().Err(err).Msg("Failed to read memory usage")
	}

	if du, err := disk.Usage("/"); err == nil {
		status.DiskUsed = du.Used
		status.DiskTotal = du.Total
	} else {
		log.Warn().Err(err).Msg("Failed to read disk usage")
	}

	respondJSON(w, http.StatusOK, status)
}
