package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fleetpulse/fleetpulse-be/internal/models"
)

// ScheduleServiceProvider defines the interface for service bookings.
type ScheduleServiceProvider interface {
	Book(req models.ScheduleRequest) (models.ScheduleConfirmation, error)
}

// ScheduleService confirms service appointments. The prototype does not
// persist bookings; it validates the request and echoes a confirmation.
type ScheduleService struct {
	now func() time.Time
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService() *ScheduleService {
	return &ScheduleService{now: time.Now}
}

// Book echoes a confirmation for the requested appointment. The service
// center defaults to the nearest one when unspecified. An optional
// recurrence cron expression is validated and resolved to the next reminder
// time; an invalid expression fails the booking.
func (s *ScheduleService) Book(req models.ScheduleRequest) (models.ScheduleConfirmation, error) {
	center := req.Center
	if center == "" {
		center = "Nearest Center"
	}

	confirmation := models.ScheduleConfirmation{
		Status:  "ok",
		Message: fmt.Sprintf("Service scheduled for %s on %s at %s", req.VehicleNo, req.Date, center),
	}

	if req.Recurrence != "" {
		schedule, err := cron.ParseStandard(req.Recurrence)
		if err != nil {
			return models.ScheduleConfirmation{}, fmt.Errorf("invalid recurrence expression: %w", err)
		}
		next := schedule.Next(s.now())
		confirmation.NextReminder = &next
	}

	return confirmation, nil
}
