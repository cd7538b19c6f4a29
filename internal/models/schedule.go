package models

import "time"

// ScheduleRequest is a service-booking request from the scheduling page.
type ScheduleRequest struct {
	VehicleNo string `json:"vehicle_no"`
	Date      string `json:"date"`
	Center    string `json:"center"`
	// Recurrence is an optional cron expression for a recurring service
	// reminder ("0 9 1 * *", "@every 720h", ...).
	Recurrence string `json:"recurrence,omitempty"`
}

// ScheduleConfirmation is the echo response for a booking.
type ScheduleConfirmation struct {
	Status       string     `json:"status"`
	Message      string     `json:"message"`
	NextReminder *time.Time `json:"next_reminder,omitempty"`
}
