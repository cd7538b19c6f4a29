package models

import "time"

// UserRecord represents a registered vehicle owner. The directory file is
// keyed by vehicle number and the key is duplicated inside the record,
// matching the on-disk format.
type UserRecord struct {
	Name         string    `json:"name"`
	VehicleNo    string    `json:"vehicle_no"`
	RegisteredAt time.Time `json:"registered_at"`
}
