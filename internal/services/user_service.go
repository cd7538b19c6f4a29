package services

import (
	"errors"
	"sync"
	"time"

	"github.com/fleetpulse/fleetpulse-be/internal/models"
	"github.com/fleetpulse/fleetpulse-be/internal/storage"
)

// ErrValidation is returned when a registration is missing required fields.
var ErrValidation = errors.New("name and vehicle number are required")

// UserDirectoryProvider defines the interface for the user directory.
type UserDirectoryProvider interface {
	Register(name, vehicleNo string) (models.UserRecord, error)
	FindByVehicle(vehicleNo string) (models.UserRecord, bool, error)
	All() (map[string]models.UserRecord, error)
}

// UserDirectory provides owner registration and lookup on top of the JSON
// file store. Nothing is cached between calls: every read loads the file in
// full and every mutation rewrites it in full.
type UserDirectory struct {
	store *storage.Store
	now   func() time.Time

	// mu serializes the load-modify-save sequence of Register within this
	// process. Callers that Load and Save the store directly are not
	// covered; a stale Save still clobbers a newer record.
	mu sync.Mutex
}

// NewUserDirectory creates a new UserDirectory.
func NewUserDirectory(store *storage.Store) *UserDirectory {
	return &UserDirectory{store: store, now: time.Now}
}

// Register creates or replaces the record for a vehicle number. A second
// registration under the same number silently overwrites the first; callers
// relying on uniqueness get exactly one record per vehicle either way.
func (d *UserDirectory) Register(name, vehicleNo string) (models.UserRecord, error) {
	if name == "" || vehicleNo == "" {
		return models.UserRecord{}, ErrValidation
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.store.Load()
	if err != nil {
		return models.UserRecord{}, err
	}

	record := models.UserRecord{
		Name:         name,
		VehicleNo:    vehicleNo,
		RegisteredAt: d.now(),
	}
	users[vehicleNo] = record

	if err := d.store.Save(users); err != nil {
		return models.UserRecord{}, err
	}
	return record, nil
}

// FindByVehicle looks up a single record, reading the store in full.
func (d *UserDirectory) FindByVehicle(vehicleNo string) (models.UserRecord, bool, error) {
	users, err := d.store.Load()
	if err != nil {
		return models.UserRecord{}, false, err
	}
	record, ok := users[vehicleNo]
	return record, ok, nil
}

// All returns the full directory.
func (d *UserDirectory) All() (map[string]models.UserRecord, error) {
	return d.store.Load()
}
