package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/fleetpulse/fleetpulse-be/internal/services"
)

var (
	// ErrInvalidCredentials is returned for any admin login attempt that
	// does not match the configured pair exactly.
	ErrInvalidCredentials = errors.New("invalid admin credentials")

	// ErrNotFound is returned when a user login names an unregistered
	// vehicle or a name that does not match the registered record.
	ErrNotFound = errors.New("user not found")
)

// AdminCredentials is the single static admin login pair, supplied at
// startup. The password is held only as a bcrypt hash.
type AdminCredentials struct {
	Username     string
	passwordHash []byte
}

// NewAdminCredentials hashes the configured password.
func NewAdminCredentials(username, password string) (AdminCredentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AdminCredentials{}, err
	}
	return AdminCredentials{Username: username, passwordHash: hash}, nil
}

// Gate decides who may hold which session role. Failed authentication is a
// normal retry path for the caller, never a fatal condition.
type Gate struct {
	admin AdminCredentials
	users services.UserDirectoryProvider
}

// NewGate creates a Gate over the given credentials and user directory.
func NewGate(admin AdminCredentials, users services.UserDirectoryProvider) *Gate {
	return &Gate{admin: admin, users: users}
}

// AuthenticateAdmin grants an admin session for the exact configured pair.
// A correct username with a wrong password fails the same way as any other
// mismatch.
func (g *Gate) AuthenticateAdmin(username, password string) (Session, error) {
	if username != g.admin.Username {
		return Anonymous(), ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(g.admin.passwordHash, []byte(password)) != nil {
		return Anonymous(), ErrInvalidCredentials
	}
	return Session{Role: RoleAdmin}, nil
}

// AuthenticateUser grants a user session when the vehicle is registered and
// the supplied name matches the record exactly (case-sensitive). The
// session keeps a snapshot of the identity; later directory edits do not
// affect it.
func (g *Gate) AuthenticateUser(name, vehicleNo string) (Session, error) {
	record, ok, err := g.users.FindByVehicle(vehicleNo)
	if err != nil {
		return Anonymous(), err
	}
	if !ok || record.Name != name {
		return Anonymous(), ErrNotFound
	}
	return Session{Role: RoleUser, Name: record.Name, VehicleNo: record.VehicleNo}, nil
}
