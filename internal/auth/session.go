package auth

// Role is the authorization level carried by a session.
type Role string

const (
	RoleNone  Role = ""
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Session is the per-client authentication state. For owner sessions the
// identity fields are a snapshot taken at login; later directory edits do
// not propagate to an active session.
type Session struct {
	Role      Role
	Name      string
	VehicleNo string
}

// Anonymous returns the unauthenticated session.
func Anonymous() Session {
	return Session{}
}

// Authenticated reports whether the session carries any role.
func (s Session) Authenticated() bool {
	return s.Role != RoleNone
}

// Authorize reports whether the session role exactly matches the required
// role. An admin session does not satisfy a user requirement, and vice
// versa.
func (s Session) Authorize(required Role) bool {
	return s.Role == required
}
