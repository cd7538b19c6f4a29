package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set on login.
const CookieName = "fleet_session"

const sessionTTL = 24 * time.Hour

// Claims defines the JWT claims structure for the session cookie.
type Claims struct {
	Role      string `json:"role"`
	Name      string `json:"name,omitempty"`
	VehicleNo string `json:"vehicleNo,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and validates session cookies. The signing secret is
// injected at startup rather than read from the environment here, so tests
// and main control it explicitly.
type Manager struct {
	key    []byte
	secure bool
}

// NewManager creates a Manager signing with the given secret. secure
// controls the cookie Secure flag and should be on in production.
func NewManager(secret string, secure bool) *Manager {
	return &Manager{key: []byte(secret), secure: secure}
}

// Issue creates a signed token carrying the session state.
func (m *Manager) Issue(session Session) (string, error) {
	claims := &Claims{
		Role:      string(session.Role),
		Name:      session.Name,
		VehicleNo: session.VehicleNo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Validate parses a token string back into a session.
func (m *Manager) Validate(tokenStr string) (Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.key, nil
	})
	if err != nil {
		return Session{}, err
	}
	if !token.Valid {
		return Session{}, fmt.Errorf("invalid token")
	}
	return Session{Role: Role(claims.Role), Name: claims.Name, VehicleNo: claims.VehicleNo}, nil
}

// SetCookie writes the session cookie on a login response.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

// ClearCookie expires the session cookie, returning the client to the
// anonymous state.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

// FromRequest extracts the session from the request cookie. A missing,
// expired or tampered cookie yields the anonymous session, never an error.
func (m *Manager) FromRequest(r *http.Request) Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Anonymous()
	}
	session, err := m.Validate(cookie.Value)
	if err != nil {
		return Anonymous()
	}
	return session
}
