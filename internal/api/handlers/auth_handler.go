package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fleetpulse/fleetpulse-be/internal/auth"
	"github.com/fleetpulse/fleetpulse-be/internal/services"
	"github.com/fleetpulse/fleetpulse-be/internal/web"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	gate     *auth.Gate
	sessions *auth.Manager
	users    services.UserDirectoryProvider
	views    *web.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *auth.Gate, sessions *auth.Manager, users services.UserDirectoryProvider, views *web.Renderer) *AuthHandler {
	return &AuthHandler{gate: gate, sessions: sessions, users: users, views: views}
}

type loginView struct {
	Error string
	Info  string
}

// ShowAdminLogin renders the admin login form.
func (h *AuthHandler) ShowAdminLogin(w http.ResponseWriter, r *http.Request) {
	renderView(w, h.views, http.StatusOK, "admin_login.html", loginView{})
}

// AdminLogin establishes an admin session for the configured credential
// pair. Failure re-renders the form with an error, never a hard status.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	session, err := h.gate.AuthenticateAdmin(username, password)
	if err != nil {
		log.Warn().Str("username", username).Msg("Failed admin login attempt")
		renderView(w, h.views, http.StatusOK, "admin_login.html", loginView{Error: "Invalid admin credentials"})
		return
	}

	h.issueAndRedirect(w, r, session, "/admin")
}

// ShowUserLogin renders the owner login and registration forms.
func (h *AuthHandler) ShowUserLogin(w http.ResponseWriter, r *http.Request) {
	renderView(w, h.views, http.StatusOK, "user_login.html", loginView{})
}

// UserLogin establishes an owner session when the name and vehicle number
// match a registered record.
func (h *AuthHandler) UserLogin(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	vehicleNo := r.FormValue("vehicle_no")

	session, err := h.gate.AuthenticateUser(name, vehicleNo)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			renderView(w, h.views, http.StatusOK, "user_login.html", loginView{Error: "User not found. Please register or check details."})
			return
		}
		renderStorageFailure(w, h.views, err)
		return
	}

	h.issueAndRedirect(w, r, session, "/user")
}

// Register writes a new owner record into the directory. Missing fields
// redirect back to the login page; a duplicate vehicle number silently
// replaces the earlier record.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("reg_name")
	vehicleNo := r.FormValue("reg_vehicle")

	record, err := h.users.Register(name, vehicleNo)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			http.Redirect(w, r, "/user/login", http.StatusSeeOther)
			return
		}
		renderStorageFailure(w, h.views, err)
		return
	}

	log.Info().Str("vehicle_no", record.VehicleNo).Msg("Registered vehicle owner")
	renderView(w, h.views, http.StatusOK, "user_login.html", loginView{Info: "Registration successful. Please login as User."})
}

// Logout clears the session cookie and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/user/login", http.StatusSeeOther)
}

func (h *AuthHandler) issueAndRedirect(w http.ResponseWriter, r *http.Request, session auth.Session, target string) {
	token, err := h.sessions.Issue(session)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign session token")
		http.Error(w, "Failed to establish session", http.StatusInternalServerError)
		return
	}
	h.sessions.SetCookie(w, token)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
