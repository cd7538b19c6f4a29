package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetpulse/fleetpulse-be/internal/auth"
	"github.com/fleetpulse/fleetpulse-be/internal/services"
	"github.com/fleetpulse/fleetpulse-be/internal/storage"
	"github.com/fleetpulse/fleetpulse-be/internal/web"
	"github.com/fleetpulse/fleetpulse-be/internal/websocket"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store := storage.NewStore(filepath.Join(t.TempDir(), "users.json"))
	users := services.NewUserDirectory(store)
	fleet := services.NewFleetService(rand.New(rand.NewSource(1)))

	creds, err := auth.NewAdminCredentials("admin", "admin123")
	require.NoError(t, err)
	gate := auth.NewGate(creds, users)
	sessions := auth.NewManager("test-secret", false)

	views, err := web.NewRenderer()
	require.NoError(t, err)

	hub := websocket.NewHub()
	go hub.Run()

	return NewRouter(sessions, gate, views, hub, users, fleet, services.NewChatService(), services.NewScheduleService())
}

func get(router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func postForm(router http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func postJSON(router http.Handler, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestIndexRedirectsToPortalSelection(t *testing.T) {
	router := newTestRouter(t)

	w := get(router, "/")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/portal-selection", w.Header().Get("Location"))
}

func TestAnonymousIsRedirectedFromProtectedViews(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct{ path, login string }{
		{"/admin", "/admin/login"},
		{"/rca", "/admin/login"},
		{"/vehicles", "/admin/login"},
		{"/scheduling", "/user/login"},
		{"/chat", "/user/login"},
		{"/user", "/user/login"},
	}
	for _, tc := range tests {
		w := get(router, tc.path)
		assert.Equal(t, http.StatusSeeOther, w.Code, "path %s", tc.path)
		assert.Equal(t, tc.login, w.Header().Get("Location"), "path %s", tc.path)
	}
}

func TestAdminLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	// Wrong password re-renders the form, no session established.
	w := postForm(router, "/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid admin credentials")
	assert.Empty(t, w.Result().Cookies())

	// The exact configured pair logs in.
	w = postForm(router, "/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
	cookie := sessionCookie(t, w)

	w = get(router, "/admin", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fleet Overview")

	w = get(router, "/rca", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	w = get(router, "/vehicles", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// Role gating is exact: an admin session does not open the user portal.
	w = get(router, "/user", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/user/login", w.Header().Get("Location"))
}

func TestRegistrationAndUserLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	// Missing fields bounce back to the login page without touching the
	// directory.
	w := postForm(router, "/register", url.Values{"reg_name": {"Test User"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/user/login", w.Header().Get("Location"))

	w = postForm(router, "/register", url.Values{"reg_name": {"Test User"}, "reg_vehicle": {"TEST-123"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Registration successful")

	// A wrong name for the registered vehicle is a retry, not a session.
	w = postForm(router, "/user/login", url.Values{"name": {"Wrong"}, "vehicle_no": {"TEST-123"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")

	w = postForm(router, "/user/login", url.Values{"name": {"Test User"}, "vehicle_no": {"TEST-123"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/user", w.Header().Get("Location"))
	cookie := sessionCookie(t, w)

	w = get(router, "/user", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TEST-123")
	assert.Contains(t, w.Body.String(), "Test User")

	// Any authenticated role reaches scheduling and chat.
	w = get(router, "/scheduling", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	w = get(router, "/chat", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// But not the admin views.
	w = get(router, "/admin", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestReRegistrationIsLastWriteWins(t *testing.T) {
	router := newTestRouter(t)

	postForm(router, "/register", url.Values{"reg_name": {"Old Name"}, "reg_vehicle": {"TEST-123"}})
	postForm(router, "/register", url.Values{"reg_name": {"New Name"}, "reg_vehicle": {"TEST-123"}})

	w := postForm(router, "/user/login", url.Values{"name": {"Old Name"}, "vehicle_no": {"TEST-123"}})
	assert.Contains(t, w.Body.String(), "User not found")

	w = postForm(router, "/user/login", url.Values{"name": {"New Name"}, "vehicle_no": {"TEST-123"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestLogoutResetsToAnonymous(t *testing.T) {
	router := newTestRouter(t)

	w := postForm(router, "/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	cookie := sessionCookie(t, w)

	w = get(router, "/logout", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// A protected capability invoked right after logout is denied.
	w = get(router, "/admin", cleared)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestChatAPI(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(router, "/api/chat", `{"message":"loud noise from the wheels"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["reply"], "suspension or engine mount")

	w = postJSON(router, "/api/chat", `{}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Please describe the issue.", resp["reply"])
}

func TestScheduleAPI(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(router, "/api/schedule", `{"vehicle_no":"KA-01","date":"2026-09-01"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp["message"], "Service scheduled for KA-01 on 2026-09-01 at Nearest Center")

	w = postJSON(router, "/api/schedule", `{"vehicle_no":"KA-01","date":"2026-09-01","recurrence":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateTokenAPI(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(router, "/api/generate_token", `{"query":"brake pads"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var errResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "Not logged in", errResp["error"])

	postForm(router, "/register", url.Values{"reg_name": {"Test User"}, "reg_vehicle": {"TEST-123"}})
	login := postForm(router, "/user/login", url.Values{"name": {"Test User"}, "vehicle_no": {"TEST-123"}})
	cookie := sessionCookie(t, login)

	w = postJSON(router, "/api/generate_token", `{"query":"brake pads"}`, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["token"], 8)
	assert.Equal(t, "Test User", resp["name"])
	assert.Equal(t, "TEST-123", resp["vehicleNo"])
	assert.Equal(t, "brake pads", resp["query"])
}

func TestSystemStatusRequiresAdmin(t *testing.T) {
	router := newTestRouter(t)

	w := get(router, "/api/v1/system")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login := postForm(router, "/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	cookie := sessionCookie(t, login)

	w = get(router, "/api/v1/system", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Contains(t, status, "cpu_percent")
}
