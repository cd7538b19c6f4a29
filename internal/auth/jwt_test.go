package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueValidateRoundtrip(t *testing.T) {
	m := NewManager("test-secret", false)

	want := Session{Role: RoleUser, Name: "Test User", VehicleNo: "TEST-123"}
	token, err := m.Issue(want)
	require.NoError(t, err)

	got, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	token, err := NewManager("secret-a", false).Issue(Session{Role: RoleAdmin})
	require.NoError(t, err)

	_, err = NewManager("secret-b", false).Validate(token)
	assert.Error(t, err)
}

func TestFromRequestWithoutCookieIsAnonymous(t *testing.T) {
	m := NewManager("test-secret", false)
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)

	assert.Equal(t, Anonymous(), m.FromRequest(r))
}

func TestFromRequestWithTamperedCookieIsAnonymous(t *testing.T) {
	m := NewManager("test-secret", false)
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})

	assert.Equal(t, Anonymous(), m.FromRequest(r))
}

func TestFromRequestRoundtripViaCookie(t *testing.T) {
	m := NewManager("test-secret", false)

	token, err := m.Issue(Session{Role: RoleAdmin})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.SetCookie(w, token)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(cookies[0])
	assert.Equal(t, Session{Role: RoleAdmin}, m.FromRequest(r))
}

func TestClearCookieExpiresSession(t *testing.T) {
	m := NewManager("test-secret", false)

	w := httptest.NewRecorder()
	m.ClearCookie(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
