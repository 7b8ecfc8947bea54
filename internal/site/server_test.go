package site

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/engineeringstudentstrieste/est-services/internal/apiclient"
	"github.com/engineeringstudentstrieste/est-services/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type siteHarness struct {
	site   *Server
	server *httptest.Server
	client *http.Client
}

func newHarness(t *testing.T, api http.HandlerFunc) *siteHarness {
	t.Helper()

	apiServer := httptest.NewServer(api)
	t.Cleanup(apiServer.Close)

	srv, err := NewServer(loadContent(t), apiclient.NewClient(apiServer.URL), []byte("0123456789abcdef0123456789abcdef"), "est-session")
	require.NoError(t, err)

	server := httptest.NewServer(srv.Handler())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &siteHarness{site: srv, server: server, client: &http.Client{Jar: jar}}
}

func (h *siteHarness) post(t *testing.T, path string, form url.Values) string {
	t.Helper()
	res, err := h.client.PostForm(h.server.URL+path, form)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func (h *siteHarness) get(t *testing.T, path string) string {
	t.Helper()
	res, err := h.client.Get(h.server.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

// storedValues decodes the visitor's session cookie.
func (h *siteHarness) storedValues(t *testing.T) map[interface{}]interface{} {
	t.Helper()
	u, err := url.Parse(h.server.URL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, h.server.URL+"/", nil)
	for _, c := range h.client.Jar.Cookies(u) {
		req.AddCookie(c)
	}
	sess, err := h.site.Store.Get(req, h.site.CookieName)
	require.NoError(t, err)
	return sess.Values
}

func unavailableAPI(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "service unavailable", http.StatusServiceUnavailable)
}

func TestLogin_EmptyFieldsShowsValidationMessage(t *testing.T) {
	h := newHarness(t, unavailableAPI)

	body := h.post(t, "/login", url.Values{"email": {"ada@uni.ts.it"}, "password": {""}})

	assert.Contains(t, body, MissingCredentialsMessage)
	assert.Contains(t, body, `action="/login"`)

	// The flash is shown once
	body = h.get(t, "/")
	assert.NotContains(t, body, MissingCredentialsMessage)
}

func TestLogin_FailedRemoteLoginStillLogsIn(t *testing.T) {
	h := newHarness(t, unavailableAPI)

	body := h.post(t, "/login", url.Values{"email": {"mario.rossi@units.it"}, "password": {"anything"}})

	assert.Contains(t, body, "Ciao, mario.rossi")
	assert.Contains(t, body, "non verificato")

	values := h.storedValues(t)
	assert.Contains(t, values[session.MemberKey], "mario.rossi@units.it")
	assert.NotContains(t, values, session.TokenKey)
}

func TestLogin_RemoteSuccessAndLogout(t *testing.T) {
	var loggedOut atomic.Bool
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"tok-123","member":{"email":"ada@uni.ts.it","name":"Ada Lovelace","verified":true}}`))
		case "/api/auth/me":
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"member":{"email":"ada@uni.ts.it","name":"Ada Lovelace","verified":true}}`))
		case "/api/auth/logout":
			loggedOut.Store(true)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})

	body := h.post(t, "/login", url.Values{"email": {"ada@uni.ts.it"}, "password": {"password123"}})
	assert.Contains(t, body, "Ciao, Ada Lovelace")
	assert.NotContains(t, body, "non verificato")
	assert.Equal(t, "tok-123", h.storedValues(t)[session.TokenKey])

	body = h.post(t, "/logout", nil)
	assert.Contains(t, body, `action="/login"`)
	assert.True(t, loggedOut.Load())

	values := h.storedValues(t)
	assert.NotContains(t, values, session.TokenKey)
	assert.NotContains(t, values, session.MemberKey)
}

func TestContact(t *testing.T) {
	var received atomic.Value
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contact", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		received.Store(string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"8c5a1f53-7e4b-4a57-9a55-3fbc0c5a9d11"}`))
	})

	body := h.post(t, "/contact", url.Values{"name": {"Ada"}, "email": {"ada@uni.ts.it"}, "message": {" Vorrei partecipare "}})
	assert.Contains(t, body, ContactSentMessage)
	assert.JSONEq(t, `{"name":"Ada","email":"ada@uni.ts.it","message":"Vorrei partecipare"}`, received.Load().(string))
}

func TestContact_Failures(t *testing.T) {
	h := newHarness(t, unavailableAPI)

	body := h.post(t, "/contact", url.Values{"name": {"Ada"}, "email": {"ada@uni.ts.it"}, "message": {"Ciao"}})
	assert.Contains(t, body, "Invio non riuscito")

	body = h.post(t, "/contact", url.Values{"name": {"Ada"}})
	assert.Contains(t, body, ContactInvalidMessage)
}

func TestContact_RejectedByAPIShowsInvalidMessage(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":0,"error_details":"email must be a valid email address"}`))
	})

	body := h.post(t, "/contact", url.Values{"name": {"Ada"}, "email": {"not-an-email"}, "message": {"Ciao"}})
	assert.Contains(t, body, ContactInvalidMessage)
	assert.NotContains(t, body, ContactFailedMessage)
}

func TestStaticAndHealth(t *testing.T) {
	h := newHarness(t, unavailableAPI)

	assert.Equal(t, "ok", h.get(t, "/healthz"))
	assert.Contains(t, h.get(t, "/static/logo.svg"), "<svg")
}

func TestCookieStorage_IgnoresForeignValues(t *testing.T) {
	srv, err := NewServer(nil, nil, []byte("secret"), "est-session")
	require.NoError(t, err)

	sess, err := srv.Store.New(httptest.NewRequest(http.MethodGet, "/", nil), "est-session")
	require.NoError(t, err)
	sess.Values[session.TokenKey] = 42
	sess.Values[session.MemberKey] = []byte(`{"email":"ada@uni.ts.it"}`)

	_, ok, err := CookieStorage{Session: sess}.Get(session.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	mgr := session.NewManager(nil, CookieStorage{Session: sess})
	member, err := mgr.Current()
	require.NoError(t, err)
	assert.Nil(t, member)
}
