// internal/router/router_test.go
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abccorp/corpsite-web/internal/config"
	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/upstream"
)

// apiStub answers the remote API endpoints the pages touch.
func apiStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/products":
			w.Write([]byte(`[{"_id":"1","name":"Pump","price":10,"image":"/uploads/p.png","description":"d"}]`))
		case r.URL.Path == "/api/settings":
			w.Write([]byte(`{"landingPageTitle":{"en":"Welcome","vi":"Chào mừng"}}`))
		case r.URL.Path == "/api/auth/verify":
			if r.Header.Get("Authorization") == "Bearer good" {
				w.Write([]byte(`{"isAdmin":true}`))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid token"}`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T, loggedIn bool) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := apiStub(t)
	cfg := &config.Config{
		Environment: "test",
		API:         config.APIConfig{BaseURL: srv.URL},
		Web: config.WebConfig{
			TemplatesGlob: "../../web/templates/*.html",
			AllowOrigins:  []string{"*"},
		},
	}

	api := upstream.New(cfg.API)
	sess := session.New(&session.MemoryTokenStore{}, api)
	if loggedIn {
		require.NoError(t, sess.Login("good", true))
	}
	return Initialize(cfg, api, sess), sess
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHomePageRenders(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome")
}

func TestPublicProductsPageRenders(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?q=pu&sort=price&order=desc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pump")
}

func TestAdminPageRedirectsAnonymousBrowser(t *testing.T) {
	r, _ := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAdminMutationDeniedAnonymousFetch(t *testing.T) {
	r, _ := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodPost, "/admin/products/1/select", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAdminPageRendersForAdmin(t *testing.T) {
	r, _ := newTestRouter(t, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pump")
}

func TestSelectionToggleEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, true)

	// Populate the store first; the admin page refreshes on entry.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/products/1/select", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"selected":true`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/products/unknown/select", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExitingBulkModeClearsSelection(t *testing.T) {
	r, _ := newTestRouter(t, true)

	// Enter bulk mode and select the only product.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products?bulk=1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/products/1/select", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products?bulk=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "checked")

	// Exit bulk mode via the plain list, then re-enter: the selection must
	// not have survived.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products?bulk=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "checked")
}

func TestUpdateFormCarriesExistingSpecifications(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var saved struct {
		Specifications map[string]string `json:"specifications"`
	}
	var putReceived bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/products/1":
			putReceived = true
			require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
			w.Write([]byte(`{"_id":"1","name":"Pump","price":10}`))
		case r.URL.Path == "/api/products":
			w.Write([]byte(`[{"_id":"1","name":"Pump","price":10,"image":"/uploads/p.png","description":"d","specifications":{"flow":"20 l/min"}}]`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Environment: "test",
		API:         config.APIConfig{BaseURL: srv.URL},
		Web: config.WebConfig{
			TemplatesGlob: "../../web/templates/*.html",
			AllowOrigins:  []string{"*"},
		},
	}
	api := upstream.New(cfg.API)
	sess := session.New(&session.MemoryTokenStore{}, api)
	require.NoError(t, sess.Login("good", true))
	r := Initialize(cfg, api, sess)

	// The edit form must render the stored specification rows.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="flow"`)
	assert.Contains(t, w.Body.String(), `value="20 l/min"`)

	// A full-replace update posted with those rows keeps them on the server.
	form := url.Values{
		"name":        {"Pump"},
		"description": {"d"},
		"price":       {"10"},
		"image":       {"/uploads/p.png"},
		"spec_key":    {"flow", "weight"},
		"spec_value":  {"20 l/min", "3kg"},
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/products/1/update", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, putReceived)
	assert.Equal(t, map[string]string{"flow": "20 l/min", "weight": "3kg"}, saved.Specifications)
}

func TestSettingsSaveRejectsCorruptUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var putReceived bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPut && r.URL.Path == "/api/settings" {
			putReceived = true
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Environment: "test",
		API:         config.APIConfig{BaseURL: srv.URL},
		Web: config.WebConfig{
			TemplatesGlob: "../../web/templates/*.html",
			AllowOrigins:  []string{"*"},
		},
	}
	api := upstream.New(cfg.API)
	sess := session.New(&session.MemoryTokenStore{}, api)
	require.NoError(t, sess.Login("good", true))
	r := Initialize(cfg, api, sess)

	// Multipart content-type with a body that never produces the declared
	// boundary: reading the logo part fails mid-parse.
	req := httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader("garbage"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/admin/settings?error=")
	assert.False(t, putReceived, "an unreadable upload must not reach the API")
}

func TestLoginFlow(t *testing.T) {
	r, sess := newTestRouter(t, false)

	form := url.Values{"token": {"good"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/admin/products?notice=")
	assert.True(t, sess.IsAdmin())
}

func TestLoginRejectsBadToken(t *testing.T) {
	r, sess := newTestRouter(t, false)

	form := url.Values{"token": {"bad"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login?error=")
	assert.False(t, sess.IsAdmin())
}

func TestLanguageSwitchSetsCookie(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lang?to=vi&from=/products", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "site_lang=vi")
}

func TestLanguageSwitchSanitizesRedirect(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lang?to=vi&from=https://evil.example", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLangQueryOverridesCookie(t *testing.T) {
	r, _ := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/?lang=vi", nil)
	req.AddCookie(&http.Cookie{Name: "site_lang", Value: "en"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chào mừng")
}

func TestSetupFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/settings/check-setup":
			w.Write([]byte(`{"isSetup":false}`))
		case "/api/auth/setup":
			w.Write([]byte(`{"token":"fresh-admin-token"}`))
		case "/api/settings":
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Environment: "test",
		API:         config.APIConfig{BaseURL: srv.URL},
		Web: config.WebConfig{
			TemplatesGlob: "../../web/templates/*.html",
			AllowOrigins:  []string{"*"},
		},
	}
	api := upstream.New(cfg.API)
	sess := session.New(&session.MemoryTokenStore{}, api)
	r := Initialize(cfg, api, sess)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/setup", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "setup_token")

	form := url.Values{
		"email":       {"admin@example.com"},
		"password":    {"longenough1"},
		"setup_token": {"bootstrap"},
	}
	req := httptest.NewRequest(http.MethodPost, "/setup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/admin/settings")
	assert.True(t, sess.IsAdmin())
	token, ok := sess.Token()
	assert.True(t, ok)
	assert.Equal(t, "fresh-admin-token", token)
}

func TestSetupRedirectsWhenAlreadyConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/settings/check-setup" {
			w.Write([]byte(`{"isSetup":true}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Environment: "test",
		API:         config.APIConfig{BaseURL: srv.URL},
		Web: config.WebConfig{
			TemplatesGlob: "../../web/templates/*.html",
			AllowOrigins:  []string{"*"},
		},
	}
	api := upstream.New(cfg.API)
	sess := session.New(&session.MemoryTokenStore{}, api)
	r := Initialize(cfg, api, sess)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/setup", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var putReceived bool
	var title map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPut && r.URL.Path == "/api/settings" {
			putReceived = true
			require.NoError(t, r.ParseMultipartForm(8<<20))
			require.NoError(t, json.Unmarshal([]byte(r.FormValue("landingPageTitle")), &title))
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Environment: "test",
		API:         config.APIConfig{BaseURL: srv.URL},
		Web: config.WebConfig{
			TemplatesGlob: "../../web/templates/*.html",
			AllowOrigins:  []string{"*"},
		},
	}
	api := upstream.New(cfg.API)
	sess := session.New(&session.MemoryTokenStore{}, api)
	require.NoError(t, sess.Login("good", true))
	r := Initialize(cfg, api, sess)

	form := url.Values{
		"landingPageTitle.en": {"New title"},
		"landingPageTitle.vi": {"Tiêu đề mới"},
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "notice=")
	assert.True(t, putReceived)
	assert.Equal(t, "New title", title["en"])
	assert.Equal(t, "Tiêu đề mới", title["vi"])
}

func TestLogoutEndsSession(t *testing.T) {
	r, sess := newTestRouter(t, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.False(t, sess.IsAdmin())
}
