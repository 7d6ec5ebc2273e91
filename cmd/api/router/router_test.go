package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/cmd/api/services"
	"portfolio-api/config"
	"portfolio-api/eventbus"
	"portfolio-api/internal/memstore"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := New(Deps{
		Blog:       services.NewBlogService(memstore.NewBlogPosts()),
		Contact:    services.NewContactService(memstore.NewContactSubmissions(), eventbus.Noop{}),
		Newsletter: services.NewNewsletterService(memstore.NewNewsletterSubscribers(), eventbus.Noop{}),
		DB:         okPinger{},
		BasePath:   "/api",
		Feed:       config.FeedConfig{Title: "Blog", Link: "http://localhost:3000"},
	})
	return Handler(engine, config.CORSConfig{AllowedOrigins: []string{"*"}})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutesUnderBasePath(t *testing.T) {
	h := newHandler(t)

	for _, path := range []string{"/api/blog", "/api/contact", "/api/newsletter", "/api/feed.xml", "/health"} {
		w := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := serve(h, httptest.NewRequest(http.MethodGet, "/blog", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnsupportedMethods(t *testing.T) {
	h := newHandler(t)

	cases := []struct {
		method, path, allow string
	}{
		{http.MethodPatch, "/api/blog", "GET, POST, PUT, DELETE"},
		{http.MethodPut, "/api/contact", "GET, POST"},
		{http.MethodDelete, "/api/contact", "GET, POST"},
		{http.MethodPut, "/api/newsletter", "GET, POST"},
		{http.MethodPatch, "/api/newsletter", "GET, POST"},
		{http.MethodHead, "/api/blog", "GET, POST, PUT, DELETE"},
		{http.MethodTrace, "/api/blog", "GET, POST, PUT, DELETE"},
		{"PROPFIND", "/api/blog", "GET, POST, PUT, DELETE"},
		{"LINK", "/api/contact", "GET, POST"},
		{"PURGE", "/api/newsletter", "GET, POST"},
	}
	for _, tc := range cases {
		w := serve(h, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, tc.method+" "+tc.path)
		assert.Equal(t, tc.allow, w.Header().Get("Allow"))
		if tc.method != http.MethodHead {
			assert.Equal(t, "Method "+tc.method+" Not Allowed", w.Body.String())
		}
	}

	w := serve(h, httptest.NewRequest("PROPFIND", "/api/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Allow"))
}

func TestCORS(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/blog", nil)
	req.Header.Set("Origin", "https://somewhere.example")
	w := serve(h, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/api/newsletter", nil)
	preflight.Header.Set("Origin", "https://somewhere.example")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w = serve(h, preflight)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	bare := serve(h, httptest.NewRequest(http.MethodOptions, "/api/blog", nil))
	assert.Equal(t, http.StatusOK, bare.Code)
	assert.Empty(t, bare.Body.String())
}

func TestEndToEndBlogFlow(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/blog", strings.NewReader(`{"title":"Routing Works","status":"published"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(h, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = serve(h, httptest.NewRequest(http.MethodGet, "/api/blog?slug=routing-works", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"views":1`)
}
