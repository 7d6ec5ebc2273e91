package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/cmd/api/services"
	"portfolio-api/config"
	"portfolio-api/dto"
	"portfolio-api/eventbus"
	"portfolio-api/internal/memstore"
)

type testEnv struct {
	engine      *gin.Engine
	posts       *memstore.BlogPosts
	contacts    *memstore.ContactSubmissions
	subscribers *memstore.NewsletterSubscribers
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		posts:       memstore.NewBlogPosts(),
		contacts:    memstore.NewContactSubmissions(),
		subscribers: memstore.NewNewsletterSubscribers(),
	}
	blog := services.NewBlogService(env.posts)
	contact := services.NewContactService(env.contacts, eventbus.Noop{})
	newsletter := services.NewNewsletterService(env.subscribers, eventbus.Noop{})

	r := gin.New()
	r.Use(Recovery())
	r.GET("/blog", GetBlogHandler(blog))
	r.POST("/blog", CreateBlogPostHandler(blog))
	r.PUT("/blog", UpdateBlogPostHandler(blog))
	r.DELETE("/blog", DeleteBlogPostHandler(blog))
	r.GET("/contact", ListContactSubmissionsHandler(contact))
	r.POST("/contact", CreateContactSubmissionHandler(contact))
	r.GET("/newsletter", ListNewsletterSubscribersHandler(newsletter))
	r.POST("/newsletter", SubscribeHandler(newsletter))
	r.GET("/feed.xml", FeedHandler(blog, config.FeedConfig{
		Title:       "Notes",
		Link:        "https://example.com/",
		Description: "Posts",
	}))
	r.PATCH("/blog", MethodNotAllowed("GET", "POST", "PUT", "DELETE"))
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	env.engine = r
	return env
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCreateBlogPost(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/blog", `{"title":"Test Post","excerpt":"e","content":"c","author":"a",
		"category":"API Testing","tags":["x"],"status":"draft","views":50,"_id":"abc","slug":"nope"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	got := decode[dto.BlogPostDTO](t, w)
	assert.Len(t, got.ID, 24)
	assert.Equal(t, "test-post", got.Slug)
	assert.Equal(t, int64(0), got.Views)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestCreateBlogPostValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/blog", `{"content":"untitled"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"title is required"}`, w.Body.String())

	w = env.do(http.MethodPost, "/blog", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, env.posts.Len())
}

func TestGetBlogBySlugCountsViews(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/blog", `{"title":"Hello, World! 2024"}`).Code)

	for i := 1; i <= 3; i++ {
		w := env.do(http.MethodGet, "/blog?slug=hello-world-2024", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(i), decode[dto.BlogPostDTO](t, w).Views)
	}
}

func TestGetBlogBySlugMissReturnsNull(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/blog", `{"title":"Present"}`).Code)

	w := env.do(http.MethodGet, "/blog?slug=absent", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	list := decode[[]dto.BlogPostDTO](t, env.do(http.MethodGet, "/blog", ""))
	require.Len(t, list, 1)
	assert.Equal(t, int64(0), list[0].Views)
}

func TestListBlogFilters(t *testing.T) {
	env := newTestEnv(t)
	for _, body := range []string{
		`{"title":"A","status":"published","category":"Go"}`,
		`{"title":"B","status":"draft","category":"Go"}`,
		`{"title":"C","status":"published","category":"Web"}`,
	} {
		require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/blog", body).Code)
	}

	published := decode[[]dto.BlogPostDTO](t, env.do(http.MethodGet, "/blog?status=published", ""))
	require.Len(t, published, 2)
	for _, p := range published {
		assert.Equal(t, "published", p.Status)
	}
	assert.False(t, published[0].CreatedAt.Before(published[1].CreatedAt))

	all := decode[[]dto.BlogPostDTO](t, env.do(http.MethodGet, "/blog?status=all&category=All", ""))
	assert.Len(t, all, 3)

	goOnly := decode[[]dto.BlogPostDTO](t, env.do(http.MethodGet, "/blog?category=Go", ""))
	assert.Len(t, goOnly, 2)

	w := env.do(http.MethodGet, "/blog?status=archived", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestUpdateBlogPost(t *testing.T) {
	env := newTestEnv(t)
	created := decode[dto.BlogPostDTO](t, env.do(http.MethodPost, "/blog", `{"title":"Draft One","status":"draft"}`))

	w := env.do(http.MethodPut, "/blog?id="+created.ID, `{"status":"published"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = env.do(http.MethodPut, "/blog?id=not-hex", `{"status":"published"}`)
	assert.JSONEq(t, `{"success":false}`, w.Body.String())

	w = env.do(http.MethodPut, "/blog", `{"status":"published"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/blog?id="+created.ID, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBlogPost(t *testing.T) {
	env := newTestEnv(t)
	created := decode[dto.BlogPostDTO](t, env.do(http.MethodPost, "/blog", `{"title":"Gone Soon"}`))

	w := env.do(http.MethodDelete, "/blog?id=000000000000000000000000", "")
	assert.JSONEq(t, `{"success":false}`, w.Body.String())

	w = env.do(http.MethodDelete, "/blog?id="+created.ID, "")
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	assert.Equal(t, "[]", env.do(http.MethodGet, "/blog", "").Body.String())

	w = env.do(http.MethodDelete, "/blog", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactSubmission(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/contact", `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello","status":"replied"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	got := decode[dto.ContactSubmissionDTO](t, w)
	assert.Equal(t, "new", got.Status)
	assert.NotEmpty(t, got.ID)

	list := decode[[]dto.ContactSubmissionDTO](t, env.do(http.MethodGet, "/contact", ""))
	require.Len(t, list, 1)
	assert.Equal(t, "Ada", list[0].Name)
}

func TestNewsletterSubscribeTwice(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/newsletter", `{"email":"reader@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "active", decode[dto.NewsletterSubscriberDTO](t, w).Status)

	w = env.do(http.MethodPost, "/newsletter", `{"email":"reader@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email already subscribed"}`, w.Body.String())
	assert.Equal(t, 1, env.subscribers.Len())

	w = env.do(http.MethodPost, "/newsletter", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list := decode[[]dto.NewsletterSubscriberDTO](t, env.do(http.MethodGet, "/newsletter", ""))
	assert.Len(t, list, 1)
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	env := newTestEnv(t)
	env.posts.Err = errors.New("dial tcp 10.0.0.1:27017: connection refused")
	env.contacts.Err = env.posts.Err
	env.subscribers.Err = env.posts.Err

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodGet, "/blog", ""},
		{http.MethodGet, "/blog?slug=x", ""},
		{http.MethodPost, "/blog", `{"title":"x"}`},
		{http.MethodGet, "/contact", ""},
		{http.MethodPost, "/newsletter", `{"email":"a@b.c"}`},
		{http.MethodGet, "/feed.xml", ""},
	} {
		w := env.do(tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, tc.target)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String(), tc.target)
	}
}

func TestPanicIsGeneric500(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPatch, "/blog", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, POST, PUT, DELETE", w.Header().Get("Allow"))
	assert.Equal(t, "Method PATCH Not Allowed", w.Body.String())
}

func TestFeedListsPublishedPosts(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodPost, "/blog", `{"title":"Old News","excerpt":"first","status":"published","category":"Go","tags":["mongo"]}`)
	env.do(http.MethodPost, "/blog", `{"title":"Secret Draft","status":"draft"}`)
	env.do(http.MethodPost, "/blog", `{"title":"Fresh Take","content":"<p>Derived from content</p>","status":"published"}`)

	w := env.do(http.MethodGet, "/feed.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/rss+xml")

	feed, err := gofeed.NewParser().ParseString(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "rss", feed.FeedType)
	assert.Equal(t, "Notes", feed.Title)
	require.Len(t, feed.Items, 2)

	titles := []string{feed.Items[0].Title, feed.Items[1].Title}
	assert.ElementsMatch(t, []string{"Old News", "Fresh Take"}, titles)
	for _, it := range feed.Items {
		assert.True(t, strings.HasPrefix(it.Link, "https://example.com/blog/"), it.Link)
		assert.Equal(t, it.Link, it.GUID)
		assert.NotNil(t, it.PublishedParsed)
	}
	for _, it := range feed.Items {
		if it.Title == "Old News" {
			assert.Equal(t, "first", it.Description)
			assert.Equal(t, []string{"Go", "mongo"}, it.Categories)
		} else {
			assert.Equal(t, "Derived from content", it.Description)
		}
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/up", HealthHandler(fakePinger{}))
	r.GET("/down", HealthHandler(fakePinger{err: errors.New("no primary")}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/up", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "no primary")
}
