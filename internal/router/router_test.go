package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"space/internal/db"
	"space/internal/middleware"
	"space/internal/models"
	"space/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

type failingGenerator struct{}

func (failingGenerator) GenerateContentItems(ctx context.Context, category string, sources []string, count int) ([]models.ContentItem, error) {
	return nil, &services.APIError{StatusCode: 429, Message: "quota"}
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	posts := db.NewMemoryPostStore(db.DemoPosts()...)
	users := db.NewMemoryUserStore()
	content := services.NewContentService(
		services.NewMemoryContentCache(16, 5*time.Minute),
		failingGenerator{}, nil, nil,
		services.ContentOptions{Timeout: time.Second},
	)

	r := gin.New()
	r.Use(sessions.Sessions("space_session", cookie.NewStore([]byte("test-secret"))))
	RegisterRoutes(r, Services{
		Posts:   services.NewPostService(posts, nil),
		Threads: services.NewThreadService(posts),
		Content: content,
		Auth:    services.NewAuthService(users),
	}, limiter)
	return r
}

type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func TestFeedEndpoint(t *testing.T) {
	c := &client{t: t, r: newTestServer(t, nil)}

	w := c.do(http.MethodGet, "/api/feed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var all struct {
		Posts []map[string]any `json:"posts"`
	}
	decode(t, w, &all)
	if len(all.Posts) != 5 {
		t.Fatalf("got %d posts, want 5", len(all.Posts))
	}
	if all.Posts[0]["content_html"] == "" {
		t.Errorf("content_html missing")
	}

	w = c.do(http.MethodGet, "/api/feed?images=0&videos=0&polls=0&text=0", nil)
	var filtered struct {
		Posts []struct {
			ID string `json:"id"`
		} `json:"posts"`
	}
	decode(t, w, &filtered)
	if len(filtered.Posts) != 1 || filtered.Posts[0].ID != "demo-post-5" {
		t.Errorf("only the live post should remain, got %+v", filtered.Posts)
	}

	w = c.do(http.MethodGet, "/api/feed?q=WEEKEND", nil)
	decode(t, w, &filtered)
	if len(filtered.Posts) != 1 || filtered.Posts[0].ID != "demo-post-4" {
		t.Errorf("search result = %+v", filtered.Posts)
	}
}

func TestAuthRequired(t *testing.T) {
	c := &client{t: t, r: newTestServer(t, nil)}

	w := c.do(http.MethodPost, "/api/posts", map[string]string{"content": "hi"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["error"] == "" {
		t.Errorf("error envelope missing")
	}
}

func TestCommentFlow(t *testing.T) {
	c := &client{t: t, r: newTestServer(t, nil)}

	w := c.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "ava@example.com", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}

	w = c.do(http.MethodPost, "/api/posts/demo-post-4/comments", map[string]string{"content": "great list"})
	if w.Code != http.StatusCreated {
		t.Fatalf("comment status = %d: %s", w.Code, w.Body.String())
	}
	var top struct {
		ID string `json:"id"`
	}
	decode(t, w, &top)

	w = c.do(http.MethodPost, "/api/posts/demo-post-4/comments/"+top.ID+"/replies", map[string]string{"content": "agreed"})
	if w.Code != http.StatusCreated {
		t.Fatalf("reply status = %d: %s", w.Code, w.Body.String())
	}

	w = c.do(http.MethodPost, "/api/posts/demo-post-4/comments/nope/replies", map[string]string{"content": "lost"})
	if w.Code != http.StatusNotFound {
		t.Errorf("missing parent status = %d, want 404", w.Code)
	}

	w = c.do(http.MethodPost, "/api/posts/demo-post-4/comments/"+top.ID+"/like", nil)
	var like struct {
		Likes int  `json:"likes"`
		Liked bool `json:"liked"`
	}
	decode(t, w, &like)
	if like.Likes != 1 || !like.Liked {
		t.Errorf("like = %+v", like)
	}

	w = c.do(http.MethodGet, "/api/posts/demo-post-4/comments", nil)
	var list struct {
		Comments []struct {
			ID      string `json:"id"`
			Liked   bool   `json:"liked"`
			Replies []struct {
				Content string `json:"content"`
			} `json:"replies"`
		} `json:"comments"`
		CommentCount int `json:"comment_count"`
	}
	decode(t, w, &list)
	if list.CommentCount != 2 || len(list.Comments) != 1 || len(list.Comments[0].Replies) != 1 {
		t.Errorf("unexpected comments %+v", list)
	}
	if !list.Comments[0].Liked {
		t.Errorf("viewer like state missing")
	}

	if w := c.do(http.MethodPost, "/api/posts/missing/comments", map[string]string{"content": "x"}); w.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d", w.Code)
	}
}

func TestLoginMeAndLogout(t *testing.T) {
	r := newTestServer(t, nil)
	first := &client{t: t, r: r}
	first.do(http.MethodPost, "/api/auth/register", map[string]string{"name": "Leo", "email": "leo@example.com", "password": "secret1"})

	c := &client{t: t, r: r}
	if w := c.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "leo@example.com", "password": "wrong!"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", w.Code)
	}
	if w := c.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "leo@example.com", "password": "secret1"}); w.Code != http.StatusOK {
		t.Fatalf("login status = %d", w.Code)
	}

	w := c.do(http.MethodPut, "/api/me", map[string]string{"bio": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", w.Code, w.Body.String())
	}
	var me map[string]any
	decode(t, w, &me)
	if me["bio"] != "hello" || me["name"] != "Leo" {
		t.Errorf("me = %v", me)
	}
	if _, leaked := me["password"]; leaked {
		t.Errorf("password hash serialized")
	}

	if w := c.do(http.MethodPost, "/api/auth/logout", nil); w.Code != http.StatusNoContent {
		t.Errorf("logout status = %d", w.Code)
	}
	if w := c.do(http.MethodGet, "/api/me", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("after logout status = %d", w.Code)
	}
}

func TestExploreFallsBack(t *testing.T) {
	c := &client{t: t, r: newTestServer(t, nil)}

	w := c.do(http.MethodGet, "/api/explore?category=Gaming&sources=Twitch,YouTube", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res struct {
		Items    []models.ContentItem `json:"items"`
		Cached   bool                 `json:"cached"`
		Fallback bool                 `json:"fallback"`
	}
	decode(t, w, &res)
	if len(res.Items) == 0 || !res.Fallback || res.Cached {
		t.Errorf("unexpected explore result %+v", res)
	}
}

func TestRateLimit(t *testing.T) {
	c := &client{t: t, r: newTestServer(t, middleware.NewRateLimiter(0.001, 2))}

	for i := 0; i < 2; i++ {
		if w := c.do(http.MethodGet, "/api/feed", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
	if w := c.do(http.MethodGet, "/api/feed", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}
