package cms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(func() { log.Sync() })
	return log
}

func TestListPostsPagesAndAuth(t *testing.T) {
	published := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/posts" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("status") != "published" {
			t.Errorf("status query = %q", r.URL.Query().Get("status"))
		}
		page := r.URL.Query().Get("page")
		resp := listPostsResponse{Total: 3}
		switch page {
		case "1":
			resp.Posts = []Post{
				{ID: 10, Slug: "first", Title: "First", PublishedAt: &published},
				{ID: 11, Slug: "second", Title: "Second"},
			}
		case "2":
			resp.Posts = []Post{{ID: 12, Slug: "third", Title: "Third"}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := New(testLogger(t), Config{BaseURL: srv.URL, APIKey: "secret", MaxRetries: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	posts, total, err := c.ListPosts(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ListPosts page 1: %v", err)
	}
	if total != 3 || len(posts) != 2 {
		t.Fatalf("page 1: total=%d len=%d", total, len(posts))
	}
	if posts[0].ID != 10 || posts[0].Slug != "first" {
		t.Fatalf("page 1 first post = %+v", posts[0])
	}
	if posts[0].PublishedAt == nil || !posts[0].PublishedAt.Equal(published) {
		t.Fatalf("published_at = %v", posts[0].PublishedAt)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q", gotAuth)
	}

	posts, _, err = c.ListPosts(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("ListPosts page 2: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != 12 {
		t.Fatalf("page 2 posts = %+v", posts)
	}
}

func TestListPostsRetriesOn503(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(listPostsResponse{
			Posts: []Post{{ID: 1, Slug: "only", Title: "Only"}},
			Total: 1,
		})
	}))
	defer srv.Close()

	c, err := New(testLogger(t), Config{BaseURL: srv.URL, MaxRetries: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	posts, total, err := c.ListPosts(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if total != 1 || len(posts) != 1 {
		t.Fatalf("total=%d len=%d", total, len(posts))
	}
}

func TestListPostsDoesNotRetryOn404(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c, err := New(testLogger(t), Config{BaseURL: srv.URL, MaxRetries: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _, err = c.ListPosts(context.Background(), 1, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v", err)
	}
}

func TestGetPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts/42" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(Post{ID: 42, Slug: "answer", Title: "Answer"})
	}))
	defer srv.Close()

	c, err := New(testLogger(t), Config{BaseURL: srv.URL, MaxRetries: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	post, err := c.GetPost(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.ID != 42 || post.Slug != "answer" {
		t.Fatalf("post = %+v", post)
	}
}
