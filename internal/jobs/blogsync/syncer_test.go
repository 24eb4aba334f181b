package blogsync

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/cms"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

type fakeCMS struct {
	mu    sync.Mutex
	posts []cms.Post
	calls int
	fail  map[int]error
}

func (f *fakeCMS) ListPosts(ctx context.Context, page, perPage int) ([]cms.Post, int, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err := f.fail[page]; err != nil {
		return nil, 0, err
	}
	start := (page - 1) * perPage
	if start >= len(f.posts) {
		return nil, len(f.posts), nil
	}
	end := start + perPage
	if end > len(f.posts) {
		end = len(f.posts)
	}
	return f.posts[start:end], len(f.posts), nil
}

func (f *fakeCMS) GetPost(ctx context.Context, externalID int64) (*cms.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == externalID {
			return &f.posts[i], nil
		}
	}
	return nil, fmt.Errorf("not found")
}

type fakeBlogRepo struct {
	mu       sync.Mutex
	byExtID  map[int64]*types.BlogPost
	upserts  int
	upsertFn func(p *types.BlogPost) error
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{byExtID: map[int64]*types.BlogPost{}}
}

func (f *fakeBlogRepo) Create(ctx context.Context, tx *gorm.DB, p *types.BlogPost) (*types.BlogPost, error) {
	return p, nil
}

func (f *fakeBlogRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.BlogPost, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBlogRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.BlogPost, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBlogRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.BlogPost, error) {
	return nil, nil
}

func (f *fakeBlogRepo) ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.BlogPost, error) {
	return nil, nil
}

func (f *fakeBlogRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return nil
}

func (f *fakeBlogRepo) UpdateCoverFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, coverURL string) error {
	return nil
}

func (f *fakeBlogRepo) UpsertByExternalID(ctx context.Context, tx *gorm.DB, p *types.BlogPost) (*types.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertFn != nil {
		if err := f.upsertFn(p); err != nil {
			return nil, err
		}
	}
	f.upserts++
	if p.ExternalID != nil {
		f.byExtID[*p.ExternalID] = p
	}
	return p, nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

func syncTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(func() { log.Sync() })
	return log
}

func makePosts(n int) []cms.Post {
	published := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	out := make([]cms.Post, n)
	for i := range out {
		out[i] = cms.Post{
			ID:          int64(100 + i),
			Slug:        fmt.Sprintf("post-%d", i),
			Title:       fmt.Sprintf("Post %d", i),
			Excerpt:     "excerpt",
			Body:        "body",
			Tags:        []string{"news"},
			PublishedAt: &published,
		}
	}
	return out
}

func TestRunOnceUpsertsAllPages(t *testing.T) {
	cmsClient := &fakeCMS{posts: makePosts(120)}
	repo := newFakeBlogRepo()
	s := NewSyncer(nil, syncTestLogger(t), cmsClient, repo)

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if repo.upserts != 120 {
		t.Fatalf("upserts = %d, want 120", repo.upserts)
	}
	// 120 posts at pageSize 50 is 3 page fetches.
	if cmsClient.calls != 3 {
		t.Fatalf("cms calls = %d, want 3", cmsClient.calls)
	}
	post := repo.byExtID[100]
	if post == nil {
		t.Fatal("post 100 not stored")
	}
	if post.SyncedAt == nil {
		t.Fatal("SyncedAt not stamped")
	}
	if post.Slug != "post-0" || post.Title != "Post 0" {
		t.Fatalf("stored post = %+v", post)
	}
	if len(post.Tags) == 0 {
		t.Fatal("tags not stored")
	}
}

func TestRunOnceGeneratesSlugWhenMissing(t *testing.T) {
	cmsClient := &fakeCMS{posts: []cms.Post{{ID: 7, Title: "Flu Season Tips!"}}}
	repo := newFakeBlogRepo()
	s := NewSyncer(nil, syncTestLogger(t), cmsClient, repo)

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	post := repo.byExtID[7]
	if post == nil || post.Slug != "flu-season-tips" {
		t.Fatalf("post = %+v", post)
	}
}

func TestRunOnceAbortsWhenPageFetchFails(t *testing.T) {
	cmsClient := &fakeCMS{
		posts: makePosts(120),
		fail:  map[int]error{2: fmt.Errorf("boom")},
	}
	repo := newFakeBlogRepo()
	s := NewSyncer(nil, syncTestLogger(t), cmsClient, repo)

	if err := s.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if repo.upserts != 0 {
		t.Fatalf("upserts = %d, want 0 when a page fails", repo.upserts)
	}
}

func TestRunOnceContinuesPastSingleUpsertFailure(t *testing.T) {
	cmsClient := &fakeCMS{posts: makePosts(3)}
	repo := newFakeBlogRepo()
	repo.upsertFn = func(p *types.BlogPost) error {
		if p.ExternalID != nil && *p.ExternalID == 101 {
			return fmt.Errorf("constraint violation")
		}
		return nil
	}
	s := NewSyncer(nil, syncTestLogger(t), cmsClient, repo)

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if repo.upserts != 2 {
		t.Fatalf("upserts = %d, want 2", repo.upserts)
	}
}
