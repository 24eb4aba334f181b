package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/clients/redis"
	"github.com/yungbote/clinicsite-backend/internal/data/repos"
	"github.com/yungbote/clinicsite-backend/internal/data/storeerr"
	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/gcp"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

const blogCachePrefix = "content:blog"

type CreateBlogPostInput struct {
	Title       string     `json:"title" binding:"required"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"published_at"`
}

// BlogService owns locally authored posts. Mirrored CMS posts arrive through
// the sync job and share the same table; the admin panel can edit either.
type BlogService interface {
	ListPublished(ctx context.Context) ([]*types.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*types.BlogPost, error)
	ListAll(ctx context.Context) ([]*types.BlogPost, error)
	Get(ctx context.Context, id uuid.UUID) (*types.BlogPost, error)
	Create(ctx context.Context, input CreateBlogPostInput) (*types.BlogPost, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadCover(ctx context.Context, id uuid.UUID, raw []byte) (*types.BlogPost, error)
}

type blogService struct {
	db            *gorm.DB
	log           *logger.Logger
	repo          repos.BlogPostRepo
	bucketService gcp.BucketService
	cache         redis.ContentCache
}

func NewBlogService(db *gorm.DB, log *logger.Logger, repo repos.BlogPostRepo, bucketService gcp.BucketService, cache redis.ContentCache) BlogService {
	return &blogService{
		db:            db,
		log:           log.With("service", "BlogService"),
		repo:          repo,
		bucketService: bucketService,
		cache:         cache,
	}
}

func (bs *blogService) ListPublished(ctx context.Context) ([]*types.BlogPost, error) {
	cacheKey := blogCachePrefix + ":published"
	if bs.cache != nil {
		var cached []*types.BlogPost
		if hit, err := bs.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}
	rows, err := bs.repo.ListPublished(ctx, nil)
	if err != nil {
		return nil, storeerr.Classify("blog.list_published", err)
	}
	if bs.cache != nil {
		if err := bs.cache.Set(ctx, cacheKey, rows); err != nil {
			bs.log.Warn("Failed to cache published posts", "error", err.Error())
		}
	}
	return rows, nil
}

func (bs *blogService) GetBySlug(ctx context.Context, slug string) (*types.BlogPost, error) {
	post, err := bs.repo.GetBySlug(ctx, nil, strings.TrimSpace(slug))
	if err != nil {
		return nil, storeerr.Classify("blog.get_by_slug", err)
	}
	return post, nil
}

func (bs *blogService) ListAll(ctx context.Context) ([]*types.BlogPost, error) {
	rows, err := bs.repo.List(ctx, nil)
	if err != nil {
		return nil, storeerr.Classify("blog.list_all", err)
	}
	return rows, nil
}

func (bs *blogService) Get(ctx context.Context, id uuid.UUID) (*types.BlogPost, error) {
	post, err := bs.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, storeerr.Classify("blog.get", err)
	}
	return post, nil
}

func (bs *blogService) Create(ctx context.Context, input CreateBlogPostInput) (*types.BlogPost, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(input.Title)
	}
	post := &types.BlogPost{
		Slug:        slug,
		Title:       input.Title,
		Excerpt:     input.Excerpt,
		Body:        input.Body,
		PublishedAt: input.PublishedAt,
	}
	if _, err := bs.repo.Create(ctx, nil, post); err != nil {
		return nil, storeerr.Classify("blog.create", err)
	}
	bs.invalidate(ctx)
	return post, nil
}

func (bs *blogService) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.BlogPost, error) {
	allowed := map[string]any{}
	for _, k := range []string{"title", "slug", "excerpt", "body", "published_at"} {
		if v, ok := fields[k]; ok {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields given")
	}
	if err := bs.repo.Update(ctx, nil, id, allowed); err != nil {
		return nil, storeerr.Classify("blog.update", err)
	}
	bs.invalidate(ctx)
	return bs.Get(ctx, id)
}

func (bs *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := bs.repo.Delete(ctx, nil, id); err != nil {
		return storeerr.Classify("blog.delete", err)
	}
	bs.invalidate(ctx)
	return nil
}

func (bs *blogService) UploadCover(ctx context.Context, id uuid.UUID, raw []byte) (*types.BlogPost, error) {
	if bs.bucketService == nil {
		return nil, fmt.Errorf("media storage not configured")
	}
	post, err := bs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldKey := post.CoverBucketKey
	newKey := fmt.Sprintf("blog/%s/%d.png", post.ID.String(), time.Now().UnixNano())
	if err := bs.bucketService.UploadFile(ctx, gcp.BucketCategoryMedia, newKey, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to upload cover image: %w", err)
	}

	post.CoverBucketKey = newKey
	post.CoverURL = bs.bucketService.GetPublicURL(gcp.BucketCategoryMedia, newKey)
	if err := bs.repo.UpdateCoverFields(ctx, nil, post.ID, newKey, post.CoverURL); err != nil {
		return nil, storeerr.Classify("blog.update_cover", err)
	}

	if oldKey != "" && oldKey != newKey {
		if err := bs.bucketService.DeleteFile(ctx, gcp.BucketCategoryMedia, oldKey); err != nil {
			bs.log.Warn("failed to delete old cover image (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	bs.invalidate(ctx)
	return post, nil
}

func (bs *blogService) invalidate(ctx context.Context) {
	if bs.cache == nil {
		return
	}
	if err := bs.cache.Invalidate(ctx, blogCachePrefix); err != nil {
		bs.log.Warn("Failed to invalidate blog cache", "error", err.Error())
	}
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses everything that is not a letter
// or digit into single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
