package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/clients/redis"
	"github.com/yungbote/clinicsite-backend/internal/data/repos"
	"github.com/yungbote/clinicsite-backend/internal/data/storeerr"
	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/ordering"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

const testimonialCachePrefix = "content:testimonials"

type CreateTestimonialInput struct {
	Author string `json:"author" binding:"required"`
	Quote  string `json:"quote" binding:"required"`
	Source string `json:"source"`
}

type TestimonialService interface {
	List(ctx context.Context) ([]*types.Testimonial, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Testimonial, error)
	Create(ctx context.Context, input CreateTestimonialInput) (*types.Testimonial, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error
}

type testimonialService struct {
	db     *gorm.DB
	log    *logger.Logger
	repo   repos.TestimonialRepo
	engine *ordering.Engine
	cache  redis.ContentCache
}

func NewTestimonialService(db *gorm.DB, log *logger.Logger, repo repos.TestimonialRepo, engine *ordering.Engine, cache redis.ContentCache) TestimonialService {
	return &testimonialService{
		db:     db,
		log:    log.With("service", "TestimonialService"),
		repo:   repo,
		engine: engine,
		cache:  cache,
	}
}

func (ts *testimonialService) List(ctx context.Context) ([]*types.Testimonial, error) {
	cacheKey := testimonialCachePrefix + ":list"
	if ts.cache != nil {
		var cached []*types.Testimonial
		if hit, err := ts.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if _, err := ts.engine.Normalize(ctx, ts.repo); err != nil {
		return nil, err
	}
	rows, err := ts.repo.List(ctx, nil)
	if err != nil {
		return nil, storeerr.Classify("testimonial.list", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return ordering.Less(rows[i].Order, rows[i].Author, rows[j].Order, rows[j].Author)
	})

	if ts.cache != nil {
		if err := ts.cache.Set(ctx, cacheKey, rows); err != nil {
			ts.log.Warn("Failed to cache testimonials list", "error", err.Error())
		}
	}
	return rows, nil
}

func (ts *testimonialService) Get(ctx context.Context, id uuid.UUID) (*types.Testimonial, error) {
	row, err := ts.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, storeerr.Classify("testimonial.get", err)
	}
	return row, nil
}

func (ts *testimonialService) Create(ctx context.Context, input CreateTestimonialInput) (*types.Testimonial, error) {
	row := &types.Testimonial{
		Author: input.Author,
		Quote:  input.Quote,
		Source: input.Source,
	}
	err := ts.db.Transaction(func(tx *gorm.DB) error {
		next, err := ts.repo.NextOrder(ctx, tx)
		if err != nil {
			return err
		}
		row.Order = &next
		_, err = ts.repo.Create(ctx, tx, row)
		return err
	})
	if err != nil {
		return nil, storeerr.Classify("testimonial.create", err)
	}
	ts.invalidate(ctx)
	return row, nil
}

func (ts *testimonialService) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.Testimonial, error) {
	allowed := map[string]any{}
	for _, k := range []string{"author", "quote", "source"} {
		if v, ok := fields[k]; ok {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields given")
	}
	if err := ts.repo.Update(ctx, nil, id, allowed); err != nil {
		return nil, storeerr.Classify("testimonial.update", err)
	}
	ts.invalidate(ctx)
	return ts.Get(ctx, id)
}

func (ts *testimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ts.repo.Delete(ctx, nil, id); err != nil {
		return storeerr.Classify("testimonial.delete", err)
	}
	ts.invalidate(ctx)
	return nil
}

func (ts *testimonialService) Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error {
	if err := ts.engine.Move(ctx, ts.repo, id, dir); err != nil {
		return err
	}
	ts.invalidate(ctx)
	return nil
}

func (ts *testimonialService) invalidate(ctx context.Context) {
	if ts.cache == nil {
		return
	}
	if err := ts.cache.Invalidate(ctx, testimonialCachePrefix); err != nil {
		ts.log.Warn("Failed to invalidate testimonials cache", "error", err.Error())
	}
}
