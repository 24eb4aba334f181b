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

const faqCachePrefix = "content:faqs"

type CreateFAQInput struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type FAQService interface {
	List(ctx context.Context) ([]*types.FAQ, error)
	Get(ctx context.Context, id uuid.UUID) (*types.FAQ, error)
	Create(ctx context.Context, input CreateFAQInput) (*types.FAQ, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.FAQ, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error
}

type faqService struct {
	db     *gorm.DB
	log    *logger.Logger
	repo   repos.FAQRepo
	engine *ordering.Engine
	cache  redis.ContentCache
}

func NewFAQService(db *gorm.DB, log *logger.Logger, repo repos.FAQRepo, engine *ordering.Engine, cache redis.ContentCache) FAQService {
	return &faqService{
		db:     db,
		log:    log.With("service", "FAQService"),
		repo:   repo,
		engine: engine,
		cache:  cache,
	}
}

func (fs *faqService) List(ctx context.Context) ([]*types.FAQ, error) {
	cacheKey := faqCachePrefix + ":list"
	if fs.cache != nil {
		var cached []*types.FAQ
		if hit, err := fs.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if _, err := fs.engine.Normalize(ctx, fs.repo); err != nil {
		return nil, err
	}
	rows, err := fs.repo.List(ctx, nil)
	if err != nil {
		return nil, storeerr.Classify("faq.list", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return ordering.Less(rows[i].Order, rows[i].Question, rows[j].Order, rows[j].Question)
	})

	if fs.cache != nil {
		if err := fs.cache.Set(ctx, cacheKey, rows); err != nil {
			fs.log.Warn("Failed to cache FAQ list", "error", err.Error())
		}
	}
	return rows, nil
}

func (fs *faqService) Get(ctx context.Context, id uuid.UUID) (*types.FAQ, error) {
	row, err := fs.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, storeerr.Classify("faq.get", err)
	}
	return row, nil
}

func (fs *faqService) Create(ctx context.Context, input CreateFAQInput) (*types.FAQ, error) {
	row := &types.FAQ{
		Question: input.Question,
		Answer:   input.Answer,
	}
	err := fs.db.Transaction(func(tx *gorm.DB) error {
		next, err := fs.repo.NextOrder(ctx, tx)
		if err != nil {
			return err
		}
		row.Order = &next
		_, err = fs.repo.Create(ctx, tx, row)
		return err
	})
	if err != nil {
		return nil, storeerr.Classify("faq.create", err)
	}
	fs.invalidate(ctx)
	return row, nil
}

func (fs *faqService) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.FAQ, error) {
	allowed := map[string]any{}
	for _, k := range []string{"question", "answer"} {
		if v, ok := fields[k]; ok {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields given")
	}
	if err := fs.repo.Update(ctx, nil, id, allowed); err != nil {
		return nil, storeerr.Classify("faq.update", err)
	}
	fs.invalidate(ctx)
	return fs.Get(ctx, id)
}

func (fs *faqService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := fs.repo.Delete(ctx, nil, id); err != nil {
		return storeerr.Classify("faq.delete", err)
	}
	fs.invalidate(ctx)
	return nil
}

func (fs *faqService) Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error {
	if err := fs.engine.Move(ctx, fs.repo, id, dir); err != nil {
		return err
	}
	fs.invalidate(ctx)
	return nil
}

func (fs *faqService) invalidate(ctx context.Context) {
	if fs.cache == nil {
		return
	}
	if err := fs.cache.Invalidate(ctx, faqCachePrefix); err != nil {
		fs.log.Warn("Failed to invalidate FAQ cache", "error", err.Error())
	}
}
