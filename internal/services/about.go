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

const aboutFeatureCachePrefix = "content:about_features"

type CreateAboutFeatureInput struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

// AboutService owns the feature blurbs shown on the about page.
type AboutService interface {
	List(ctx context.Context) ([]*types.AboutFeature, error)
	Get(ctx context.Context, id uuid.UUID) (*types.AboutFeature, error)
	Create(ctx context.Context, input CreateAboutFeatureInput) (*types.AboutFeature, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.AboutFeature, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error
}

type aboutService struct {
	db     *gorm.DB
	log    *logger.Logger
	repo   repos.AboutFeatureRepo
	engine *ordering.Engine
	cache  redis.ContentCache
}

func NewAboutService(db *gorm.DB, log *logger.Logger, repo repos.AboutFeatureRepo, engine *ordering.Engine, cache redis.ContentCache) AboutService {
	return &aboutService{
		db:     db,
		log:    log.With("service", "AboutService"),
		repo:   repo,
		engine: engine,
		cache:  cache,
	}
}

func (as *aboutService) List(ctx context.Context) ([]*types.AboutFeature, error) {
	cacheKey := aboutFeatureCachePrefix + ":list"
	if as.cache != nil {
		var cached []*types.AboutFeature
		if hit, err := as.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if _, err := as.engine.Normalize(ctx, as.repo); err != nil {
		return nil, err
	}
	rows, err := as.repo.List(ctx, nil)
	if err != nil {
		return nil, storeerr.Classify("about_feature.list", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return ordering.Less(rows[i].Order, rows[i].Title, rows[j].Order, rows[j].Title)
	})

	if as.cache != nil {
		if err := as.cache.Set(ctx, cacheKey, rows); err != nil {
			as.log.Warn("Failed to cache about features list", "error", err.Error())
		}
	}
	return rows, nil
}

func (as *aboutService) Get(ctx context.Context, id uuid.UUID) (*types.AboutFeature, error) {
	row, err := as.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, storeerr.Classify("about_feature.get", err)
	}
	return row, nil
}

func (as *aboutService) Create(ctx context.Context, input CreateAboutFeatureInput) (*types.AboutFeature, error) {
	row := &types.AboutFeature{
		Title: input.Title,
		Body:  input.Body,
	}
	err := as.db.Transaction(func(tx *gorm.DB) error {
		next, err := as.repo.NextOrder(ctx, tx)
		if err != nil {
			return err
		}
		row.Order = &next
		_, err = as.repo.Create(ctx, tx, row)
		return err
	})
	if err != nil {
		return nil, storeerr.Classify("about_feature.create", err)
	}
	as.invalidate(ctx)
	return row, nil
}

func (as *aboutService) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.AboutFeature, error) {
	allowed := map[string]any{}
	for _, k := range []string{"title", "body"} {
		if v, ok := fields[k]; ok {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields given")
	}
	if err := as.repo.Update(ctx, nil, id, allowed); err != nil {
		return nil, storeerr.Classify("about_feature.update", err)
	}
	as.invalidate(ctx)
	return as.Get(ctx, id)
}

func (as *aboutService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := as.repo.Delete(ctx, nil, id); err != nil {
		return storeerr.Classify("about_feature.delete", err)
	}
	as.invalidate(ctx)
	return nil
}

func (as *aboutService) Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error {
	if err := as.engine.Move(ctx, as.repo, id, dir); err != nil {
		return err
	}
	as.invalidate(ctx)
	return nil
}

func (as *aboutService) invalidate(ctx context.Context) {
	if as.cache == nil {
		return
	}
	if err := as.cache.Invalidate(ctx, aboutFeatureCachePrefix); err != nil {
		as.log.Warn("Failed to invalidate about features cache", "error", err.Error())
	}
}
