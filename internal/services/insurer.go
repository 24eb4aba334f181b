package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/clients/redis"
	"github.com/yungbote/clinicsite-backend/internal/data/repos"
	"github.com/yungbote/clinicsite-backend/internal/data/storeerr"
	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/ordering"
	"github.com/yungbote/clinicsite-backend/internal/platform/gcp"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

const insurerCachePrefix = "content:insurers"

type CreateInsurerInput struct {
	Name    string `json:"name" binding:"required"`
	Website string `json:"website"`
}

// InsurerService owns the accepted-insurance list shown on the site.
type InsurerService interface {
	List(ctx context.Context) ([]*types.Insurer, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Insurer, error)
	Create(ctx context.Context, input CreateInsurerInput) (*types.Insurer, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.Insurer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error
	UploadLogo(ctx context.Context, id uuid.UUID, raw []byte) (*types.Insurer, error)
}

type insurerService struct {
	db            *gorm.DB
	log           *logger.Logger
	repo          repos.InsurerRepo
	engine        *ordering.Engine
	bucketService gcp.BucketService
	cache         redis.ContentCache
}

func NewInsurerService(db *gorm.DB, log *logger.Logger, repo repos.InsurerRepo, engine *ordering.Engine, bucketService gcp.BucketService, cache redis.ContentCache) InsurerService {
	return &insurerService{
		db:            db,
		log:           log.With("service", "InsurerService"),
		repo:          repo,
		engine:        engine,
		bucketService: bucketService,
		cache:         cache,
	}
}

func (is *insurerService) List(ctx context.Context) ([]*types.Insurer, error) {
	cacheKey := insurerCachePrefix + ":list"
	if is.cache != nil {
		var cached []*types.Insurer
		if hit, err := is.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if _, err := is.engine.Normalize(ctx, is.repo); err != nil {
		return nil, err
	}
	rows, err := is.repo.List(ctx, nil)
	if err != nil {
		return nil, storeerr.Classify("insurer.list", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return ordering.Less(rows[i].Order, rows[i].Name, rows[j].Order, rows[j].Name)
	})

	if is.cache != nil {
		if err := is.cache.Set(ctx, cacheKey, rows); err != nil {
			is.log.Warn("Failed to cache insurers list", "error", err.Error())
		}
	}
	return rows, nil
}

func (is *insurerService) Get(ctx context.Context, id uuid.UUID) (*types.Insurer, error) {
	row, err := is.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, storeerr.Classify("insurer.get", err)
	}
	return row, nil
}

func (is *insurerService) Create(ctx context.Context, input CreateInsurerInput) (*types.Insurer, error) {
	row := &types.Insurer{
		Name:    input.Name,
		Website: input.Website,
	}
	err := is.db.Transaction(func(tx *gorm.DB) error {
		next, err := is.repo.NextOrder(ctx, tx)
		if err != nil {
			return err
		}
		row.Order = &next
		_, err = is.repo.Create(ctx, tx, row)
		return err
	})
	if err != nil {
		return nil, storeerr.Classify("insurer.create", err)
	}
	is.invalidate(ctx)
	return row, nil
}

func (is *insurerService) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.Insurer, error) {
	allowed := map[string]any{}
	for _, k := range []string{"name", "website"} {
		if v, ok := fields[k]; ok {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields given")
	}
	if err := is.repo.Update(ctx, nil, id, allowed); err != nil {
		return nil, storeerr.Classify("insurer.update", err)
	}
	is.invalidate(ctx)
	return is.Get(ctx, id)
}

func (is *insurerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := is.repo.Delete(ctx, nil, id); err != nil {
		return storeerr.Classify("insurer.delete", err)
	}
	is.invalidate(ctx)
	return nil
}

func (is *insurerService) Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error {
	if err := is.engine.Move(ctx, is.repo, id, dir); err != nil {
		return err
	}
	is.invalidate(ctx)
	return nil
}

func (is *insurerService) UploadLogo(ctx context.Context, id uuid.UUID, raw []byte) (*types.Insurer, error) {
	if is.bucketService == nil {
		return nil, fmt.Errorf("media storage not configured")
	}
	row, err := is.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldKey := row.LogoBucketKey
	newKey := fmt.Sprintf("insurers/%s/%d.png", row.ID.String(), time.Now().UnixNano())
	if err := is.bucketService.UploadFile(ctx, gcp.BucketCategoryMedia, newKey, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to upload insurer logo: %w", err)
	}

	row.LogoBucketKey = newKey
	row.LogoURL = is.bucketService.GetPublicURL(gcp.BucketCategoryMedia, newKey)
	if err := is.repo.UpdateLogoFields(ctx, nil, row.ID, newKey, row.LogoURL); err != nil {
		return nil, storeerr.Classify("insurer.update_logo", err)
	}

	if oldKey != "" && oldKey != newKey {
		if err := is.bucketService.DeleteFile(ctx, gcp.BucketCategoryMedia, oldKey); err != nil {
			is.log.Warn("failed to delete old insurer logo (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	is.invalidate(ctx)
	return row, nil
}

func (is *insurerService) invalidate(ctx context.Context) {
	if is.cache == nil {
		return
	}
	if err := is.cache.Invalidate(ctx, insurerCachePrefix); err != nil {
		is.log.Warn("Failed to invalidate insurers cache", "error", err.Error())
	}
}
