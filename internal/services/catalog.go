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

const serviceCachePrefix = "content:services"

type CreateServiceInput struct {
	Title   string `json:"title" binding:"required"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

// CatalogService owns the treatments and services offered by the clinic.
type CatalogService interface {
	List(ctx context.Context) ([]*types.Service, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Service, error)
	Create(ctx context.Context, input CreateServiceInput) (*types.Service, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error
	UploadImage(ctx context.Context, id uuid.UUID, raw []byte) (*types.Service, error)
}

type catalogService struct {
	db            *gorm.DB
	log           *logger.Logger
	repo          repos.ServiceRepo
	engine        *ordering.Engine
	bucketService gcp.BucketService
	cache         redis.ContentCache
	seed          *SeedContent
}

func NewCatalogService(
	db *gorm.DB,
	log *logger.Logger,
	repo repos.ServiceRepo,
	engine *ordering.Engine,
	bucketService gcp.BucketService,
	cache redis.ContentCache,
	seed *SeedContent,
) CatalogService {
	return &catalogService{
		db:            db,
		log:           log.With("service", "CatalogService"),
		repo:          repo,
		engine:        engine,
		bucketService: bucketService,
		cache:         cache,
		seed:          seed,
	}
}

func (cs *catalogService) List(ctx context.Context) ([]*types.Service, error) {
	cacheKey := serviceCachePrefix + ":list"
	if cs.cache != nil {
		var cached []*types.Service
		if hit, err := cs.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if _, err := cs.engine.Normalize(ctx, cs.repo); err != nil {
		if storeerr.KindOf(err) == storeerr.KindTransport && cs.seed != nil {
			cs.log.Warn("Serving seed services, database unreachable", "error", err.Error())
			return cs.seed.Services(), nil
		}
		return nil, err
	}

	rows, err := cs.repo.List(ctx, nil)
	if err != nil {
		classified := storeerr.Classify("service.list", err)
		if storeerr.KindOf(classified) == storeerr.KindTransport && cs.seed != nil {
			cs.log.Warn("Serving seed services, database unreachable", "error", err.Error())
			return cs.seed.Services(), nil
		}
		return nil, classified
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return ordering.Less(rows[i].Order, rows[i].Title, rows[j].Order, rows[j].Title)
	})

	if cs.cache != nil {
		if err := cs.cache.Set(ctx, cacheKey, rows); err != nil {
			cs.log.Warn("Failed to cache services list", "error", err.Error())
		}
	}
	return rows, nil
}

func (cs *catalogService) Get(ctx context.Context, id uuid.UUID) (*types.Service, error) {
	svc, err := cs.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, storeerr.Classify("service.get", err)
	}
	return svc, nil
}

func (cs *catalogService) Create(ctx context.Context, input CreateServiceInput) (*types.Service, error) {
	svc := &types.Service{
		Title:   input.Title,
		Summary: input.Summary,
		Body:    input.Body,
	}
	err := cs.db.Transaction(func(tx *gorm.DB) error {
		next, err := cs.repo.NextOrder(ctx, tx)
		if err != nil {
			return err
		}
		svc.Order = &next
		_, err = cs.repo.Create(ctx, tx, svc)
		return err
	})
	if err != nil {
		return nil, storeerr.Classify("service.create", err)
	}
	cs.invalidate(ctx)
	return svc, nil
}

func (cs *catalogService) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.Service, error) {
	allowed := map[string]any{}
	for _, k := range []string{"title", "summary", "body"} {
		if v, ok := fields[k]; ok {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields given")
	}
	if err := cs.repo.Update(ctx, nil, id, allowed); err != nil {
		return nil, storeerr.Classify("service.update", err)
	}
	cs.invalidate(ctx)
	return cs.Get(ctx, id)
}

func (cs *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := cs.repo.Delete(ctx, nil, id); err != nil {
		return storeerr.Classify("service.delete", err)
	}
	cs.invalidate(ctx)
	return nil
}

func (cs *catalogService) Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error {
	if err := cs.engine.Move(ctx, cs.repo, id, dir); err != nil {
		return err
	}
	cs.invalidate(ctx)
	return nil
}

func (cs *catalogService) UploadImage(ctx context.Context, id uuid.UUID, raw []byte) (*types.Service, error) {
	if cs.bucketService == nil {
		return nil, fmt.Errorf("media storage not configured")
	}
	svc, err := cs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldKey := svc.ImageBucketKey
	newKey := fmt.Sprintf("services/%s/%d.png", svc.ID.String(), time.Now().UnixNano())
	if err := cs.bucketService.UploadFile(ctx, gcp.BucketCategoryMedia, newKey, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to upload service image: %w", err)
	}

	svc.ImageBucketKey = newKey
	svc.ImageURL = cs.bucketService.GetPublicURL(gcp.BucketCategoryMedia, newKey)
	if err := cs.repo.UpdateImageFields(ctx, nil, svc.ID, newKey, svc.ImageURL); err != nil {
		return nil, storeerr.Classify("service.update_image", err)
	}

	if oldKey != "" && oldKey != newKey {
		if err := cs.bucketService.DeleteFile(ctx, gcp.BucketCategoryMedia, oldKey); err != nil {
			cs.log.Warn("failed to delete old service image (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	cs.invalidate(ctx)
	return svc, nil
}

func (cs *catalogService) invalidate(ctx context.Context) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.Invalidate(ctx, serviceCachePrefix); err != nil {
		cs.log.Warn("Failed to invalidate services cache", "error", err.Error())
	}
}
