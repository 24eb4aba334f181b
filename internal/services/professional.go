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

const professionalCachePrefix = "content:professionals"

type CreateProfessionalInput struct {
	FullName string `json:"full_name" binding:"required"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
}

// ProfessionalService owns the team roster: CRUD, display ordering, photo
// management, and the read-through cache in front of the public listing.
type ProfessionalService interface {
	List(ctx context.Context) ([]*types.Professional, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Professional, error)
	Create(ctx context.Context, input CreateProfessionalInput) (*types.Professional, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.Professional, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error
	UploadPhoto(ctx context.Context, id uuid.UUID, raw []byte) (*types.Professional, error)
}

type professionalService struct {
	db              *gorm.DB
	log             *logger.Logger
	repo            repos.ProfessionalRepo
	engine          *ordering.Engine
	portraitService PortraitService
	cache           redis.ContentCache
	seed            *SeedContent
}

// NewProfessionalService wires the roster service. cache and seed may be nil;
// portraitService may be nil when object storage is not configured.
func NewProfessionalService(
	db *gorm.DB,
	log *logger.Logger,
	repo repos.ProfessionalRepo,
	engine *ordering.Engine,
	portraitService PortraitService,
	cache redis.ContentCache,
	seed *SeedContent,
) ProfessionalService {
	return &professionalService{
		db:              db,
		log:             log.With("service", "ProfessionalService"),
		repo:            repo,
		engine:          engine,
		portraitService: portraitService,
		cache:           cache,
		seed:            seed,
	}
}

func (ps *professionalService) List(ctx context.Context) ([]*types.Professional, error) {
	cacheKey := professionalCachePrefix + ":list"
	if ps.cache != nil {
		var cached []*types.Professional
		if hit, err := ps.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if _, err := ps.engine.Normalize(ctx, ps.repo); err != nil {
		if storeerr.KindOf(err) == storeerr.KindTransport && ps.seed != nil {
			ps.log.Warn("Serving seed professionals, database unreachable", "error", err.Error())
			return ps.seed.Professionals(), nil
		}
		return nil, err
	}

	rows, err := ps.repo.List(ctx, nil)
	if err != nil {
		classified := storeerr.Classify("professional.list", err)
		if storeerr.KindOf(classified) == storeerr.KindTransport && ps.seed != nil {
			ps.log.Warn("Serving seed professionals, database unreachable", "error", err.Error())
			return ps.seed.Professionals(), nil
		}
		return nil, classified
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return ordering.Less(rows[i].Order, rows[i].FullName, rows[j].Order, rows[j].FullName)
	})

	if ps.cache != nil {
		if err := ps.cache.Set(ctx, cacheKey, rows); err != nil {
			ps.log.Warn("Failed to cache professionals list", "error", err.Error())
		}
	}
	return rows, nil
}

func (ps *professionalService) Get(ctx context.Context, id uuid.UUID) (*types.Professional, error) {
	pro, err := ps.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, storeerr.Classify("professional.get", err)
	}
	return pro, nil
}

func (ps *professionalService) Create(ctx context.Context, input CreateProfessionalInput) (*types.Professional, error) {
	pro := &types.Professional{
		FullName: input.FullName,
		Title:    input.Title,
		Bio:      input.Bio,
	}

	err := ps.db.Transaction(func(tx *gorm.DB) error {
		next, err := ps.repo.NextOrder(ctx, tx)
		if err != nil {
			return err
		}
		pro.Order = &next
		_, err = ps.repo.Create(ctx, tx, pro)
		return err
	})
	if err != nil {
		return nil, storeerr.Classify("professional.create", err)
	}

	// Placeholder portrait so the team page never renders an empty photo.
	// A failure here is logged, not surfaced; the record itself is created.
	if ps.portraitService != nil {
		if err := ps.portraitService.EnsurePortrait(ctx, nil, pro); err != nil {
			ps.log.Warn("Failed to generate placeholder portrait", "id", pro.ID, "error", err.Error())
		}
	}

	ps.invalidate(ctx)
	return pro, nil
}

func (ps *professionalService) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*types.Professional, error) {
	allowed := map[string]any{}
	for _, k := range []string{"full_name", "title", "bio"} {
		if v, ok := fields[k]; ok {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields given")
	}
	if err := ps.repo.Update(ctx, nil, id, allowed); err != nil {
		return nil, storeerr.Classify("professional.update", err)
	}
	ps.invalidate(ctx)
	return ps.Get(ctx, id)
}

func (ps *professionalService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ps.repo.Delete(ctx, nil, id); err != nil {
		return storeerr.Classify("professional.delete", err)
	}
	ps.invalidate(ctx)
	return nil
}

func (ps *professionalService) Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error {
	if err := ps.engine.Move(ctx, ps.repo, id, dir); err != nil {
		return err
	}
	ps.invalidate(ctx)
	return nil
}

func (ps *professionalService) UploadPhoto(ctx context.Context, id uuid.UUID, raw []byte) (*types.Professional, error) {
	if ps.portraitService == nil {
		return nil, fmt.Errorf("portrait storage not configured")
	}
	pro, err := ps.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ps.portraitService.UploadPortrait(ctx, nil, pro, raw); err != nil {
		return nil, err
	}
	ps.invalidate(ctx)
	return pro, nil
}

func (ps *professionalService) invalidate(ctx context.Context) {
	if ps.cache == nil {
		return
	}
	if err := ps.cache.Invalidate(ctx, professionalCachePrefix); err != nil {
		ps.log.Warn("Failed to invalidate professionals cache", "error", err.Error())
	}
}
