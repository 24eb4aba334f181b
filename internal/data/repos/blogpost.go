package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

type BlogPostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, p *types.BlogPost) (*types.BlogPost, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.BlogPost, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.BlogPost, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.BlogPost, error)
	ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.BlogPost, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	UpdateCoverFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, coverURL string) error
	UpsertByExternalID(ctx context.Context, tx *gorm.DB, p *types.BlogPost) (*types.BlogPost, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type blogPostRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBlogPostRepo(db *gorm.DB, baseLog *logger.Logger) BlogPostRepo {
	repoLog := baseLog.With("repo", "BlogPostRepo")
	return &blogPostRepo{db: db, log: repoLog}
}

func (br *blogPostRepo) Create(ctx context.Context, tx *gorm.DB, p *types.BlogPost) (*types.BlogPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if err := transaction.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (br *blogPostRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.BlogPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var result types.BlogPost
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (br *blogPostRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.BlogPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var result types.BlogPost
	if err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (br *blogPostRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.BlogPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.BlogPost
	if err := transaction.WithContext(ctx).
		Order("published_at DESC NULLS LAST, created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *blogPostRepo) ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.BlogPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.BlogPost
	if err := transaction.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at <= ?", time.Now().UTC()).
		Order("published_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *blogPostRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.BlogPost{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (br *blogPostRepo) UpdateCoverFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, coverURL string) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Model(&types.BlogPost{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"cover_bucket_key": bucketKey,
			"cover_url":        coverURL,
		}).Error
}

// UpsertByExternalID inserts a mirrored post or refreshes the local copy when
// the CMS id already exists. Locally authored fields that the sync does not own
// (cover bucket key, soft-delete state) are left alone on conflict.
func (br *blogPostRepo) UpsertByExternalID(ctx context.Context, tx *gorm.DB, p *types.BlogPost) (*types.BlogPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"slug", "title", "excerpt", "body", "cover_url",
				"tags", "published_at", "synced_at", "updated_at",
			}),
		}).
		Create(p).Error; err != nil {
		return nil, err
	}
	var result types.BlogPost
	if err := transaction.WithContext(ctx).
		Where("external_id = ?", p.ExternalID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (br *blogPostRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.BlogPost{}).Error
}
