package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/data/storeerr"
	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/ordering"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

type AboutFeatureRepo interface {
	ordering.Store
	Create(ctx context.Context, tx *gorm.DB, f *types.AboutFeature) (*types.AboutFeature, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AboutFeature, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.AboutFeature, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	NextOrder(ctx context.Context, tx *gorm.DB) (int64, error)
}

type aboutFeatureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAboutFeatureRepo(db *gorm.DB, baseLog *logger.Logger) AboutFeatureRepo {
	repoLog := baseLog.With("repo", "AboutFeatureRepo")
	return &aboutFeatureRepo{db: db, log: repoLog}
}

func (ar *aboutFeatureRepo) ListKey() string { return "about_features" }

func (ar *aboutFeatureRepo) Create(ctx context.Context, tx *gorm.DB, f *types.AboutFeature) (*types.AboutFeature, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (ar *aboutFeatureRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AboutFeature, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var result types.AboutFeature
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *aboutFeatureRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.AboutFeature, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.AboutFeature
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *aboutFeatureRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.AboutFeature{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (ar *aboutFeatureRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.AboutFeature{}).Error
}

func (ar *aboutFeatureRepo) NextOrder(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var max int64
	if err := transaction.WithContext(ctx).
		Model(&types.AboutFeature{}).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (ar *aboutFeatureRepo) ListEntries(ctx context.Context, tx *gorm.DB) ([]ordering.Entry, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var rows []struct {
		ID    uuid.UUID
		Title string
		Order *int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.AboutFeature{}).
		Select(`id, title, "order"`).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]ordering.Entry, len(rows))
	for i, r := range rows {
		entries[i] = ordering.Entry{ID: r.ID, Label: r.Title, Order: r.Order}
	}
	return entries, nil
}

func (ar *aboutFeatureRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int64) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AboutFeature{}).
		Where("id = ?", id).
		Update("order", order).Error
}

func (ar *aboutFeatureRepo) UpdateOrderIf(ctx context.Context, tx *gorm.DB, id uuid.UUID, next int64, expected *int64) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.AboutFeature{}).
		Where("id = ?", id)
	if expected == nil {
		q = q.Where(`("order" IS NULL OR "order" = 0)`)
	} else {
		q = q.Where(`"order" = ?`, *expected)
	}
	res := q.Update("order", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := transaction.WithContext(ctx).
			Model(&types.AboutFeature{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storeerr.NotFound("about_feature.update_order_if", "about feature")
		}
		return storeerr.Conflict("about_feature.update_order_if", "order value changed concurrently")
	}
	return nil
}
