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

type ServiceRepo interface {
	ordering.Store
	Create(ctx context.Context, tx *gorm.DB, s *types.Service) (*types.Service, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Service, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Service, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	UpdateImageFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, imageURL string) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	NextOrder(ctx context.Context, tx *gorm.DB) (int64, error)
}

type serviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	repoLog := baseLog.With("repo", "ServiceRepo")
	return &serviceRepo{db: db, log: repoLog}
}

func (sr *serviceRepo) ListKey() string { return "services" }

func (sr *serviceRepo) Create(ctx context.Context, tx *gorm.DB, s *types.Service) (*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (sr *serviceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Service
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *serviceRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Service
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *serviceRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Service{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (sr *serviceRepo) UpdateImageFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, imageURL string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Service{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"image_bucket_key": bucketKey,
			"image_url":        imageURL,
		}).Error
}

func (sr *serviceRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Service{}).Error
}

func (sr *serviceRepo) NextOrder(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var max int64
	if err := transaction.WithContext(ctx).
		Model(&types.Service{}).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (sr *serviceRepo) ListEntries(ctx context.Context, tx *gorm.DB) ([]ordering.Entry, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var rows []struct {
		ID    uuid.UUID
		Title string
		Order *int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Service{}).
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

func (sr *serviceRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int64) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Service{}).
		Where("id = ?", id).
		Update("order", order).Error
}

func (sr *serviceRepo) UpdateOrderIf(ctx context.Context, tx *gorm.DB, id uuid.UUID, next int64, expected *int64) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.Service{}).
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
			Model(&types.Service{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storeerr.NotFound("service.update_order_if", "service")
		}
		return storeerr.Conflict("service.update_order_if", "order value changed concurrently")
	}
	return nil
}
