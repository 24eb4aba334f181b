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

type ProfessionalRepo interface {
	ordering.Store
	Create(ctx context.Context, tx *gorm.DB, p *types.Professional) (*types.Professional, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Professional, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Professional, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	UpdatePhotoFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, photoURL string) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	NextOrder(ctx context.Context, tx *gorm.DB) (int64, error)
}

type professionalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfessionalRepo(db *gorm.DB, baseLog *logger.Logger) ProfessionalRepo {
	repoLog := baseLog.With("repo", "ProfessionalRepo")
	return &professionalRepo{db: db, log: repoLog}
}

func (pr *professionalRepo) ListKey() string { return "professionals" }

func (pr *professionalRepo) Create(ctx context.Context, tx *gorm.DB, p *types.Professional) (*types.Professional, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (pr *professionalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Professional, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Professional
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *professionalRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Professional, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Professional
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *professionalRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Professional{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (pr *professionalRepo) UpdatePhotoFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, photoURL string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Professional{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"photo_bucket_key": bucketKey,
			"photo_url":        photoURL,
		}).Error
}

func (pr *professionalRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Professional{}).Error
}

func (pr *professionalRepo) NextOrder(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var max int64
	if err := transaction.WithContext(ctx).
		Model(&types.Professional{}).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (pr *professionalRepo) ListEntries(ctx context.Context, tx *gorm.DB) ([]ordering.Entry, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var rows []struct {
		ID       uuid.UUID
		FullName string
		Order    *int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Professional{}).
		Select(`id, full_name, "order"`).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]ordering.Entry, len(rows))
	for i, r := range rows {
		entries[i] = ordering.Entry{ID: r.ID, Label: r.FullName, Order: r.Order}
	}
	return entries, nil
}

func (pr *professionalRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int64) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Professional{}).
		Where("id = ?", id).
		Update("order", order).Error
}

func (pr *professionalRepo) UpdateOrderIf(ctx context.Context, tx *gorm.DB, id uuid.UUID, next int64, expected *int64) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.Professional{}).
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
			Model(&types.Professional{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storeerr.NotFound("professional.update_order_if", "professional")
		}
		return storeerr.Conflict("professional.update_order_if", "order value changed concurrently")
	}
	return nil
}
