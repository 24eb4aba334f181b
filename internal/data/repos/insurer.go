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

type InsurerRepo interface {
	ordering.Store
	Create(ctx context.Context, tx *gorm.DB, i *types.Insurer) (*types.Insurer, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Insurer, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Insurer, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	UpdateLogoFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, logoURL string) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	NextOrder(ctx context.Context, tx *gorm.DB) (int64, error)
}

type insurerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsurerRepo(db *gorm.DB, baseLog *logger.Logger) InsurerRepo {
	repoLog := baseLog.With("repo", "InsurerRepo")
	return &insurerRepo{db: db, log: repoLog}
}

func (ir *insurerRepo) ListKey() string { return "insurers" }

func (ir *insurerRepo) Create(ctx context.Context, tx *gorm.DB, i *types.Insurer) (*types.Insurer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).Create(i).Error; err != nil {
		return nil, err
	}
	return i, nil
}

func (ir *insurerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Insurer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.Insurer
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ir *insurerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Insurer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Insurer
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *insurerRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Insurer{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (ir *insurerRepo) UpdateLogoFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, logoURL string) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Insurer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"logo_bucket_key": bucketKey,
			"logo_url":        logoURL,
		}).Error
}

func (ir *insurerRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Insurer{}).Error
}

func (ir *insurerRepo) NextOrder(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var max int64
	if err := transaction.WithContext(ctx).
		Model(&types.Insurer{}).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (ir *insurerRepo) ListEntries(ctx context.Context, tx *gorm.DB) ([]ordering.Entry, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var rows []struct {
		ID    uuid.UUID
		Name  string
		Order *int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Insurer{}).
		Select(`id, name, "order"`).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]ordering.Entry, len(rows))
	for i, r := range rows {
		entries[i] = ordering.Entry{ID: r.ID, Label: r.Name, Order: r.Order}
	}
	return entries, nil
}

func (ir *insurerRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int64) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Insurer{}).
		Where("id = ?", id).
		Update("order", order).Error
}

func (ir *insurerRepo) UpdateOrderIf(ctx context.Context, tx *gorm.DB, id uuid.UUID, next int64, expected *int64) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.Insurer{}).
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
			Model(&types.Insurer{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storeerr.NotFound("insurer.update_order_if", "insurer")
		}
		return storeerr.Conflict("insurer.update_order_if", "order value changed concurrently")
	}
	return nil
}
