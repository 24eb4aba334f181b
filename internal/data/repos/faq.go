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

type FAQRepo interface {
	ordering.Store
	Create(ctx context.Context, tx *gorm.DB, f *types.FAQ) (*types.FAQ, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FAQ, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.FAQ, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	NextOrder(ctx context.Context, tx *gorm.DB) (int64, error)
}

type faqRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFAQRepo(db *gorm.DB, baseLog *logger.Logger) FAQRepo {
	repoLog := baseLog.With("repo", "FAQRepo")
	return &faqRepo{db: db, log: repoLog}
}

func (fr *faqRepo) ListKey() string { return "faqs" }

func (fr *faqRepo) Create(ctx context.Context, tx *gorm.DB, f *types.FAQ) (*types.FAQ, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if err := transaction.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (fr *faqRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FAQ, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var result types.FAQ
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (fr *faqRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.FAQ, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.FAQ
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *faqRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.FAQ{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (fr *faqRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.FAQ{}).Error
}

func (fr *faqRepo) NextOrder(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var max int64
	if err := transaction.WithContext(ctx).
		Model(&types.FAQ{}).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (fr *faqRepo) ListEntries(ctx context.Context, tx *gorm.DB) ([]ordering.Entry, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var rows []struct {
		ID       uuid.UUID
		Question string
		Order    *int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.FAQ{}).
		Select(`id, question, "order"`).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]ordering.Entry, len(rows))
	for i, r := range rows {
		entries[i] = ordering.Entry{ID: r.ID, Label: r.Question, Order: r.Order}
	}
	return entries, nil
}

func (fr *faqRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int64) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.FAQ{}).
		Where("id = ?", id).
		Update("order", order).Error
}

func (fr *faqRepo) UpdateOrderIf(ctx context.Context, tx *gorm.DB, id uuid.UUID, next int64, expected *int64) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.FAQ{}).
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
			Model(&types.FAQ{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storeerr.NotFound("faq.update_order_if", "faq")
		}
		return storeerr.Conflict("faq.update_order_if", "order value changed concurrently")
	}
	return nil
}
