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

type TestimonialRepo interface {
	ordering.Store
	Create(ctx context.Context, tx *gorm.DB, t *types.Testimonial) (*types.Testimonial, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Testimonial, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Testimonial, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	NextOrder(ctx context.Context, tx *gorm.DB) (int64, error)
}

type testimonialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTestimonialRepo(db *gorm.DB, baseLog *logger.Logger) TestimonialRepo {
	repoLog := baseLog.With("repo", "TestimonialRepo")
	return &testimonialRepo{db: db, log: repoLog}
}

func (tr *testimonialRepo) ListKey() string { return "testimonials" }

func (tr *testimonialRepo) Create(ctx context.Context, tx *gorm.DB, t *types.Testimonial) (*types.Testimonial, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if err := transaction.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (tr *testimonialRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Testimonial, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Testimonial
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *testimonialRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Testimonial, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Testimonial
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *testimonialRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Testimonial{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (tr *testimonialRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Testimonial{}).Error
}

func (tr *testimonialRepo) NextOrder(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var max int64
	if err := transaction.WithContext(ctx).
		Model(&types.Testimonial{}).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (tr *testimonialRepo) ListEntries(ctx context.Context, tx *gorm.DB) ([]ordering.Entry, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var rows []struct {
		ID     uuid.UUID
		Author string
		Order  *int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Testimonial{}).
		Select(`id, author, "order"`).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]ordering.Entry, len(rows))
	for i, r := range rows {
		entries[i] = ordering.Entry{ID: r.ID, Label: r.Author, Order: r.Order}
	}
	return entries, nil
}

func (tr *testimonialRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int64) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Testimonial{}).
		Where("id = ?", id).
		Update("order", order).Error
}

func (tr *testimonialRepo) UpdateOrderIf(ctx context.Context, tx *gorm.DB, id uuid.UUID, next int64, expected *int64) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.Testimonial{}).
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
			Model(&types.Testimonial{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storeerr.NotFound("testimonial.update_order_if", "testimonial")
		}
		return storeerr.Conflict("testimonial.update_order_if", "order value changed concurrently")
	}
	return nil
}
