package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

type AppointmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, a *types.AppointmentRequest) (*types.AppointmentRequest, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AppointmentRequest, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.AppointmentRequest, error)
	MarkNotified(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
}

type appointmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAppointmentRepo(db *gorm.DB, baseLog *logger.Logger) AppointmentRepo {
	repoLog := baseLog.With("repo", "AppointmentRepo")
	return &appointmentRepo{db: db, log: repoLog}
}

func (ar *appointmentRepo) Create(ctx context.Context, tx *gorm.DB, a *types.AppointmentRequest) (*types.AppointmentRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (ar *appointmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AppointmentRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var result types.AppointmentRequest
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *appointmentRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.AppointmentRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.AppointmentRequest
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *appointmentRepo) MarkNotified(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AppointmentRequest{}).
		Where("id = ?", id).
		Update("notified_at", at).Error
}
