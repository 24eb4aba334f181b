package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AppointmentRequest stores a form submission from the public site. All fields
// are accepted as provided; the preferred date/time stay free-text.
type AppointmentRequest struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FullName         string         `gorm:"not null;column:full_name" json:"full_name"`
	Email            string         `gorm:"column:email" json:"email"`
	Phone            string         `gorm:"column:phone" json:"phone"`
	ConsultationType string         `gorm:"column:consultation_type" json:"consultation_type"`
	PreferredDate    string         `gorm:"column:preferred_date" json:"preferred_date"`
	PreferredTime    string         `gorm:"column:preferred_time" json:"preferred_time"`
	Message          string         `gorm:"type:text;column:message" json:"message"`
	Extra            datatypes.JSON `gorm:"column:extra" json:"extra"`
	NotifiedAt       *time.Time     `gorm:"column:notified_at" json:"notified_at"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AppointmentRequest) TableName() string { return "appointment_request" }
