package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Professional is one entry of the staff roster shown on the site.
// Order is nullable on purpose: records created before the order column
// existed carry no value until the list is normalized.
type Professional struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FullName       string    `gorm:"not null;column:full_name" json:"full_name"`
	Title          string    `gorm:"column:title" json:"title"`
	Bio            string    `gorm:"type:text;column:bio" json:"bio"`
	PhotoBucketKey string    `gorm:"column:photo_bucket_key" json:"photo_bucket_key"`
	PhotoURL       string    `gorm:"column:photo_url" json:"photo_url"`
	Order          *int64    `gorm:"column:order" json:"order"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Professional) TableName() string { return "professional" }

// Service is one treatment/consultation offering.
type Service struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title          string    `gorm:"not null;column:title" json:"title"`
	Summary        string    `gorm:"column:summary" json:"summary"`
	Body           string    `gorm:"type:text;column:body" json:"body"`
	ImageBucketKey string    `gorm:"column:image_bucket_key" json:"image_bucket_key"`
	ImageURL       string    `gorm:"column:image_url" json:"image_url"`
	Order          *int64    `gorm:"column:order" json:"order"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Service) TableName() string { return "service" }

type Testimonial struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Author string    `gorm:"not null;column:author" json:"author"`
	Quote  string    `gorm:"type:text;not null;column:quote" json:"quote"`
	Source string    `gorm:"column:source" json:"source"`
	Order  *int64    `gorm:"column:order" json:"order"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Testimonial) TableName() string { return "testimonial" }

// AboutFeature is one highlight block of the about page.
type AboutFeature struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title string    `gorm:"not null;column:title" json:"title"`
	Body  string    `gorm:"type:text;column:body" json:"body"`
	Order *int64    `gorm:"column:order" json:"order"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AboutFeature) TableName() string { return "about_feature" }

type FAQ struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Question string    `gorm:"not null;column:question" json:"question"`
	Answer   string    `gorm:"type:text;column:answer" json:"answer"`
	Order    *int64    `gorm:"column:order" json:"order"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FAQ) TableName() string { return "faq" }

type Insurer struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Website       string    `gorm:"column:website" json:"website"`
	LogoBucketKey string    `gorm:"column:logo_bucket_key" json:"logo_bucket_key"`
	LogoURL       string    `gorm:"column:logo_url" json:"logo_url"`
	Order         *int64    `gorm:"column:order" json:"order"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Insurer) TableName() string { return "insurer" }
