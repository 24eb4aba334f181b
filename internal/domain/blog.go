package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost is either authored locally through the admin panel or mirrored from
// the external CMS. Mirrored posts carry the CMS numeric id in ExternalID; the
// sync job matches on it when upserting.
type BlogPost struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ExternalID     *int64         `gorm:"uniqueIndex;column:external_id" json:"external_id"`
	Slug           string         `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Title          string         `gorm:"not null;column:title" json:"title"`
	Excerpt        string         `gorm:"type:text;column:excerpt" json:"excerpt"`
	Body           string         `gorm:"type:text;column:body" json:"body"`
	CoverBucketKey string         `gorm:"column:cover_bucket_key" json:"cover_bucket_key"`
	CoverURL       string         `gorm:"column:cover_url" json:"cover_url"`
	Tags           datatypes.JSON `gorm:"column:tags" json:"tags"`
	PublishedAt    *time.Time     `gorm:"column:published_at" json:"published_at"`
	SyncedAt       *time.Time     `gorm:"column:synced_at" json:"synced_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BlogPost) TableName() string { return "blog_post" }
