package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeRecordModel is the idempotency fact: one row per (post, identity).
// Rows are created once, never updated, and only removed when the post they
// belong to is deleted.
type LikeRecordModel struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	PostID        int64  `gorm:"not null;uniqueIndex:idx_like_post_identity"`
	IdentityToken string `gorm:"size:255;not null;uniqueIndex:idx_like_post_identity"`
	CreatedAt     time.Time
}

func (LikeRecordModel) TableName() string {
	return "like_records"
}

func (l *LikeRecordModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
