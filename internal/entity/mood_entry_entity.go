package entity

import (
	"time"

	"github.com/google/uuid"
)

// MoodEntry is a self-reported mood check-in on a 1-5 scale.
type MoodEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Score     int
	Note      string
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
