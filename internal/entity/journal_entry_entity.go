package entity

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is free-form writing, analyzed once at creation. Content is
// sealed at rest like chat turns.
type JournalEntry struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;index"`
	Content        string
	SentimentLabel string
	SentimentScore float64
	Emotions       map[string]float64
	CreatedAt      time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
