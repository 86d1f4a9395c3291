package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MoodEntry struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Score     int            `gorm:"not null;check:score >= 1 AND score <= 5"`
	Note      string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}
