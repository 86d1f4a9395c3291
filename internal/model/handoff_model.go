package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Handoff struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID      `gorm:"type:uuid;index"`
	Urgency        string         `gorm:"type:varchar(20);not null"`
	Status         string         `gorm:"type:varchar(20);not null;index"`
	Triggers       datatypes.JSON `gorm:"type:jsonb"`
	ContextSummary string         `gorm:"type:text"`
	Region         string         `gorm:"type:varchar(10)"`
	CounselorNotes string         `gorm:"type:text"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	ResolvedAt     *time.Time
}

func (Handoff) TableName() string {
	return "handoffs"
}
