package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is the persisted record of one message in a conversation.
// Content is stored sealed; the service layer encrypts before Create and
// decrypts after reads.
type ChatTurn struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId       uuid.UUID `gorm:"type:uuid;index"`
	UserId          uuid.UUID `gorm:"type:uuid;index"`
	Role            string
	Content         string
	SentimentLabel  string
	SentimentScore  float64
	Emotions        map[string]float64
	EscalationLevel string
	CreatedAt       time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
