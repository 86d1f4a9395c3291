package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatTurn struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId          uuid.UUID      `gorm:"type:uuid;index"`
	Role            string         `gorm:"type:varchar(20);not null"`
	Content         string         `gorm:"type:text;not null"` // sealed ciphertext
	SentimentLabel  string         `gorm:"type:varchar(20)"`
	SentimentScore  float64        `gorm:"type:double precision"`
	Emotions        datatypes.JSON `gorm:"type:jsonb"`
	EscalationLevel string         `gorm:"type:varchar(20)"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
