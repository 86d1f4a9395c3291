package dto

import (
	"time"

	"github.com/google/uuid"
)

type OpenSessionRequest struct {
	UserId string `json:"user_id" validate:"omitempty,uuid4"`
	Region string `json:"region" validate:"omitempty,alpha,len=2"`
}

type OpenSessionResponse struct {
	SessionId string `json:"session_id"`
}

type SendMessageRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	UserId    string `json:"user_id" validate:"omitempty,uuid4"`
	Message   string `json:"message" validate:"required,max=4000"`
}

// SendMessageMeta carries side-channel information about the turn.
type SendMessageMeta struct {
	HandoffId string `json:"handoff_id,omitempty"`
	Degraded  bool   `json:"degraded,omitempty"` // classifier fell back to neutral
}

type SendMessageResponse struct {
	SessionId       string             `json:"session_id"`
	Response        string             `json:"response"`
	SentimentLabel  string             `json:"sentiment_label"`
	SentimentScore  float64            `json:"sentiment_score"`
	Emotions        map[string]float64 `json:"emotions,omitempty"`
	EscalationLevel string             `json:"escalation_level"`
	Meta            *SendMessageMeta   `json:"meta,omitempty"`
}

type ChatHistoryTurn struct {
	Id              uuid.UUID `json:"id"`
	Role            string    `json:"role"`
	Content         string    `json:"content"`
	SentimentLabel  string    `json:"sentiment_label,omitempty"`
	EscalationLevel string    `json:"escalation_level,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionId string            `json:"session_id"`
	Turns     []ChatHistoryTurn `json:"turns"`
}

type FeedbackRequest struct {
	UserId string `json:"user_id" validate:"required,uuid4"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}
