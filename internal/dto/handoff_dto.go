package dto

import (
	"time"

	"github.com/google/uuid"
)

type HandoffResponse struct {
	Id             uuid.UUID  `json:"id"`
	SessionId      uuid.UUID  `json:"session_id"`
	UserId         uuid.UUID  `json:"user_id,omitempty"`
	Urgency        string     `json:"urgency"`
	Status         string     `json:"status"`
	Triggers       []string   `json:"triggers,omitempty"`
	ContextSummary string     `json:"context_summary,omitempty"`
	Region         string     `json:"region,omitempty"`
	CounselorNotes string     `json:"counselor_notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

type UpdateHandoffStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=notified accepted resolved cancelled"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// HandoffNotification is the payload pushed to the counselor websocket feed
// and to the NATS sink.
type HandoffNotification struct {
	HandoffId uuid.UUID `json:"handoff_id"`
	SessionId uuid.UUID `json:"session_id"`
	Urgency   string    `json:"urgency"`
	Region    string    `json:"region,omitempty"`
	Triggers  []string  `json:"triggers,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
