package entity

import (
	"time"

	"github.com/google/uuid"
)

// Handoff lifecycle statuses. Transitions are forward-only:
// pending -> notified -> accepted -> resolved, with cancelled reachable
// from pending and notified.
const (
	HandoffStatusPending   = "pending"
	HandoffStatusNotified  = "notified"
	HandoffStatusAccepted  = "accepted"
	HandoffStatusResolved  = "resolved"
	HandoffStatusCancelled = "cancelled"
)

type Handoff struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId      uuid.UUID `gorm:"type:uuid;index"`
	UserId         uuid.UUID `gorm:"type:uuid;index"`
	Urgency        string
	Status         string
	Triggers       []string
	ContextSummary string
	Region         string
	CounselorNotes string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	ResolvedAt     *time.Time
}

// CanTransitionTo enforces the forward-only status ladder.
func (h *Handoff) CanTransitionTo(next string) bool {
	allowed := map[string][]string{
		HandoffStatusPending:  {HandoffStatusNotified, HandoffStatusAccepted, HandoffStatusCancelled},
		HandoffStatusNotified: {HandoffStatusAccepted, HandoffStatusCancelled},
		HandoffStatusAccepted: {HandoffStatusResolved},
	}
	for _, s := range allowed[h.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsOpen reports whether the handoff still needs counselor attention.
func (h *Handoff) IsOpen() bool {
	return h.Status == HandoffStatusPending || h.Status == HandoffStatusNotified || h.Status == HandoffStatusAccepted
}
