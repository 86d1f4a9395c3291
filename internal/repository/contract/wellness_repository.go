package contract

import (
	"context"

	"mindwel-be/internal/entity"
	"mindwel-be/internal/repository/specification"

	"github.com/google/uuid"
)

// WellnessRepository stores mood check-ins and journal entries, the two
// self-reported signals feeding mood pattern analysis.
type WellnessRepository interface {
	CreateMoodEntry(ctx context.Context, mood *entity.MoodEntry) error
	CreateJournalEntry(ctx context.Context, journal *entity.JournalEntry) error
	DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error // Hard delete
	FindMoodEntries(ctx context.Context, specs ...specification.Specification) ([]*entity.MoodEntry, error)
	FindJournalEntries(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalEntry, error)
}
