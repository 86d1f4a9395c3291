package mapper

import (
	"time"

	"mindwel-be/internal/entity"
	"mindwel-be/internal/model"

	"gorm.io/gorm"
)

// WellnessMapper converts mood and journal records.
type WellnessMapper struct{}

func NewWellnessMapper() *WellnessMapper {
	return &WellnessMapper{}
}

func (m *WellnessMapper) MoodEntryToEntity(e *model.MoodEntry) *entity.MoodEntry {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		d := e.DeletedAt.Time
		deletedAt = &d
	}

	return &entity.MoodEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		Score:     e.Score,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *WellnessMapper) MoodEntryToModel(e *entity.MoodEntry) *model.MoodEntry {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	return &model.MoodEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		Score:     e.Score,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *WellnessMapper) JournalEntryToEntity(e *model.JournalEntry) *entity.JournalEntry {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		d := e.DeletedAt.Time
		deletedAt = &d
	}

	return &entity.JournalEntry{
		Id:             e.Id,
		UserId:         e.UserId,
		Content:        e.Content,
		SentimentLabel: e.SentimentLabel,
		SentimentScore: e.SentimentScore,
		Emotions:       emotionsFromJSON(e.Emotions),
		CreatedAt:      e.CreatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *WellnessMapper) JournalEntryToModel(e *entity.JournalEntry) *model.JournalEntry {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	return &model.JournalEntry{
		Id:             e.Id,
		UserId:         e.UserId,
		Content:        e.Content,
		SentimentLabel: e.SentimentLabel,
		SentimentScore: e.SentimentScore,
		Emotions:       emotionsToJSON(e.Emotions),
		CreatedAt:      e.CreatedAt,
		DeletedAt:      deletedAt,
	}
}
