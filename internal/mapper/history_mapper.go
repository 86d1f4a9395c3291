package mapper

import (
	"encoding/json"
	"time"

	"mindwel-be/internal/entity"
	"mindwel-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HistoryMapper struct{}

func NewHistoryMapper() *HistoryMapper {
	return &HistoryMapper{}
}

func (m *HistoryMapper) ChatTurnToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		d := t.DeletedAt.Time
		deletedAt = &d
	}

	return &entity.ChatTurn{
		Id:              t.Id,
		SessionId:       t.SessionId,
		UserId:          t.UserId,
		Role:            t.Role,
		Content:         t.Content,
		SentimentLabel:  t.SentimentLabel,
		SentimentScore:  t.SentimentScore,
		Emotions:        emotionsFromJSON(t.Emotions),
		EscalationLevel: t.EscalationLevel,
		CreatedAt:       t.CreatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       t.DeletedAt.Valid,
	}
}

func (m *HistoryMapper) ChatTurnToModel(t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.ChatTurn{
		Id:              t.Id,
		SessionId:       t.SessionId,
		UserId:          t.UserId,
		Role:            t.Role,
		Content:         t.Content,
		SentimentLabel:  t.SentimentLabel,
		SentimentScore:  t.SentimentScore,
		Emotions:        emotionsToJSON(t.Emotions),
		EscalationLevel: t.EscalationLevel,
		CreatedAt:       t.CreatedAt,
		DeletedAt:       deletedAt,
	}
}

func emotionsToJSON(emotions map[string]float64) datatypes.JSON {
	if len(emotions) == 0 {
		return nil
	}
	data, err := json.Marshal(emotions)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

func emotionsFromJSON(data datatypes.JSON) map[string]float64 {
	if len(data) == 0 {
		return nil
	}
	var emotions map[string]float64
	if err := json.Unmarshal(data, &emotions); err != nil {
		return nil
	}
	return emotions
}
