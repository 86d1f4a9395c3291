package mapper

import (
	"encoding/json"
	"time"

	"mindwel-be/internal/entity"
	"mindwel-be/internal/model"

	"gorm.io/datatypes"
)

type HandoffMapper struct{}

func NewHandoffMapper() *HandoffMapper {
	return &HandoffMapper{}
}

func (m *HandoffMapper) HandoffToEntity(h *model.Handoff) *entity.Handoff {
	if h == nil {
		return nil
	}

	var updatedAt *time.Time
	if !h.UpdatedAt.IsZero() {
		u := h.UpdatedAt
		updatedAt = &u
	}

	var triggers []string
	if len(h.Triggers) > 0 {
		_ = json.Unmarshal(h.Triggers, &triggers)
	}

	return &entity.Handoff{
		Id:             h.Id,
		SessionId:      h.SessionId,
		UserId:         h.UserId,
		Urgency:        h.Urgency,
		Status:         h.Status,
		Triggers:       triggers,
		ContextSummary: h.ContextSummary,
		Region:         h.Region,
		CounselorNotes: h.CounselorNotes,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      updatedAt,
		ResolvedAt:     h.ResolvedAt,
	}
}

func (m *HandoffMapper) HandoffToModel(h *entity.Handoff) *model.Handoff {
	if h == nil {
		return nil
	}

	var triggers datatypes.JSON
	if len(h.Triggers) > 0 {
		if data, err := json.Marshal(h.Triggers); err == nil {
			triggers = datatypes.JSON(data)
		}
	}

	var updatedAt time.Time
	if h.UpdatedAt != nil {
		updatedAt = *h.UpdatedAt
	}

	return &model.Handoff{
		Id:             h.Id,
		SessionId:      h.SessionId,
		UserId:         h.UserId,
		Urgency:        h.Urgency,
		Status:         h.Status,
		Triggers:       triggers,
		ContextSummary: h.ContextSummary,
		Region:         h.Region,
		CounselorNotes: h.CounselorNotes,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      updatedAt,
		ResolvedAt:     h.ResolvedAt,
	}
}
