package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mindwel-be/internal/constant"
	"mindwel-be/internal/dto"
	"mindwel-be/internal/entity"
	"mindwel-be/internal/pkg/logger"
	"mindwel-be/internal/repository/specification"
	"mindwel-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// HandoffInput is what the chat pipeline knows when it requests a handoff.
type HandoffInput struct {
	SessionId string
	UserId    string
	Urgency   string
	Triggers  []string
	Region    string
	Summary   string
}

type IHandoffService interface {
	Create(ctx context.Context, input *HandoffInput) (uuid.UUID, error)
	UpgradeUrgency(ctx context.Context, id uuid.UUID, urgency string) error
	List(ctx context.Context, status string) ([]*dto.HandoffResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.HandoffResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, request *dto.UpdateHandoffStatusRequest) (*dto.HandoffResponse, error)
}

type handoffService struct {
	uowFactory unitofwork.RepositoryFactory
	pubSub     *gochannel.GoChannel
	logger     logger.ILogger
}

func NewHandoffService(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	log logger.ILogger,
) IHandoffService {
	return &handoffService{
		uowFactory: uowFactory,
		pubSub:     pubSub,
		logger:     log,
	}
}

// Create persists the handoff first, then queues delivery. Persistence is
// the invariant; delivery is best effort and retried by the dispatcher.
func (s *handoffService) Create(ctx context.Context, input *HandoffInput) (uuid.UUID, error) {
	sid, err := uuid.Parse(input.SessionId)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id: %w", err)
	}
	var uid uuid.UUID
	if input.UserId != "" {
		uid, _ = uuid.Parse(input.UserId)
	}

	handoff := &entity.Handoff{
		SessionId:      sid,
		UserId:         uid,
		Urgency:        input.Urgency,
		Status:         entity.HandoffStatusPending,
		Triggers:       input.Triggers,
		ContextSummary: input.Summary,
		Region:         input.Region,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.HandoffRepository().Create(ctx, handoff); err != nil {
		return uuid.Nil, fmt.Errorf("persist handoff: %w", err)
	}

	s.logger.Info("HandoffService", "Handoff created", map[string]interface{}{
		"handoff_id": handoff.Id,
		"urgency":    handoff.Urgency,
	})

	s.queueDispatch(handoff)
	return handoff.Id, nil
}

func (s *handoffService) queueDispatch(handoff *entity.Handoff) {
	notification := dto.HandoffNotification{
		HandoffId: handoff.Id,
		SessionId: handoff.SessionId,
		Urgency:   handoff.Urgency,
		Region:    handoff.Region,
		Triggers:  handoff.Triggers,
		CreatedAt: handoff.CreatedAt,
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		s.logger.Error("HandoffService", "Failed to marshal dispatch payload", map[string]interface{}{"error": err.Error()})
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(constant.HandoffDispatchTopic, msg); err != nil {
		s.logger.Error("HandoffService", "Failed to queue handoff dispatch", map[string]interface{}{"error": err.Error()})
	}
}

func (s *handoffService) UpgradeUrgency(ctx context.Context, id uuid.UUID, urgency string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.HandoffRepository()

	handoff, err := repo.FindById(ctx, id)
	if err != nil {
		return err
	}
	if handoff == nil {
		return fmt.Errorf("handoff %s not found", id)
	}
	if !handoff.IsOpen() {
		return nil
	}

	handoff.Urgency = urgency
	if err := repo.Update(ctx, handoff); err != nil {
		return err
	}

	s.logger.Info("HandoffService", "Handoff urgency upgraded", map[string]interface{}{
		"handoff_id": id,
		"urgency":    urgency,
	})
	s.queueDispatch(handoff)
	return nil
}

func (s *handoffService) List(ctx context.Context, status string) ([]*dto.HandoffResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 200},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	handoffs, err := uow.HandoffRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.HandoffResponse, len(handoffs))
	for i, h := range handoffs {
		responses[i] = handoffToDTO(h)
	}
	return responses, nil
}

func (s *handoffService) GetById(ctx context.Context, id uuid.UUID) (*dto.HandoffResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	handoff, err := uow.HandoffRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if handoff == nil {
		return nil, nil
	}
	return handoffToDTO(handoff), nil
}

func (s *handoffService) UpdateStatus(ctx context.Context, id uuid.UUID, request *dto.UpdateHandoffStatusRequest) (*dto.HandoffResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.HandoffRepository()

	handoff, err := repo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if handoff == nil {
		return nil, nil
	}
	if !handoff.CanTransitionTo(request.Status) {
		return nil, fmt.Errorf("cannot transition handoff from %s to %s", handoff.Status, request.Status)
	}

	handoff.Status = request.Status
	if request.Notes != "" {
		handoff.CounselorNotes = request.Notes
	}
	if request.Status == entity.HandoffStatusResolved {
		now := time.Now()
		handoff.ResolvedAt = &now
	}

	if err := repo.Update(ctx, handoff); err != nil {
		return nil, err
	}

	s.logger.Info("HandoffService", "Handoff status updated", map[string]interface{}{
		"handoff_id": id,
		"status":     request.Status,
	})
	return handoffToDTO(handoff), nil
}

func handoffToDTO(h *entity.Handoff) *dto.HandoffResponse {
	return &dto.HandoffResponse{
		Id:             h.Id,
		SessionId:      h.SessionId,
		UserId:         h.UserId,
		Urgency:        h.Urgency,
		Status:         h.Status,
		Triggers:       h.Triggers,
		ContextSummary: h.ContextSummary,
		Region:         h.Region,
		CounselorNotes: h.CounselorNotes,
		CreatedAt:      h.CreatedAt,
		ResolvedAt:     h.ResolvedAt,
	}
}
