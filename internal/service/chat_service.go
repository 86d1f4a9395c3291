package service

import (
	"context"
	"time"

	"mindwel-be/internal/constant"
	"mindwel-be/internal/dto"
	"mindwel-be/internal/entity"
	"mindwel-be/internal/pkg/logger"
	"mindwel-be/internal/pkg/securedata"
	"mindwel-be/internal/repository/specification"
	"mindwel-be/internal/repository/unitofwork"
	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/conversation"
	"mindwel-be/pkg/escalation"
	"mindwel-be/pkg/moodtrend"
	"mindwel-be/pkg/quality"
	"mindwel-be/pkg/responder"

	"github.com/google/uuid"
)

// IChatService is the conversational pipeline entry point.
type IChatService interface {
	OpenSession(ctx context.Context, request *dto.OpenSessionRequest) (*dto.OpenSessionResponse, error)
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error)
	RecordFeedback(ctx context.Context, request *dto.FeedbackRequest) error
}

// MoodSignalProvider supplies the fresh mood signal for escalation
// amplification. Implemented by the insight service.
type MoodSignalProvider interface {
	MoodSignal(ctx context.Context, userId uuid.UUID) (*moodtrend.Signal, error)
}

type ChatServiceOptions struct {
	RepairAttempts int
	HistoryContext int
	DefaultRegion  string
}

type chatService struct {
	analyzer   *analyzer.Analyzer
	escalation *escalation.Manager
	convo      *conversation.Manager
	generator  *responder.Generator
	validator  *quality.Validator
	mood       MoodSignalProvider
	handoff    IHandoffService
	uowFactory unitofwork.RepositoryFactory
	codec      *securedata.Codec
	logger     logger.ILogger
	opts       ChatServiceOptions
}

func NewChatService(
	sentimentAnalyzer *analyzer.Analyzer,
	escalationManager *escalation.Manager,
	convoManager *conversation.Manager,
	generator *responder.Generator,
	validator *quality.Validator,
	mood MoodSignalProvider,
	handoff IHandoffService,
	uowFactory unitofwork.RepositoryFactory,
	codec *securedata.Codec,
	log logger.ILogger,
	opts ChatServiceOptions,
) IChatService {
	if opts.RepairAttempts <= 0 {
		opts.RepairAttempts = 1
	}
	if opts.HistoryContext <= 0 {
		opts.HistoryContext = 10
	}
	return &chatService{
		analyzer:   sentimentAnalyzer,
		escalation: escalationManager,
		convo:      convoManager,
		generator:  generator,
		validator:  validator,
		mood:       mood,
		handoff:    handoff,
		uowFactory: uowFactory,
		codec:      codec,
		logger:     log,
		opts:       opts,
	}
}

func (s *chatService) OpenSession(ctx context.Context, request *dto.OpenSessionRequest) (*dto.OpenSessionResponse, error) {
	sessionId := s.convo.OpenSession(request.UserId)
	if request.UserId != "" && request.Region != "" {
		s.convo.SetRegion(request.UserId, request.Region)
	}
	s.logger.Info("ChatService", "Session opened", map[string]interface{}{"session_id": sessionId})
	return &dto.OpenSessionResponse{SessionId: sessionId}, nil
}

func (s *chatService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	// 1. Resolve session. An expired or unknown session is reopened
	// transparently; the client learns the new id from the response.
	sessionId := request.SessionId
	if _, err := s.convo.Resolve(sessionId); err != nil {
		sessionId = s.convo.OpenSession(request.UserId)
		s.logger.Warn("ChatService", "Unknown session, reopened", map[string]interface{}{
			"requested":  request.SessionId,
			"session_id": sessionId,
		})
	}

	// 2. Analyze. Empty input is the only hard error; classifier failure
	// degrades inside the analyzer.
	analysis, err := s.analyzer.Analyze(ctx, request.Message)
	if err != nil {
		return nil, err
	}
	if analysis.Degraded {
		s.logger.Warn("ChatService", "Classifier degraded to neutral", map[string]interface{}{"session_id": sessionId})
	}

	// 3. Mood signal, best effort. Only available for identified users.
	var moodSignal *moodtrend.Signal
	if uid, parseErr := uuid.Parse(request.UserId); parseErr == nil && s.mood != nil {
		if sig, moodErr := s.mood.MoodSignal(ctx, uid); moodErr == nil {
			moodSignal = sig
		} else {
			s.logger.Warn("ChatService", "Mood signal unavailable", map[string]interface{}{"error": moodErr.Error()})
		}
	}

	// 4. Assess escalation before generating anything.
	assessment := s.escalation.Assess(escalation.Input{
		Message:   request.Message,
		Sentiment: analysis,
		Mood:      moodSignal,
	})

	// 5. Record the user turn.
	repetition := s.isRepeatedConcern(sessionId, request.Message)
	if _, err := s.convo.AppendUserTurn(sessionId, request.Message, analysis); err != nil {
		return nil, err
	}

	// 6. Handoff, detached from request cancellation: once we decided a
	// human must be looped in, a dropped connection must not cancel it.
	meta := &dto.SendMessageMeta{Degraded: analysis.Degraded}
	decidedAt := time.Now()
	decision := s.escalation.DecideHandoff(sessionId, assessment.Level, decidedAt)
	if decision.Create {
		handoffId, hErr := s.handoff.Create(context.WithoutCancel(ctx), &HandoffInput{
			SessionId: sessionId,
			UserId:    request.UserId,
			Urgency:   string(decision.Urgency),
			Triggers:  assessment.Triggers,
			Region:    s.regionFor(request.UserId),
			Summary:   s.contextSummary(sessionId),
		})
		if hErr != nil {
			// Roll the cool-down marker back so the next elevated turn
			// retries instead of being suppressed for the whole window.
			s.escalation.RollbackHandoff(sessionId, decidedAt)
			s.logger.Error("ChatService", "Handoff creation failed", map[string]interface{}{"error": hErr.Error()})
		} else {
			meta.HandoffId = handoffId.String()
			_ = s.convo.SetHandoff(sessionId, handoffId.String())
		}
	} else if decision.UpgradeTo != "" {
		if openHandoff, rErr := s.convo.HandoffFor(sessionId); rErr == nil && openHandoff != "" {
			if hid, pErr := uuid.Parse(openHandoff); pErr == nil {
				if uErr := s.handoff.UpgradeUrgency(context.WithoutCancel(ctx), hid, string(decision.UpgradeTo)); uErr != nil {
					s.logger.Error("ChatService", "Handoff upgrade failed", map[string]interface{}{"error": uErr.Error()})
				}
			}
		}
	}

	// 7. Generate and validate the reply, with one repair attempt before the
	// safe fallback.
	reply := s.generateValidated(ctx, sessionId, request, analysis, &assessment, repetition)

	// 8. Record the assistant turn.
	if err := s.convo.AppendAssistantTurn(sessionId, reply, &assessment); err != nil {
		return nil, err
	}

	// 9. Persist both turns. Failure is logged, never surfaced: the
	// conversation already happened.
	s.persistTurns(context.WithoutCancel(ctx), sessionId, request, analysis, assessment, reply)

	resp := &dto.SendMessageResponse{
		SessionId:       sessionId,
		Response:        reply,
		SentimentLabel:  string(analysis.Label),
		SentimentScore:  analysis.Score,
		Emotions:        analysis.Emotions,
		EscalationLevel: assessment.Level.String(),
	}
	if meta.HandoffId != "" || meta.Degraded {
		resp.Meta = meta
	}
	return resp, nil
}

// generateValidated runs responder -> validator with bounded repair.
func (s *chatService) generateValidated(
	ctx context.Context,
	sessionId string,
	request *dto.SendMessageRequest,
	analysis *analyzer.SentimentResult,
	assessment *escalation.Assessment,
	repetition bool,
) string {
	profile := s.convo.ProfileFor(request.UserId)

	var avoid []string
	if profile != nil {
		avoid = append(avoid, profile.LastReplies()...)
	}

	req := responder.Request{
		Message:      request.Message,
		Sentiment:    analysis,
		Assessment:   assessment,
		Profile:      profile,
		Region:       s.regionFor(request.UserId),
		Repetition:   repetition,
		AvoidReplies: avoid,
	}

	candidate := s.generator.Generate(ctx, req)
	for attempt := 0; attempt <= s.opts.RepairAttempts; attempt++ {
		result := s.validator.Validate(sessionId, candidate, request.Message, profile, analysis.Label, assessment.Level)
		if result.Valid {
			return candidate
		}
		s.logger.Warn("ChatService", "Reply rejected by validator", map[string]interface{}{
			"session_id": sessionId,
			"reasons":    result.Reasons,
			"attempt":    attempt,
		})
		if attempt == s.opts.RepairAttempts {
			break
		}
		req.AvoidReplies = append(req.AvoidReplies, candidate)
		candidate = s.generator.Generate(ctx, req)
	}
	return s.generator.SafeFallback()
}

func (s *chatService) GetHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error) {
	sid, err := uuid.Parse(sessionId)
	if err != nil {
		return nil, conversation.ErrSessionNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.HistoryRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sid},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChatHistoryResponse{SessionId: sessionId, Turns: make([]dto.ChatHistoryTurn, 0, len(turns))}
	for _, t := range turns {
		content, openErr := s.codec.Open(t.Content)
		if openErr != nil {
			s.logger.Error("ChatService", "Failed to unseal turn content", map[string]interface{}{"turn_id": t.Id})
			continue
		}
		resp.Turns = append(resp.Turns, dto.ChatHistoryTurn{
			Id:              t.Id,
			Role:            t.Role,
			Content:         content,
			SentimentLabel:  t.SentimentLabel,
			EscalationLevel: t.EscalationLevel,
			CreatedAt:       t.CreatedAt,
		})
	}
	return resp, nil
}

func (s *chatService) RecordFeedback(ctx context.Context, request *dto.FeedbackRequest) error {
	s.convo.RecordFeedback(request.UserId, request.Rating)
	return nil
}

// isRepeatedConcern checks whether the user already raised a near-identical
// message recently in this session.
func (s *chatService) isRepeatedConcern(sessionId, message string) bool {
	turns, err := s.convo.RecentContext(sessionId, s.opts.HistoryContext)
	if err != nil {
		return false
	}
	for _, t := range turns {
		if t.Role != conversation.RoleUser {
			continue
		}
		if conversation.SimilarityRatio(t.Text, message) > 0.8 {
			return true
		}
	}
	return false
}

func (s *chatService) regionFor(userId string) string {
	if userId != "" {
		if p := s.convo.ProfileFor(userId); p != nil {
			if region := p.HomeRegion(); region != "" {
				return region
			}
		}
	}
	return s.opts.DefaultRegion
}

// contextSummary builds the redacted context handed to counselors: roles,
// sentiment labels and timing, never raw message text.
func (s *chatService) contextSummary(sessionId string) string {
	turns, err := s.convo.RecentContext(sessionId, s.opts.HistoryContext)
	if err != nil {
		return ""
	}
	summary := ""
	for _, t := range turns {
		line := t.Timestamp.Format("15:04:05") + " " + t.Role
		if t.Analysis != nil {
			line += " [" + string(t.Analysis.Label) + "]"
		}
		summary += line + "\n"
	}
	return summary
}

func (s *chatService) persistTurns(
	ctx context.Context,
	sessionId string,
	request *dto.SendMessageRequest,
	analysis *analyzer.SentimentResult,
	assessment escalation.Assessment,
	reply string,
) {
	sid, err := uuid.Parse(sessionId)
	if err != nil {
		return
	}
	var uid uuid.UUID
	if request.UserId != "" {
		uid, _ = uuid.Parse(request.UserId)
	}

	userContent, err := s.codec.Seal(request.Message)
	if err != nil {
		s.logger.Error("ChatService", "Failed to seal user turn", map[string]interface{}{"error": err.Error()})
		return
	}
	replyContent, err := s.codec.Seal(reply)
	if err != nil {
		s.logger.Error("ChatService", "Failed to seal assistant turn", map[string]interface{}{"error": err.Error()})
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.HistoryRepository()

	userTurn := &entity.ChatTurn{
		SessionId:       sid,
		UserId:          uid,
		Role:            constant.ChatRoleUser,
		Content:         userContent,
		SentimentLabel:  string(analysis.Label),
		SentimentScore:  analysis.Score,
		Emotions:        analysis.Emotions,
		EscalationLevel: assessment.Level.String(),
	}
	if err := repo.Create(ctx, userTurn); err != nil {
		s.logger.Error("ChatService", "Failed to persist user turn", map[string]interface{}{"error": err.Error()})
		return
	}

	assistantTurn := &entity.ChatTurn{
		SessionId: sid,
		UserId:    uid,
		Role:      constant.ChatRoleAssistant,
		Content:   replyContent,
	}
	if err := repo.Create(ctx, assistantTurn); err != nil {
		s.logger.Error("ChatService", "Failed to persist assistant turn", map[string]interface{}{"error": err.Error()})
	}
}
