package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindwel-be/internal/constant"
	"mindwel-be/internal/dto"
	"mindwel-be/internal/entity"
	"mindwel-be/internal/pkg/securedata"
	"mindwel-be/internal/repository/contract"
	"mindwel-be/internal/repository/memory"
	"mindwel-be/internal/repository/specification"
	"mindwel-be/internal/repository/unitofwork"
	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/classifier"
	"mindwel-be/pkg/conversation"
	"mindwel-be/pkg/escalation"
	"mindwel-be/pkg/moodtrend"
	"mindwel-be/pkg/quality"
	"mindwel-be/pkg/responder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- test doubles ---

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeHistoryRepo struct {
	turns []*entity.ChatTurn
}

func (r *fakeHistoryRepo) Create(_ context.Context, turn *entity.ChatTurn) error {
	if turn.Id == uuid.Nil {
		turn.Id = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	r.turns = append(r.turns, turn)
	return nil
}

func (r *fakeHistoryRepo) DeleteBySessionId(context.Context, uuid.UUID) error { return nil }
func (r *fakeHistoryRepo) DeleteAllByUserIdUnscoped(context.Context, uuid.UUID) error {
	return nil
}
func (r *fakeHistoryRepo) FindOne(context.Context, ...specification.Specification) (*entity.ChatTurn, error) {
	return nil, nil
}
func (r *fakeHistoryRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ChatTurn, error) {
	return r.turns, nil
}
func (r *fakeHistoryRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.turns)), nil
}

type fakeUow struct {
	history contract.HistoryRepository
}

func (u *fakeUow) Begin(context.Context) error                     { return nil }
func (u *fakeUow) Commit() error                                   { return nil }
func (u *fakeUow) Rollback() error                                 { return nil }
func (u *fakeUow) HistoryRepository() contract.HistoryRepository   { return u.history }
func (u *fakeUow) HandoffRepository() contract.HandoffRepository   { return nil }
func (u *fakeUow) WellnessRepository() contract.WellnessRepository { return nil }

type fakeFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type handoffCall struct {
	input   *HandoffInput
	upgrade string
}

type fakeHandoffService struct {
	creates   []*HandoffInput
	upgrades  []handoffCall
	nextId    uuid.UUID
	createErr error
}

func (f *fakeHandoffService) Create(_ context.Context, input *HandoffInput) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.creates = append(f.creates, input)
	if f.nextId == uuid.Nil {
		f.nextId = uuid.New()
	}
	return f.nextId, nil
}

func (f *fakeHandoffService) UpgradeUrgency(_ context.Context, id uuid.UUID, urgency string) error {
	f.upgrades = append(f.upgrades, handoffCall{upgrade: urgency})
	return nil
}

func (f *fakeHandoffService) List(context.Context, string) ([]*dto.HandoffResponse, error) {
	return nil, nil
}
func (f *fakeHandoffService) GetById(context.Context, uuid.UUID) (*dto.HandoffResponse, error) {
	return nil, nil
}
func (f *fakeHandoffService) UpdateStatus(context.Context, uuid.UUID, *dto.UpdateHandoffStatusRequest) (*dto.HandoffResponse, error) {
	return nil, nil
}

type fixedMoodProvider struct {
	signal *moodtrend.Signal
}

func (p *fixedMoodProvider) MoodSignal(context.Context, uuid.UUID) (*moodtrend.Signal, error) {
	return p.signal, nil
}

type chatFixture struct {
	service IChatService
	history *fakeHistoryRepo
	handoff *fakeHandoffService
	codec   *securedata.Codec
}

func newChatFixture(t *testing.T, mood MoodSignalProvider) *chatFixture {
	t.Helper()

	codec, err := securedata.NewCodec("test-secret")
	assert.NoError(t, err)

	history := &fakeHistoryRepo{}
	handoff := &fakeHandoffService{}
	factory := &fakeFactory{uow: &fakeUow{history: history}}

	sessionRepo := memory.NewSessionRepository(time.Hour, time.Hour)
	profileRepo := memory.NewProfileRepository(time.Hour)
	convo := conversation.NewManager(sessionRepo, profileRepo, conversation.DefaultOptions())

	sentimentAnalyzer := analyzer.New(classifier.NewLexicalProvider(), analyzer.DefaultThresholds(), time.Second)
	escalationManager := escalation.NewManager(15 * time.Minute)
	generator := responder.NewGenerator(escalation.NewStaticDirectory(), 1)
	validator := quality.NewValidator(convo, quality.DefaultBounds())

	svc := NewChatService(
		sentimentAnalyzer,
		escalationManager,
		convo,
		generator,
		validator,
		mood,
		handoff,
		factory,
		codec,
		noopLogger{},
		ChatServiceOptions{RepairAttempts: 1, HistoryContext: 10, DefaultRegion: "US"},
	)

	return &chatFixture{service: svc, history: history, handoff: handoff, codec: codec}
}

// --- tests ---

func TestSendMessageNeutralTurn(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	opened, err := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{})
	assert.NoError(t, err)

	res, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "I went to the store and bought some bread today",
	})
	assert.NoError(t, err)
	assert.Equal(t, opened.SessionId, res.SessionId)
	assert.NotEmpty(t, res.Response)
	assert.Equal(t, "neutral", res.SentimentLabel)
	assert.Equal(t, "NONE", res.EscalationLevel)
	assert.Nil(t, res.Meta)
	assert.Empty(t, fx.handoff.creates)
}

func TestSendMessageEmptyRejected(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	opened, _ := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{})
	_, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "   ",
	})
	assert.ErrorIs(t, err, analyzer.ErrInvalidInput)
}

func TestSendMessageCrisisCreatesHandoff(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	opened, _ := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{})
	res, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "I'm going to kill myself tonight",
	})
	assert.NoError(t, err)
	assert.Equal(t, "CRITICAL", res.EscalationLevel)
	assert.Contains(t, res.Response, "988")

	if assert.Len(t, fx.handoff.creates, 1) {
		created := fx.handoff.creates[0]
		assert.Equal(t, string(escalation.UrgencyEmergency), created.Urgency)
		assert.Equal(t, opened.SessionId, created.SessionId)
		assert.NotEmpty(t, created.Triggers)
	}
	if assert.NotNil(t, res.Meta) {
		assert.NotEmpty(t, res.Meta.HandoffId)
	}
}

func TestSendMessageHandoffCooldown(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	opened, _ := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{})

	_, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "I'm going to kill myself tonight",
	})
	assert.NoError(t, err)

	_, err = fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "I really am going to kill myself tonight",
	})
	assert.NoError(t, err)

	assert.Len(t, fx.handoff.creates, 1, "cool-down must suppress the second handoff")
	assert.Empty(t, fx.handoff.upgrades, "same urgency must not upgrade")
}

func TestSendMessageHandoffRetriesAfterCreateFailure(t *testing.T) {
	fx := newChatFixture(t, nil)
	fx.handoff.createErr = errors.New("handoff store unavailable")
	ctx := context.Background()

	opened, _ := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{})

	// The failed creation must not surface to the user...
	res, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "I'm going to kill myself tonight",
	})
	assert.NoError(t, err)
	assert.Nil(t, res.Meta)
	assert.Empty(t, fx.handoff.creates)

	// ...and must not burn the cool-down window: the next elevated turn
	// tries again and gets a handoff on record.
	fx.handoff.createErr = nil
	res, err = fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "I really am going to kill myself tonight",
	})
	assert.NoError(t, err)
	if assert.Len(t, fx.handoff.creates, 1) {
		assert.Equal(t, string(escalation.UrgencyEmergency), fx.handoff.creates[0].Urgency)
	}
	if assert.NotNil(t, res.Meta) {
		assert.NotEmpty(t, res.Meta.HandoffId)
	}
}

func TestSendMessageSevereThenCriticalUpgrades(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	opened, _ := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{})

	_, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "sometimes I think about suicide",
	})
	assert.NoError(t, err)
	assert.Len(t, fx.handoff.creates, 1)
	assert.Equal(t, string(escalation.UrgencyUrgent), fx.handoff.creates[0].Urgency)

	_, err = fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "I'm going to kill myself tonight",
	})
	assert.NoError(t, err)
	assert.Len(t, fx.handoff.creates, 1, "upgrade must not create a second handoff")
	if assert.Len(t, fx.handoff.upgrades, 1) {
		assert.Equal(t, string(escalation.UrgencyEmergency), fx.handoff.upgrades[0].upgrade)
	}
}

func TestSendMessageRepeatedModerateGetsDifferentReply(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	opened, _ := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{})

	first, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "I feel hopeless and worthless, like nobody cares",
	})
	assert.NoError(t, err)
	assert.Equal(t, "MODERATE", first.EscalationLevel)

	// A second moderate turn renders the same template candidate; the
	// validator must reject the duplicate so the user never reads the
	// identical reply twice in a row.
	second, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   "i give up",
	})
	assert.NoError(t, err)
	assert.Equal(t, "MODERATE", second.EscalationLevel)
	assert.NotEmpty(t, second.Response)
	assert.NotEqual(t, first.Response, second.Response)
}

func TestSendMessageUnknownSessionReopens(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	res, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: uuid.NewString(),
		Message:   "hello there",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.SessionId)
}

func TestSendMessageDecliningMoodAmplifies(t *testing.T) {
	declining := &fixedMoodProvider{signal: &moodtrend.Signal{Trend: moodtrend.TrendDeclining}}
	fx := newChatFixture(t, declining)
	ctx := context.Background()

	userId := uuid.NewString()
	opened, _ := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{UserId: userId})

	res, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		UserId:    userId,
		Message:   "work has been fine but I feel a bit empty lately",
	})
	assert.NoError(t, err)
	assert.Equal(t, "MODERATE", res.EscalationLevel)
}

func TestTurnsPersistedSealed(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	opened, _ := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{})
	message := "I had a difficult conversation with my sister"
	_, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   message,
	})
	assert.NoError(t, err)

	if assert.Len(t, fx.history.turns, 2) {
		userTurn := fx.history.turns[0]
		assert.Equal(t, constant.ChatRoleUser, userTurn.Role)
		assert.NotEqual(t, message, userTurn.Content, "content must be sealed at rest")

		opened, err := fx.codec.Open(userTurn.Content)
		assert.NoError(t, err)
		assert.Equal(t, message, opened)

		assert.Equal(t, constant.ChatRoleAssistant, fx.history.turns[1].Role)
	}
}

func TestGetHistoryUnseals(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	opened, _ := fx.service.OpenSession(ctx, &dto.OpenSessionRequest{})
	message := "my boss yelled at me again today"
	_, err := fx.service.SendMessage(ctx, &dto.SendMessageRequest{
		SessionId: opened.SessionId,
		Message:   message,
	})
	assert.NoError(t, err)

	history, err := fx.service.GetHistory(ctx, opened.SessionId)
	assert.NoError(t, err)
	if assert.Len(t, history.Turns, 2) {
		assert.Equal(t, message, history.Turns[0].Content)
	}
}

func TestGetHistoryInvalidSession(t *testing.T) {
	fx := newChatFixture(t, nil)
	_, err := fx.service.GetHistory(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)
}
