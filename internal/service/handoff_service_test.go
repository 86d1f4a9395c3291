package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"mindwel-be/internal/constant"
	"mindwel-be/internal/dto"
	"mindwel-be/internal/entity"
	"mindwel-be/internal/repository/contract"
	"mindwel-be/internal/repository/specification"
	"mindwel-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeHandoffRepo struct {
	handoffs map[uuid.UUID]*entity.Handoff
}

func newFakeHandoffRepo() *fakeHandoffRepo {
	return &fakeHandoffRepo{handoffs: make(map[uuid.UUID]*entity.Handoff)}
}

func (r *fakeHandoffRepo) Create(_ context.Context, h *entity.Handoff) error {
	if h.Id == uuid.Nil {
		h.Id = uuid.New()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	stored := *h
	r.handoffs[h.Id] = &stored
	return nil
}

func (r *fakeHandoffRepo) Update(_ context.Context, h *entity.Handoff) error {
	stored := *h
	r.handoffs[h.Id] = &stored
	return nil
}

func (r *fakeHandoffRepo) FindById(_ context.Context, id uuid.UUID) (*entity.Handoff, error) {
	h, ok := r.handoffs[id]
	if !ok {
		return nil, nil
	}
	found := *h
	return &found, nil
}

func (r *fakeHandoffRepo) FindOne(context.Context, ...specification.Specification) (*entity.Handoff, error) {
	return nil, nil
}

func (r *fakeHandoffRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Handoff, error) {
	all := make([]*entity.Handoff, 0, len(r.handoffs))
	for _, h := range r.handoffs {
		found := *h
		all = append(all, &found)
	}
	return all, nil
}

func (r *fakeHandoffRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.handoffs)), nil
}

type handoffUow struct {
	repo contract.HandoffRepository
}

func (u *handoffUow) Begin(context.Context) error                     { return nil }
func (u *handoffUow) Commit() error                                   { return nil }
func (u *handoffUow) Rollback() error                                 { return nil }
func (u *handoffUow) HistoryRepository() contract.HistoryRepository   { return nil }
func (u *handoffUow) HandoffRepository() contract.HandoffRepository   { return u.repo }
func (u *handoffUow) WellnessRepository() contract.WellnessRepository { return nil }

type handoffFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *handoffFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

func newHandoffFixture() (IHandoffService, *fakeHandoffRepo, *gochannel.GoChannel) {
	repo := newFakeHandoffRepo()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewHandoffService(&handoffFactory{uow: &handoffUow{repo: repo}}, pubSub, noopLogger{})
	return svc, repo, pubSub
}

func TestHandoffCreatePersistsAndDispatches(t *testing.T) {
	svc, repo, pubSub := newHandoffFixture()
	ctx := context.Background()

	messages, err := pubSub.Subscribe(ctx, constant.HandoffDispatchTopic)
	assert.NoError(t, err)

	sessionId := uuid.NewString()
	id, err := svc.Create(ctx, &HandoffInput{
		SessionId: sessionId,
		Urgency:   "emergency",
		Triggers:  []string{"self_harm_plan"},
		Region:    "US",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	stored, _ := repo.FindById(ctx, id)
	if assert.NotNil(t, stored) {
		assert.Equal(t, entity.HandoffStatusPending, stored.Status)
		assert.Equal(t, "emergency", stored.Urgency)
	}

	select {
	case msg := <-messages:
		var notification dto.HandoffNotification
		assert.NoError(t, json.Unmarshal(msg.Payload, &notification))
		assert.Equal(t, id, notification.HandoffId)
		assert.Equal(t, "emergency", notification.Urgency)
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("no dispatch message published")
	}
}

func TestHandoffCreateRejectsBadSessionId(t *testing.T) {
	svc, _, _ := newHandoffFixture()
	_, err := svc.Create(context.Background(), &HandoffInput{SessionId: "not-a-uuid", Urgency: "urgent"})
	assert.Error(t, err)
}

func TestHandoffStatusLadder(t *testing.T) {
	svc, _, _ := newHandoffFixture()
	ctx := context.Background()

	id, err := svc.Create(ctx, &HandoffInput{SessionId: uuid.NewString(), Urgency: "urgent"})
	assert.NoError(t, err)

	// pending -> accepted
	res, err := svc.UpdateStatus(ctx, id, &dto.UpdateHandoffStatusRequest{Status: entity.HandoffStatusAccepted})
	assert.NoError(t, err)
	assert.Equal(t, entity.HandoffStatusAccepted, res.Status)

	// accepted -> resolved stamps ResolvedAt
	res, err = svc.UpdateStatus(ctx, id, &dto.UpdateHandoffStatusRequest{Status: entity.HandoffStatusResolved, Notes: "spoke with user"})
	assert.NoError(t, err)
	assert.Equal(t, entity.HandoffStatusResolved, res.Status)
	assert.NotNil(t, res.ResolvedAt)
	assert.Equal(t, "spoke with user", res.CounselorNotes)

	// resolved is terminal
	_, err = svc.UpdateStatus(ctx, id, &dto.UpdateHandoffStatusRequest{Status: entity.HandoffStatusAccepted})
	assert.Error(t, err)
}

func TestHandoffCancelFromPending(t *testing.T) {
	svc, _, _ := newHandoffFixture()
	ctx := context.Background()

	id, _ := svc.Create(ctx, &HandoffInput{SessionId: uuid.NewString(), Urgency: "urgent"})
	res, err := svc.UpdateStatus(ctx, id, &dto.UpdateHandoffStatusRequest{Status: entity.HandoffStatusCancelled})
	assert.NoError(t, err)
	assert.Equal(t, entity.HandoffStatusCancelled, res.Status)

	// cancelled is terminal too
	_, err = svc.UpdateStatus(ctx, id, &dto.UpdateHandoffStatusRequest{Status: entity.HandoffStatusAccepted})
	assert.Error(t, err)
}

func TestHandoffUpgradeSkipsClosed(t *testing.T) {
	svc, repo, _ := newHandoffFixture()
	ctx := context.Background()

	id, _ := svc.Create(ctx, &HandoffInput{SessionId: uuid.NewString(), Urgency: "urgent"})
	_, err := svc.UpdateStatus(ctx, id, &dto.UpdateHandoffStatusRequest{Status: entity.HandoffStatusCancelled})
	assert.NoError(t, err)

	assert.NoError(t, svc.UpgradeUrgency(ctx, id, "emergency"))
	stored, _ := repo.FindById(ctx, id)
	assert.Equal(t, "urgent", stored.Urgency, "closed handoff must keep its urgency")
}

func TestHandoffUpgradeOpen(t *testing.T) {
	svc, repo, _ := newHandoffFixture()
	ctx := context.Background()

	id, _ := svc.Create(ctx, &HandoffInput{SessionId: uuid.NewString(), Urgency: "urgent"})
	assert.NoError(t, svc.UpgradeUrgency(ctx, id, "emergency"))

	stored, _ := repo.FindById(ctx, id)
	assert.Equal(t, "emergency", stored.Urgency)
}

func TestHandoffGetByIdMissing(t *testing.T) {
	svc, _, _ := newHandoffFixture()
	res, err := svc.GetById(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, res)
}
