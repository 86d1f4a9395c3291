package service

import (
	"context"
	"testing"
	"time"

	"mindwel-be/internal/dto"
	"mindwel-be/internal/entity"
	"mindwel-be/internal/pkg/securedata"
	"mindwel-be/internal/repository/contract"
	"mindwel-be/internal/repository/specification"
	"mindwel-be/internal/repository/unitofwork"
	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/classifier"
	"mindwel-be/pkg/moodtrend"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeWellnessRepo struct {
	moods    []*entity.MoodEntry
	journals []*entity.JournalEntry
	deleted  []uuid.UUID
}

func (r *fakeWellnessRepo) CreateMoodEntry(_ context.Context, m *entity.MoodEntry) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.moods = append(r.moods, m)
	return nil
}

func (r *fakeWellnessRepo) CreateJournalEntry(_ context.Context, j *entity.JournalEntry) error {
	if j.Id == uuid.Nil {
		j.Id = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	r.journals = append(r.journals, j)
	return nil
}

func (r *fakeWellnessRepo) DeleteAllByUserIdUnscoped(_ context.Context, userId uuid.UUID) error {
	r.deleted = append(r.deleted, userId)
	r.moods = nil
	r.journals = nil
	return nil
}

func (r *fakeWellnessRepo) FindMoodEntries(context.Context, ...specification.Specification) ([]*entity.MoodEntry, error) {
	return r.moods, nil
}

func (r *fakeWellnessRepo) FindJournalEntries(context.Context, ...specification.Specification) ([]*entity.JournalEntry, error) {
	return r.journals, nil
}

type insightUow struct {
	wellness contract.WellnessRepository
	history  contract.HistoryRepository
}

func (u *insightUow) Begin(context.Context) error                     { return nil }
func (u *insightUow) Commit() error                                   { return nil }
func (u *insightUow) Rollback() error                                 { return nil }
func (u *insightUow) HistoryRepository() contract.HistoryRepository   { return u.history }
func (u *insightUow) HandoffRepository() contract.HandoffRepository   { return nil }
func (u *insightUow) WellnessRepository() contract.WellnessRepository { return u.wellness }

type insightFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *insightFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

func newInsightFixture(t *testing.T) (IInsightService, *fakeWellnessRepo, *fakeHistoryRepo, *securedata.Codec) {
	t.Helper()
	codec, err := securedata.NewCodec("test-secret")
	assert.NoError(t, err)

	wellness := &fakeWellnessRepo{}
	history := &fakeHistoryRepo{}
	factory := &insightFactory{uow: &insightUow{wellness: wellness, history: history}}
	sentimentAnalyzer := analyzer.New(classifier.NewLexicalProvider(), analyzer.DefaultThresholds(), time.Second)

	svc := NewInsightService(factory, sentimentAnalyzer, codec, 7*24*time.Hour, 0.5, noopLogger{})
	return svc, wellness, history, codec
}

func TestMoodSignalReadsFresh(t *testing.T) {
	svc, wellness, _, _ := newInsightFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	signal, err := svc.MoodSignal(ctx, userId)
	assert.NoError(t, err)
	assert.True(t, signal.InsufficientData)

	// New entries must influence the very next call, no caching allowed.
	now := time.Now()
	for i, score := range []int{4, 4, 2, 2} {
		wellness.moods = append(wellness.moods, &entity.MoodEntry{
			UserId:    userId,
			Score:     score,
			CreatedAt: now.Add(-time.Duration(4-i) * time.Hour),
		})
	}

	signal, err = svc.MoodSignal(ctx, userId)
	assert.NoError(t, err)
	assert.False(t, signal.InsufficientData)
	assert.Equal(t, moodtrend.TrendDeclining, signal.Trend)
	assert.Equal(t, 4, signal.SampleCount)
}

func TestCreateJournalEntrySealsContent(t *testing.T) {
	svc, wellness, _, codec := newInsightFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	content := "today was awful, I felt miserable and alone"
	res, err := svc.CreateJournalEntry(ctx, userId, &dto.CreateJournalEntryRequest{Content: content})
	assert.NoError(t, err)
	assert.Equal(t, "negative", res.SentimentLabel)

	if assert.Len(t, wellness.journals, 1) {
		stored := wellness.journals[0]
		assert.NotEqual(t, content, stored.Content, "journal content must be sealed at rest")

		opened, err := codec.Open(stored.Content)
		assert.NoError(t, err)
		assert.Equal(t, content, opened)

		assert.NotEmpty(t, stored.SentimentLabel)
	}
}

func TestMoodPatternWindowBounds(t *testing.T) {
	svc, _, _, _ := newInsightFixture(t)

	res, err := svc.MoodPattern(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.True(t, res.InsufficientData)
	assert.True(t, res.WindowEnd.After(res.WindowStart))
}

func TestRequestDataDeletionRemovesEverything(t *testing.T) {
	svc, wellness, _, _ := newInsightFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	assert.NoError(t, svc.CreateMoodEntry(ctx, userId, &dto.CreateMoodEntryRequest{Score: 3}))
	assert.Len(t, wellness.moods, 1)

	assert.NoError(t, svc.RequestDataDeletion(ctx, userId))
	assert.Empty(t, wellness.moods)
	assert.Contains(t, wellness.deleted, userId)
}
