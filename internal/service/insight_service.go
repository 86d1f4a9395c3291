package service

import (
	"context"
	"time"

	"mindwel-be/internal/dto"
	"mindwel-be/internal/entity"
	"mindwel-be/internal/pkg/logger"
	"mindwel-be/internal/pkg/securedata"
	"mindwel-be/internal/repository/specification"
	"mindwel-be/internal/repository/unitofwork"
	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/moodtrend"

	"github.com/google/uuid"
)

type IInsightService interface {
	MoodSignal(ctx context.Context, userId uuid.UUID) (*moodtrend.Signal, error)
	MoodPattern(ctx context.Context, userId uuid.UUID) (*dto.MoodPatternResponse, error)
	CreateMoodEntry(ctx context.Context, userId uuid.UUID, request *dto.CreateMoodEntryRequest) error
	CreateJournalEntry(ctx context.Context, userId uuid.UUID, request *dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error)
	RequestDataDeletion(ctx context.Context, userId uuid.UUID) error
}

type insightService struct {
	uowFactory unitofwork.RepositoryFactory
	analyzer   *analyzer.Analyzer
	codec      *securedata.Codec
	window     time.Duration
	deadBand   float64
	logger     logger.ILogger
}

func NewInsightService(
	uowFactory unitofwork.RepositoryFactory,
	sentimentAnalyzer *analyzer.Analyzer,
	codec *securedata.Codec,
	window time.Duration,
	deadBand float64,
	log logger.ILogger,
) IInsightService {
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	return &insightService{
		uowFactory: uowFactory,
		analyzer:   sentimentAnalyzer,
		codec:      codec,
		window:     window,
		deadBand:   deadBand,
		logger:     log,
	}
}

// MoodSignal reads mood and journal history fresh on every call. No caching:
// an entry saved a second ago influences the very next request.
func (s *insightService) MoodSignal(ctx context.Context, userId uuid.UUID) (*moodtrend.Signal, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.WellnessRepository()
	cutoff := time.Now().Add(-s.window)

	moods, err := repo.FindMoodEntries(ctx,
		specification.ByUserID{UserID: userId},
		specification.Since{Time: cutoff},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	journals, err := repo.FindJournalEntries(ctx,
		specification.ByUserID{UserID: userId},
		specification.Since{Time: cutoff},
	)
	if err != nil {
		return nil, err
	}

	samples := make([]moodtrend.Sample, len(moods))
	for i, m := range moods {
		samples[i] = moodtrend.Sample{
			Score:      float64(m.Score),
			RecordedAt: m.CreatedAt,
		}
	}

	sentiments := make([]moodtrend.JournalSentiment, len(journals))
	for i, j := range journals {
		sentiments[i] = moodtrend.JournalSentiment{
			Label:      j.SentimentLabel,
			Emotions:   j.Emotions,
			RecordedAt: j.CreatedAt,
		}
	}

	signal := moodtrend.Analyze(samples, sentiments, s.window, s.deadBand, time.Now())
	return &signal, nil
}

func (s *insightService) MoodPattern(ctx context.Context, userId uuid.UUID) (*dto.MoodPatternResponse, error) {
	signal, err := s.MoodSignal(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &dto.MoodPatternResponse{
		Average:          signal.Average,
		Trend:            string(signal.Trend),
		Volatility:       signal.Volatility,
		DominantEmotions: signal.DominantEmotions,
		SampleCount:      signal.SampleCount,
		InsufficientData: signal.InsufficientData,
		WindowStart:      now.Add(-s.window),
		WindowEnd:        now,
	}, nil
}

func (s *insightService) CreateMoodEntry(ctx context.Context, userId uuid.UUID, request *dto.CreateMoodEntryRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.WellnessRepository().CreateMoodEntry(ctx, &entity.MoodEntry{
		UserId: userId,
		Score:  request.Score,
		Note:   request.Note,
	})
}

// CreateJournalEntry analyzes the content once at creation, then stores the
// content sealed with only the analysis in the clear.
func (s *insightService) CreateJournalEntry(ctx context.Context, userId uuid.UUID, request *dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error) {
	analysis, err := s.analyzer.Analyze(ctx, request.Content)
	if err != nil {
		return nil, err
	}

	sealed, err := s.codec.Seal(request.Content)
	if err != nil {
		return nil, err
	}

	journal := &entity.JournalEntry{
		UserId:         userId,
		Content:        sealed,
		SentimentLabel: string(analysis.Label),
		SentimentScore: analysis.Score,
		Emotions:       analysis.Emotions,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.WellnessRepository().CreateJournalEntry(ctx, journal); err != nil {
		return nil, err
	}

	return &dto.JournalEntryResponse{
		Id:             journal.Id.String(),
		SentimentLabel: journal.SentimentLabel,
		Emotions:       journal.Emotions,
		CreatedAt:      journal.CreatedAt,
	}, nil
}

// RequestDataDeletion hard-deletes everything stored for the user: chat
// turns, mood entries and journal entries. There is no undo.
func (s *insightService) RequestDataDeletion(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := uow.HistoryRepository().DeleteAllByUserIdUnscoped(ctx, userId); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.WellnessRepository().DeleteAllByUserIdUnscoped(ctx, userId); err != nil {
		_ = uow.Rollback()
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("InsightService", "User data deleted", map[string]interface{}{"user_id": userId})
	return nil
}
