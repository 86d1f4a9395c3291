package dto

import "time"

type MoodPatternResponse struct {
	Average          float64   `json:"average"`
	Trend            string    `json:"trend"` // "improving" | "declining" | "stable"
	Volatility       float64   `json:"volatility"`
	DominantEmotions []string  `json:"dominant_emotions,omitempty"`
	SampleCount      int       `json:"sample_count"`
	InsufficientData bool      `json:"insufficient_data"`
	WindowStart      time.Time `json:"window_start"`
	WindowEnd        time.Time `json:"window_end"`
}

type CreateMoodEntryRequest struct {
	Score int    `json:"score" validate:"required,min=1,max=5"`
	Note  string `json:"note" validate:"max=1000"`
}

type CreateJournalEntryRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

type JournalEntryResponse struct {
	Id             string             `json:"id"`
	SentimentLabel string             `json:"sentiment_label"`
	Emotions       map[string]float64 `json:"emotions,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}
