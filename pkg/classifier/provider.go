package classifier

import (
	"context"
	"errors"
)

// Label is the sentiment polarity assigned to a message.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

var (
	// ErrTimeout indicates the classifier call exceeded its deadline.
	ErrTimeout = errors.New("classifier: request timed out")

	// ErrUnavailable indicates the classifier backend could not be reached
	// or returned an unusable result.
	ErrUnavailable = errors.New("classifier: backend unavailable")
)

// Classification is the raw output of a sentiment classifier.
// Score is in [-1, 1] where negative values mean negative polarity.
// Confidence holds the per-label probability mass.
type Classification struct {
	Label      Label
	Score      float64
	Confidence map[Label]float64
}

// Provider abstracts the sentiment classification backend.
// Implementations must respect ctx cancellation and deadlines.
type Provider interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}
