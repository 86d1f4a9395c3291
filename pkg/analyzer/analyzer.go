package analyzer

import (
	"context"
	"errors"
	"strings"
	"time"

	"mindwel-be/pkg/classifier"
)

// ErrInvalidInput is returned when the message is empty after trimming.
// This is the only error Analyze ever returns; classifier failures degrade
// to a neutral result instead of surfacing.
var ErrInvalidInput = errors.New("analyzer: message is empty")

// SentimentResult is the per-turn analysis attached to a user message.
// Emotions maps emotion name to a weight in [0,1]; weights need not sum to 1.
type SentimentResult struct {
	Label    classifier.Label   `json:"label"`
	Score    float64            `json:"score"`
	Emotions map[string]float64 `json:"emotions"`

	// Degraded is set when the classifier could not be reached and the
	// result fell back to neutral. Used for logging, never for control flow
	// outside the chat pipeline.
	Degraded bool `json:"-"`
}

// Thresholds tune how a raw classifier score maps to a label. They are
// configuration so the mapping can be adjusted without a code change.
type Thresholds struct {
	Positive         float64 // score above this is labeled positive
	Negative         float64 // score below this is labeled negative
	MinEmotionWeight float64 // emotion weights below this are dropped
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Positive:         0.05,
		Negative:         -0.05,
		MinEmotionWeight: 0.15,
	}
}

// Analyzer turns one raw message into a SentimentResult. It is stateless:
// identical input against the same provider yields identical output.
type Analyzer struct {
	provider   classifier.Provider
	thresholds Thresholds
	timeout    time.Duration
}

func New(provider classifier.Provider, thresholds Thresholds, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Analyzer{
		provider:   provider,
		thresholds: thresholds,
		timeout:    timeout,
	}
}

// Analyze classifies the message and attaches an emotion distribution.
// Classifier failure or timeout degrades to {neutral: 1.0}; the analysis
// stage must never cause the conversation to error out.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*SentimentResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	classification, err := a.provider.Classify(cctx, text)
	if err != nil {
		return neutralResult(true), nil
	}

	emotions := DetectEmotions(text, a.thresholds.MinEmotionWeight)
	if len(emotions) == 0 {
		emotions = map[string]float64{"neutral": 1.0}
	}

	return &SentimentResult{
		Label:    a.relabel(classification),
		Score:    clampScore(classification.Score),
		Emotions: emotions,
	}, nil
}

// relabel re-derives the label from the score so that label and score sign
// always agree with the configured thresholds, whatever the backend said.
func (a *Analyzer) relabel(c *classifier.Classification) classifier.Label {
	switch {
	case c.Score > a.thresholds.Positive:
		return classifier.LabelPositive
	case c.Score < a.thresholds.Negative:
		return classifier.LabelNegative
	default:
		return classifier.LabelNeutral
	}
}

func neutralResult(degraded bool) *SentimentResult {
	return &SentimentResult{
		Label:    classifier.LabelNeutral,
		Score:    0,
		Emotions: map[string]float64{"neutral": 1.0},
		Degraded: degraded,
	}
}

func clampScore(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
