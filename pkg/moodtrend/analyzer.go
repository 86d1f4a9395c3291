package moodtrend

import (
	"math"
	"sort"
	"time"
)

// Trend describes the direction of a user's mood over the lookback window.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Sample is one historical mood record. Score uses the 1-5 mood scale.
type Sample struct {
	Score      float64
	RecordedAt time.Time
}

// JournalSentiment is the sentiment summary of one journal entry, consumed
// as an already-classified label from the journal store.
type JournalSentiment struct {
	Label      string // "positive" | "negative" | "neutral"
	Emotions   map[string]float64
	RecordedAt time.Time
}

// Signal is the derived mood pattern. It is recomputed on demand and never
// cached across requests, so new entries show up within one request.
type Signal struct {
	Average          float64  `json:"average_mood"`
	Trend            Trend    `json:"trend"`
	Volatility       float64  `json:"volatility"`
	DominantEmotions []string `json:"dominant_emotions"`
	SampleCount      int      `json:"sample_count"`
	InsufficientData bool     `json:"insufficient_data"`
}

// defaultDeadBand applies when the caller passes no dead band. On a 1-5
// scale, anything under half a point of movement is noise.
const defaultDeadBand = 0.5

// Analyze derives a Signal from mood samples and journal sentiment inside
// the lookback window. The dead band is the minimum difference between the
// recent-third mean and the earliest-third mean before movement counts as a
// trend; zero or negative falls back to the default. Pure function:
// identical input yields an identical Signal, with no side effects.
func Analyze(samples []Sample, journal []JournalSentiment, window time.Duration, deadBand float64, now time.Time) Signal {
	if deadBand <= 0 {
		deadBand = defaultDeadBand
	}
	cutoff := now.Add(-window)

	inWindow := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if !s.RecordedAt.Before(cutoff) {
			inWindow = append(inWindow, s)
		}
	}
	sort.Slice(inWindow, func(i, j int) bool {
		return inWindow[i].RecordedAt.Before(inWindow[j].RecordedAt)
	})

	signal := Signal{
		Trend:            TrendStable,
		SampleCount:      len(inWindow),
		DominantEmotions: dominantEmotions(journal, cutoff),
	}

	if len(inWindow) < 2 {
		signal.InsufficientData = true
		if len(inWindow) == 1 {
			signal.Average = inWindow[0].Score
		}
		return signal
	}

	scores := make([]float64, len(inWindow))
	for i, s := range inWindow {
		scores[i] = s.Score
	}

	signal.Average = mean(scores)
	signal.Volatility = stddev(scores, signal.Average)
	signal.Trend = trendOf(scores, deadBand)

	return signal
}

// trendOf compares the mean of the most recent third against the mean of the
// earliest third. Thirds overlap when fewer than 3 samples exist; that is
// acceptable since the dead band still suppresses noise.
func trendOf(scores []float64, deadBand float64) Trend {
	third := len(scores) / 3
	if third < 1 {
		third = 1
	}

	earliest := mean(scores[:third])
	recent := mean(scores[len(scores)-third:])

	switch {
	case recent-earliest > deadBand:
		return TrendImproving
	case earliest-recent > deadBand:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// dominantEmotions ranks emotions across in-window journal entries by total
// weight, breaking ties alphabetically for deterministic output.
func dominantEmotions(journal []JournalSentiment, cutoff time.Time) []string {
	totals := make(map[string]float64)
	for _, j := range journal {
		if j.RecordedAt.Before(cutoff) {
			continue
		}
		for emotion, weight := range j.Emotions {
			totals[emotion] += weight
		}
	}
	if len(totals) == 0 {
		return nil
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > 3 {
		names = names[:3]
	}
	return names
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64, avg float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		d := x - avg
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}
