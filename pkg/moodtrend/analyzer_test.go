package moodtrend

import (
	"testing"
	"time"
)

func samplesAt(now time.Time, scores ...float64) []Sample {
	samples := make([]Sample, len(scores))
	for i, score := range scores {
		samples[i] = Sample{
			Score:      score,
			RecordedAt: now.Add(-time.Duration(len(scores)-i) * time.Hour),
		}
	}
	return samples
}

func TestAnalyzeTrend(t *testing.T) {
	now := time.Now()
	window := 7 * 24 * time.Hour

	tests := []struct {
		name   string
		scores []float64
		want   Trend
	}{
		{"declining", []float64{4, 4, 3, 2, 2}, TrendDeclining},
		{"improving", []float64{2, 2, 3, 4, 4}, TrendImproving},
		{"flat", []float64{3, 3, 3, 3, 3}, TrendStable},
		{"movement inside dead band", []float64{3, 3.2, 3, 3.3, 3.2}, TrendStable},
		{"two samples declining", []float64{4, 2}, TrendDeclining},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(samplesAt(now, tt.scores...), nil, window, 0, now)
			if got.Trend != tt.want {
				t.Errorf("Trend = %q, want %q", got.Trend, tt.want)
			}
			if got.InsufficientData {
				t.Error("InsufficientData = true, want false")
			}
		})
	}
}

func TestAnalyzeCustomDeadBand(t *testing.T) {
	now := time.Now()
	window := 7 * 24 * time.Hour
	scores := samplesAt(now, 4, 4, 3.7, 3.7)

	// Movement of 0.3 sits inside the default dead band but outside a
	// tightened one.
	if got := Analyze(scores, nil, window, 0, now); got.Trend != TrendStable {
		t.Errorf("default dead band: Trend = %q, want stable", got.Trend)
	}
	if got := Analyze(scores, nil, window, 0.2, now); got.Trend != TrendDeclining {
		t.Errorf("dead band 0.2: Trend = %q, want declining", got.Trend)
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	now := time.Now()
	window := 7 * 24 * time.Hour

	got := Analyze(nil, nil, window, 0, now)
	if !got.InsufficientData || got.SampleCount != 0 {
		t.Errorf("empty input: InsufficientData=%v SampleCount=%d", got.InsufficientData, got.SampleCount)
	}

	got = Analyze(samplesAt(now, 4), nil, window, 0, now)
	if !got.InsufficientData {
		t.Error("single sample: InsufficientData = false, want true")
	}
	if got.Average != 4 {
		t.Errorf("single sample: Average = %.1f, want 4", got.Average)
	}
}

func TestAnalyzeWindowFilter(t *testing.T) {
	now := time.Now()
	window := 7 * 24 * time.Hour

	samples := []Sample{
		{Score: 1, RecordedAt: now.Add(-30 * 24 * time.Hour)}, // outside window
		{Score: 1, RecordedAt: now.Add(-29 * 24 * time.Hour)}, // outside window
		{Score: 4, RecordedAt: now.Add(-2 * time.Hour)},
		{Score: 4, RecordedAt: now.Add(-1 * time.Hour)},
	}

	got := Analyze(samples, nil, window, 0, now)
	if got.SampleCount != 2 {
		t.Fatalf("SampleCount = %d, want 2 (old samples excluded)", got.SampleCount)
	}
	if got.Average != 4 {
		t.Errorf("Average = %.1f, want 4", got.Average)
	}
	if got.Trend != TrendStable {
		t.Errorf("Trend = %q, want stable", got.Trend)
	}
}

func TestAnalyzeVolatility(t *testing.T) {
	now := time.Now()
	window := 7 * 24 * time.Hour

	calm := Analyze(samplesAt(now, 3, 3, 3, 3), nil, window, 0, now)
	swinging := Analyze(samplesAt(now, 1, 5, 1, 5), nil, window, 0, now)
	if calm.Volatility != 0 {
		t.Errorf("flat series: Volatility = %.2f, want 0", calm.Volatility)
	}
	if swinging.Volatility <= calm.Volatility {
		t.Errorf("swinging volatility %.2f not above flat %.2f", swinging.Volatility, calm.Volatility)
	}
}

func TestAnalyzeDominantEmotions(t *testing.T) {
	now := time.Now()
	window := 7 * 24 * time.Hour

	journal := []JournalSentiment{
		{
			Label:      "negative",
			Emotions:   map[string]float64{"sadness": 0.8, "anxiety": 0.5},
			RecordedAt: now.Add(-time.Hour),
		},
		{
			Label:      "negative",
			Emotions:   map[string]float64{"sadness": 0.6, "anger": 0.7},
			RecordedAt: now.Add(-2 * time.Hour),
		},
		{
			Label:      "neutral",
			Emotions:   map[string]float64{"joy": 1.0},
			RecordedAt: now.Add(-30 * 24 * time.Hour), // outside window
		},
	}

	got := Analyze(samplesAt(now, 3, 3), journal, window, 0, now)
	if len(got.DominantEmotions) == 0 || got.DominantEmotions[0] != "sadness" {
		t.Errorf("DominantEmotions = %v, want sadness first", got.DominantEmotions)
	}
	for _, e := range got.DominantEmotions {
		if e == "joy" {
			t.Error("out-of-window journal emotion leaked into DominantEmotions")
		}
	}
}
