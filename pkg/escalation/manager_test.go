package escalation

import (
	"context"
	"testing"
	"time"

	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/classifier"
	"mindwel-be/pkg/moodtrend"
)

func negativeSentiment(score float64) *analyzer.SentimentResult {
	return &analyzer.SentimentResult{
		Label:    classifier.LabelNegative,
		Score:    score,
		Emotions: map[string]float64{},
	}
}

func TestAssessLevels(t *testing.T) {
	m := NewManager(15 * time.Minute)

	tests := []struct {
		name      string
		message   string
		sentiment *analyzer.SentimentResult
		want      Level
	}{
		{
			name:      "greeting",
			message:   "hi there",
			sentiment: &analyzer.SentimentResult{Label: classifier.LabelNeutral},
			want:      LevelNone,
		},
		{
			name:      "plan with timing",
			message:   "I'm going to kill myself tonight",
			sentiment: negativeSentiment(-0.9),
			want:      LevelCritical,
		},
		{
			name:      "acquired means",
			message:   "I bought pills and wrote a goodbye note",
			sentiment: negativeSentiment(-0.8),
			want:      LevelCritical,
		},
		{
			name:      "explicit ideation without timing",
			message:   "sometimes I think about suicide",
			sentiment: negativeSentiment(-0.7),
			want:      LevelSevere,
		},
		{
			name:      "self harm",
			message:   "I've been cutting myself again",
			sentiment: negativeSentiment(-0.6),
			want:      LevelSevere,
		},
		{
			name:      "abuse disclosure",
			message:   "my husband hits me when he drinks",
			sentiment: negativeSentiment(-0.5),
			want:      LevelSevere,
		},
		{
			name:      "hopelessness cluster",
			message:   "I feel hopeless and worthless, like nobody cares",
			sentiment: negativeSentiment(-0.6),
			want:      LevelModerate,
		},
		{
			name:      "short negative outburst",
			message:   "i give up",
			sentiment: negativeSentiment(-0.5),
			want:      LevelModerate,
		},
		{
			name:      "single concerning word",
			message:   "work has been fine but I feel a bit empty lately",
			sentiment: &analyzer.SentimentResult{Label: classifier.LabelNeutral, Score: -0.1},
			want:      LevelLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Assess(Input{Message: tt.message, Sentiment: tt.sentiment})
			if got.Level != tt.want {
				t.Errorf("Level = %s (triggers %v), want %s", got.Level, got.Triggers, tt.want)
			}
			if got.Level != LevelNone && len(got.Triggers) == 0 {
				t.Error("elevated level with no triggers recorded")
			}
		})
	}
}

func TestAssessDecliningMoodAmplifiesLowOnly(t *testing.T) {
	m := NewManager(15 * time.Minute)
	declining := &moodtrend.Signal{Trend: moodtrend.TrendDeclining}

	low := m.Assess(Input{
		Message:   "work has been fine but I feel a bit empty lately",
		Sentiment: &analyzer.SentimentResult{Label: classifier.LabelNeutral, Score: -0.1},
		Mood:      declining,
	})
	if low.Level != LevelModerate {
		t.Errorf("LOW with declining mood: Level = %s, want MODERATE", low.Level)
	}

	none := m.Assess(Input{
		Message:   "hello, how does this work",
		Sentiment: &analyzer.SentimentResult{Label: classifier.LabelNeutral},
		Mood:      declining,
	})
	if none.Level != LevelNone {
		t.Errorf("NONE with declining mood: Level = %s, want NONE", none.Level)
	}

	severe := m.Assess(Input{
		Message:   "sometimes I think about suicide",
		Sentiment: negativeSentiment(-0.8),
		Mood:      declining,
	})
	if severe.Level != LevelSevere {
		t.Errorf("SEVERE with declining mood: Level = %s, want SEVERE unchanged", severe.Level)
	}
}

func TestDecideHandoffCooldown(t *testing.T) {
	m := NewManager(15 * time.Minute)
	now := time.Now()

	first := m.DecideHandoff("s1", LevelSevere, now)
	if !first.Create || first.Urgency != UrgencyUrgent {
		t.Fatalf("first severe turn: %+v, want Create urgent", first)
	}

	repeat := m.DecideHandoff("s1", LevelSevere, now.Add(time.Minute))
	if repeat.Create || repeat.UpgradeTo != "" {
		t.Errorf("repeat inside window: %+v, want no action", repeat)
	}

	upgrade := m.DecideHandoff("s1", LevelCritical, now.Add(2*time.Minute))
	if upgrade.Create || upgrade.UpgradeTo != UrgencyEmergency {
		t.Errorf("critical inside window: %+v, want upgrade to emergency", upgrade)
	}

	downgrade := m.DecideHandoff("s1", LevelSevere, now.Add(3*time.Minute))
	if downgrade.Create || downgrade.UpgradeTo != "" {
		t.Errorf("severe after emergency upgrade: %+v, want no action", downgrade)
	}

	later := m.DecideHandoff("s1", LevelSevere, now.Add(20*time.Minute))
	if !later.Create {
		t.Errorf("after window expiry: %+v, want new handoff", later)
	}
}

func TestDecideHandoffBelowSevere(t *testing.T) {
	m := NewManager(15 * time.Minute)
	for _, level := range []Level{LevelNone, LevelLow, LevelModerate} {
		d := m.DecideHandoff("s1", level, time.Now())
		if d.Create || d.UpgradeTo != "" {
			t.Errorf("level %s: %+v, want no handoff", level, d)
		}
	}
}

func TestDecideHandoffPerSession(t *testing.T) {
	m := NewManager(15 * time.Minute)
	now := time.Now()

	if d := m.DecideHandoff("s1", LevelSevere, now); !d.Create {
		t.Fatal("s1 first handoff not created")
	}
	if d := m.DecideHandoff("s2", LevelSevere, now); !d.Create {
		t.Error("cool-down leaked across sessions")
	}
}

func TestRollbackHandoffAllowsRetry(t *testing.T) {
	m := NewManager(15 * time.Minute)
	now := time.Now()

	first := m.DecideHandoff("s1", LevelSevere, now)
	if !first.Create {
		t.Fatalf("first severe turn: %+v, want Create", first)
	}

	// Persistence failed: the marker must go so the next turn retries.
	m.RollbackHandoff("s1", now)
	retry := m.DecideHandoff("s1", LevelSevere, now.Add(time.Minute))
	if !retry.Create {
		t.Errorf("after rollback: %+v, want Create", retry)
	}

	// A stale rollback from the failed attempt must not clear the marker
	// the successful retry just recorded.
	m.RollbackHandoff("s1", now)
	repeat := m.DecideHandoff("s1", LevelSevere, now.Add(2*time.Minute))
	if repeat.Create {
		t.Errorf("stale rollback cleared the active marker: %+v", repeat)
	}
}

func TestClearSessionResetsCooldown(t *testing.T) {
	m := NewManager(15 * time.Minute)
	now := time.Now()

	m.DecideHandoff("s1", LevelSevere, now)
	m.ClearSession("s1")
	if d := m.DecideHandoff("s1", LevelSevere, now.Add(time.Minute)); !d.Create {
		t.Error("cleared session still under cool-down")
	}
}

func TestStaticDirectoryLookup(t *testing.T) {
	d := NewStaticDirectory()

	ctx := context.Background()

	us := d.Lookup(ctx, "US")
	if us.Phone != "988" {
		t.Errorf("US phone = %q, want 988", us.Phone)
	}

	unknown := d.Lookup(ctx, "ZZ")
	if unknown.Region != FallbackRegion {
		t.Errorf("unknown region resolved to %q, want %q", unknown.Region, FallbackRegion)
	}

	empty := d.Lookup(ctx, "")
	if empty.Region != FallbackRegion {
		t.Errorf("empty region resolved to %q, want %q", empty.Region, FallbackRegion)
	}
}
