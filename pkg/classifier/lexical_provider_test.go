package classifier

import (
	"context"
	"testing"
)

func TestLexicalClassify(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel Label
	}{
		{
			name:      "clearly positive",
			text:      "I am so happy and grateful today, everything feels wonderful",
			wantLabel: LabelPositive,
		},
		{
			name:      "clearly negative",
			text:      "I feel sad and hopeless, everything is terrible",
			wantLabel: LabelNegative,
		},
		{
			name:      "no sentiment words",
			text:      "I went to the store and bought some bread",
			wantLabel: LabelNeutral,
		},
		{
			name:      "negated positive flips negative",
			text:      "I am not happy about any of this",
			wantLabel: LabelNegative,
		},
		{
			name:      "negative bigram",
			text:      "there is no hope left for me",
			wantLabel: LabelNegative,
		},
		{
			name:      "crisis vocabulary scores strongly negative",
			text:      "I want to kill myself",
			wantLabel: LabelNegative,
		},
	}

	p := NewLexicalProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Classify(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q (score %.2f), want %q", got.Label, got.Score, tt.wantLabel)
			}
			if got.Score < -1 || got.Score > 1 {
				t.Errorf("Score = %.2f, want within [-1,1]", got.Score)
			}
		})
	}
}

func TestLexicalClassifyDeterministic(t *testing.T) {
	p := NewLexicalProvider()
	first, _ := p.Classify(context.Background(), "I feel anxious and overwhelmed")
	second, _ := p.Classify(context.Background(), "I feel anxious and overwhelmed")
	if first.Score != second.Score || first.Label != second.Label {
		t.Errorf("identical input diverged: (%q %.3f) vs (%q %.3f)",
			first.Label, first.Score, second.Label, second.Score)
	}
}

func TestLexicalConfidenceMass(t *testing.T) {
	p := NewLexicalProvider()
	got, _ := p.Classify(context.Background(), "the weather report said rain")
	if got.Confidence[LabelNeutral] != 1 {
		t.Errorf("neutral confidence = %.2f, want 1", got.Confidence[LabelNeutral])
	}
}
