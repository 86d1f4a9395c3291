package conversation

import "testing"

func TestFingerprintNormalization(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		wantEqual bool
	}{
		{"case and punctuation ignored", "Hello there!", "hello, there", true},
		{"whitespace runs collapsed", "how  are\n you", "how are you", true},
		{"different words differ", "how are you", "how are they", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fingerprint(tt.a) == Fingerprint(tt.b)
			if got != tt.wantEqual {
				t.Errorf("Fingerprint(%q) == Fingerprint(%q) is %v, want %v", tt.a, tt.b, got, tt.wantEqual)
			}
		})
	}
}

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "I hear that things feel hard", "I hear that things feel hard", 1, 1},
		{"disjoint", "completely different words here", "nothing shared at all", 0, 0},
		{"partial overlap", "I feel sad today", "I feel happy today", 0.3, 0.9},
		{"empty input", "", "anything", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimilarityRatio(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("SimilarityRatio = %.2f, want within [%.2f, %.2f]", got, tt.min, tt.max)
			}
		})
	}
}

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"work and sleep", "my boss is awful and I can't sleep", []string{"sleep", "work"}},
		{"family", "I had a fight with my mom", []string{"family"}},
		{"nothing", "it rained all day", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTopics(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractTopics = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractTopics = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
