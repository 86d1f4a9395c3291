package analyzer

import "strings"

// emotionLexicon maps emotion names to the word stems that signal them.
// Stem matching (strings.Contains on the lowered message) deliberately
// catches inflections: "depress" matches depressed/depressing/depression.
var emotionLexicon = map[string][]string{
	"anger":          {"angry", "mad", "furious", "rage", "annoyed", "frustrat", "pissed"},
	"sadness":        {"sad", "down", "depress", "unhappy", "miserable", "lonely", "cry", "grief"},
	"anxiety":        {"anxious", "worry", "worried", "nervous", "stress", "tense", "overwhelm", "panic"},
	"fear":           {"afraid", "scared", "terrified", "frightened", "fear"},
	"joy":            {"happy", "glad", "joy", "excited", "delighted", "cheerful", "grateful"},
	"confusion":      {"confus", "unsure", "uncertain", "perplex", "lost"},
	"disappointment": {"disappoint", "let down", "failed", "regret"},
	"guilt":          {"guilt", "ashamed", "shame", "blame myself"},
	"surprise":       {"surprised", "shocked", "unexpected", "cant believe", "can't believe"},
}

// wordHits counts how many distinct stems of an emotion appear. More stems
// in one message raise the weight toward 1.
func wordHits(lowered string, stems []string) int {
	hits := 0
	for _, stem := range stems {
		if strings.Contains(lowered, stem) {
			hits++
		}
	}
	return hits
}

// DetectEmotions builds the emotion distribution for a message. Weights are
// in [0,1] and independent per emotion; they do not sum to 1. Emotions whose
// weight falls below minWeight are dropped.
func DetectEmotions(text string, minWeight float64) map[string]float64 {
	lowered := strings.ToLower(text)
	result := make(map[string]float64)

	for emotion, stems := range emotionLexicon {
		hits := wordHits(lowered, stems)
		if hits == 0 {
			continue
		}
		weight := 0.5 + 0.25*float64(hits-1)
		if weight > 1 {
			weight = 1
		}
		if weight >= minWeight {
			result[emotion] = weight
		}
	}

	return result
}

// DominantEmotion returns the highest-weight emotion, or "" when none.
func DominantEmotion(emotions map[string]float64) string {
	best := ""
	bestWeight := 0.0
	for emotion, weight := range emotions {
		if weight > bestWeight || (weight == bestWeight && emotion < best) {
			best = emotion
			bestWeight = weight
		}
	}
	return best
}
