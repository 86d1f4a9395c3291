package classifier

import (
	"context"
	"math"
	"strings"
)

// LexicalProvider is a deterministic keyword-valence classifier. It needs no
// network access and never fails, which makes it both a standalone backend
// for development and the degraded fallback when the model service is down.
type LexicalProvider struct{}

func NewLexicalProvider() Provider {
	return &LexicalProvider{}
}

var positiveTerms = map[string]float64{
	"happy": 1.0, "glad": 0.8, "great": 0.8, "good": 0.6, "better": 0.6,
	"love": 1.0, "loved": 1.0, "wonderful": 1.0, "excited": 0.9, "joy": 1.0,
	"grateful": 0.9, "thankful": 0.9, "proud": 0.8, "calm": 0.6, "relieved": 0.7,
	"hopeful": 0.8, "amazing": 0.9, "awesome": 0.9, "fine": 0.4, "okay": 0.3,
}

var negativeTerms = map[string]float64{
	"sad": 0.8, "unhappy": 0.8, "depressed": 1.0, "miserable": 1.0,
	"angry": 0.8, "mad": 0.7, "furious": 0.9, "upset": 0.7, "annoyed": 0.6,
	"anxious": 0.8, "worried": 0.7, "scared": 0.8, "afraid": 0.8, "terrified": 1.0,
	"lonely": 0.8, "alone": 0.6, "hopeless": 1.0, "worthless": 1.0, "empty": 0.8,
	"hate": 0.9, "awful": 0.9, "terrible": 0.9, "hurt": 0.7, "pain": 0.7,
	"tired": 0.5, "exhausted": 0.7, "stressed": 0.7, "overwhelmed": 0.8,
	"cry": 0.7, "crying": 0.7, "die": 1.0, "suicide": 1.0, "suicidal": 1.0,
	"trapped": 0.9, "burden": 0.9,
}

var negativeBigrams = map[string]float64{
	"give up":     0.9,
	"giving up":   0.9,
	"gave up":     0.8,
	"kill myself": 1.0,
	"hurt myself": 1.0,
	"end it":      0.9,
	"no point":    0.9,
	"no hope":     1.0,
	"no reason":   0.8,
	"cant take":   0.9,
	"can't take":  0.9,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "dont": true, "don't": true,
	"cant": true, "can't": true, "wont": true, "won't": true, "isnt": true, "isn't": true,
}

// Classify scores a message by summing keyword valences. Negation flips the
// valence of the following term. Output is stable for identical input.
func (p *LexicalProvider) Classify(_ context.Context, text string) (*Classification, error) {
	lowered := strings.ToLower(text)
	words := strings.Fields(lowered)

	var valence float64
	var hits int

	for phrase, weight := range negativeBigrams {
		if strings.Contains(lowered, phrase) {
			valence -= weight
			hits++
		}
	}

	negated := false
	for _, word := range words {
		trimmed := strings.Trim(word, ".,!?;:'\"")
		if negations[trimmed] {
			negated = true
			continue
		}
		if w, ok := positiveTerms[trimmed]; ok {
			if negated {
				valence -= w
			} else {
				valence += w
			}
			hits++
		} else if w, ok := negativeTerms[trimmed]; ok {
			if negated {
				valence += w * 0.5
			} else {
				valence -= w
			}
			hits++
		}
		negated = false
	}

	// Squash into [-1,1]. tanh keeps single strong words meaningful while
	// preventing long rants from saturating at exactly +-1 on one hit.
	score := math.Tanh(valence)

	label := LabelNeutral
	if hits > 0 {
		if score > 0.1 {
			label = LabelPositive
		} else if score < -0.1 {
			label = LabelNegative
		}
	}

	return &Classification{
		Label:      label,
		Score:      score,
		Confidence: confidenceFromScore(score, hits),
	}, nil
}

func confidenceFromScore(score float64, hits int) map[Label]float64 {
	if hits == 0 {
		return map[Label]float64{
			LabelPositive: 0,
			LabelNegative: 0,
			LabelNeutral:  1,
		}
	}

	magnitude := math.Abs(score)
	conf := map[Label]float64{
		LabelPositive: 0,
		LabelNegative: 0,
		LabelNeutral:  1 - magnitude,
	}
	if score > 0 {
		conf[LabelPositive] = magnitude
	} else {
		conf[LabelNegative] = magnitude
	}
	return conf
}
