package escalation

import (
	"regexp"
	"strings"

	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/classifier"
	"mindwel-be/pkg/moodtrend"
)

// Input is everything a single turn evaluation sees. Mood may be nil when
// the user has no history (anonymous sessions).
type Input struct {
	Message   string
	Sentiment *analyzer.SentimentResult
	Mood      *moodtrend.Signal
}

// Rule is one row of the assessment table: if Match fires, the assessment is
// raised to at least Level. Rules are independent and evaluated once per
// turn; the highest matching level wins.
type Rule struct {
	Name  string
	Level Level
	Match func(in Input) bool
}

// Lexical crisis markers, weighted by specificity. A mentioned plan or
// method outranks a vague statement, which outranks general hopelessness.
var (
	planRegex = regexp.MustCompile(`(?i)\b(plan(ning)? to)\b.{0,30}\b(suicide|kill|end|take my life)\b` +
		`|\b(tonight|today|now|after this)\b.{0,30}\b(die|suicide|kill myself|end it)\b` +
		`|\b(kill myself|end my life|suicide)\b.{0,30}\b(tonight|today|now)\b` +
		`|\b(found|got|bought|have)\b.{0,20}\b(pills|rope|gun|knife)\b` +
		`|\b(wrote|writing|left)\b.{0,20}\b(note|letter|goodbye)\b`)

	crisisRegex = regexp.MustCompile(`(?i)\bkill myself\b|\bsuicid(e|al)\b|\bwant(ing)? to die\b` +
		`|\bend (my|this) life\b|\bno reason to live\b|\btake my (own )?life\b` +
		`|\bharm(ing)? myself\b|\bhurt(ing)? myself\b|\bcut(ting)? myself\b|\bself[- ]harm\b` +
		`|\bbetter off dead\b|\bdon'?t want to (be here|live|exist)\b`)

	abuseRegex = regexp.MustCompile(`(?i)\b(he|she|they|my \w+) (hits?|beats?|hurts?|abuses?) me\b` +
		`|\babus(ed|ing|ive)\b|\bassault(ed)?\b|\bafraid (of|to go home)\b.{0,20}\b(him|her|them)\b`)

	concerningRegex = regexp.MustCompile(`(?i)\bworthless\b|\btrapped\b|\bburden\b|\bnobody cares\b` +
		`|\bno point\b|\bno (hope|future)\b|\bhopeless\b|\bempty\b|\bgiv(e|ing) up\b|\bgave up\b` +
		`|\bcan'?t (take|handle|bear|go on)\b|\balone\b|\bisolat(ed|ion)\b|\btired of (living|everything|life)\b`)
)

// shortNegativeWordLimit: very short negative messages ("i give up") carry
// disproportionate weight, so they get their own rule instead of relying on
// the classifier score alone.
const shortNegativeWordLimit = 5

func countConcerning(lowered string) int {
	return len(concerningRegex.FindAllString(lowered, -1))
}

// defaultRules is the ordered assessment table. Order is documentation only;
// evaluation always takes the maximum matching level.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:  "self_harm_plan",
			Level: LevelCritical,
			Match: func(in Input) bool {
				return planRegex.MatchString(in.Message) && crisisRegex.MatchString(in.Message)
			},
		},
		{
			Name:  "immediate_timing",
			Level: LevelCritical,
			Match: func(in Input) bool {
				return planRegex.MatchString(in.Message)
			},
		},
		{
			Name:  "explicit_crisis_language",
			Level: LevelSevere,
			Match: func(in Input) bool {
				return crisisRegex.MatchString(in.Message)
			},
		},
		{
			Name:  "abuse_disclosure",
			Level: LevelSevere,
			Match: func(in Input) bool {
				return abuseRegex.MatchString(in.Message)
			},
		},
		{
			Name:  "hopelessness_cluster",
			Level: LevelModerate,
			Match: func(in Input) bool {
				return countConcerning(strings.ToLower(in.Message)) >= 3
			},
		},
		{
			Name:  "short_negative_message",
			Level: LevelModerate,
			Match: func(in Input) bool {
				if in.Sentiment == nil || in.Sentiment.Label != classifier.LabelNegative {
					return false
				}
				words := strings.Fields(in.Message)
				return len(words) <= shortNegativeWordLimit && countConcerning(strings.ToLower(in.Message)) >= 1
			},
		},
		{
			Name:  "strongly_negative_sentiment",
			Level: LevelModerate,
			Match: func(in Input) bool {
				return in.Sentiment != nil && in.Sentiment.Score < -0.7
			},
		},
		{
			Name:  "concerning_language",
			Level: LevelLow,
			Match: func(in Input) bool {
				return countConcerning(strings.ToLower(in.Message)) >= 1
			},
		},
		{
			Name:  "negative_sentiment",
			Level: LevelLow,
			Match: func(in Input) bool {
				return in.Sentiment != nil && in.Sentiment.Score < -0.4
			},
		},
		{
			Name:  "high_sadness_or_fear",
			Level: LevelLow,
			Match: func(in Input) bool {
				if in.Sentiment == nil {
					return false
				}
				return in.Sentiment.Emotions["sadness"] > 0.7 || in.Sentiment.Emotions["fear"] > 0.7
			},
		},
	}
}
