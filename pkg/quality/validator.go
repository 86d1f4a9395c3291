package quality

import (
	"regexp"
	"strings"

	"mindwel-be/pkg/classifier"
	"mindwel-be/pkg/conversation"
	"mindwel-be/pkg/escalation"
)

// Reason identifies one failed check. Checks are independent: a single
// validation can report several reasons.
type Reason string

const (
	ReasonTooShort     Reason = "too_short"
	ReasonTooLong      Reason = "too_long"
	ReasonDiagnosis    Reason = "clinical_diagnosis_language"
	ReasonRepetitive   Reason = "near_duplicate"
	ReasonToneMismatch Reason = "tone_mismatch"
	ReasonDismissive   Reason = "dismissive_language"
	ReasonEmpty        Reason = "empty_reply"
)

// Per-reason cost against the quality score. A near-duplicate must sink an
// otherwise clean reply below the default floor on its own, so the repair
// attempt is forced to produce something different.
var reasonWeights = map[Reason]float64{
	ReasonRepetitive: 0.35,
}

const defaultReasonWeight = 0.15

// Result is the structured validation outcome. Valid is false when the
// quality score drops below the configured floor; the caller then requests
// one repaired reply before falling back to the safe template.
type Result struct {
	Valid        bool     `json:"valid"`
	Reasons      []Reason `json:"reasons,omitempty"`
	QualityScore float64  `json:"quality_score"`
}

// Bounds tune the validator. All fields are configuration.
type Bounds struct {
	MinLength      int
	MaxLength      int
	ShortMaxLength int // cap applied when the profile prefers short replies
	ScoreFloor     float64
}

func DefaultBounds() Bounds {
	return Bounds{
		MinLength:      20,
		MaxLength:      600,
		ShortMaxLength: 200,
		ScoreFloor:     0.7,
	}
}

// The engine must never claim to diagnose. Matches "you have depression",
// "you are suffering from PTSD", "I diagnose ..." and similar phrasing.
var diagnosisRegex = regexp.MustCompile(`(?i)\b(you (have|are suffering from|show symptoms of)|i (can )?diagnos\w*|clinical(ly)? (depress|anxi)\w*|you('re| are) (bipolar|schizophrenic|clinically))\b`)

var dismissiveRegex = regexp.MustCompile(`(?i)just get over it|it'?s not that bad|other people have it worse|snap out of it|you'?re (being dramatic|overreacting)|stop thinking about`)

var cheerfulRegex = regexp.MustCompile(`(?i)\b(awesome|amazing|fantastic|great news|yay|woohoo|so exciting|congrat\w*)\b|!{2,}|😀|😄|🎉`)

// DedupChecker is the slice of the conversation manager the validator needs.
type DedupChecker interface {
	WasRecentlySent(sessionID, candidate string) (bool, error)
}

// Validator checks candidate replies before they reach the user.
type Validator struct {
	dedup  DedupChecker
	bounds Bounds
}

func NewValidator(dedup DedupChecker, bounds Bounds) *Validator {
	if bounds.MaxLength <= 0 {
		bounds = DefaultBounds()
	}
	return &Validator{dedup: dedup, bounds: bounds}
}

// Validate runs every check and aggregates reasons. Each failed check costs
// its weight; severe failures (diagnosis, empty) fail outright.
func (v *Validator) Validate(
	sessionID string,
	candidate string,
	userMessage string,
	profile *conversation.Profile,
	sentiment classifier.Label,
	level escalation.Level,
) Result {
	var reasons []Reason

	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return Result{Valid: false, Reasons: []Reason{ReasonEmpty}, QualityScore: 0}
	}

	reasons = append(reasons, v.checkLength(trimmed, profile)...)

	if diagnosisRegex.MatchString(trimmed) {
		return Result{Valid: false, Reasons: append(reasons, ReasonDiagnosis), QualityScore: 0}
	}

	if dismissiveRegex.MatchString(trimmed) {
		reasons = append(reasons, ReasonDismissive)
	}

	// Crisis replies are exempt from the duplicate check: the resource
	// message is deterministic per region, and repeating it beats swapping
	// it for a generic fallback.
	if v.dedup != nil && level < escalation.LevelSevere {
		if dup, err := v.dedup.WasRecentlySent(sessionID, trimmed); err == nil && dup {
			reasons = append(reasons, ReasonRepetitive)
		}
	}

	if toneMismatch(trimmed, sentiment, level) {
		reasons = append(reasons, ReasonToneMismatch)
	}

	score := 1.0
	for _, r := range reasons {
		weight, ok := reasonWeights[r]
		if !ok {
			weight = defaultReasonWeight
		}
		score -= weight
	}
	if score < 0 {
		score = 0
	}

	return Result{
		Valid:        score >= v.bounds.ScoreFloor,
		Reasons:      reasons,
		QualityScore: score,
	}
}

func (v *Validator) checkLength(candidate string, profile *conversation.Profile) []Reason {
	maxLen := v.bounds.MaxLength
	if profile != nil && profile.PrefersShortReplies() && v.bounds.ShortMaxLength > 0 {
		maxLen = v.bounds.ShortMaxLength
	}

	var reasons []Reason
	if len(candidate) < v.bounds.MinLength {
		reasons = append(reasons, ReasonTooShort)
	}
	if len(candidate) > maxLen {
		reasons = append(reasons, ReasonTooLong)
	}
	return reasons
}

// toneMismatch rejects cheerful replies when the user is in distress. At
// SEVERE/CRITICAL any upbeat phrasing is invalid regardless of sentiment.
func toneMismatch(candidate string, sentiment classifier.Label, level escalation.Level) bool {
	if level >= escalation.LevelSevere {
		return cheerfulRegex.MatchString(candidate)
	}
	if sentiment == classifier.LabelNegative {
		return cheerfulRegex.MatchString(candidate)
	}
	return false
}
