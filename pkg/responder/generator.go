package responder

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/conversation"
	"mindwel-be/pkg/escalation"
)

// Request carries everything the generator needs to produce one reply. The
// generator itself is stateless; reply-avoidance history arrives in
// AvoidReplies.
type Request struct {
	Message    string
	Sentiment  *analyzer.SentimentResult
	Assessment *escalation.Assessment
	Profile    *conversation.Profile
	Region     string
	// Repetition is set when the user has sent a near-identical message
	// before; the reply acknowledges it instead of answering fresh.
	Repetition bool
	// AvoidReplies holds recent assistant replies; candidates too similar
	// to any of them are skipped.
	AvoidReplies []string
}

// Generator produces template-based replies. Escalated assessments override
// the emotional templates with graduated concern responses that embed
// region-appropriate crisis resources.
type Generator struct {
	directory escalation.Directory

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(directory escalation.Directory, seed int64) *Generator {
	return &Generator{
		directory: directory,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Generate returns a single reply. It never fails: if template selection
// cannot avoid repetition it returns the best remaining candidate, and the
// crisis path falls back to the static resource table inside the directory.
func (g *Generator) Generate(ctx context.Context, req Request) string {
	if req.Assessment != nil {
		switch {
		case req.Assessment.Level >= escalation.LevelSevere:
			return g.crisisResponse(ctx, req)
		case req.Assessment.Level == escalation.LevelModerate:
			return moderateConcernTemplate
		case req.Assessment.Level == escalation.LevelLow:
			return lowConcernTemplate
		}
	}

	reply := g.pick(g.candidates(req), req.AvoidReplies)

	if req.Repetition {
		reply = g.pickPrefix() + lowerFirst(reply)
	}

	if followUp := g.followUp(req); followUp != "" && !req.Repetition {
		reply = reply + " " + followUp
	}
	return reply
}

// SafeFallback is the guaranteed-valid reply used after a failed repair.
func (g *Generator) SafeFallback() string {
	return safeFallbackTemplate
}

func (g *Generator) candidates(req Request) []string {
	if req.Sentiment != nil {
		if emotion := analyzer.DominantEmotion(req.Sentiment.Emotions); emotion != "" {
			if templates, ok := emotionTemplates[emotion]; ok {
				return templates
			}
		}
		if templates, ok := sentimentTemplates[string(req.Sentiment.Label)]; ok {
			return templates
		}
	}
	return sentimentTemplates["neutral"]
}

// crisisResponse renders the severe/critical reply with concrete contact
// channels for the user's region.
func (g *Generator) crisisResponse(ctx context.Context, req Request) string {
	resource := g.directory.Lookup(ctx, req.Region)

	var b strings.Builder
	fmt.Fprintf(&b,
		"I'm very concerned about your safety right now. Please know that you're not alone, and immediate help is available. %s can provide immediate support:\n\n",
		resource.Name)
	if resource.Phone != "" {
		fmt.Fprintf(&b, "- Call: %s\n", resource.Phone)
	}
	if resource.Text != "" {
		fmt.Fprintf(&b, "- Text: %s\n", resource.Text)
	}
	if resource.Chat != "" {
		fmt.Fprintf(&b, "- Chat online: %s\n", resource.Chat)
	}
	b.WriteString("\nThese services are confidential and available 24/7. Would you like me to connect you with a human counselor who can continue this conversation with you?")
	return b.String()
}

// followUp appends a question tied to the user's most-mentioned topic, when
// a profile exists and the current message touches one of its topics.
func (g *Generator) followUp(req Request) string {
	if req.Profile == nil {
		return ""
	}
	mentioned := conversation.ExtractTopics(req.Message)
	for _, topic := range req.Profile.DominantTopics(3) {
		for _, m := range mentioned {
			if m == topic {
				if questions, ok := topicFollowUps[topic]; ok {
					return questions[g.intn(len(questions))]
				}
			}
		}
	}
	return ""
}

// pick chooses a candidate that is not too close to any recent reply. When
// every candidate collides it returns a random one anyway; the validator
// downstream decides whether that is acceptable.
func (g *Generator) pick(candidates, avoid []string) string {
	start := g.intn(len(candidates))
	for i := 0; i < len(candidates); i++ {
		candidate := candidates[(start+i)%len(candidates)]
		if !tooSimilar(candidate, avoid) {
			return candidate
		}
	}
	return candidates[start]
}

func (g *Generator) pickPrefix() string {
	return repetitionPrefixes[g.intn(len(repetitionPrefixes))]
}

func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func tooSimilar(candidate string, avoid []string) bool {
	for _, prev := range avoid {
		if conversation.SimilarityRatio(candidate, prev) > 0.85 {
			return true
		}
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	// Keep "I" capitalized; lowering it reads worse than the repetition.
	if strings.HasPrefix(s, "I ") || strings.HasPrefix(s, "I'") {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
