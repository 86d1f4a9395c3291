package conversation

import (
	"sync"
	"time"

	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/escalation"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message exchange. Immutable once appended: analysis is
// attached at append time and never recomputed.
type Turn struct {
	Role      string                    `json:"role"`
	Text      string                    `json:"text"`
	Timestamp time.Time                 `json:"timestamp"`
	Analysis  *analyzer.SentimentResult `json:"analysis,omitempty"`
}

// Session is the ephemeral per-conversation state. All mutation goes through
// the Manager while holding mu; other components only ever see copies.
// Eviction is whole-session only, via the TTL store.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"` // empty for anonymous sessions
	Turns        []Turn    `json:"turns"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`

	// Fingerprints of recent assistant replies, newest last. Bounded ring
	// used to reject near-duplicate replies.
	ReplyFingerprints []string `json:"reply_fingerprints"`

	// LastAssessment is retained for audit and to suppress repeated
	// severe-response spam within the session.
	LastAssessment *escalation.Assessment `json:"last_assessment,omitempty"`

	// HandoffID of the open handoff created in this session, if any.
	HandoffID string `json:"handoff_id,omitempty"`

	mu sync.Mutex
}

// Profile is long-lived per-user state, persisted across sessions in the
// TTL cache. Mutated incrementally after each turn. The same pointer is
// shared across concurrent sessions of one user, so every read and write
// goes through mu, mirroring the Session discipline.
type Profile struct {
	UserID             string         `json:"user_id"`
	MessageCount       int            `json:"message_count"`
	Topics             map[string]int `json:"topics"`
	CommunicationStyle string         `json:"communication_style"` // "casual" | "formal"
	LengthPreference   string         `json:"length_preference"`   // "short" | "long" | ""
	RecentReplies      []string       `json:"recent_replies"`
	FeedbackRatings    []int          `json:"feedback_ratings"`
	Region             string         `json:"region,omitempty"`
	LastActiveAt       time.Time      `json:"last_active_at"`

	mu sync.Mutex
}

// PrefersShortReplies reports whether feedback has settled on short replies.
func (p *Profile) PrefersShortReplies() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.LengthPreference == "short"
}

// LastReplies returns a copy of the recent assistant replies.
func (p *Profile) LastReplies() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	replies := make([]string, len(p.RecentReplies))
	copy(replies, p.RecentReplies)
	return replies
}

// HomeRegion returns the region recorded for crisis-resource lookups, or ""
// when none was ever set.
func (p *Profile) HomeRegion() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Region
}

// DominantTopics returns up to n topics by descending mention count.
func (p *Profile) DominantTopics(n int) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	type entry struct {
		topic string
		count int
	}
	entries := make([]entry, 0, len(p.Topics))
	for t, c := range p.Topics {
		entries = append(entries, entry{t, c})
	}
	// Insertion sort; topic maps are small.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0; j-- {
			a, b := entries[j-1], entries[j]
			if b.count > a.count || (b.count == a.count && b.topic < a.topic) {
				entries[j-1], entries[j] = b, a
			} else {
				break
			}
		}
	}
	if n > len(entries) {
		n = len(entries)
	}
	topics := make([]string, n)
	for i := 0; i < n; i++ {
		topics[i] = entries[i].topic
	}
	return topics
}

// SessionRepository stores sessions with TTL-based idle expiry.
type SessionRepository interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// ProfileRepository stores user profiles.
type ProfileRepository interface {
	Save(profile *Profile)
	Get(userID string) (*Profile, bool)
}
