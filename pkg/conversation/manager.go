package conversation

import (
	"errors"
	"sync"
	"time"

	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/escalation"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown or expired session id.
// The caller must open a new session and retry.
var ErrSessionNotFound = errors.New("conversation: session not found")

// Options bound the in-session memory.
type Options struct {
	HistoryLimit   int // max turns kept per session
	DedupRingSize  int // recent assistant reply fingerprints kept
	RecentReplies  int // raw replies kept on the profile for tone checks
	SimilarityMax  float64
	ProfileTopicsN int
}

func DefaultOptions() Options {
	return Options{
		HistoryLimit:   40,
		DedupRingSize:  5,
		RecentReplies:  5,
		SimilarityMax:  0.85,
		ProfileTopicsN: 10,
	}
}

// Manager owns all mutable conversation state. Per-session mutation is
// linearized by the session's own mutex; cross-session operations need no
// coordination.
type Manager struct {
	sessions SessionRepository
	profiles ProfileRepository
	opts     Options

	// createMu serializes lazy profile creation so two concurrent requests
	// for a new user end up sharing one Profile instead of racing on Save.
	createMu sync.Mutex
}

func NewManager(sessions SessionRepository, profiles ProfileRepository, opts Options) *Manager {
	if opts.HistoryLimit <= 0 {
		opts = DefaultOptions()
	}
	return &Manager{
		sessions: sessions,
		profiles: profiles,
		opts:     opts,
	}
}

// OpenSession creates a fresh session. userID may be empty for anonymous
// conversations.
func (m *Manager) OpenSession(userID string) string {
	now := time.Now()
	session := &Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	m.sessions.Save(session)
	return session.ID
}

// Resolve returns the session or ErrSessionNotFound.
func (m *Manager) Resolve(sessionID string) (*Session, error) {
	session, ok := m.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// AppendUserTurn appends the user message with its analysis. The turn is
// immutable from here on; the attached analysis is never recomputed.
func (m *Manager) AppendUserTurn(sessionID, text string, analysis *analyzer.SentimentResult) (*Turn, error) {
	session, err := m.Resolve(sessionID)
	if err != nil {
		return nil, err
	}

	turn := Turn{
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
		Analysis:  analysis,
	}

	session.mu.Lock()
	session.Turns = appendBounded(session.Turns, turn, m.opts.HistoryLimit)
	session.LastActiveAt = turn.Timestamp
	session.mu.Unlock()

	m.sessions.Save(session)
	m.updateProfileForUserTurn(session.UserID, text)
	return &turn, nil
}

// AppendAssistantTurn appends the validated reply and records its
// fingerprint in the de-duplication ring.
func (m *Manager) AppendAssistantTurn(sessionID, text string, assessment *escalation.Assessment) error {
	session, err := m.Resolve(sessionID)
	if err != nil {
		return err
	}

	turn := Turn{
		Role:      RoleAssistant,
		Text:      text,
		Timestamp: time.Now(),
	}

	session.mu.Lock()
	session.Turns = appendBounded(session.Turns, turn, m.opts.HistoryLimit)
	session.ReplyFingerprints = appendBounded(session.ReplyFingerprints, Fingerprint(text), m.opts.DedupRingSize)
	if assessment != nil {
		session.LastAssessment = assessment
	}
	session.LastActiveAt = turn.Timestamp
	session.mu.Unlock()

	m.sessions.Save(session)
	m.updateProfileForAssistantTurn(session.UserID, text)
	return nil
}

// RecentContext returns a copy of the last k turns, oldest first.
func (m *Manager) RecentContext(sessionID string, k int) ([]Turn, error) {
	session, err := m.Resolve(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	n := len(session.Turns)
	if k > n {
		k = n
	}
	recent := make([]Turn, k)
	copy(recent, session.Turns[n-k:])
	return recent, nil
}

// WasRecentlySent reports whether the candidate reply matches (exactly, by
// fingerprint, or nearly, by similarity ratio) a recent assistant reply.
func (m *Manager) WasRecentlySent(sessionID, candidate string) (bool, error) {
	session, err := m.Resolve(sessionID)
	if err != nil {
		return false, err
	}

	fp := Fingerprint(candidate)

	session.mu.Lock()
	defer session.mu.Unlock()

	for _, existing := range session.ReplyFingerprints {
		if existing == fp {
			return true, nil
		}
	}
	for i := len(session.Turns) - 1; i >= 0 && len(session.Turns)-i <= m.opts.DedupRingSize*2; i-- {
		t := session.Turns[i]
		if t.Role != RoleAssistant {
			continue
		}
		if SimilarityRatio(t.Text, candidate) > m.opts.SimilarityMax {
			return true, nil
		}
	}
	return false, nil
}

// Touch refreshes the idle-expiry clock.
func (m *Manager) Touch(sessionID string) error {
	session, err := m.Resolve(sessionID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	session.LastActiveAt = time.Now()
	session.mu.Unlock()
	m.sessions.Save(session)
	return nil
}

// SetHandoff records the open handoff id on the session.
func (m *Manager) SetHandoff(sessionID, handoffID string) error {
	session, err := m.Resolve(sessionID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	session.HandoffID = handoffID
	session.mu.Unlock()
	m.sessions.Save(session)
	return nil
}

// HandoffFor returns the open handoff id recorded on the session, or "".
func (m *Manager) HandoffFor(sessionID string) (string, error) {
	session, err := m.Resolve(sessionID)
	if err != nil {
		return "", err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.HandoffID, nil
}

// ProfileFor loads (or lazily creates) the profile for a user. Returns nil
// for anonymous users.
func (m *Manager) ProfileFor(userID string) *Profile {
	if userID == "" {
		return nil
	}
	if p, ok := m.profiles.Get(userID); ok {
		return p
	}

	m.createMu.Lock()
	defer m.createMu.Unlock()
	if p, ok := m.profiles.Get(userID); ok {
		return p
	}
	p := &Profile{
		UserID: userID,
		Topics: make(map[string]int),
	}
	m.profiles.Save(p)
	return p
}

// RecordFeedback appends a rating (1-5) and adjusts the length preference
// heuristically: consistently low ratings on long replies flip to short.
func (m *Manager) RecordFeedback(userID string, rating int) {
	p := m.ProfileFor(userID)
	if p == nil {
		return
	}
	p.mu.Lock()
	p.FeedbackRatings = appendBounded(p.FeedbackRatings, rating, 20)
	p.mu.Unlock()
	m.profiles.Save(p)
}

// SetRegion records the user's region for crisis-resource lookups.
func (m *Manager) SetRegion(userID, region string) {
	p := m.ProfileFor(userID)
	if p == nil || region == "" {
		return
	}
	p.mu.Lock()
	p.Region = region
	p.mu.Unlock()
	m.profiles.Save(p)
}

func (m *Manager) updateProfileForUserTurn(userID, text string) {
	p := m.ProfileFor(userID)
	if p == nil {
		return
	}
	p.mu.Lock()
	p.MessageCount++
	p.LastActiveAt = time.Now()
	for _, topic := range ExtractTopics(text) {
		p.Topics[topic]++
	}
	trimTopics(p.Topics, m.opts.ProfileTopicsN)
	p.mu.Unlock()
	m.profiles.Save(p)
}

func (m *Manager) updateProfileForAssistantTurn(userID, text string) {
	p := m.ProfileFor(userID)
	if p == nil {
		return
	}
	p.mu.Lock()
	p.RecentReplies = appendBounded(p.RecentReplies, text, m.opts.RecentReplies)
	p.mu.Unlock()
	m.profiles.Save(p)
}

// trimTopics drops the lowest-count topics once the map grows past limit.
func trimTopics(topics map[string]int, limit int) {
	for len(topics) > limit {
		minTopic := ""
		minCount := int(^uint(0) >> 1)
		for t, c := range topics {
			if c < minCount || (c == minCount && t < minTopic) {
				minTopic = t
				minCount = c
			}
		}
		delete(topics, minTopic)
	}
}

func appendBounded[T any](list []T, item T, limit int) []T {
	list = append(list, item)
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list
}
