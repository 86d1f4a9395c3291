package escalation

import (
	"sync"
	"time"

	"mindwel-be/pkg/moodtrend"
)

// Assessment is the outcome of evaluating one user turn. Once computed, the
// level is never downgraded during the rendering of that turn's reply.
type Assessment struct {
	Level      Level     `json:"level"`
	Triggers   []string  `json:"triggers"`
	Confidence float64   `json:"confidence"`
	AssessedAt time.Time `json:"assessed_at"`
}

// HandoffDecision tells the caller what to do about human follow-up for
// this turn. At most one of Create/UpgradeTo is meaningful.
type HandoffDecision struct {
	Create    bool    // create a new handoff with Urgency
	Urgency   Urgency // valid when Create
	UpgradeTo Urgency // non-empty: raise the open handoff's urgency instead
}

// Manager evaluates the rule table and enforces the per-session handoff
// cool-down. It is safe for concurrent use across sessions.
type Manager struct {
	rules    []Rule
	cooldown time.Duration

	mu     sync.Mutex
	recent map[string]handoffRecord // session id -> last handoff in window
}

type handoffRecord struct {
	urgency Urgency
	at      time.Time
}

func NewManager(cooldown time.Duration) *Manager {
	if cooldown <= 0 {
		cooldown = 15 * time.Minute
	}
	return &Manager{
		rules:    defaultRules(),
		cooldown: cooldown,
		recent:   make(map[string]handoffRecord),
	}
}

// Assess runs every rule once and keeps the highest matching level. The mood
// trend acts only as an amplifier: a declining trend raises LOW to MODERATE
// but never raises NONE by itself.
func (m *Manager) Assess(in Input) Assessment {
	level := LevelNone
	var triggers []string

	for _, rule := range m.rules {
		if rule.Match(in) {
			triggers = append(triggers, rule.Name)
			if rule.Level > level {
				level = rule.Level
			}
		}
	}

	if level == LevelLow && in.Mood != nil && in.Mood.Trend == moodtrend.TrendDeclining {
		level = LevelModerate
		triggers = append(triggers, "declining_mood_trend")
	}

	return Assessment{
		Level:      level,
		Triggers:   triggers,
		Confidence: confidenceFor(level, len(triggers)),
		AssessedAt: time.Now(),
	}
}

// confidenceFor: more independent triggers agreeing on an elevated level
// mean higher confidence. NONE is always fully confident.
func confidenceFor(level Level, triggerCount int) float64 {
	if level == LevelNone {
		return 1.0
	}
	c := 0.5 + 0.15*float64(triggerCount)
	if c > 1.0 {
		c = 1.0
	}
	return c
}

// DecideHandoff applies the cool-down rule: at most one handoff per session
// inside the window. A recurrence with higher urgency upgrades the existing
// handoff; equal or lower urgency does nothing.
func (m *Manager) DecideHandoff(sessionID string, level Level, now time.Time) HandoffDecision {
	urgency := urgencyFor(level)
	if urgency == "" {
		return HandoffDecision{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recent[sessionID]
	if ok && now.Sub(rec.at) < m.cooldown {
		if urgencyRank(urgency) > urgencyRank(rec.urgency) {
			m.recent[sessionID] = handoffRecord{urgency: urgency, at: rec.at}
			return HandoffDecision{UpgradeTo: urgency}
		}
		return HandoffDecision{}
	}

	m.recent[sessionID] = handoffRecord{urgency: urgency, at: now}
	return HandoffDecision{Create: true, Urgency: urgency}
}

// RollbackHandoff drops the cool-down marker recorded by a DecideHandoff
// call at decidedAt. Used when handoff persistence fails after the decision:
// without the rollback, every elevated turn for the rest of the window would
// be suppressed with no handoff on record. A marker from a different turn is
// left untouched.
func (m *Manager) RollbackHandoff(sessionID string, decidedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recent[sessionID]; ok && rec.at.Equal(decidedAt) {
		delete(m.recent, sessionID)
	}
}

// ClearSession drops the cool-down record, used on session eviction.
func (m *Manager) ClearSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recent, sessionID)
}
