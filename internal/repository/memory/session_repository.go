package memory

import (
	"time"

	"mindwel-be/pkg/conversation"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps live conversation sessions in memory with idle
// expiry. Sessions are evicted whole; there is no per-turn eviction.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, sweepInterval time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	if sweepInterval <= 0 {
		sweepInterval = 10 * time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, sweepInterval),
	}
}

func (r *SessionRepository) Save(session *conversation.Session) {
	// Set also refreshes the TTL, which is what keeps active sessions alive.
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*conversation.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*conversation.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
