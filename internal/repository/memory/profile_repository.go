package memory

import (
	"time"

	"mindwel-be/pkg/conversation"

	"github.com/patrickmn/go-cache"
)

// ProfileRepository keeps user profiles in memory. Profiles outlive sessions
// so they get a much longer TTL, refreshed on every save.
type ProfileRepository struct {
	cache *cache.Cache
}

func NewProfileRepository(ttl time.Duration) *ProfileRepository {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &ProfileRepository{
		cache: cache.New(ttl, 1*time.Hour),
	}
}

func (r *ProfileRepository) Save(profile *conversation.Profile) {
	r.cache.Set(profile.UserID, profile, cache.DefaultExpiration)
}

func (r *ProfileRepository) Get(userID string) (*conversation.Profile, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*conversation.Profile), true
	}
	return nil, false
}

func (r *ProfileRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
