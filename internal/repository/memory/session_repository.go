package memory

import (
	"time"

	"niv-scholar-be/pkg/scholar/session"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds the live scholar sessions. A session idle for longer
// than the TTL is closed and dropped.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	c := cache.New(ttl, ttl/6+time.Second)
	c.OnEvicted(func(_ string, v interface{}) {
		if s, ok := v.(*session.Session); ok {
			go s.Close()
		}
	})
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(s *session.Session) {
	r.cache.Set(s.ID(), s, cache.DefaultExpiration)
}

// Get also renews the session's TTL.
func (r *SessionRepository) Get(sessionID string) (*session.Session, bool) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, false
	}
	s := x.(*session.Session)
	r.cache.Set(sessionID, s, cache.DefaultExpiration)
	return s, true
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
