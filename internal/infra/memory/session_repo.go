package memory

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Cratosart/Badzi/internal/usecase"
)

// SessionRepo держит состояния диалогов. Истекать по ttl могут только сессии в StateIdle:
// пользователь посреди анкеты не теряет свой шаг, сколько бы ни молчал.
type SessionRepo struct {
	cache *cache.Cache
}

func NewSessionRepo(ttl time.Duration) *SessionRepo {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &SessionRepo{cache: cache.New(ttl, 10*time.Minute)}
}

func (r *SessionRepo) Get(userID int64) *usecase.Session {
	key := strconv.FormatInt(userID, 10)
	if x, found := r.cache.Get(key); found {
		s := x.(*usecase.Session)
		// продлеваем жизнь активной сессии
		r.cache.Set(key, s, expiration(s))
		return s
	}
	s := usecase.NewSession(userID)
	if err := r.cache.Add(key, s, cache.DefaultExpiration); err != nil {
		// кто-то успел создать сессию раньше
		if x, found := r.cache.Get(key); found {
			return x.(*usecase.Session)
		}
		r.cache.Set(key, s, cache.DefaultExpiration)
	}
	return s
}

// Save перевыставляет срок жизни после смены шага диалога.
func (r *SessionRepo) Save(s *usecase.Session) {
	r.cache.Set(strconv.FormatInt(s.UserID, 10), s, expiration(s))
}

func (r *SessionRepo) Len() int { return r.cache.ItemCount() }

func expiration(s *usecase.Session) time.Duration {
	if s.State() == usecase.StateIdle {
		return cache.DefaultExpiration
	}
	return cache.NoExpiration
}
