package web

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maxaizer/offer-board/internal/form"
	"github.com/maxaizer/offer-board/internal/logger"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

const sessionCookie = "offer_board_session"

// sessionStore keeps one form state per visitor. Idle sessions expire after ttl, zero keeps them forever.
type sessionStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		return &sessionStore{cache: gocache.New(gocache.NoExpiration, 10*time.Minute)}
	}
	return &sessionStore{cache: gocache.New(ttl, 2*ttl), ttl: ttl}
}

// load returns the visitor's session id and state, starting a fresh session when there is none.
func (s *sessionStore) load(c *gin.Context) (string, form.State) {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		if _, parseErr := uuid.Parse(cookie); parseErr != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeSession).
				Warnf("ignoring malformed session cookie: %v", parseErr)
		} else if state, found := s.cache.Get(cookie); found {
			return cookie, state.(form.State)
		}
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(s.ttl.Seconds()), "/", "", false, true)
	return id, form.New()
}

func (s *sessionStore) save(id string, state form.State) {
	s.cache.Set(id, state, gocache.DefaultExpiration)
}

func (s *sessionStore) count() int {
	return s.cache.ItemCount()
}
