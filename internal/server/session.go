package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/yukikurage/twitter-clone-api/internal/config"
)

const (
	sessionMaxAge     = 86400 * 7 // 7 days
	redisPoolSize     = 10
	sessionStoreRedis = "redis"
)

// NewSessionStore builds the session store selected by SESSION_STORE.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	if cfg.SessionStore == sessionStoreRedis {
		rs, err := redisStore.NewStore(
			redisPoolSize,
			"tcp",
			cfg.RedisAddr(),
			"",
			"",
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	return store, nil
}
