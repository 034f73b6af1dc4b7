package cache

import (
	"time"

	appdoc "github.com/gestion/backend/internal/application/document"
	"github.com/gestion/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewSessionStore creates a session store based on configuration.
// Redis is used when enabled so sessions survive restarts and are shared
// across instances; otherwise the in-memory store is used with a fallback
// warning when Redis was requested but unreachable.
func NewSessionStore(cfg *config.Config, logger *zap.Logger) appdoc.SessionStore {
	ttl := cfg.Session.TTL
	if !cfg.Redis.Enabled {
		return newMemoryStore(ttl, logger)
	}

	store, err := NewRedisSessionStore(cfg.Redis, ttl)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory session store",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err))
		return newMemoryStore(ttl, logger)
	}

	logger.Info("using redis session store", zap.String("addr", cfg.Redis.Addr()))
	return store
}

func newMemoryStore(ttl time.Duration, logger *zap.Logger) *InMemorySessionStore {
	store := NewInMemorySessionStore(ttl)
	go func() {
		ticker := time.NewTicker(ttl / 4)
		defer ticker.Stop()
		for range ticker.C {
			if removed := store.Sweep(); removed > 0 {
				logger.Debug("swept expired editing sessions", zap.Int("removed", removed))
			}
		}
	}()
	return store
}
