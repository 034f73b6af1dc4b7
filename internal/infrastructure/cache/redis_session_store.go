package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appdoc "github.com/gestion/backend/internal/application/document"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps editing sessions in Redis so that any instance can
// serve any request of a session. Sessions are serialized as JSON and keyed
// per tenant.
type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSessionStore creates a session store over a new Redis client
func NewRedisSessionStore(cfg config.RedisConfig, ttl time.Duration) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSessionStoreWithClient(client, ttl), nil
}

// NewRedisSessionStoreWithClient creates a store over an existing client
func NewRedisSessionStoreWithClient(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client:    client,
		keyPrefix: "editing:session:",
		ttl:       ttl,
	}
}

// Get returns the session by ID, scoped to the tenant
func (s *RedisSessionStore) Get(ctx context.Context, tenantID, sessionID uuid.UUID) (*appdoc.EditingSession, error) {
	data, err := s.client.Get(ctx, s.key(tenantID, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session appdoc.EditingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// Put stores the session, refreshing its TTL
func (s *RedisSessionStore) Put(ctx context.Context, session *appdoc.EditingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.TenantID, session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete removes the session
func (s *RedisSessionStore) Delete(ctx context.Context, tenantID, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(tenantID, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

func (s *RedisSessionStore) key(tenantID, sessionID uuid.UUID) string {
	return s.keyPrefix + tenantID.String() + ":" + sessionID.String()
}

var _ appdoc.SessionStore = (*RedisSessionStore)(nil)
