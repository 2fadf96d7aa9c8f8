package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dukalink/storefront-gateway/internal/model"
)

// Session is the per-browser state the gateway persists: the backend
// bearer token and the authenticated user. Everything else lives on
// the backend or in session-scoped memory.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type Store interface {
	// Load returns the persisted session, or nil when none exists.
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, sessionID string, sess *Session) error
	// Teardown clears the session on logout or account deactivation.
	Teardown(ctx context.Context, sessionID string) error
}

const keyPrefix = "session:"

const (
	fieldToken = "token"
	fieldUser  = "user"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	fields, err := s.client.HGetAll(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	sess := &Session{Token: fields[fieldToken]}
	if raw, ok := fields[fieldUser]; ok {
		if err := json.Unmarshal([]byte(raw), &sess.User); err != nil {
			return nil, fmt.Errorf("decode session user: %w", err)
		}
	}
	return sess, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, sess *Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	key := keyPrefix + sessionID
	if err := s.client.HSet(ctx, key, fieldToken, sess.Token, fieldUser, userJSON).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session ttl: %w", err)
	}
	return nil
}

func (s *redisStore) Teardown(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
