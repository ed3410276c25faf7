// Package session resolves opaque session tokens minted by the account
// service into platform actors. The account service writes sessions into
// redis; this side only reads and revokes them.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veritrace/veritrace/internal/adapter"
	"github.com/veritrace/veritrace/internal/domain"
)

const keyPrefix = "session:"

// Store defines the session token lookup interface
//
//go:generate mockgen -source=session.go -destination=../mocks/session.go -package=mocks -mock_names=Store=MockSessionStore
type Store interface {
	// Resolve returns the actor a token belongs to, or nil when unknown/expired
	Resolve(ctx context.Context, token string) (*domain.Actor, error)

	// Put stores a session; zero ttl stores it without expiry
	Put(ctx context.Context, token string, actor domain.Actor, ttl time.Duration) error

	// Revoke drops a session token immediately
	Revoke(ctx context.Context, token string) error
}

type redisStore struct {
	client adapter.RedisClient
	json   adapter.JSON
}

// NewRedisStore creates a session store backed by redis
func NewRedisStore(client adapter.RedisClient, jsonAdapter adapter.JSON) Store {
	return &redisStore{client: client, json: jsonAdapter}
}

// Resolve returns the actor a token belongs to, or nil when unknown/expired
func (s *redisStore) Resolve(ctx context.Context, token string) (*domain.Actor, error) {
	raw, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	var actor domain.Actor
	if err := s.json.Unmarshal([]byte(raw), &actor); err != nil {
		return nil, fmt.Errorf("failed to decode session payload: %w", err)
	}
	return &actor, nil
}

// Put stores a session
func (s *redisStore) Put(ctx context.Context, token string, actor domain.Actor, ttl time.Duration) error {
	payload, err := s.json.Marshal(actor)
	if err != nil {
		return fmt.Errorf("failed to encode session payload: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Revoke drops a session token immediately
func (s *redisStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
