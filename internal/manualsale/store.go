package manualsale

import (
	"context"
	"encoding/json"
	"time"

	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/redis"
)

// SessionStore persists in-progress sales keyed by admin id. Like the cart
// store, an unreadable payload loads as an empty session.
type SessionStore interface {
	Load(ctx context.Context, adminID string) (Session, error)
	Save(ctx context.Context, adminID string, s Session) error
	Clear(ctx context.Context, adminID string) error
}

// RedisSessionStore keeps each sale session as a JSON document with a TTL so
// abandoned sales expire on their own.
type RedisSessionStore struct {
	client *redis.Client
	logg   *logger.Logger
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, logg *logger.Logger, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, logg: logg, ttl: ttl}
}

func (s *RedisSessionStore) Load(ctx context.Context, adminID string) (Session, error) {
	raw, err := s.client.Get(ctx, s.client.SaleSessionKey(adminID))
	if err != nil {
		if redis.IsNil(err) {
			return Session{}, nil
		}
		return Session{}, err
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "discarding unreadable sale session payload")
		}
		return Session{}, nil
	}
	return session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, adminID string, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.client.SaleSessionKey(adminID), payload, s.ttl)
}

func (s *RedisSessionStore) Clear(ctx context.Context, adminID string) error {
	return s.client.Del(ctx, s.client.SaleSessionKey(adminID))
}
