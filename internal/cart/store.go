package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/redis"
)

// Store persists carts keyed by client session id. Load never fails on a
// corrupted payload: an unreadable cart is treated as empty so a shopper with
// mangled state can keep shopping.
type Store interface {
	Load(ctx context.Context, clientID string) (Cart, error)
	Save(ctx context.Context, clientID string, c Cart) error
	Clear(ctx context.Context, clientID string) error
}

// RedisStore keeps each cart as a JSON document with a rolling TTL.
type RedisStore struct {
	client *redis.Client
	logg   *logger.Logger
	ttl    time.Duration
}

// NewRedisStore builds the default cart store.
func NewRedisStore(client *redis.Client, logg *logger.Logger, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, logg: logg, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, clientID string) (Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(clientID))
	if err != nil {
		if redis.IsNil(err) {
			return Cart{}, nil
		}
		return Cart{}, err
	}
	return decodeCart(ctx, s.logg, []byte(raw)), nil
}

func (s *RedisStore) Save(ctx context.Context, clientID string, c Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.client.CartKey(clientID), payload, s.ttl)
}

func (s *RedisStore) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, s.client.CartKey(clientID))
}

func decodeCart(ctx context.Context, logg *logger.Logger, raw []byte) Cart {
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		if logg != nil {
			logg.Warn(ctx, "discarding unreadable cart payload")
		}
		return Cart{}
	}
	return c
}
