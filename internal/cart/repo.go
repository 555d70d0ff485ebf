package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/ballonsurprise/backend/pkg/redis"
)

// Repository persists one cart per device session. Load of an absent slot
// returns an empty cart, not an error.
type Repository interface {
	Load(ctx context.Context, deviceID string) (*Cart, error)
	Save(ctx context.Context, deviceID string, cart *Cart) error
	Clear(ctx context.Context, deviceID string) error
}

type cartKeyer interface {
	DeviceCartKey(deviceID string) string
}

type cartCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisRepository stores the cart as a JSON document in a single key, so each
// mutation is one read-modify-write on the device's slot.
type RedisRepository struct {
	cache cartCache
	keyer cartKeyer
	ttl   time.Duration
}

// NewRedisRepository binds the cart repository to the shared Redis client. A
// zero ttl keeps carts until checkout or clear.
func NewRedisRepository(client *redisclient.Client, ttl time.Duration) (*RedisRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &RedisRepository{cache: client, keyer: client, ttl: ttl}, nil
}

func (r *RedisRepository) Load(ctx context.Context, deviceID string) (*Cart, error) {
	raw, err := r.cache.Get(ctx, r.keyer.DeviceCartKey(deviceID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return &Cart{}, nil
		}
		return nil, err
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &cart, nil
}

func (r *RedisRepository) Save(ctx context.Context, deviceID string, cart *Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return r.cache.Set(ctx, r.keyer.DeviceCartKey(deviceID), raw, r.ttl)
}

func (r *RedisRepository) Clear(ctx context.Context, deviceID string) error {
	return r.cache.Del(ctx, r.keyer.DeviceCartKey(deviceID))
}
