package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/ballonsurprise/backend/pkg/redis"
)

// SlotStore persists at most one Identity per device session.
type SlotStore interface {
	Save(ctx context.Context, deviceID string, id Identity) error
	// Load returns (nil, nil) when the slot is empty.
	Load(ctx context.Context, deviceID string) (*Identity, error)
	Clear(ctx context.Context, deviceID string) error
}

type slotKeyer interface {
	DeviceUserKey(deviceID string) string
}

type slotCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisSlotStore keeps the Identity as a JSON document in a single key, so a
// re-login overwrites the previous identity in one write.
type RedisSlotStore struct {
	cache slotCache
	keyer slotKeyer
	ttl   time.Duration
}

// NewRedisSlotStore binds the slot store to the shared Redis client. A zero
// ttl keeps identities until logout.
func NewRedisSlotStore(client *redisclient.Client, ttl time.Duration) (*RedisSlotStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &RedisSlotStore{cache: client, keyer: client, ttl: ttl}, nil
}

func (s *RedisSlotStore) Save(ctx context.Context, deviceID string, id Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	return s.cache.Set(ctx, s.keyer.DeviceUserKey(deviceID), raw, s.ttl)
}

func (s *RedisSlotStore) Load(ctx context.Context, deviceID string) (*Identity, error) {
	raw, err := s.cache.Get(ctx, s.keyer.DeviceUserKey(deviceID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return nil, fmt.Errorf("unmarshal identity: %w", err)
	}
	return &id, nil
}

func (s *RedisSlotStore) Clear(ctx context.Context, deviceID string) error {
	return s.cache.Del(ctx, s.keyer.DeviceUserKey(deviceID))
}
