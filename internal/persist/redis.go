package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis keys, one per collection.
const (
	keyProducts  = "milkledger:products"
	keyCustomers = "milkledger:customers"
	keyOrders    = "milkledger:orders"
	keyPayments  = "milkledger:payments"
	keyUsers     = "milkledger:users"
)

// RedisStore persists each collection under its own key, written wholesale
// through a pipeline on every save.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

func (r *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	vals, err := r.rdb.MGet(ctx, keyProducts, keyCustomers, keyOrders, keyPayments, keyUsers).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	}

	snap := &Snapshot{}
	targets := []interface{}{&snap.Products, &snap.Customers, &snap.Orders, &snap.Payments, &snap.Users}
	for i, v := range vals {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected redis value type at index %d", i)
		}
		if err := json.Unmarshal([]byte(s), targets[i]); err != nil {
			return nil, fmt.Errorf("failed to decode collection %d: %w", i, err)
		}
	}
	return snap, nil
}

func (r *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	payloads := map[string]interface{}{
		keyProducts:  snap.Products,
		keyCustomers: snap.Customers,
		keyOrders:    snap.Orders,
		keyPayments:  snap.Payments,
		keyUsers:     snap.Users,
	}

	pipe := r.rdb.Pipeline()
	for key, collection := range payloads {
		data, err := json.Marshal(collection)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		pipe.Set(ctx, key, data, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot to redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
