package otp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the ledger with a shared cache so multiple API instances
// see the same outstanding codes. Keys carry a TTL of twice the validity
// window: inside the grace period a stale entry still verifies as expired
// (matching the in-memory behavior); once redis drops the key the caller
// sees not-found instead, which is indistinguishable from "already consumed"
// at the API surface anyway.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, validity time.Duration) *RedisStore {
	if validity <= 0 {
		validity = DefaultValidity
	}
	return &RedisStore{rdb: rdb, ttl: 2 * validity}
}

func key(email string) string {
	return "booking:otp:" + email
}

func (s *RedisStore) Put(ctx context.Context, email string, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(email), b, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (Entry, bool, error) {
	b, err := s.rdb.Get(ctx, key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, key(email)).Err()
}

var _ Store = (*RedisStore)(nil)
