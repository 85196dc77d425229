package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keeps key states under "idempotency:<key>".
type Redis struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client, prefix: "idempotency:"}
}

func (r *Redis) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := r.prefix + key

	for range 2 {
		acquired, err := r.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if acquired {
			return StateNone, nil
		}

		// the key may have expired between SETNX and GET, so try once more
		result, err := r.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return StateError, err
		}
		return parseState(result)
	}

	return StateError, ErrInvalidState
}

func (r *Redis) Mark(ctx context.Context, key string, state State, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, state.String(), ttl).Err()
}
