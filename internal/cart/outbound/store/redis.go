package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/clock"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
)

const keyPrefix = "cart:"

type RedisConfig struct {
	TTL time.Duration
	// MaxRetries bounds optimistic update retries after a concurrent write.
	MaxRetries uint64
}

// Redis stores one msgpack value per session. Updates use WATCH/MULTI and
// are retried when another writer touched the key in between.
type Redis struct {
	client redis.UniversalClient
	cfg    RedisConfig
	clock  clock.Clocker
	ins    instrument.Instrumentation
}

func NewRedis(client redis.UniversalClient, cfg RedisConfig, c clock.Clocker, ins instrument.Instrumentation) *Redis {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 5
	}
	return &Redis{client: client, cfg: cfg, clock: c, ins: ins}
}

func (r *Redis) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("cart.outbound.store").Start(ctx, name)
}

func (r *Redis) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *Redis) Get(ctx context.Context, sid string) (_ *entity.Cart, err error) {
	ctx, span := r.startSpan(ctx, "Get")
	defer func() { r.endSpan(span, err) }()

	raw, err := r.client.Get(ctx, keyPrefix+sid).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return decode(raw)
}

func (r *Redis) Update(ctx context.Context, sid string, fn func(*entity.Cart) error) (_ *entity.Cart, err error) {
	ctx, span := r.startSpan(ctx, "Update")
	defer func() { r.endSpan(span, err) }()

	key := keyPrefix + sid
	backoff := retry.NewExponential(10 * time.Millisecond)
	backoff = retry.WithJitterPercent(20, backoff)
	backoff = retry.WithCappedDuration(200*time.Millisecond, backoff)
	backoff = retry.WithMaxRetries(r.cfg.MaxRetries, backoff)

	var out *entity.Cart
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			c := entity.New(sid)
			raw, err := tx.Get(ctx, key).Bytes()
			switch {
			case errors.Is(err, redis.Nil):
			case err != nil:
				return err
			default:
				if c, err = decode(raw); err != nil {
					return err
				}
			}

			if err := fn(c); err != nil {
				return err
			}
			c.UpdatedAt = r.clock.Now()

			enc, err := encode(c)
			if err != nil {
				return err
			}

			if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, enc, r.cfg.TTL)
				return nil
			}); err != nil {
				return err
			}

			out = c
			return nil
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Redis) Delete(ctx context.Context, sid string) (err error) {
	ctx, span := r.startSpan(ctx, "Delete")
	defer func() { r.endSpan(span, err) }()

	return r.client.Del(ctx, keyPrefix+sid).Err()
}
