package cart

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/shandysiswandi/gomart/internal/cart/inbound"
	"github.com/shandysiswandi/gomart/internal/cart/outbound/mq"
	"github.com/shandysiswandi/gomart/internal/cart/outbound/product"
	"github.com/shandysiswandi/gomart/internal/cart/outbound/store"
	"github.com/shandysiswandi/gomart/internal/cart/usecase"
	"github.com/shandysiswandi/gomart/internal/catalog"
	"github.com/shandysiswandi/gomart/internal/pkg/clock"
	"github.com/shandysiswandi/gomart/internal/pkg/config"
	"github.com/shandysiswandi/gomart/internal/pkg/goroutine"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/messaging"
	"github.com/shandysiswandi/gomart/internal/pkg/money"
	"github.com/shandysiswandi/gomart/internal/pkg/router"
	"github.com/shandysiswandi/gomart/internal/pkg/session"
	"github.com/shandysiswandi/gomart/internal/pkg/uid"
	"github.com/shandysiswandi/gomart/internal/pkg/validator"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

var ErrCacheRequired = errors.New("cart: redis store requires a cache connection")

type Dependency struct {
	Ctx        context.Context
	CacheConn  redis.UniversalClient
	Catalog    catalog.Finder             `validate:"required"`
	Session    session.Manager            `validate:"required"`
	Price      *money.Formatter           `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ucDep := usecase.Dependency{
		RepoCatalog:   product.New(dep.Catalog),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Session:       dep.Session,
		Price:         dep.Price,
		Config:        dep.Config,
		Clock:         dep.Clock,
		Validator:     dep.Validator,
		Instrument:    dep.Instrument,
	}

	ttl := dep.Config.GetMinute("cart.ttl_minutes")
	switch dep.Config.GetString("cart.store") {
	case StoreRedis:
		if dep.CacheConn == nil {
			return ErrCacheRequired
		}
		ucDep.RepoStore = store.NewRedis(dep.CacheConn, store.RedisConfig{
			TTL:        ttl,
			MaxRetries: uint64(max(dep.Config.GetInt("cart.update_max_retries"), 0)),
		}, dep.Clock, dep.Instrument)
	default:
		mem := store.NewMemory(ttl, dep.Clock)
		if interval := dep.Config.GetSecond("cart.sweep_interval_seconds"); interval > 0 && dep.Ctx != nil {
			dep.Goroutine.Go(dep.Ctx, func(ctx context.Context) error {
				return mem.RunSweeper(ctx, interval)
			})
		}
		ucDep.RepoStore = mem
	}

	uc := usecase.New(ucDep)

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
