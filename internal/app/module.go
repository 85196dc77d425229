package app

import (
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/shandysiswandi/gomart/internal/cart"
	"github.com/shandysiswandi/gomart/internal/catalog"
	"github.com/shandysiswandi/gomart/internal/checkout"
)

// initModules wires catalog first; cart needs it to price products.
func (a *App) initModules() {
	products, err := catalog.New(catalog.Dependency{
		DBConn:     a.dbConn,
		CacheConn:  a.redisClient(),
		Storage:    a.storage,
		Price:      a.price,
		Router:     a.router,
		Config:     a.config,
		Instrument: a.ins,
		Validator:  a.validator,
	})
	if err != nil {
		slog.Error("failed to init module catalog", "error", err)
		os.Exit(1)
	}

	if a.config.GetBool("modules.cart.enabled") {
		if err := cart.New(cart.Dependency{
			Ctx:        a.ctx,
			CacheConn:  a.redisClient(),
			Catalog:    products,
			Session:    a.session,
			Price:      a.price,
			Messaging:  a.messaging,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module cart", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.checkout.enabled") {
		if err := checkout.New(checkout.Dependency{
			DBConn:      a.dbConn,
			Idempotency: a.idemp,
			Mail:        a.mail,
			Messaging:   a.messaging,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module checkout", "error", err)
			os.Exit(1)
		}
	}
}

// redisClient avoids handing a typed nil to modules that treat the cache as
// optional.
func (a *App) redisClient() redis.UniversalClient {
	if a.cacheConn == nil {
		return nil
	}
	return a.cacheConn
}
