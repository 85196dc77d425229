package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/gomart/internal/catalog/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
)

const keyProducts = "catalog:products:v1"

type product struct {
	ID          string `msgpack:"id"`
	Title       string `msgpack:"t"`
	Description string `msgpack:"d"`
	Price       string `msgpack:"p"`
	Image       string `msgpack:"i"`
	Position    int    `msgpack:"o"`
}

type Cache struct {
	client redis.UniversalClient
	ins    instrument.Instrumentation
}

func New(client redis.UniversalClient, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("catalog.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetProducts returns goerror.ErrNotFound on a cache miss.
func (c *Cache) GetProducts(ctx context.Context) (_ []entity.Product, err error) {
	ctx, span := c.startSpan(ctx, "GetProducts")
	defer func() { c.endSpan(span, err) }()

	raw, err := c.client.Get(ctx, keyProducts).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rows []product
	if err := msgpack.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	items := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		price, err := decimal.NewFromString(row.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.Product{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Price:       price,
			Image:       row.Image,
			Position:    row.Position,
		})
	}

	return items, nil
}

func (c *Cache) SetProducts(ctx context.Context, items []entity.Product, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SetProducts")
	defer func() { c.endSpan(span, err) }()

	raw, err := msgpack.Marshal(lo.Map(items, func(p entity.Product, _ int) product {
		return product{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price.String(),
			Image:       p.Image,
			Position:    p.Position,
		}
	}))
	if err != nil {
		return err
	}

	return c.client.Set(ctx, keyProducts, raw, ttl).Err()
}
