package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/gomart/internal/catalog/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
)

const queryListProducts = `
SELECT id, title, description, price::text, image, position
FROM catalog_products
ORDER BY position, id`

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func (s *DB) mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}
	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("catalog.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) ListProducts(ctx context.Context) (_ []entity.Product, err error) {
	ctx, span := s.startSpan(ctx, "ListProducts")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryListProducts)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Product, error) {
		var (
			p     entity.Product
			price string
		)
		if err := row.Scan(&p.ID, &p.Title, &p.Description, &price, &p.Image, &p.Position); err != nil {
			return p, err
		}

		d, err := decimal.NewFromString(price)
		if err != nil {
			return p, err
		}
		p.Price = d

		return p, nil
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}
