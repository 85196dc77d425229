package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/gomart/internal/checkout/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
)

const (
	queryInsertAddress = `
INSERT INTO checkout_shipping_addresses
	(id, session_id, name, lastname, address, zipcode, city, email, phone, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	queryLatestAddress = `
SELECT id, session_id, name, lastname, address, zipcode, city, email, phone, created_at
FROM checkout_shipping_addresses
WHERE session_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1`
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

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

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("checkout.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) SaveAddress(ctx context.Context, addr entity.ShippingAddress) (err error) {
	ctx, span := s.startSpan(ctx, "SaveAddress")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryInsertAddress,
		addr.ID, addr.SessionID, addr.Name, addr.Lastname, addr.Address,
		addr.Zipcode, addr.City, addr.Email, addr.Phone, addr.CreatedAt,
	)

	return s.mapError(err)
}

func (s *DB) LatestAddress(ctx context.Context, sid string) (_ *entity.ShippingAddress, err error) {
	ctx, span := s.startSpan(ctx, "LatestAddress")
	defer func() { s.endSpan(span, err) }()

	var a entity.ShippingAddress
	err = s.conn.QueryRow(ctx, queryLatestAddress, sid).Scan(
		&a.ID, &a.SessionID, &a.Name, &a.Lastname, &a.Address,
		&a.Zipcode, &a.City, &a.Email, &a.Phone, &a.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &a, nil
}
