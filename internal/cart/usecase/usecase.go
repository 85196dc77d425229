package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/clock"
	"github.com/shandysiswandi/gomart/internal/pkg/config"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/session"
	"github.com/shandysiswandi/gomart/internal/pkg/validator"
)

// Product is the catalog data a cart line copies at add time.
type Product struct {
	ID    string
	Title string
	Price decimal.Decimal
}

type ItemAddedEvent struct {
	SessionID string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	AddedAt   int64
}

// repoStore owns every cart. All writers go through Update so the entity
// invariants are applied in one place.
type repoStore interface {
	Get(ctx context.Context, sessionID string) (*entity.Cart, error)
	Update(ctx context.Context, sessionID string, fn func(*entity.Cart) error) (*entity.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

type repoCatalog interface {
	FindProduct(ctx context.Context, id string) (*Product, error)
}

type repoMessaging interface {
	PublishItemAdded(ctx context.Context, ev ItemAddedEvent) error
}

type sessionIssuer interface {
	Issue(ctx context.Context) (session.Token, error)
}

type priceFormatter interface {
	Format(d decimal.Decimal) string
}

type Usecase struct {
	repoStore     repoStore
	repoCatalog   repoCatalog
	repoMessaging repoMessaging
	session       sessionIssuer
	price         priceFormatter
	cfg           config.Config
	clock         clock.Clocker
	validator     validator.Validator
	ins           instrument.Instrumentation
	mutations     metric.Int64Counter
}

type Dependency struct {
	RepoStore     repoStore
	RepoCatalog   repoCatalog
	RepoMessaging repoMessaging
	Session       sessionIssuer
	Price         priceFormatter
	Config        config.Config
	Clock         clock.Clocker
	Validator     validator.Validator
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoStore:     dep.RepoStore,
		repoCatalog:   dep.RepoCatalog,
		repoMessaging: dep.RepoMessaging,
		session:       dep.Session,
		price:         dep.Price,
		cfg:           dep.Config,
		clock:         dep.Clock,
		validator:     dep.Validator,
		ins:           dep.Instrument,
		mutations: instrument.Counter(dep.Instrument.Meter("cart.usecase"),
			"cart.mutations", "Number of successful cart mutations"),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("cart.usecase").Start(ctx, name)
}

func (s *Usecase) countMutation(ctx context.Context, op string) {
	if s.mutations != nil {
		s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	}
}

func (s *Usecase) requireSession(ctx context.Context) (string, error) {
	sid := session.ID(ctx)
	if sid == "" {
		return "", goerror.NewBusiness("Cart session required", goerror.CodeUnauthorized)
	}
	return sid, nil
}

// mutate applies fn to the session cart through the store. Closed carts are
// rejected before fn runs.
func (s *Usecase) mutate(ctx context.Context, op, sid string, fn func(*entity.Cart) error) (*entity.Cart, error) {
	c, err := s.repoStore.Update(ctx, sid, func(c *entity.Cart) error {
		if c.Status == entity.StatusCheckedOut {
			return errCheckedOut
		}
		return fn(c)
	})
	if err != nil {
		return nil, s.mapError(ctx, op, sid, err)
	}

	s.countMutation(ctx, op)
	return c, nil
}

var errCheckedOut = errors.New("cart already checked out")

func (s *Usecase) mapError(ctx context.Context, op, sid string, err error) error {
	var gerr *goerror.Error
	switch {
	case errors.As(err, &gerr):
		return err
	case errors.Is(err, errCheckedOut):
		return goerror.NewBusiness("Cart already checked out", goerror.CodeConflict)
	case errors.Is(err, entity.ErrEmptyCart):
		return goerror.NewBusiness("Cart is empty", goerror.CodeInvalidInput)
	case errors.Is(err, entity.ErrInvalidQuantity):
		return goerror.NewInvalidInput(nil, "quantity", "Quantity must be at least 1")
	default:
		slog.ErrorContext(ctx, "failed to repo update cart", "op", op, "session_id", sid, "error", err)
		return goerror.NewServer(err)
	}
}

// load returns the session cart, or an empty open cart when none is stored.
func (s *Usecase) load(ctx context.Context, sid string) (*entity.Cart, error) {
	c, err := s.repoStore.Get(ctx, sid)
	if errors.Is(err, goerror.ErrNotFound) {
		return entity.New(sid), nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get cart", "session_id", sid, "error", err)
		return nil, goerror.NewServer(err)
	}
	return c, nil
}
