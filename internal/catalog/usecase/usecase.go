package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/shandysiswandi/gomart/internal/catalog/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/config"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/validator"
)

type repoSource interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
}

type repoCache interface {
	GetProducts(ctx context.Context) ([]entity.Product, error)
	SetProducts(ctx context.Context, items []entity.Product, ttl time.Duration) error
}

type repoImage interface {
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

type priceFormatter interface {
	Format(d decimal.Decimal) string
}

type Usecase struct {
	repoSource repoSource
	repoCache  repoCache
	repoImage  repoImage
	price      priceFormatter
	cfg        config.Config
	validator  validator.Validator
	ins        instrument.Instrumentation
	group      singleflight.Group
}

// Dependency wires the catalog usecase. RepoCache and RepoImage are optional.
type Dependency struct {
	RepoSource repoSource
	RepoCache  repoCache
	RepoImage  repoImage
	Price      priceFormatter
	Config     config.Config
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoSource: dep.RepoSource,
		repoCache:  dep.RepoCache,
		repoImage:  dep.RepoImage,
		price:      dep.Price,
		cfg:        dep.Config,
		validator:  dep.Validator,
		ins:        dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("catalog.usecase").Start(ctx, name)
}
