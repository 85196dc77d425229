package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shandysiswandi/gomart/internal/catalog/entity"
	"github.com/shandysiswandi/gomart/internal/catalog/inbound"
	"github.com/shandysiswandi/gomart/internal/catalog/outbound/cache"
	"github.com/shandysiswandi/gomart/internal/catalog/outbound/db"
	"github.com/shandysiswandi/gomart/internal/catalog/outbound/file"
	"github.com/shandysiswandi/gomart/internal/catalog/usecase"
	"github.com/shandysiswandi/gomart/internal/pkg/config"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/money"
	"github.com/shandysiswandi/gomart/internal/pkg/router"
	"github.com/shandysiswandi/gomart/internal/pkg/storage"
	"github.com/shandysiswandi/gomart/internal/pkg/validator"
)

const (
	SourceFile     = "yaml"
	SourcePostgres = "postgres"
)

var ErrDBRequired = errors.New("catalog: postgres source requires a database connection")

// Finder is what other modules may ask of the catalog.
type Finder interface {
	FindProduct(ctx context.Context, id string) (*entity.Product, error)
}

// Dependency wires the catalog module. DBConn, CacheConn and Storage are
// optional and enable the postgres source, the read-through cache and
// presigned image URLs respectively.
type Dependency struct {
	DBConn     *pgxpool.Pool
	CacheConn  redis.UniversalClient
	Storage    storage.Storage
	Price      *money.Formatter           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) (Finder, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	ucDep := usecase.Dependency{
		Price:      dep.Price,
		Config:     dep.Config,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	}

	switch dep.Config.GetString("catalog.source") {
	case SourcePostgres:
		if dep.DBConn == nil {
			return nil, ErrDBRequired
		}
		ucDep.RepoSource = db.NewDB(dep.DBConn, dep.Instrument)
	default:
		src, err := file.NewFile(dep.Config.GetString("catalog.seed_path"), dep.Instrument)
		if err != nil {
			return nil, err
		}
		ucDep.RepoSource = src
	}

	if dep.CacheConn != nil && dep.Config.GetSecond("catalog.cache_ttl_seconds") > 0 {
		ucDep.RepoCache = cache.New(dep.CacheConn, dep.Instrument)
	}
	if dep.Storage != nil {
		ucDep.RepoImage = dep.Storage
	}

	uc := usecase.New(ucDep)

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return uc, nil
}
