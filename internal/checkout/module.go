package checkout

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shandysiswandi/gomart/internal/checkout/inbound"
	"github.com/shandysiswandi/gomart/internal/checkout/outbound/db"
	"github.com/shandysiswandi/gomart/internal/checkout/outbound/email"
	"github.com/shandysiswandi/gomart/internal/checkout/outbound/mq"
	"github.com/shandysiswandi/gomart/internal/checkout/outbound/store"
	"github.com/shandysiswandi/gomart/internal/checkout/usecase"
	"github.com/shandysiswandi/gomart/internal/pkg/clock"
	"github.com/shandysiswandi/gomart/internal/pkg/config"
	"github.com/shandysiswandi/gomart/internal/pkg/goroutine"
	"github.com/shandysiswandi/gomart/internal/pkg/idempotency"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/mail"
	"github.com/shandysiswandi/gomart/internal/pkg/messaging"
	"github.com/shandysiswandi/gomart/internal/pkg/router"
	"github.com/shandysiswandi/gomart/internal/pkg/uid"
	"github.com/shandysiswandi/gomart/internal/pkg/validator"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

var ErrDBRequired = errors.New("checkout: postgres store requires a database connection")

type Dependency struct {
	DBConn      *pgxpool.Pool
	Idempotency idempotency.Idempotency    `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ucDep := usecase.Dependency{
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		RepoMail:      email.New(dep.Mail, dep.Instrument),
		Idempotency:   dep.Idempotency,
		Goroutine:     dep.Goroutine,
		Config:        dep.Config,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Validator:     dep.Validator,
		Instrument:    dep.Instrument,
	}

	switch dep.Config.GetString("checkout.store") {
	case StorePostgres:
		if dep.DBConn == nil {
			return ErrDBRequired
		}
		ucDep.RepoDB = db.NewDB(dep.DBConn, dep.Instrument)
	default:
		ucDep.RepoDB = store.NewMemory()
	}

	inbound.RegisterHTTPEndpoint(dep.Router, usecase.New(ucDep))

	return nil
}
