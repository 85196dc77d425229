package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/gomart/internal/checkout/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/clock"
	"github.com/shandysiswandi/gomart/internal/pkg/config"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/goroutine"
	"github.com/shandysiswandi/gomart/internal/pkg/idempotency"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/mail"
	"github.com/shandysiswandi/gomart/internal/pkg/session"
	"github.com/shandysiswandi/gomart/internal/pkg/uid"
	"github.com/shandysiswandi/gomart/internal/pkg/validator"
)

type AddressConfirmedEvent struct {
	SessionID   string
	AddressID   int64
	Email       string
	ConfirmedAt int64
}

type repoDB interface {
	SaveAddress(ctx context.Context, addr entity.ShippingAddress) error
	LatestAddress(ctx context.Context, sessionID string) (*entity.ShippingAddress, error)
}

type repoMessaging interface {
	PublishAddressConfirmed(ctx context.Context, ev AddressConfirmedEvent) error
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoMail      repoMail
	address       *entity.AddressValidator
	idem          idempotency.Idempotency
	goroutine     *goroutine.Manager
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	submissions   metric.Int64Counter
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoMail      repoMail
	Idempotency   idempotency.Idempotency
	Goroutine     *goroutine.Manager
	Config        config.Config
	UID           uid.NumberID
	Clock         clock.Clocker
	Validator     validator.Validator
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoMail:      dep.RepoMail,
		address:       entity.NewAddressValidator(dep.Validator),
		idem:          dep.Idempotency,
		goroutine:     dep.Goroutine,
		cfg:           dep.Config,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		submissions: instrument.Counter(dep.Instrument.Meter("checkout.usecase"),
			"checkout.submissions", "Number of shipping address submissions by result"),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("checkout.usecase").Start(ctx, name)
}

func (s *Usecase) countSubmission(ctx context.Context, result string) {
	if s.submissions != nil {
		s.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	}
}

func (s *Usecase) requireSession(ctx context.Context) (string, error) {
	sid := session.ID(ctx)
	if sid == "" {
		return "", goerror.NewBusiness("Cart session required", goerror.CodeUnauthorized)
	}
	return sid, nil
}
