package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gomart/internal/checkout/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/idempotency"
)

type SubmitAddressInput struct {
	Form           entity.AddressFormInput
	IdempotencyKey string
}

func (s *Usecase) SubmitAddress(ctx context.Context, in SubmitAddressInput) (_ *entity.ShippingAddress, err error) {
	ctx, span := s.startSpan(ctx, "SubmitAddress")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	form := entity.NewFormState(in.Form)
	addr := form.Submit(s.address)
	if !form.Valid {
		s.countSubmission(ctx, "invalid")
		return nil, goerror.NewFieldErrors(form.Errors)
	}

	var saved *entity.ShippingAddress
	store := func(ctx context.Context) error {
		rec, err := s.store(ctx, sid, *addr)
		if err != nil {
			return err
		}
		saved = rec
		return nil
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		err = store(ctx)
	} else {
		err = s.idem.Exec(ctx, "checkout:address:"+sid+":"+key, store,
			idempotency.WithLockDuration(s.cfg.GetSecond("checkout.idempotency.lock_seconds")),
			idempotency.WithStateTTL(s.cfg.GetSecond("checkout.idempotency.ttl_seconds")),
		)
	}

	switch {
	case err == nil:
	case errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyFailed):
		s.countSubmission(ctx, "duplicate")
		return nil, goerror.NewBusiness("Duplicate submission", goerror.CodeConflict)
	default:
		s.countSubmission(ctx, "error")
		slog.ErrorContext(ctx, "failed to store shipping address", "session_id", sid, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.countSubmission(ctx, "valid")
	s.afterConfirmed(ctx, *saved)

	return saved, nil
}

func (s *Usecase) store(ctx context.Context, sid string, addr entity.ValidatedAddress) (*entity.ShippingAddress, error) {
	rec := entity.ShippingAddress{
		ID:               s.uid.Generate(),
		SessionID:        sid,
		ValidatedAddress: addr,
		CreatedAt:        s.clock.Now(),
	}

	if err := s.repoDB.SaveAddress(ctx, rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// afterConfirmed announces the stored address and schedules the confirmation
// mail. Failures here are logged; the address is already stored.
func (s *Usecase) afterConfirmed(ctx context.Context, rec entity.ShippingAddress) {
	if err := s.repoMessaging.PublishAddressConfirmed(ctx, AddressConfirmedEvent{
		SessionID:   rec.SessionID,
		AddressID:   rec.ID,
		Email:       rec.Email,
		ConfirmedAt: rec.CreatedAt.Unix(),
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish address confirmed", "session_id", rec.SessionID, "address_id", rec.ID, "error", err)
	}

	if !s.cfg.GetBool("checkout.confirmation_mail.enabled") {
		return
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		msg, err := s.confirmationMail(rec)
		if err != nil {
			slog.ErrorContext(ctx, "failed to render confirmation mail", "address_id", rec.ID, "error", err)
			return err
		}

		if err := s.repoMail.Send(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to send confirmation mail", "address_id", rec.ID, "error", err)
			return err
		}
		return nil
	})
}
