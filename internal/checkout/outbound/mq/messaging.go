package mq

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/codes"

	"github.com/shandysiswandi/gomart/internal/checkout/usecase"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/messaging"
	"github.com/shandysiswandi/gomart/internal/shared/event"
)

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishAddressConfirmed(ctx context.Context, msg usecase.AddressConfirmedEvent) error {
	ctx, span := m.ins.Tracer("checkout.outbound.mq").Start(ctx, "PublishAddressConfirmed")
	defer span.End()

	body, err := json.Marshal(event.AddressConfirmedMessage{
		SessionID:   msg.SessionID,
		AddressID:   msg.AddressID,
		Email:       msg.Email,
		ConfirmedAt: msg.ConfirmedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.client.Publish(ctx, event.AddressConfirmedTopic, messaging.OutgoingMessage{
		Key:     []byte(msg.SessionID),
		Body:    body,
		Headers: map[string]string{event.HeaderCorrelationID: instrument.GetCorrelationID(ctx)},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
