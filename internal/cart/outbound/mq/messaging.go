package mq

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/codes"

	"github.com/shandysiswandi/gomart/internal/cart/usecase"
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

func (m *Messaging) PublishItemAdded(ctx context.Context, msg usecase.ItemAddedEvent) error {
	ctx, span := m.ins.Tracer("cart.outbound.mq").Start(ctx, "PublishItemAdded")
	defer span.End()

	body, err := json.Marshal(event.CartItemAddedMessage{
		SessionID: msg.SessionID,
		ProductID: msg.ProductID,
		Quantity:  msg.Quantity,
		Price:     msg.Price.String(),
		AddedAt:   msg.AddedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.client.Publish(ctx, event.CartItemAddedTopic, messaging.OutgoingMessage{
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
