package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/gomart/internal/cart/usecase"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/messaging"
	"github.com/shandysiswandi/gomart/internal/pkg/uid"
	"github.com/shandysiswandi/gomart/internal/shared/event"
)

type MQHandler struct {
	uc   ucConsumer
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers map[string]string) context.Context {
	if cID := headers[event.HeaderCorrelationID]; cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) AddressConfirmed(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("cart.inbound.mq").Start(ctx, "AddressConfirmed")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: checkout address confirmed", "msg_body", string(body))

	var payload event.AddressConfirmedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of checkout address confirmed", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.MarkCheckedOut(ctx, usecase.MarkCheckedOutInput{
		SessionID: payload.SessionID,
		AddressID: payload.AddressID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to mark cart checked out", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
