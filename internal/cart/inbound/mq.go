package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/gomart/internal/pkg/config"
	"github.com/shandysiswandi/gomart/internal/pkg/goroutine"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/messaging"
	"github.com/shandysiswandi/gomart/internal/pkg/uid"
	"github.com/shandysiswandi/gomart/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Consumer,
	uuid uid.StringID,
	uc ucConsumer,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.cart.consumer_names")

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		group   string // queue group for nats, consumer group for kafka
		handler messaging.Handler
	}{
		{
			name:    event.AddressConfirmedConsumerCart,
			topic:   event.AddressConfirmedTopic,
			group:   event.AddressConfirmedConsumerCart,
			handler: mqHandler.AddressConfirmed,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithGroup(consumer.group),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(4),
				)
			})
		}
	}
}
