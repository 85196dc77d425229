package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gomart/internal/cart/usecase"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/messaging"
	"github.com/shandysiswandi/gomart/internal/shared/event"
)

type capturePublisher struct {
	topic string
	msg   messaging.OutgoingMessage
	err   error
}

func (c *capturePublisher) Publish(_ context.Context, topic string, msg messaging.OutgoingMessage) error {
	c.topic, c.msg = topic, msg
	return c.err
}

func TestMessaging_PublishItemAdded(t *testing.T) {
	pub := &capturePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "cid-1")

	require.NoError(t, m.PublishItemAdded(ctx, usecase.ItemAddedEvent{
		SessionID: "sid", ProductID: "1", Quantity: 2, Price: decimal.RequireFromString("300.00"), AddedAt: 10,
	}))

	assert.Equal(t, event.CartItemAddedTopic, pub.topic)
	assert.Equal(t, "cid-1", pub.msg.Headers[event.HeaderCorrelationID])

	var body event.CartItemAddedMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &body))
	assert.Equal(t, "300", body.Price)
	assert.Equal(t, 2, body.Quantity)

	pub.err = errors.New("down")
	assert.Error(t, m.PublishItemAdded(ctx, usecase.ItemAddedEvent{SessionID: "sid"}))
}
