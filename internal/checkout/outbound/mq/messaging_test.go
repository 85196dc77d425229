package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gomart/internal/checkout/usecase"
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

func TestMessaging_PublishAddressConfirmed(t *testing.T) {
	pub := &capturePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "cid-9")

	require.NoError(t, m.PublishAddressConfirmed(ctx, usecase.AddressConfirmedEvent{
		SessionID: "sid", AddressID: 1790000000000000001, Email: "a@b.com", ConfirmedAt: 10,
	}))

	assert.Equal(t, event.AddressConfirmedTopic, pub.topic)
	assert.Equal(t, "sid", string(pub.msg.Key))
	assert.Equal(t, "cid-9", pub.msg.Headers[event.HeaderCorrelationID])
	assert.Contains(t, string(pub.msg.Body), `"address_id":"1790000000000000001"`)

	var body event.AddressConfirmedMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &body))
	assert.Equal(t, int64(1790000000000000001), body.AddressID)
	assert.Equal(t, "a@b.com", body.Email)

	pub.err = errors.New("down")
	assert.Error(t, m.PublishAddressConfirmed(ctx, usecase.AddressConfirmedEvent{SessionID: "sid"}))
}
