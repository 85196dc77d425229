package mail

import (
	"context"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTP(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{Host: "localhost"})
	assert.ErrorIs(t, err, ErrSMTPHostPortRequired)

	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025})
	require.NoError(t, err)
	assert.Equal(t, "localhost:1025", s.addr)
	assert.Nil(t, s.auth)
}

func TestSMTP_Send(t *testing.T) {
	var (
		gotFrom string
		gotTo   []string
		gotMsg  string
	)
	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025, From: "shop@gomart.test"})
	require.NoError(t, err)
	s.send = func(_ string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotFrom, gotTo, gotMsg = from, to, string(msg)
		return nil
	}

	t.Run("NoRecipients", func(t *testing.T) {
		assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrSMTPNoRecipients)
	})

	t.Run("TextOnly", func(t *testing.T) {
		err := s.Send(context.Background(), Message{To: []string{"a@b.com"}, Subject: "Hi", TextBody: "body"})
		require.NoError(t, err)
		assert.Equal(t, "shop@gomart.test", gotFrom)
		assert.Equal(t, []string{"a@b.com"}, gotTo)
		assert.Contains(t, gotMsg, "Subject: Hi\r\n")
		assert.Contains(t, gotMsg, "text/plain")
	})

	t.Run("Multipart", func(t *testing.T) {
		err := s.Send(context.Background(), Message{To: []string{"a@b.com"}, TextBody: "t", HTMLBody: "<b>h</b>"})
		require.NoError(t, err)
		assert.Contains(t, gotMsg, "multipart/alternative")
		assert.Contains(t, gotMsg, "<b>h</b>")
	})

	t.Run("NoSender", func(t *testing.T) {
		s2 := *s
		s2.from = ""
		assert.ErrorIs(t, s2.Send(context.Background(), Message{To: []string{"a@b.com"}}), ErrSMTPNoSender)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Send(ctx, Message{To: []string{"a@b.com"}}), context.Canceled)
	})
}
