package mail

import (
	"context"
	"io"
	"log/slog"
)

// Message is a single-recipient-list e-mail with a text and optional HTML part.
type Message struct {
	From     string
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mail delivers messages.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

// Log writes messages to the structured log instead of delivering them. It is
// the driver used when no SMTP host is configured.
type Log struct{}

func NewLog() *Log { return &Log{} }

func (*Log) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "mail not delivered, smtp disabled", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (*Log) Close() error { return nil }
