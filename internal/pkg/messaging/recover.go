package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/shandysiswandi/gomart/internal/pkg/stacktrace"
)

// dispatch runs handler with panic recovery and settles the message when
// autoAck is set.
func dispatch(ctx context.Context, driver string, handler Handler, msg Message, autoAck bool) {
	err := func() (err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.ErrorContext(ctx, "panic in messaging handler",
					"driver", driver,
					"topic", msg.Topic(),
					"panic", rvr,
					"stack", stacktrace.InternalPaths(debug.Stack()),
				)
				err = fmt.Errorf("messaging: panic in %s handler: %v", driver, rvr)
			}
		}()
		return handler(ctx, msg)
	}()

	if err != nil {
		slog.WarnContext(ctx, "messaging handler failed", "driver", driver, "topic", msg.Topic(), "error", err)
	}
	if !autoAck {
		return
	}

	settle := msg.Ack
	if err != nil {
		settle = msg.Nack
	}
	if serr := settle(ctx); serr != nil {
		slog.WarnContext(ctx, "failed to settle message", "driver", driver, "topic", msg.Topic(), "error", serr)
	}
}
