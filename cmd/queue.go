package cmd

import (
	"concert-purchase/common/constant"
	"context"
	"github.com/nats-io/nats.go/jetstream"
	"log/slog"
	"time"
)

type messageHandler func(ctx context.Context, msg []byte) error

// consumeMessages dispatches messages by subject until ctx is done. A handler
// error naks the message so it is redelivered after nakDelay.
func consumeMessages(ctx context.Context, iter jetstream.MessagesContext, handlers map[string]messageHandler, nakDelay time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			msg, err := iter.Next()
			if err == jetstream.ErrMsgIteratorClosed {
				return
			}
			if err != nil {
				slog.ErrorContext(ctx, "Error fetching message", slog.Any(constant.LogFieldErr, err))
				continue
			}

			if msg == nil {
				continue
			}

			handler, ok := handlers[msg.Subject()]
			if !ok {
				slog.WarnContext(ctx, "no handler for subject", slog.String("subject", msg.Subject()))
				if err := msg.Term(); err != nil {
					slog.ErrorContext(ctx, "Error terminating message", slog.Any(constant.LogFieldErr, err))
				}
				continue
			}

			if eventErr := handler(ctx, msg.Data()); eventErr != nil {
				if err := msg.NakWithDelay(nakDelay); err != nil {
					slog.ErrorContext(ctx, "Error naking message", slog.Any(constant.LogFieldErr, err))
				}
				continue
			}

			if err := msg.Ack(); err != nil {
				slog.ErrorContext(ctx, "Error acknowledging message",
					slog.Any(constant.LogFieldErr, err),
					slog.Any(constant.LogFieldPayload, string(msg.Data())),
					slog.String("subject", msg.Subject()),
				)
				continue
			}
		}
	}
}
