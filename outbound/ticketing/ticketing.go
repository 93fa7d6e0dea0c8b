package ticketing

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/model"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ticketEventTimeout bounds publishing the events of one reservation.
const ticketEventTimeout = 5 * time.Second

type EventSender interface {
	SendEvent(ctx context.Context, event model.Event) error
}

// emitTicketCreated is best-effort: failures are logged and never reach the
// reservation result. The tickets are already committed, so publishing is
// detached from the caller's cancellation and deadline.
func emitTicketCreated(ctx context.Context, events EventSender, ticketIds []int32) {
	if events == nil || len(ticketIds) == 0 {
		return
	}

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ticketEventTimeout)
	defer cancel()

	for _, id := range ticketIds {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.ErrorContext(ctx, "panic while sending ticket created event", traceIdAttr, slog.Int("ticket_id", int(id)), slog.Any(constant.LogFieldErr, fmt.Errorf("%v", r)))
				}
			}()

			err := events.SendEvent(ctx, model.Event{EventType: constant.EventTypeTicketCreated, EntityId: id})
			if err != nil {
				slog.WarnContext(ctx, "failed to send ticket created event", traceIdAttr, slog.Int("ticket_id", int(id)), slog.Any(constant.LogFieldErr, err))
			}
		}()
	}
}
