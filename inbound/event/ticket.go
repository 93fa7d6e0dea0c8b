package event

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/jetstream"
	"concert-purchase/common/otel"
	"concert-purchase/model"
	"concert-purchase/outbound/sqlgen"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"golang.org/x/text/message"
	"log/slog"
	"time"
)

type TicketEvent struct {
	Querier           *sqlgen.Queries
	Publisher         jetstream.Publisher
	CurrencyFormatter *message.Printer

	Timeout time.Duration
}

// CreatedHandler turns a TicketCreated event into a confirmation email
// request for the ticket's customer.
func (in TicketEvent) CreatedHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.Event
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "ticket created event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "TicketEvent.created")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.InfoContext(ctx, "ticket created event receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	if req.EventType != constant.EventTypeTicketCreated {
		slog.WarnContext(ctx, "unexpected event type", slog.String("event_type", req.EventType), traceIdAttr)
		return nil
	}

	ticket, err := in.Querier.GetTicketDetail(ctx, req.EntityId)
	if errors.Is(err, pgx.ErrNoRows) {
		slog.WarnContext(ctx, "ticket not found", traceIdAttr, slog.Int("ticket_id", int(req.EntityId)))
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get ticket", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return err
	}

	sendEmailReq := model.SendEmailEventMessage{
		To:      ticket.Email,
		Subject: fmt.Sprintf(constant.EmailTicketConfirmationSubject, ticket.Title),
		Body:    in.buildTicketConfirmationEmailBody(ticket),
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, sendEmailReq)
	if err != nil {
		slog.ErrorContext(ctx, "ticket created event publish error", slog.Any(constant.LogFieldErr, err), traceIdAttr)
		common.UtilSpanError(span, err)
		return err
	}

	slog.DebugContext(ctx, "ticket created event publish success", traceIdAttr)

	return nil
}

func (in TicketEvent) buildTicketConfirmationEmailBody(ticket sqlgen.GetTicketDetailRow) string {
	return fmt.Sprintf(constant.EmailTicketConfirmationTemplate,
		ticket.Name,
		fmt.Sprintf("RLC-%d", ticket.ID),
		fmt.Sprintf("%s - %s", ticket.Title, ticket.Artist),
		ticket.TicketNumber,
		in.CurrencyFormatter.Sprintf("$%.2f", ticket.Price),
	)
}
