package ticketing

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/contract"
	"concert-purchase/common/errs"
	"concert-purchase/common/otel"
	"concert-purchase/common/resilience"
	"concert-purchase/model"
	"concert-purchase/outbound/sqlgen"
	"context"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
	"strings"
	"time"
)

var errLostAssignment = errors.New("ticket number assigned by a concurrent reservation")

func DefaultReserveRetry() resilience.RetrySettings {
	return resilience.RetrySettings{
		MaxRetries: 6,
		BaseDelay:  50 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}
}

// SqlBackend keeps the inventory of first-party concerts in PostgreSQL as
// pre-allocated ticket numbers.
type SqlBackend struct {
	Db      contract.DbConn
	Querier *sqlgen.Queries
	Events  EventSender
	Retry   resilience.RetrySettings
}

func NewSqlBackend(db contract.DbConn, querier *sqlgen.Queries, events EventSender, retry resilience.RetrySettings) *SqlBackend {
	return &SqlBackend{
		Db:      db,
		Querier: querier,
		Events:  events,
		Retry:   retry,
	}
}

func (b *SqlBackend) Provider() string {
	return constant.ProviderSql
}

func (b *SqlBackend) CountAvailable(ctx context.Context, concertId int32) (int64, error) {
	count, err := b.Querier.CountAvailableTicketNumbers(ctx, concertId)
	if err != nil {
		return 0, fmt.Errorf("count available ticket numbers: %w", err)
	}

	return count, nil
}

func (b *SqlBackend) HaveSold(ctx context.Context, concertId int32) (bool, error) {
	count, err := b.Querier.CountSoldTicketNumbers(ctx, concertId)
	if err != nil {
		return false, fmt.Errorf("count sold ticket numbers: %w", err)
	}

	return count > 0, nil
}

// ReserveTickets assigns req.Count unassigned ticket numbers to new tickets
// in one transaction. It is all or nothing: when fewer numbers are free the
// transaction is rolled back and NotEnoughTicketsRemaining is returned.
// Transient storage faults restart the whole transaction with a fresh read.
func (b *SqlBackend) ReserveTickets(ctx context.Context, req model.ReserveTicketsRequest) (model.ReserveTicketsResult, error) {
	ctx, span := otel.Tracer.Start(ctx, "SqlBackend.ReserveTickets", trace.WithAttributes(
		attribute.Int("concert.id", int(req.ConcertId)),
		attribute.Int("ticket.count", int(req.Count)),
	))
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var (
		result   model.ReserveTicketsResult
		attempts int
	)

	operation := func() error {
		attempts++
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		res, err := b.reserveOnce(ctx, req)
		if err == nil {
			result = res
			return nil
		}
		if isTransientStorageError(err) {
			return err
		}

		return backoff.Permanent(err)
	}

	notify := func(err error, next time.Duration) {
		slog.WarnContext(ctx, "ticket reservation failed, retrying", traceIdAttr,
			slog.Int("concert_id", int(req.ConcertId)),
			slog.Int("attempt", attempts),
			slog.Duration("backoff", next),
			slog.Any(constant.LogFieldErr, err))
	}

	err := backoff.RetryNotify(operation, b.Retry.NewBackOff(ctx), notify)
	span.SetAttributes(attribute.Int("reservation.attempts", attempts))
	if err != nil {
		if ctx.Err() == nil && isTransientStorageError(err) {
			err = fmt.Errorf("%w: concert %d after %d attempts: %w", errs.ErrReservationFailed, req.ConcertId, attempts, err)
		}
		slog.ErrorContext(ctx, "failed to reserve tickets", traceIdAttr, slog.Int("concert_id", int(req.ConcertId)), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return model.ReserveTicketsResult{}, err
	}

	if result.Status == model.ReserveStatusSuccess {
		emitTicketCreated(ctx, b.Events, result.TicketIds)
	}

	return result, nil
}

func (b *SqlBackend) reserveOnce(ctx context.Context, req model.ReserveTicketsRequest) (model.ReserveTicketsResult, error) {
	tx, err := b.Db.Begin(ctx)
	if err != nil {
		return model.ReserveTicketsResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback transaction", slog.Any(constant.LogFieldErr, err))
		}
	}()

	querier := b.Querier.WithTx(tx)

	slots, err := querier.SelectUnassignedTicketNumbers(ctx, sqlgen.SelectUnassignedTicketNumbersParams{
		ConcertID: req.ConcertId,
		Size:      req.Count,
	})
	if err != nil {
		return model.ReserveTicketsResult{}, fmt.Errorf("select unassigned ticket numbers: %w", err)
	}

	if len(slots) < int(req.Count) {
		return model.ReserveTicketsResult{Status: model.ReserveStatusNotEnoughTicketsRemaining}, nil
	}

	result := model.ReserveTicketsResult{
		Status:        model.ReserveStatusSuccess,
		TicketIds:     make([]int32, 0, len(slots)),
		TicketNumbers: make([]string, 0, len(slots)),
	}

	for _, slot := range slots {
		ticketId, err := querier.InsertTicket(ctx, sqlgen.InsertTicketParams{
			ConcertID:    req.ConcertId,
			UserID:       req.UserId,
			CustomerID:   req.CustomerId,
			TicketNumber: slot.Number,
		})
		if err != nil {
			return model.ReserveTicketsResult{}, fmt.Errorf("insert ticket: %w", err)
		}

		affected, err := querier.AssignTicketNumber(ctx, sqlgen.AssignTicketNumberParams{
			TicketID: ticketId,
			ID:       slot.ID,
		})
		if err != nil {
			return model.ReserveTicketsResult{}, fmt.Errorf("assign ticket number: %w", err)
		}
		if affected != 1 {
			return model.ReserveTicketsResult{}, fmt.Errorf("%w: ticket number %d", errLostAssignment, slot.ID)
		}

		result.TicketIds = append(result.TicketIds, ticketId)
		result.TicketNumbers = append(result.TicketNumbers, slot.Number)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.ReserveTicketsResult{}, fmt.Errorf("commit transaction: %w", err)
	}

	return result, nil
}

func isTransientStorageError(err error) bool {
	if errors.Is(err, errLostAssignment) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			// serialization_failure, deadlock_detected, lock_not_available
			return true
		}
		return strings.HasPrefix(pgErr.Code, "08")
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}
