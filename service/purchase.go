package service

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/errs"
	"concert-purchase/common/otel"
	"concert-purchase/model"
	"context"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
	"math"
	"time"
)

const (
	msgCardDeclined       = "We were unable to process this card. Please review your payment details."
	msgGenericFailure     = "We were unable to complete your purchase. Please try again later."
	msgServiceUnavailable = "A required service is temporarily unavailable. Please try again later."
	msgCaptureFailed      = "Your tickets were reserved but the payment could not be captured. Please contact support."
)

type BackendResolver interface {
	ResolveBackend(ctx context.Context, concertId int32) (TicketBackend, error)
}

type PurchaseService struct {
	Concerts ConcertRepository
	Payments PaymentGateway
	Router   BackendResolver
	Validate *validator.Validate

	// ReleaseHoldOnFailure voids the pre-authorization when a reservation
	// fails instead of waiting for the gateway to expire the hold.
	ReleaseHoldOnFailure bool
	// Timeout bounds pricing, pre-authorization and reservations. Capture and
	// void run on their own SettleTimeout after it.
	Timeout time.Duration
	// SettleTimeout bounds capture and void once they are detached from the
	// caller's cancellation.
	SettleTimeout time.Duration
}

// Purchase pre-authorizes the total, reserves every concert's tickets through
// its backend and captures the hold only once every reservation succeeded.
// Failures are reported in the result, never as a partially successful
// purchase.
func (s *PurchaseService) Purchase(ctx context.Context, req model.PurchaseTicketsRequest) model.PurchaseTicketsResult {
	ctx, span := otel.Tracer.Start(ctx, "PurchaseService.Purchase")
	defer span.End()

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	if err := s.Validate.Struct(req); err != nil {
		slog.DebugContext(ctx, "purchase request invalid", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return failure(model.FailureReasonValidation, toValidationError(err).Fields)
	}

	slog.InfoContext(ctx, "purchase receive request", traceIdAttr,
		slog.String("user_id", req.UserId),
		slog.Any("concerts", req.ConcertIdsAndTicketCounts))

	concerts, amount, lineItems, err := s.price(ctx, req.ConcertIdsAndTicketCounts)
	if err != nil {
		return s.fail(ctx, span, err)
	}
	span.SetAttributes(attribute.Float64("purchase.amount", amount))

	hold, err := s.Payments.PreAuthorize(ctx, model.PreAuthRequest{
		Amount:         amount,
		PaymentDetails: *req.PaymentDetails,
		LineItems:      lineItems,
	})
	if err != nil {
		return s.fail(ctx, span, fmt.Errorf("pre-authorize: %w", err))
	}
	if hold.Status != model.PreAuthStatusFundsOnHold {
		slog.InfoContext(ctx, "payment declined", traceIdAttr, slog.String("status", string(hold.Status)))
		return failure(model.FailureReasonPaymentDeclined, map[string][]string{"": {msgCardDeclined}})
	}

	customerId, err := s.resolveCustomer(ctx, req.PaymentDetails)
	if err != nil {
		s.releaseHold(ctx, hold.HoldCode)
		return s.fail(ctx, span, fmt.Errorf("resolve customer: %w", err))
	}

	for concertId, count := range req.ConcertIdsAndTicketCounts {
		if err := ctx.Err(); err != nil {
			s.releaseHold(ctx, hold.HoldCode)
			return s.fail(ctx, span, err)
		}

		result, err := s.reserve(ctx, concerts[concertId], count, req.UserId, customerId)
		if err != nil {
			s.releaseHold(ctx, hold.HoldCode)
			return s.fail(ctx, span, err)
		}

		if result.Status != model.ReserveStatusSuccess {
			slog.InfoContext(ctx, "tickets not reserved", traceIdAttr, slog.Int("concert_id", int(concertId)), slog.String("status", string(result.Status)))
			s.releaseHold(ctx, hold.HoldCode)

			reason := model.FailureReasonReservationInsufficient
			if result.Status == model.ReserveStatusConcertNotFound {
				reason = model.FailureReasonNotFound
			}
			return failure(reason, map[string][]string{
				"": {fmt.Sprintf("%s: Tickets not successfully reserved", result.Status)},
			})
		}
	}

	// every reservation is committed; the capture must run even if the
	// caller has gone away
	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.settleTimeout())
	defer cancel()

	captured, err := s.Payments.Capture(settleCtx, model.CaptureRequest{HoldCode: hold.HoldCode, Amount: amount})
	if err != nil {
		slog.ErrorContext(ctx, "failed to capture payment", traceIdAttr, slog.String("hold_code", hold.HoldCode), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return model.PurchaseTicketsResult{
			Status:        model.PurchaseStatusCaptureFailed,
			Reason:        model.FailureReasonCaptureFailed,
			ErrorMessages: map[string][]string{"": {msgCaptureFailed}},
		}
	}
	if captured.Status != model.CaptureStatusSuccessful {
		err = fmt.Errorf("%w: %s", errs.ErrCaptureFailed, captured.Status)
		slog.ErrorContext(ctx, "payment capture rejected", traceIdAttr, slog.String("hold_code", hold.HoldCode), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return model.PurchaseTicketsResult{
			Status:        model.PurchaseStatusCaptureFailed,
			Reason:        model.FailureReasonCaptureFailed,
			ErrorMessages: map[string][]string{"": {fmt.Sprintf("%s: %s", captured.Status, msgCaptureFailed)}},
		}
	}

	slog.InfoContext(ctx, "purchase success", traceIdAttr, slog.String("confirmation_number", captured.ConfirmationNumber))

	return model.PurchaseTicketsResult{Status: model.PurchaseStatusSuccess}
}

func (s *PurchaseService) price(ctx context.Context, counts map[int32]int32) (map[int32]model.Concert, float64, []model.LineItem, error) {
	ids := make([]int32, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}

	found, err := s.Concerts.GetConcertsByIDs(ctx, ids)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("get concerts: %w", err)
	}

	concerts := make(map[int32]model.Concert, len(found))
	for _, concert := range found {
		concerts[concert.Id] = concert
	}

	var amount float64
	lineItems := make([]model.LineItem, 0, len(counts))
	for id, count := range counts {
		concert, ok := concerts[id]
		if !ok {
			return nil, 0, nil, fmt.Errorf("%w: %d", errs.ErrConcertNotFound, id)
		}

		amount += concert.Price * float64(count)
		lineItems = append(lineItems, model.LineItem{ConcertId: id, TicketCount: count, UnitPrice: concert.Price})
	}

	return concerts, math.Round(amount*100) / 100, lineItems, nil
}

func (s *PurchaseService) resolveCustomer(ctx context.Context, details *model.PaymentDetails) (int32, error) {
	customer, err := s.Concerts.GetCustomerByEmail(ctx, details.Email)
	if err == nil {
		return customer.Id, nil
	}
	if !errors.Is(err, errs.ErrCustomerNotFound) {
		return 0, err
	}

	id, created, err := s.Concerts.CreateCustomer(ctx, model.Customer{
		Name:  details.Name,
		Email: details.Email,
		Phone: details.Phone,
	})
	if err != nil {
		return 0, err
	}
	if created {
		return id, nil
	}

	// a concurrent purchase created the customer first
	customer, err = s.Concerts.GetCustomerByEmail(ctx, details.Email)
	if err != nil {
		return 0, err
	}

	return customer.Id, nil
}

func (s *PurchaseService) reserve(ctx context.Context, concert model.Concert, count int32, userId string, customerId int32) (model.ReserveTicketsResult, error) {
	ctx, span := otel.Tracer.Start(ctx, "PurchaseService.reserve", trace.WithAttributes(
		attribute.Int("concert.id", int(concert.Id)),
		attribute.Int("ticket.count", int(count)),
	))
	defer span.End()

	backend, err := s.Router.ResolveBackend(ctx, concert.Id)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.ReserveTicketsResult{}, fmt.Errorf("resolve backend for concert %d: %w", concert.Id, err)
	}

	result, err := backend.ReserveTickets(ctx, model.ReserveTicketsRequest{
		ConcertId:         concert.Id,
		UserId:            userId,
		Count:             count,
		CustomerId:        customerId,
		ExternalConcertId: concert.TicketProviderConcertId,
	})
	if err != nil {
		common.UtilSpanError(span, err)
		return model.ReserveTicketsResult{}, fmt.Errorf("reserve tickets for concert %d on %s: %w", concert.Id, backend.Provider(), err)
	}

	return result, nil
}

func (s *PurchaseService) releaseHold(ctx context.Context, holdCode string) {
	if !s.ReleaseHoldOnFailure {
		return
	}

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.settleTimeout())
	defer cancel()

	result, err := s.Payments.Void(ctx, model.VoidRequest{HoldCode: holdCode})
	if err != nil {
		slog.ErrorContext(ctx, "failed to void payment hold", traceIdAttr, slog.String("hold_code", holdCode), slog.Any(constant.LogFieldErr, err))
		return
	}

	slog.InfoContext(ctx, "payment hold voided", traceIdAttr, slog.String("hold_code", holdCode), slog.String("status", string(result.Status)))
}

func (s *PurchaseService) settleTimeout() time.Duration {
	if s.SettleTimeout <= 0 {
		return 30 * time.Second
	}
	return s.SettleTimeout
}

func (s *PurchaseService) fail(ctx context.Context, span trace.Span, err error) model.PurchaseTicketsResult {
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	common.UtilSpanError(span, err)

	switch {
	case errors.Is(err, errs.ErrConcertNotFound):
		slog.InfoContext(ctx, "purchase references unknown concert", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return failure(model.FailureReasonNotFound, map[string][]string{"": {err.Error()}})
	case errors.Is(err, errs.ErrInsufficientTickets):
		return failure(model.FailureReasonReservationInsufficient, map[string][]string{
			"": {fmt.Sprintf("%s: Tickets not successfully reserved", model.ReserveStatusNotEnoughTicketsRemaining)},
		})
	case errors.Is(err, errs.ErrDependencyUnavailable):
		slog.ErrorContext(ctx, "purchase failed, dependency unavailable", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return failure(model.FailureReasonDependencyUnavailable, map[string][]string{"": {msgServiceUnavailable}})
	case errors.Is(err, context.DeadlineExceeded):
		slog.ErrorContext(ctx, "purchase failed, deadline exceeded", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return failure(model.FailureReasonDependencyUnavailable, map[string][]string{"": {msgServiceUnavailable}})
	case errors.Is(err, errs.ErrReservationFailed):
		slog.ErrorContext(ctx, "purchase failed, reservation failed", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return failure(model.FailureReasonReservationFailed, map[string][]string{"": {msgGenericFailure}})
	}

	slog.ErrorContext(ctx, "purchase failed", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	return failure(model.FailureReasonInternal, map[string][]string{"": {msgGenericFailure}})
}

func failure(reason model.FailureReason, messages map[string][]string) model.PurchaseTicketsResult {
	return model.PurchaseTicketsResult{
		Status:        model.PurchaseStatusUnableToProcess,
		Reason:        reason,
		ErrorMessages: messages,
	}
}
