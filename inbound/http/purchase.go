package http

import (
	"concert-purchase/common"
	"concert-purchase/common/errs"
	"concert-purchase/common/otel"
	"concert-purchase/model"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type Purchaser interface {
	Purchase(ctx context.Context, req model.PurchaseTicketsRequest) model.PurchaseTicketsResult
}

type PurchaseHttp struct {
	Purchaser Purchaser
}

func RegisterPurchaseHttp(mux *http.ServeMux, purchaser Purchaser) *PurchaseHttp {
	in := &PurchaseHttp{
		Purchaser: purchaser,
	}

	mux.HandleFunc("POST /api/tickets/purchase", in.purchase)

	return in
}

func (in PurchaseHttp) purchase(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseTicketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "PurchaseHttp.purchase")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "purchase tickets receive request",
		slog.String("user_id", req.UserId),
		slog.Any("concert_ids_and_ticket_counts", req.ConcertIdsAndTicketCounts),
		traceIdAttr,
	)

	result := in.Purchaser.Purchase(ctx, req)

	slog.InfoContext(ctx, "purchase tickets result",
		slog.String("status", string(result.Status)),
		slog.String("reason", string(result.Reason)),
		traceIdAttr,
	)

	writeJSONResponse(w, purchaseStatusCode(result), result)
}

func purchaseStatusCode(result model.PurchaseTicketsResult) int {
	if result.Succeeded() {
		return http.StatusAccepted
	}

	switch result.Reason {
	case model.FailureReasonDependencyUnavailable, model.FailureReasonReservationFailed:
		return http.StatusServiceUnavailable
	case model.FailureReasonCaptureFailed:
		return http.StatusBadGateway
	case model.FailureReasonInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
