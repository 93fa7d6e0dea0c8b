package http

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/otel"
	"concert-purchase/model"
	"context"
	"log/slog"
	"net/http"
)

type TicketInventory interface {
	CountAvailable(ctx context.Context, concertId int32) (int64, error)
	HaveSold(ctx context.Context, concertId int32) (bool, error)
}

type ConcertHttp struct {
	Inventory TicketInventory
}

func RegisterConcertHttp(mux *http.ServeMux, inventory TicketInventory) *ConcertHttp {
	in := &ConcertHttp{
		Inventory: inventory,
	}

	mux.HandleFunc("GET /api/concerts/{id}/tickets/available", in.available)
	mux.HandleFunc("GET /api/concerts/{id}/tickets/sold", in.sold)

	return in
}

func (in ConcertHttp) available(w http.ResponseWriter, r *http.Request) {
	concertId, err := parseConcertId(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ConcertHttp.available")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	count, err := in.Inventory.CountAvailable(ctx, concertId)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count available tickets", traceIdAttr, slog.Int("concert_id", int(concertId)), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.TicketCountResponse{ConcertId: concertId, Count: count})
}

func (in ConcertHttp) sold(w http.ResponseWriter, r *http.Request) {
	concertId, err := parseConcertId(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ConcertHttp.sold")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	haveSold, err := in.Inventory.HaveSold(ctx, concertId)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check sold tickets", traceIdAttr, slog.Int("concert_id", int(concertId)), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.TicketSoldResponse{ConcertId: concertId, HaveSold: haveSold})
}
