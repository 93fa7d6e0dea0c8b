package http

import (
	"concert-purchase/common"
	"concert-purchase/common/errs"
	"concert-purchase/model"
	"concert-purchase/outbound/ticketing"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// TicketingSimulatorHttp is a stand-in external ticket management API.
// Concert ids ending in 1 exist, and those that also start with 1 have stock.
type TicketingSimulatorHttp struct {
	InitialStock int64

	mu      sync.Mutex
	reserve map[string]int64
}

func RegisterTicketingSimulatorHttp(mux *http.ServeMux, initialStock int64) *TicketingSimulatorHttp {
	in := &TicketingSimulatorHttp{
		InitialStock: initialStock,
		reserve:      make(map[string]int64),
	}

	mux.HandleFunc("GET /api/concerts/{id}/tickets/available", in.available)
	mux.HandleFunc("GET /api/concerts/{id}/tickets/sold", in.sold)
	mux.HandleFunc("POST /api/tickets/reserve", NewIdempotencyStore().Wrap(in.reserveTickets))

	return in
}

func simulatedConcertExists(id string) bool {
	return strings.HasSuffix(id, "1")
}

func simulatedConcertHasStock(id string) bool {
	return strings.HasPrefix(id, "1") && strings.HasSuffix(id, "1")
}

// remaining must be called with mu held.
func (in *TicketingSimulatorHttp) remaining(id string) int64 {
	if !simulatedConcertHasStock(id) {
		return 0
	}

	return in.InitialStock - in.reserve[id]
}

func (in *TicketingSimulatorHttp) available(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !simulatedConcertExists(id) {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Concert not found"})
		return
	}

	in.mu.Lock()
	count := in.remaining(id)
	in.mu.Unlock()

	writeJSONResponse(w, http.StatusOK, model.RemoteCountResponse{Count: count})
}

func (in *TicketingSimulatorHttp) sold(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !simulatedConcertExists(id) {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Concert not found"})
		return
	}

	in.mu.Lock()
	haveSold := in.reserve[id] > 0
	in.mu.Unlock()

	writeJSONResponse(w, http.StatusOK, model.RemoteSoldResponse{HaveSold: haveSold})
}

func (in *TicketingSimulatorHttp) reserveTickets(w http.ResponseWriter, r *http.Request) {
	var req model.RemoteReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Count <= 0 {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx := r.Context()
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	if !simulatedConcertExists(req.ConcertId) {
		writeJSONResponse(w, http.StatusOK, model.RemoteReserveResponse{Status: model.ReserveStatusConcertNotFound})
		return
	}

	in.mu.Lock()
	if in.remaining(req.ConcertId) < int64(req.Count) {
		in.mu.Unlock()
		writeJSONResponse(w, http.StatusOK, model.RemoteReserveResponse{Status: model.ReserveStatusNotEnoughTicketsRemaining})
		return
	}
	in.reserve[req.ConcertId] += int64(req.Count)
	in.mu.Unlock()

	numbers := make([]string, req.Count)
	for i := range numbers {
		numbers[i] = ticketing.GenerateTicketNumber(ticketing.DefaultTicketNumberLength)
	}

	slog.DebugContext(ctx, "simulated reservation", traceIdAttr, slog.String("concert_id", req.ConcertId), slog.Int("count", int(req.Count)))

	writeJSONResponse(w, http.StatusOK, model.RemoteReserveResponse{
		Status:        model.ReserveStatusSuccess,
		TicketNumbers: numbers,
	})
}
