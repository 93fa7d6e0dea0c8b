package http

import (
	"net/http"
	"time"
)

// NewApiHandler routes the public API. Inventory and health requests are cut
// off after requestTimeout; purchases are not, since Purchaser bounds its own
// work and must always answer with a result.
func NewApiHandler(requestTimeout time.Duration, purchaser Purchaser, inventory TicketInventory, breakers BreakerStates) http.Handler {
	mux := http.NewServeMux()
	timed := http.NewServeMux()

	RegisterHealthHttp(timed, breakers)
	RegisterConcertHttp(timed, inventory)
	mux.Handle("/", TimeoutMiddleware(requestTimeout)(timed))

	RegisterPurchaseHttp(mux, purchaser)

	return TraceMiddleware(CorsMiddleware(mux))
}
