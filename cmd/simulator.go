package cmd

import (
	inboundHttp "concert-purchase/inbound/http"
	"concert-purchase/service"
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"
)

func runSimulatorCmd(ctx context.Context) {
	cfg := newCfg("env")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	inboundHttp.RegisterPaymentSimulatorHttp(mux, service.NewValidator(), cfg.GetFloat64("simulator.payment.max_hold_amount"))
	inboundHttp.RegisterTicketingSimulatorHttp(mux, cfg.GetInt64("simulator.ticketing.initial_stock"))

	failureInjection := inboundHttp.FailureInjectionMiddleware(cfg.GetInt64("simulator.fail_every"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("simulator.port")),
		Handler:           inboundHttp.TraceMiddleware(failureInjection(mux)),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start simulator", err)
		}
	}()

	slog.Info("simulator started", slog.Int("port", cfg.GetInt("simulator.port")))

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown simulator", err)
	}

	slog.Info("simulator stopped")
}
