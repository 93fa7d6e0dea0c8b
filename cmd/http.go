package cmd

import (
	"concert-purchase/common/constant"
	inboundCron "concert-purchase/inbound/cron"
	inboundHttp "concert-purchase/inbound/http"
	"context"
	"fmt"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime/pprof"
	"time"
)

func runHttpServerCmd(ctx context.Context) {
	cfg := newCfg("env")

	if cfg.GetString("env") == "dev" {
		cpu, err := os.Create("http-cpu.prof")
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer cpu.Close()

		err = pprof.StartCPUProfile(cpu)
		if err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	shutdownTracer := newTracer(ctx, cfg, "concert-purchase-http")
	defer shutdownTracer(context.Background())

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	createStreamWorkQueue(ctx, js)

	breakers := newBreakers(cfg)
	stack := newPurchaseStack(cfg, db, cacheClient, js, breakers)

	handler := inboundHttp.NewApiHandler(cfg.GetDuration("server.request_timeout"), stack.Purchase, stack.Router, breakers)

	routingCron := &inboundCron.RoutingCron{
		Cfg:      cfg,
		Concerts: stack.Concerts,
		Cache:    stack.Cache,
	}

	if err := routingCron.Warm(ctx); err != nil {
		slog.WarnContext(ctx, "routing cache not warmed on start", slog.Any(constant.LogFieldErr, err))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      writeTimeout(cfg) + 5*time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started", slog.Int("port", cfg.GetInt("server.port")))

	go func() {
		routingCron.Start(ctx)
	}()

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	slog.Info("http server stopped")
}

// writeTimeout covers a purchase running its full budget and then settling.
func writeTimeout(cfg *viper.Viper) time.Duration {
	timeout := cfg.GetDuration("server.request_timeout")
	purchase := cfg.GetDuration("purchase.timeout") + cfg.GetDuration("purchase.settle_timeout")

	return max(timeout, purchase)
}
