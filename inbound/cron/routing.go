package cron

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"context"
	"fmt"
	"github.com/spf13/viper"
	"log/slog"
	"time"
)

type ProviderLister interface {
	ListConcertProviders(ctx context.Context) (map[int32]string, error)
}

type ProviderWarmer interface {
	Warm(ctx context.Context, providers map[int32]string) error
}

// RoutingCron preloads the concert to provider routing. Entries already
// cached are never overwritten.
type RoutingCron struct {
	Cfg      *viper.Viper
	Concerts ProviderLister
	Cache    ProviderWarmer
}

func (in RoutingCron) Start(ctx context.Context) {
	refreshTicker := time.NewTicker(in.Cfg.GetDuration("cron.routing.refresh.interval"))
	defer refreshTicker.Stop()

	slog.Info("routing cron started")

	for {
		select {
		case <-refreshTicker.C:
			if err := in.Warm(ctx); err != nil {
				slog.WarnContext(ctx, "routing cache refresh failed", slog.Any(constant.LogFieldErr, err))
			}
		case <-ctx.Done():
			slog.Info("routing cron stopped")
			return
		}
	}
}

func (in RoutingCron) Warm(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, in.Cfg.GetDuration("cron.routing.refresh.timeout"))
	defer cancel()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	providers, err := in.Concerts.ListConcertProviders(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list concert providers", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return fmt.Errorf("list concert providers: %w", err)
	}

	if len(providers) == 0 {
		slog.InfoContext(ctx, "no concerts found to warm routing cache", traceIdAttr)
		return nil
	}

	if err := in.Cache.Warm(ctx, providers); err != nil {
		slog.ErrorContext(ctx, "failed to warm routing cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return fmt.Errorf("warm routing cache: %w", err)
	}

	slog.DebugContext(ctx, "routing cache warmed", traceIdAttr, slog.Int("concerts", len(providers)))
	return nil
}
