package service

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/errs"
	"concert-purchase/common/otel"
	"context"
	"fmt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
	"sort"
)

// BackendRegistry is the fixed provider tag to backend table. It is built
// once at startup and only read afterwards.
type BackendRegistry struct {
	backends map[string]TicketBackend
}

func NewBackendRegistry(backends ...TicketBackend) (*BackendRegistry, error) {
	registry := &BackendRegistry{backends: make(map[string]TicketBackend, len(backends))}

	for _, backend := range backends {
		provider := backend.Provider()
		if _, ok := registry.backends[provider]; ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrDuplicateProvider, provider)
		}
		registry.backends[provider] = backend
	}

	return registry, nil
}

// Require fails unless every provider has a registered backend.
func (r *BackendRegistry) Require(providers ...string) error {
	for _, provider := range providers {
		if _, ok := r.backends[provider]; !ok {
			return fmt.Errorf("%w: %s", errs.ErrUnknownProvider, provider)
		}
	}

	return nil
}

func (r *BackendRegistry) Lookup(provider string) (TicketBackend, error) {
	backend, ok := r.backends[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownProvider, provider)
	}

	return backend, nil
}

func (r *BackendRegistry) Providers() []string {
	providers := make([]string, 0, len(r.backends))
	for provider := range r.backends {
		providers = append(providers, provider)
	}
	sort.Strings(providers)

	return providers
}

// Router resolves the backend that owns a concert's inventory. Resolved
// providers are cached and never invalidated here, so a provider change on a
// concert is only seen once the cache entry expires.
type Router struct {
	Concerts ConcertRepository
	Cache    RoutingCache
	Backends *BackendRegistry
}

func NewRouter(concerts ConcertRepository, cache RoutingCache, backends *BackendRegistry) *Router {
	return &Router{
		Concerts: concerts,
		Cache:    cache,
		Backends: backends,
	}
}

func (r *Router) ResolveBackend(ctx context.Context, concertId int32) (TicketBackend, error) {
	ctx, span := otel.Tracer.Start(ctx, "Router.ResolveBackend", trace.WithAttributes(attribute.Int("concert.id", int(concertId))))
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	provider, ok, err := r.Cache.Get(ctx, concertId)
	if err != nil {
		slog.WarnContext(ctx, "failed to read routing cache", traceIdAttr, slog.Int("concert_id", int(concertId)), slog.Any(constant.LogFieldErr, err))
		ok = false
	}

	if !ok {
		concert, err := r.Concerts.GetConcertByID(ctx, concertId)
		if err != nil {
			common.UtilSpanError(span, err)
			return nil, err
		}
		provider = concert.TicketProvider

		if err := r.Cache.Set(ctx, concertId, provider); err != nil {
			slog.WarnContext(ctx, "failed to write routing cache", traceIdAttr, slog.Int("concert_id", int(concertId)), slog.Any(constant.LogFieldErr, err))
		}
	}

	span.SetAttributes(attribute.String("ticket.provider", provider))

	backend, err := r.Backends.Lookup(provider)
	if err != nil {
		slog.ErrorContext(ctx, "concert routed to unknown provider", traceIdAttr, slog.Int("concert_id", int(concertId)), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return nil, err
	}

	return backend, nil
}

func (r *Router) CountAvailable(ctx context.Context, concertId int32) (int64, error) {
	backend, err := r.ResolveBackend(ctx, concertId)
	if err != nil {
		return 0, err
	}

	return backend.CountAvailable(ctx, concertId)
}

func (r *Router) HaveSold(ctx context.Context, concertId int32) (bool, error) {
	backend, err := r.ResolveBackend(ctx, concertId)
	if err != nil {
		return false, err
	}

	return backend.HaveSold(ctx, concertId)
}
