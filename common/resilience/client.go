package resilience

import (
	"bytes"
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/errs"
	"concert-purchase/common/otel"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"github.com/sony/gobreaker"
	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// RequestBuilder must return a fresh request on every call; a request body
// cannot be replayed across attempts.
type RequestBuilder func(ctx context.Context) (*http.Request, error)

// StatusError is a response the client treats as a transient fault.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	HTTPClient *http.Client
	Breakers   *BreakerRegistry
	Retry      RetrySettings

	// NotFoundIsTransient makes 404 count as a fault, for gateways that
	// answer 404 while a route is being redeployed.
	NotFoundIsTransient bool
}

func NewClient(httpClient *http.Client, breakers *BreakerRegistry, retry RetrySettings, notFoundIsTransient bool) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		HTTPClient:          httpClient,
		Breakers:            breakers,
		Retry:               retry,
		NotFoundIsTransient: notFoundIsTransient,
	}
}

func (c *Client) IsTransientStatus(code int) bool {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code >= http.StatusInternalServerError:
		return true
	case code == http.StatusNotFound:
		return c.NotFoundIsTransient
	}

	return false
}

// Do sends the request built by build to dependency. Every attempt passes the
// dependency's breaker; transient faults are retried with decorrelated jitter.
// All attempts carry the same Idempotency-Key so the dependency can replay
// the outcome of an attempt whose response was lost.
// An open breaker or exhausted retries yield errs.ErrDependencyUnavailable.
// Any other response is returned as is and the caller must close its body.
func (c *Client) Do(ctx context.Context, dependency string, build RequestBuilder) (*http.Response, error) {
	ctx, span := otel.Tracer.Start(ctx, "resilience.Do", trace.WithAttributes(attribute.String("peer.service", dependency)))
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	breaker := c.Breakers.Get(dependency)
	idempotencyKey := ulid.Make().String()

	var (
		resp          *http.Response
		lastTransient error
		attempts      int
	)

	operation := func() error {
		attempts++

		req, err := build(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if req.Header.Get(constant.HeaderIdempotencyKey) == "" {
			req.Header.Set(constant.HeaderIdempotencyKey, idempotencyKey)
		}
		otelapi.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

		out, err := breaker.Execute(func() (interface{}, error) {
			res, err := c.HTTPClient.Do(req)
			if err != nil {
				return nil, err
			}

			if c.IsTransientStatus(res.StatusCode) {
				body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
				_ = res.Body.Close()
				return nil, &StatusError{StatusCode: res.StatusCode, Body: string(body)}
			}

			return res, nil
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(fmt.Errorf("%w: %s: %w", errs.ErrDependencyUnavailable, dependency, err))
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return backoff.Permanent(ctxErr)
			}
			lastTransient = err
			return err
		}

		resp = out.(*http.Response)
		return nil
	}

	notify := func(err error, next time.Duration) {
		slog.WarnContext(ctx, "outbound call failed, retrying", traceIdAttr,
			slog.String("dependency", dependency),
			slog.Int("attempt", attempts),
			slog.Duration("backoff", next),
			slog.Any(constant.LogFieldErr, err))
	}

	err := backoff.RetryNotify(operation, c.Retry.NewBackOff(ctx), notify)
	span.SetAttributes(attribute.Int("resilience.attempts", attempts))
	if err != nil {
		if lastTransient != nil && errors.Is(err, lastTransient) {
			err = fmt.Errorf("%w: %s: retries exhausted: %w", errs.ErrDependencyUnavailable, dependency, err)
		}
		slog.ErrorContext(ctx, "outbound call failed", traceIdAttr, slog.String("dependency", dependency), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return nil, err
	}

	return resp, nil
}

// DoJSON sends in as a JSON body, when not nil, and decodes a 2xx response
// into out. Other statuses that are not transient come back as *StatusError.
func (c *Client) DoJSON(ctx context.Context, dependency, method, url string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.Do(ctx, dependency, func(ctx context.Context) (*http.Request, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", dependency, err)
	}

	return nil
}
