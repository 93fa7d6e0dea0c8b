package payment

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/otel"
	"concert-purchase/common/resilience"
	"concert-purchase/model"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

const (
	preAuthPath = "/api/payments/preauth"
	capturePath = "/api/payments/capture"
	voidPath    = "/api/payments/void"
)

// Gateway talks to the payment gateway over HTTP. Every call goes through
// the shared resilience client under the payment-gateway breaker.
type Gateway struct {
	Client  *resilience.Client
	BaseURL string
}

func NewGateway(client *resilience.Client, baseURL string) *Gateway {
	return &Gateway{Client: client, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (g *Gateway) PreAuthorize(ctx context.Context, req model.PreAuthRequest) (model.PreAuthResult, error) {
	ctx, span := otel.Tracer.Start(ctx, "PaymentGateway.PreAuthorize")
	defer span.End()

	var result model.PreAuthResult
	if err := g.Client.DoJSON(ctx, constant.DependencyPaymentGateway, http.MethodPost, g.BaseURL+preAuthPath, req, &result); err != nil {
		common.UtilSpanError(span, err)
		return model.PreAuthResult{}, fmt.Errorf("pre-authorize payment: %w", err)
	}

	slog.DebugContext(ctx, "payment pre-authorized", common.ExtractTraceIDFromCtx(ctx), slog.String("status", string(result.Status)))

	return result, nil
}

func (g *Gateway) Capture(ctx context.Context, req model.CaptureRequest) (model.CaptureResult, error) {
	ctx, span := otel.Tracer.Start(ctx, "PaymentGateway.Capture")
	defer span.End()

	var result model.CaptureResult
	if err := g.Client.DoJSON(ctx, constant.DependencyPaymentGateway, http.MethodPost, g.BaseURL+capturePath, req, &result); err != nil {
		common.UtilSpanError(span, err)
		return model.CaptureResult{}, fmt.Errorf("capture payment: %w", err)
	}

	return result, nil
}

func (g *Gateway) Void(ctx context.Context, req model.VoidRequest) (model.VoidResult, error) {
	ctx, span := otel.Tracer.Start(ctx, "PaymentGateway.Void")
	defer span.End()

	var result model.VoidResult
	if err := g.Client.DoJSON(ctx, constant.DependencyPaymentGateway, http.MethodPost, g.BaseURL+voidPath, req, &result); err != nil {
		common.UtilSpanError(span, err)
		return model.VoidResult{}, fmt.Errorf("void payment hold: %w", err)
	}

	return result, nil
}
