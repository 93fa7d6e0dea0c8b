package http

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/errs"
	"concert-purchase/model"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"log/slog"
	"math"
	"net/http"
	"sync"
)

// PaymentSimulatorHttp is a stand-in payment gateway. Holds live in memory
// until they are captured or voided. Requests repeating an Idempotency-Key
// get the first response back.
type PaymentSimulatorHttp struct {
	Validate      *validator.Validate
	MaxHoldAmount float64

	mu    sync.Mutex
	holds map[string]float64
}

func RegisterPaymentSimulatorHttp(mux *http.ServeMux, validate *validator.Validate, maxHoldAmount float64) *PaymentSimulatorHttp {
	in := &PaymentSimulatorHttp{
		Validate:      validate,
		MaxHoldAmount: maxHoldAmount,
		holds:         make(map[string]float64),
	}

	idempotency := NewIdempotencyStore()
	mux.HandleFunc("POST /api/payments/preauth", idempotency.Wrap(in.preAuth))
	mux.HandleFunc("POST /api/payments/capture", idempotency.Wrap(in.capture))
	mux.HandleFunc("POST /api/payments/void", idempotency.Wrap(in.void))

	return in
}

func (in *PaymentSimulatorHttp) preAuth(w http.ResponseWriter, r *http.Request) {
	var req model.PreAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx := r.Context()
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	if err := in.Validate.Struct(req.PaymentDetails); err != nil {
		slog.DebugContext(ctx, "simulated pre-auth rejected card", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeJSONResponse(w, http.StatusOK, model.PreAuthResult{Status: model.PreAuthStatusNotAValidCard})
		return
	}

	if req.Amount <= 0 || (in.MaxHoldAmount > 0 && req.Amount > in.MaxHoldAmount) {
		slog.DebugContext(ctx, "simulated pre-auth insufficient funds", traceIdAttr, slog.Float64("amount", req.Amount))
		writeJSONResponse(w, http.StatusOK, model.PreAuthResult{Status: model.PreAuthStatusInsufficientFunds})
		return
	}

	holdCode := generateDummyPaymentCode()

	in.mu.Lock()
	in.holds[holdCode] = req.Amount
	in.mu.Unlock()

	slog.DebugContext(ctx, "simulated pre-auth funds on hold", traceIdAttr, slog.String("hold_code", holdCode), slog.Float64("amount", req.Amount))

	writeJSONResponse(w, http.StatusOK, model.PreAuthResult{HoldCode: holdCode, Status: model.PreAuthStatusFundsOnHold})
}

func (in *PaymentSimulatorHttp) capture(w http.ResponseWriter, r *http.Request) {
	var req model.CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	amount, ok := in.holds[req.HoldCode]
	if !ok {
		writeJSONResponse(w, http.StatusOK, model.CaptureResult{Status: model.CaptureStatusInvalidHoldCode})
		return
	}

	if math.Abs(amount-req.Amount) > 0.005 {
		writeJSONResponse(w, http.StatusOK, model.CaptureResult{Status: model.CaptureStatusInvalidHoldAmount})
		return
	}

	delete(in.holds, req.HoldCode)

	writeJSONResponse(w, http.StatusOK, model.CaptureResult{
		ConfirmationNumber: generateDummyPaymentCode(),
		Status:             model.CaptureStatusSuccessful,
	})
}

func (in *PaymentSimulatorHttp) void(w http.ResponseWriter, r *http.Request) {
	var req model.VoidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	if _, ok := in.holds[req.HoldCode]; !ok {
		writeJSONResponse(w, http.StatusOK, model.VoidResult{Status: model.VoidStatusInvalidHoldCode})
		return
	}

	delete(in.holds, req.HoldCode)

	writeJSONResponse(w, http.StatusOK, model.VoidResult{Status: model.VoidStatusVoided})
}

func (in *PaymentSimulatorHttp) openHolds() int {
	in.mu.Lock()
	defer in.mu.Unlock()

	return len(in.holds)
}

func generateDummyPaymentCode() string {
	return ulid.Make().String()
}
