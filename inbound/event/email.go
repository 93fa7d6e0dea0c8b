package event

import (
	"concert-purchase/common/constant"
	"concert-purchase/model"
	"context"
	"encoding/json"
	"github.com/oklog/ulid/v2"
	"log/slog"
	"time"
)

type EmailSender interface {
	Send(to []string, subject string, body string) error
}

type EmailEvent struct {
	EmailOutbound EmailSender
	Timeout       time.Duration
}

func (in EmailEvent) SendEmailHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.SendEmailEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "send email event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	traceIdAttr := slog.String(constant.LogFieldTraceId, ulid.Make().String())

	if req.To == "" {
		slog.WarnContext(ctx, "send email event without recipient", traceIdAttr)
		return nil
	}

	err = in.EmailOutbound.Send([]string{req.To}, req.Subject, req.Body)
	if err != nil {
		slog.ErrorContext(ctx, "send email event error", slog.Any(constant.LogFieldErr, err), slog.String("to", req.To), traceIdAttr)
		return err
	}

	slog.DebugContext(ctx, "send email event success", slog.String("to", req.To), traceIdAttr)

	return nil
}
