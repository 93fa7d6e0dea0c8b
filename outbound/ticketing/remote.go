package ticketing

import (
	"concert-purchase/common"
	"concert-purchase/common/constant"
	"concert-purchase/common/contract"
	"concert-purchase/common/otel"
	"concert-purchase/common/resilience"
	"concert-purchase/model"
	"concert-purchase/outbound/sqlgen"
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type ConcertLookup interface {
	GetConcertByID(ctx context.Context, id int32) (model.Concert, error)
}

// RemoteBackend reserves tickets on an external ticket management API and
// mirrors the sold tickets into the local tickets table.
type RemoteBackend struct {
	Client   *resilience.Client
	BaseURL  string
	Concerts ConcertLookup
	Db       contract.DbConn
	Querier  *sqlgen.Queries
	Events   EventSender
}

func NewRemoteBackend(
	client *resilience.Client,
	baseURL string,
	concerts ConcertLookup,
	db contract.DbConn,
	querier *sqlgen.Queries,
	events EventSender,
) *RemoteBackend {
	return &RemoteBackend{
		Client:   client,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Concerts: concerts,
		Db:       db,
		Querier:  querier,
		Events:   events,
	}
}

func (b *RemoteBackend) Provider() string {
	return constant.ProviderExternalApi
}

func (b *RemoteBackend) CountAvailable(ctx context.Context, concertId int32) (int64, error) {
	externalId, err := b.externalConcertId(ctx, concertId, "")
	if err != nil {
		return 0, err
	}

	var resp model.RemoteCountResponse
	endpoint := fmt.Sprintf("%s/api/concerts/%s/tickets/available", b.BaseURL, url.PathEscape(externalId))
	if err := b.Client.DoJSON(ctx, constant.DependencyTicketManagement, http.MethodGet, endpoint, nil, &resp); err != nil {
		return 0, fmt.Errorf("count available tickets: %w", err)
	}

	return resp.Count, nil
}

func (b *RemoteBackend) HaveSold(ctx context.Context, concertId int32) (bool, error) {
	externalId, err := b.externalConcertId(ctx, concertId, "")
	if err != nil {
		return false, err
	}

	var resp model.RemoteSoldResponse
	endpoint := fmt.Sprintf("%s/api/concerts/%s/tickets/sold", b.BaseURL, url.PathEscape(externalId))
	if err := b.Client.DoJSON(ctx, constant.DependencyTicketManagement, http.MethodGet, endpoint, nil, &resp); err != nil {
		return false, fmt.Errorf("check sold tickets: %w", err)
	}

	return resp.HaveSold, nil
}

func (b *RemoteBackend) ReserveTickets(ctx context.Context, req model.ReserveTicketsRequest) (model.ReserveTicketsResult, error) {
	ctx, span := otel.Tracer.Start(ctx, "RemoteBackend.ReserveTickets", trace.WithAttributes(
		attribute.Int("concert.id", int(req.ConcertId)),
		attribute.Int("ticket.count", int(req.Count)),
	))
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	externalId, err := b.externalConcertId(ctx, req.ConcertId, req.ExternalConcertId)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.ReserveTicketsResult{}, err
	}

	var resp model.RemoteReserveResponse
	err = b.Client.DoJSON(ctx, constant.DependencyTicketManagement, http.MethodPost, b.BaseURL+"/api/tickets/reserve", model.RemoteReserveRequest{
		ConcertId: externalId,
		UserId:    req.UserId,
		Count:     req.Count,
	}, &resp)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.ReserveTicketsResult{}, fmt.Errorf("reserve remote tickets: %w", err)
	}

	if resp.Status != model.ReserveStatusSuccess {
		return model.ReserveTicketsResult{Status: resp.Status}, nil
	}

	if len(resp.TicketNumbers) < int(req.Count) {
		slog.WarnContext(ctx, "remote backend returned fewer tickets than requested", traceIdAttr,
			slog.Int("concert_id", int(req.ConcertId)),
			slog.Int("requested", int(req.Count)),
			slog.Int("returned", len(resp.TicketNumbers)))
		return model.ReserveTicketsResult{Status: model.ReserveStatusNotEnoughTicketsRemaining}, nil
	}

	numbers := resp.TicketNumbers[:req.Count]
	ticketIds, err := b.recordTickets(ctx, req, numbers)
	if err != nil {
		slog.ErrorContext(ctx, "failed to record remote tickets", traceIdAttr, slog.Any("ticket_numbers", numbers), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return model.ReserveTicketsResult{}, err
	}

	emitTicketCreated(ctx, b.Events, ticketIds)

	return model.ReserveTicketsResult{
		Status:        model.ReserveStatusSuccess,
		TicketIds:     ticketIds,
		TicketNumbers: numbers,
	}, nil
}

func (b *RemoteBackend) recordTickets(ctx context.Context, req model.ReserveTicketsRequest, numbers []string) ([]int32, error) {
	tx, err := b.Db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback transaction", slog.Any(constant.LogFieldErr, err))
		}
	}()

	querier := b.Querier.WithTx(tx)

	ticketIds := make([]int32, 0, len(numbers))
	for _, number := range numbers {
		id, err := querier.InsertTicket(ctx, sqlgen.InsertTicketParams{
			ConcertID:    req.ConcertId,
			UserID:       req.UserId,
			CustomerID:   req.CustomerId,
			TicketNumber: number,
		})
		if err != nil {
			return nil, fmt.Errorf("insert ticket: %w", err)
		}
		ticketIds = append(ticketIds, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return ticketIds, nil
}

// externalConcertId falls back to the local id when the concert carries no
// id of its own on the remote side.
func (b *RemoteBackend) externalConcertId(ctx context.Context, concertId int32, known string) (string, error) {
	if known != "" {
		return known, nil
	}

	concert, err := b.Concerts.GetConcertByID(ctx, concertId)
	if err != nil {
		return "", err
	}

	if concert.TicketProviderConcertId != "" {
		return concert.TicketProviderConcertId, nil
	}

	return strconv.Itoa(int(concertId)), nil
}
