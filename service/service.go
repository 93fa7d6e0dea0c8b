package service

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"concert-purchase/model"
	"context"
)

// ConcertRepository reads concerts and customers. Missing rows are reported
// as errs.ErrConcertNotFound and errs.ErrCustomerNotFound.
type ConcertRepository interface {
	GetConcertByID(ctx context.Context, id int32) (model.Concert, error)
	GetConcertsByIDs(ctx context.Context, ids []int32) ([]model.Concert, error)
	GetCustomerByEmail(ctx context.Context, email string) (model.Customer, error)
	// CreateCustomer reports created=false when another request inserted the
	// same email first.
	CreateCustomer(ctx context.Context, customer model.Customer) (id int32, created bool, err error)
}

type PaymentGateway interface {
	PreAuthorize(ctx context.Context, req model.PreAuthRequest) (model.PreAuthResult, error)
	Capture(ctx context.Context, req model.CaptureRequest) (model.CaptureResult, error)
	Void(ctx context.Context, req model.VoidRequest) (model.VoidResult, error)
}

// TicketBackend owns the inventory of the concerts tagged with its provider.
type TicketBackend interface {
	Provider() string
	CountAvailable(ctx context.Context, concertId int32) (int64, error)
	HaveSold(ctx context.Context, concertId int32) (bool, error)
	ReserveTickets(ctx context.Context, req model.ReserveTicketsRequest) (model.ReserveTicketsResult, error)
}

type RoutingCache interface {
	Get(ctx context.Context, concertId int32) (provider string, ok bool, err error)
	Set(ctx context.Context, concertId int32, provider string) error
}
