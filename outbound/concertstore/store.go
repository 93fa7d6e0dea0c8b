package concertstore

import (
	"concert-purchase/common/errs"
	"concert-purchase/model"
	"concert-purchase/outbound/sqlgen"
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
)

// Store reads concerts and customers from PostgreSQL.
type Store struct {
	Querier *sqlgen.Queries
}

func New(querier *sqlgen.Queries) *Store {
	return &Store{Querier: querier}
}

func (s *Store) GetConcertByID(ctx context.Context, id int32) (model.Concert, error) {
	row, err := s.Querier.GetConcertByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Concert{}, fmt.Errorf("%w: %d", errs.ErrConcertNotFound, id)
	}
	if err != nil {
		return model.Concert{}, fmt.Errorf("get concert %d: %w", id, err)
	}

	return toConcert(row), nil
}

func (s *Store) GetConcertsByIDs(ctx context.Context, ids []int32) ([]model.Concert, error) {
	rows, err := s.Querier.GetConcertsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get concerts: %w", err)
	}

	concerts := make([]model.Concert, 0, len(rows))
	for _, row := range rows {
		concerts = append(concerts, toConcert(row))
	}

	return concerts, nil
}

func (s *Store) ListConcertProviders(ctx context.Context) (map[int32]string, error) {
	rows, err := s.Querier.ListConcertProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list concert providers: %w", err)
	}

	providers := make(map[int32]string, len(rows))
	for _, row := range rows {
		providers[row.ID] = row.TicketProvider
	}

	return providers, nil
}

func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (model.Customer, error) {
	row, err := s.Querier.GetCustomerByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, errs.ErrCustomerNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("get customer: %w", err)
	}

	return model.Customer{Id: row.ID, Name: row.Name, Email: row.Email, Phone: row.Phone}, nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer model.Customer) (int32, bool, error) {
	id, err := s.Querier.InsertCustomer(ctx, sqlgen.InsertCustomerParams{
		Name:  customer.Name,
		Email: customer.Email,
		Phone: customer.Phone,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		// ON CONFLICT DO NOTHING returns no row
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("insert customer: %w", err)
	}

	return id, true, nil
}

func toConcert(row sqlgen.Concert) model.Concert {
	return model.Concert{
		Id:                      row.ID,
		Title:                   row.Title,
		Artist:                  row.Artist,
		IsVisible:               row.IsVisible,
		Price:                   row.Price,
		TicketProvider:          row.TicketProvider,
		TicketProviderConcertId: row.TicketProviderConcertID,
	}
}
