package ticketing

import (
	"concert-purchase/common/errs"
	"concert-purchase/common/resilience"
	"concert-purchase/model"
	"concert-purchase/outbound/sqlgen"
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
	"log/slog"
	"testing"
	"time"
)

const (
	selectSlotsQuery = "SELECT id, number FROM ticket_numbers"
	insertTicketSql  = "INSERT INTO tickets"
	assignNumberSql  = "UPDATE ticket_numbers SET ticket_id"
)

type SqlBackendTestSuite struct {
	suite.Suite

	PgxMock pgxmock.PgxPoolIface
	events  *recordingEvents
	backend *SqlBackend
}

func (s *SqlBackendTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.events = &recordingEvents{}
	s.backend = NewSqlBackend(pool, sqlgen.New(pool), s.events, resilience.RetrySettings{
		MaxRetries: 6,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	})

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *SqlBackendTestSuite) TearDownTest() {
	s.PgxMock.Close()
}

func TestSqlBackendTestSuite(t *testing.T) {
	suite.Run(t, new(SqlBackendTestSuite))
}

func reserveRequest(count int32) model.ReserveTicketsRequest {
	return model.ReserveTicketsRequest{ConcertId: 42, UserId: "user-1", Count: count, CustomerId: 7}
}

func (s *SqlBackendTestSuite) expectSlots(count int32, slots ...int32) {
	rows := pgxmock.NewRows([]string{"id", "number"})
	for _, id := range slots {
		rows.AddRow(id, fmt.Sprintf("N%d", id))
	}
	s.PgxMock.ExpectQuery(selectSlotsQuery).WithArgs(int32(42), count).WillReturnRows(rows)
}

func (s *SqlBackendTestSuite) expectAssign(slotId, ticketId int32, affected int64) {
	s.PgxMock.ExpectQuery(insertTicketSql).
		WithArgs(int32(42), "user-1", int32(7), fmt.Sprintf("N%d", slotId)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(ticketId))
	s.PgxMock.ExpectExec(assignNumberSql).
		WithArgs(ticketId, slotId).
		WillReturnResult(pgxmock.NewResult("UPDATE", affected))
}

func (s *SqlBackendTestSuite) TestReserveTickets() {
	tests := []struct {
		name           string
		count          int32
		setupMock      func()
		expectedResult model.ReserveTicketsResult
		expectedEvents []int32
		expectedErr    error
		expectError    bool
	}{
		{
			name:  "assigns every requested slot",
			count: 2,
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.expectSlots(2, 1, 2)
				s.expectAssign(1, 10, 1)
				s.expectAssign(2, 11, 1)
				s.PgxMock.ExpectCommit()
			},
			expectedResult: model.ReserveTicketsResult{
				Status:        model.ReserveStatusSuccess,
				TicketIds:     []int32{10, 11},
				TicketNumbers: []string{"N1", "N2"},
			},
			expectedEvents: []int32{10, 11},
		},
		{
			name:  "not enough slots touches nothing",
			count: 2,
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.expectSlots(2, 1)
				s.PgxMock.ExpectRollback()
			},
			expectedResult: model.ReserveTicketsResult{Status: model.ReserveStatusNotEnoughTicketsRemaining},
		},
		{
			name:  "sold out",
			count: 1,
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.expectSlots(1)
				s.PgxMock.ExpectRollback()
			},
			expectedResult: model.ReserveTicketsResult{Status: model.ReserveStatusNotEnoughTicketsRemaining},
		},
		{
			name:  "serialization failure restarts with a fresh read",
			count: 1,
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.PgxMock.ExpectQuery(selectSlotsQuery).WithArgs(int32(42), int32(1)).
					WillReturnError(&pgconn.PgError{Code: "40001", Message: "could not serialize access"})
				s.PgxMock.ExpectRollback()

				s.PgxMock.ExpectBegin()
				s.expectSlots(1, 3)
				s.expectAssign(3, 12, 1)
				s.PgxMock.ExpectCommit()
			},
			expectedResult: model.ReserveTicketsResult{
				Status:        model.ReserveStatusSuccess,
				TicketIds:     []int32{12},
				TicketNumbers: []string{"N3"},
			},
			expectedEvents: []int32{12},
		},
		{
			name:  "slot taken concurrently restarts the reservation",
			count: 1,
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.expectSlots(1, 1)
				s.expectAssign(1, 10, 0)
				s.PgxMock.ExpectRollback()

				s.PgxMock.ExpectBegin()
				s.expectSlots(1, 2)
				s.expectAssign(2, 11, 1)
				s.PgxMock.ExpectCommit()
			},
			expectedResult: model.ReserveTicketsResult{
				Status:        model.ReserveStatusSuccess,
				TicketIds:     []int32{11},
				TicketNumbers: []string{"N2"},
			},
			expectedEvents: []int32{11},
		},
		{
			name:  "commit deadlock is retried",
			count: 1,
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.expectSlots(1, 1)
				s.expectAssign(1, 10, 1)
				s.PgxMock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40P01", Message: "deadlock detected"})

				s.PgxMock.ExpectBegin()
				s.expectSlots(1, 1)
				s.expectAssign(1, 13, 1)
				s.PgxMock.ExpectCommit()
			},
			expectedResult: model.ReserveTicketsResult{
				Status:        model.ReserveStatusSuccess,
				TicketIds:     []int32{13},
				TicketNumbers: []string{"N1"},
			},
			expectedEvents: []int32{13},
		},
		{
			name:  "non transient error is not retried",
			count: 1,
			setupMock: func() {
				s.PgxMock.ExpectBegin()
				s.PgxMock.ExpectQuery(selectSlotsQuery).WithArgs(int32(42), int32(1)).
					WillReturnError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"})
				s.PgxMock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.events.events = nil
			tc.setupMock()

			result, err := s.backend.ReserveTickets(context.Background(), reserveRequest(tc.count))

			switch {
			case tc.expectedErr != nil:
				s.ErrorIs(err, tc.expectedErr)
			case tc.expectError:
				s.Error(err)
				s.NotErrorIs(err, errs.ErrReservationFailed)
			default:
				s.NoError(err)
				s.Equal(tc.expectedResult, result)
			}

			if tc.expectedEvents == nil {
				s.Empty(s.events.entityIds())
			} else {
				s.Equal(tc.expectedEvents, s.events.entityIds())
			}
			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *SqlBackendTestSuite) TestReserveTicketsRetryBudgetExhausted() {
	s.backend.Retry.MaxRetries = 2

	for i := 0; i < 3; i++ {
		s.PgxMock.ExpectBegin()
		s.PgxMock.ExpectQuery(selectSlotsQuery).WithArgs(int32(42), int32(1)).
			WillReturnError(&pgconn.PgError{Code: "40P01", Message: "deadlock detected"})
		s.PgxMock.ExpectRollback()
	}

	_, err := s.backend.ReserveTickets(context.Background(), reserveRequest(1))

	s.ErrorIs(err, errs.ErrReservationFailed)
	s.Empty(s.events.entityIds())
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *SqlBackendTestSuite) TestReserveTicketsEventFailureIsIgnored() {
	s.events.err = fmt.Errorf("nats: no responders")

	s.PgxMock.ExpectBegin()
	s.expectSlots(1, 1)
	s.expectAssign(1, 10, 1)
	s.PgxMock.ExpectCommit()

	result, err := s.backend.ReserveTickets(context.Background(), reserveRequest(1))

	s.NoError(err)
	s.Equal(model.ReserveStatusSuccess, result.Status)
	s.Equal([]int32{10}, s.events.entityIds())
}

func (s *SqlBackendTestSuite) TestCountAvailableAndHaveSold() {
	s.PgxMock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM ticket_numbers WHERE concert_id = \\$1 AND ticket_id IS NULL").
		WithArgs(int32(42)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
	s.PgxMock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM ticket_numbers WHERE concert_id = \\$1 AND ticket_id IS NOT NULL").
		WithArgs(int32(42)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	s.PgxMock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM ticket_numbers WHERE concert_id = \\$1 AND ticket_id IS NOT NULL").
		WithArgs(int32(42)).
		WillReturnError(fmt.Errorf("connection reset"))

	available, err := s.backend.CountAvailable(context.Background(), 42)
	s.NoError(err)
	s.Equal(int64(5), available)

	sold, err := s.backend.HaveSold(context.Background(), 42)
	s.NoError(err)
	s.False(sold)

	_, err = s.backend.HaveSold(context.Background(), 42)
	s.Error(err)

	s.Equal("sql", s.backend.Provider())
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func TestIsTransientStorageError(t *testing.T) {
	tests := []struct {
		err      error
		expected bool
	}{
		{err: &pgconn.PgError{Code: "40001"}, expected: true},
		{err: fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"}), expected: true},
		{err: &pgconn.PgError{Code: "08006"}, expected: true},
		{err: &pgconn.PgError{Code: "23505"}, expected: false},
		{err: fmt.Errorf("%w: slot 1", errLostAssignment), expected: true},
		{err: context.Canceled, expected: false},
		{err: fmt.Errorf("boom"), expected: false},
	}

	for _, tc := range tests {
		if got := isTransientStorageError(tc.err); got != tc.expected {
			t.Errorf("isTransientStorageError(%v) = %v, want %v", tc.err, got, tc.expected)
		}
	}
}
