package http

import (
	"concert-purchase/common/errs"
	"context"
	"fmt"
	"github.com/stretchr/testify/suite"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubInventory struct {
	count    int64
	haveSold bool
	err      error
	asked    int32
}

func (s *stubInventory) CountAvailable(ctx context.Context, concertId int32) (int64, error) {
	s.asked = concertId
	return s.count, s.err
}

func (s *stubInventory) HaveSold(ctx context.Context, concertId int32) (bool, error) {
	s.asked = concertId
	return s.haveSold, s.err
}

type stubBreakerStates map[string]string

func (s stubBreakerStates) States() map[string]string {
	return s
}

type ConcertHttpTestSuite struct {
	suite.Suite
}

func TestConcertHttpTestSuite(t *testing.T) {
	suite.Run(t, new(ConcertHttpTestSuite))
}

func (s *ConcertHttpTestSuite) TestTickets() {
	tests := []struct {
		name           string
		path           string
		inventory      *stubInventory
		expectedStatus int
		expectedBody   string
		expectedAsked  int32
	}{
		{
			name:           "available",
			path:           "/api/concerts/42/tickets/available",
			inventory:      &stubInventory{count: 17},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"concert_id":42,"count":17}`,
			expectedAsked:  42,
		},
		{
			name:           "sold",
			path:           "/api/concerts/77/tickets/sold",
			inventory:      &stubInventory{haveSold: true},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"concert_id":77,"have_sold":true}`,
			expectedAsked:  77,
		},
		{
			name:           "invalid id",
			path:           "/api/concerts/abc/tickets/available",
			inventory:      &stubInventory{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid concert id"}`,
		},
		{
			name:           "non-positive id",
			path:           "/api/concerts/0/tickets/sold",
			inventory:      &stubInventory{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid concert id"}`,
		},
		{
			name:           "unknown concert",
			path:           "/api/concerts/99/tickets/available",
			inventory:      &stubInventory{err: fmt.Errorf("%w: 99", errs.ErrConcertNotFound)},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Concert not found"}`,
			expectedAsked:  99,
		},
		{
			name:           "backend unavailable",
			path:           "/api/concerts/77/tickets/sold",
			inventory:      &stubInventory{err: fmt.Errorf("check sold tickets: %w", errs.ErrDependencyUnavailable)},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"Service Unavailable"}`,
			expectedAsked:  77,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			mux := http.NewServeMux()
			RegisterConcertHttp(mux, tc.inventory)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			s.Equal(tc.expectedStatus, w.Code)
			s.Equal(tc.expectedBody, strings.TrimSpace(w.Body.String()))
			s.Equal(tc.expectedAsked, tc.inventory.asked)
		})
	}
}

func (s *ConcertHttpTestSuite) TestHealth() {
	mux := http.NewServeMux()
	RegisterHealthHttp(mux, stubBreakerStates{"payment-gateway": "closed", "ticket-management": "open"})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusOK, w.Code)
	s.Equal(`{"status":"ok","breakers":{"payment-gateway":"closed","ticket-management":"open"}}`, strings.TrimSpace(w.Body.String()))
}
