package http

import (
	"bytes"
	"concert-purchase/common/constant"
	"concert-purchase/model"
	"encoding/json"
	"github.com/stretchr/testify/suite"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

type TicketingSimulatorHttpTestSuite struct {
	suite.Suite

	mux *http.ServeMux
}

func (s *TicketingSimulatorHttpTestSuite) SetupTest() {
	s.mux = http.NewServeMux()
	RegisterTicketingSimulatorHttp(s.mux, 5)
}

func TestTicketingSimulatorHttpTestSuite(t *testing.T) {
	suite.Run(t, new(TicketingSimulatorHttpTestSuite))
}

func (s *TicketingSimulatorHttpTestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *TicketingSimulatorHttpTestSuite) reserve(concertId string, count int32) model.RemoteReserveResponse {
	payload, err := json.Marshal(model.RemoteReserveRequest{ConcertId: concertId, UserId: "user-1", Count: count})
	s.Require().NoError(err)

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tickets/reserve", bytes.NewReader(payload)))
	s.Require().Equal(http.StatusOK, w.Code)

	var resp model.RemoteReserveResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *TicketingSimulatorHttpTestSuite) TestAvailable() {
	tests := []struct {
		name           string
		concertId      string
		expectedStatus int
		expectedCount  int64
	}{
		{name: "unknown concert", concertId: "42", expectedStatus: http.StatusNotFound},
		{name: "existing concert without stock", concertId: "21", expectedStatus: http.StatusOK, expectedCount: 0},
		{name: "existing concert with stock", concertId: "101", expectedStatus: http.StatusOK, expectedCount: 5},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			w := s.get("/api/concerts/" + tc.concertId + "/tickets/available")

			s.Equal(tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusOK {
				var resp model.RemoteCountResponse
				s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				s.Equal(tc.expectedCount, resp.Count)
			}
		})
	}
}

func (s *TicketingSimulatorHttpTestSuite) TestReserve() {
	s.Equal(model.ReserveStatusConcertNotFound, s.reserve("42", 1).Status)
	s.Equal(model.ReserveStatusNotEnoughTicketsRemaining, s.reserve("21", 1).Status)

	resp := s.reserve("101", 3)
	s.Equal(model.ReserveStatusSuccess, resp.Status)
	s.Len(resp.TicketNumbers, 3)
	for _, number := range resp.TicketNumbers {
		s.Regexp(regexp.MustCompile(`^[A-Z0-9]{12}$`), number)
	}

	s.Equal(model.ReserveStatusNotEnoughTicketsRemaining, s.reserve("101", 3).Status)
	s.Equal(model.ReserveStatusSuccess, s.reserve("101", 2).Status)

	var count model.RemoteCountResponse
	s.NoError(json.Unmarshal(s.get("/api/concerts/101/tickets/available").Body.Bytes(), &count))
	s.Equal(int64(0), count.Count)

	var sold model.RemoteSoldResponse
	s.NoError(json.Unmarshal(s.get("/api/concerts/101/tickets/sold").Body.Bytes(), &sold))
	s.True(sold.HaveSold)

	s.NoError(json.Unmarshal(s.get("/api/concerts/21/tickets/sold").Body.Bytes(), &sold))
	s.False(sold.HaveSold)
}

func (s *TicketingSimulatorHttpTestSuite) TestInvalidReserveRequest() {
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tickets/reserve", bytes.NewReader([]byte(`{"concert_id":"101","count":0}`))))
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TicketingSimulatorHttpTestSuite) TestRepeatedIdempotencyKeyReservesOnce() {
	payload, err := json.Marshal(model.RemoteReserveRequest{ConcertId: "101", UserId: "user-1", Count: 3})
	s.Require().NoError(err)

	var responses []model.RemoteReserveResponse
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/api/tickets/reserve", bytes.NewReader(payload))
		req.Header.Set(constant.HeaderIdempotencyKey, "reserve-1")

		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		s.Require().Equal(http.StatusOK, w.Code)

		var resp model.RemoteReserveResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		responses = append(responses, resp)
	}

	s.Equal(model.ReserveStatusSuccess, responses[0].Status)
	s.Equal(responses[0].TicketNumbers, responses[1].TicketNumbers)

	var count model.RemoteCountResponse
	s.NoError(json.Unmarshal(s.get("/api/concerts/101/tickets/available").Body.Bytes(), &count))
	s.Equal(int64(2), count.Count)
}
