package resilience

import (
	"concert-purchase/common/constant"
	"concert-purchase/common/errs"
	"context"
	"encoding/json"
	"errors"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/suite"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type ClientTestSuite struct {
	suite.Suite

	hits   *atomic.Int32
	server *httptest.Server
}

func (s *ClientTestSuite) SetupTest() {
	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
		s.server = nil
	}
}

func (s *ClientTestSuite) serve(handler func(hit int32, w http.ResponseWriter)) {
	if s.server != nil {
		s.server.Close()
	}

	hits := new(atomic.Int32)
	s.hits = hits
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(hits.Add(1), w)
	}))
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) newClient(threshold uint32, cooldown time.Duration, maxRetries uint64, notFoundIsTransient bool) *Client {
	return NewClient(
		s.server.Client(),
		NewBreakerRegistry(BreakerSettings{FailureThreshold: threshold, Cooldown: cooldown, HalfOpenMaxRequests: 1}),
		RetrySettings{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond},
		notFoundIsTransient,
	)
}

func (s *ClientTestSuite) get() RequestBuilder {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, s.server.URL+"/ping", nil)
	}
}

func (s *ClientTestSuite) TestDo() {
	tests := []struct {
		name                string
		notFoundIsTransient bool
		handler             func(hit int32, w http.ResponseWriter)
		expectedStatus      int
		expectedErr         error
		expectedHits        int32
	}{
		{
			name: "retries 503 three times then succeeds",
			handler: func(hit int32, w http.ResponseWriter) {
				if hit <= 3 {
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				w.WriteHeader(http.StatusOK)
			},
			expectedStatus: http.StatusOK,
			expectedHits:   4,
		},
		{
			name: "retries exhausted",
			handler: func(hit int32, w http.ResponseWriter) {
				w.WriteHeader(http.StatusBadGateway)
			},
			expectedErr:  errs.ErrDependencyUnavailable,
			expectedHits: 4,
		},
		{
			name: "client error is returned without retry",
			handler: func(hit int32, w http.ResponseWriter) {
				w.WriteHeader(http.StatusBadRequest)
			},
			expectedStatus: http.StatusBadRequest,
			expectedHits:   1,
		},
		{
			name: "not found is returned when not transient",
			handler: func(hit int32, w http.ResponseWriter) {
				w.WriteHeader(http.StatusNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedHits:   1,
		},
		{
			name:                "not found is retried when transient",
			notFoundIsTransient: true,
			handler: func(hit int32, w http.ResponseWriter) {
				if hit == 1 {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				w.WriteHeader(http.StatusOK)
			},
			expectedStatus: http.StatusOK,
			expectedHits:   2,
		},
		{
			name: "too many requests is retried",
			handler: func(hit int32, w http.ResponseWriter) {
				if hit == 1 {
					w.WriteHeader(http.StatusTooManyRequests)
					return
				}
				w.WriteHeader(http.StatusOK)
			},
			expectedStatus: http.StatusOK,
			expectedHits:   2,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.serve(tc.handler)
			client := s.newClient(10, time.Minute, 3, tc.notFoundIsTransient)

			resp, err := client.Do(context.Background(), "ticket-management", s.get())

			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
				s.Nil(resp)
			} else {
				s.NoError(err)
				s.Equal(tc.expectedStatus, resp.StatusCode)
				_ = resp.Body.Close()
			}
			s.Equal(tc.expectedHits, s.hits.Load())
		})
	}
}

func (s *ClientTestSuite) TestBreakerTripsAndFailsFast() {
	s.serve(func(hit int32, w http.ResponseWriter) { w.WriteHeader(http.StatusServiceUnavailable) })
	client := s.newClient(5, time.Hour, 3, false)

	// four attempts on the first call, the fifth failure on the second call
	// opens the breaker and cuts the remaining retries short
	_, err := client.Do(context.Background(), "ticket-management", s.get())
	s.ErrorIs(err, errs.ErrDependencyUnavailable)
	s.Equal(int32(4), s.hits.Load())

	_, err = client.Do(context.Background(), "ticket-management", s.get())
	s.ErrorIs(err, errs.ErrDependencyUnavailable)
	s.ErrorIs(err, gobreaker.ErrOpenState)
	s.Equal(int32(5), s.hits.Load())
	s.Equal(gobreaker.StateOpen, client.Breakers.State("ticket-management"))

	for i := 0; i < 3; i++ {
		_, err = client.Do(context.Background(), "ticket-management", s.get())
		s.ErrorIs(err, errs.ErrDependencyUnavailable)
	}
	s.Equal(int32(5), s.hits.Load())

	// other dependencies keep their own breaker
	s.Equal(gobreaker.StateClosed, client.Breakers.State("payment-gateway"))
}

func (s *ClientTestSuite) TestBreakerRecoversAfterCooldown() {
	s.serve(func(hit int32, w http.ResponseWriter) {
		if hit == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	client := s.newClient(1, 50*time.Millisecond, 0, false)

	_, err := client.Do(context.Background(), "payment-gateway", s.get())
	s.ErrorIs(err, errs.ErrDependencyUnavailable)

	_, err = client.Do(context.Background(), "payment-gateway", s.get())
	s.ErrorIs(err, gobreaker.ErrOpenState)
	s.Equal(int32(1), s.hits.Load())

	time.Sleep(80 * time.Millisecond)

	resp, err := client.Do(context.Background(), "payment-gateway", s.get())
	s.Require().NoError(err)
	_ = resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(int32(2), s.hits.Load())
	s.Equal(gobreaker.StateClosed, client.Breakers.State("payment-gateway"))
}

func (s *ClientTestSuite) TestCancelledContextIsNotRetried() {
	s.serve(func(hit int32, w http.ResponseWriter) { w.WriteHeader(http.StatusOK) })
	client := s.newClient(1, time.Hour, 3, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Do(ctx, "payment-gateway", s.get())
	s.ErrorIs(err, context.Canceled)
	s.False(errors.Is(err, errs.ErrDependencyUnavailable))
	s.Equal(gobreaker.StateClosed, client.Breakers.State("payment-gateway"))
}

func (s *ClientTestSuite) TestRetriesReuseIdempotencyKey() {
	var (
		mu   sync.Mutex
		keys []string
	)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get(constant.HeaderIdempotencyKey))
		attempt := len(keys)
		mu.Unlock()

		if attempt <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	client := s.newClient(5, time.Hour, 3, false)

	resp, err := client.Do(context.Background(), "payment-gateway", s.get())
	s.Require().NoError(err)
	_ = resp.Body.Close()

	resp, err = client.Do(context.Background(), "payment-gateway", s.get())
	s.Require().NoError(err)
	_ = resp.Body.Close()

	mu.Lock()
	defer mu.Unlock()

	s.Require().Len(keys, 4)
	s.NotEmpty(keys[0])
	s.Equal(keys[0], keys[1])
	s.Equal(keys[0], keys[2])
	s.NotEqual(keys[0], keys[3])
}

func (s *ClientTestSuite) TestBuilderIdempotencyKeyIsKept() {
	var got atomic.Value
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get(constant.HeaderIdempotencyKey))
		w.WriteHeader(http.StatusOK)
	}))
	client := s.newClient(5, time.Hour, 0, false)

	resp, err := client.Do(context.Background(), "payment-gateway", func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.server.URL+"/ping", nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set(constant.HeaderIdempotencyKey, "purchase-42")
		return req, nil
	})
	s.Require().NoError(err)
	_ = resp.Body.Close()

	s.Equal("purchase-42", got.Load())
}

func (s *ClientTestSuite) TestBuildErrorIsPermanent() {
	s.serve(func(hit int32, w http.ResponseWriter) { w.WriteHeader(http.StatusOK) })
	client := s.newClient(1, time.Hour, 3, false)
	buildErr := errors.New("bad request body")
	calls := 0

	_, err := client.Do(context.Background(), "payment-gateway", func(ctx context.Context) (*http.Request, error) {
		calls++
		return nil, buildErr
	})

	s.ErrorIs(err, buildErr)
	s.Equal(1, calls)
	s.Equal(int32(0), s.hits.Load())
}

func (s *ClientTestSuite) TestDoJSON() {
	type payload struct {
		Value string `json:"value"`
	}

	s.serve(func(hit int32, w http.ResponseWriter) {
		if hit == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if hit == 3 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"bad input"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload{Value: "pong"})
	})
	client := s.newClient(5, time.Hour, 3, false)

	var out payload
	err := client.DoJSON(context.Background(), "payment-gateway", http.MethodPost, s.server.URL+"/ping", payload{Value: "ping"}, &out)
	s.NoError(err)
	s.Equal("pong", out.Value)
	s.Equal(int32(2), s.hits.Load())

	err = client.DoJSON(context.Background(), "payment-gateway", http.MethodPost, s.server.URL+"/ping", payload{Value: "ping"}, &out)
	var statusErr *StatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusUnprocessableEntity, statusErr.StatusCode)
	s.False(errors.Is(err, errs.ErrDependencyUnavailable))
}

func TestDecorrelatedJitter(t *testing.T) {
	base, max := 10*time.Millisecond, 200*time.Millisecond
	b := NewDecorrelatedJitter(base, max)

	prev := base
	for i := 0; i < 200; i++ {
		next := b.NextBackOff()
		if next < base || next > max {
			t.Fatalf("delay %v out of [%v, %v]", next, base, max)
		}
		if next > prev*3 {
			t.Fatalf("delay %v grew more than 3x from %v", next, prev)
		}
		prev = next
	}

	b.Reset()
	if next := b.NextBackOff(); next > base*3 {
		t.Fatalf("delay %v after reset exceeds %v", next, base*3)
	}
}
