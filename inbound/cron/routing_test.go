package cron

import (
	"concert-purchase/outbound/concertstore"
	"concert-purchase/outbound/routingcache"
	"concert-purchase/outbound/sqlgen"
	"context"
	"fmt"
	"github.com/go-redis/redismock/v9"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"log/slog"
	"testing"
	"time"
)

type RoutingCronTestSuite struct {
	suite.Suite

	PgxMock pgxmock.PgxPoolIface

	Cache     *redis.Client
	CacheMock redismock.ClientMock

	Cfg  *viper.Viper
	cron RoutingCron
}

func (s *RoutingCronTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}
	s.PgxMock = pool

	rdb, mock := redismock.NewClientMock()
	s.Cache = rdb
	s.CacheMock = mock

	s.Cfg = viper.New()
	s.Cfg.Set("cron.routing.refresh.interval", "5s")
	s.Cfg.Set("cron.routing.refresh.timeout", "10s")

	s.cron = RoutingCron{
		Cfg:      s.Cfg,
		Concerts: concertstore.New(sqlgen.New(pool)),
		Cache:    routingcache.NewRedisCache(rdb, 0),
	}

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *RoutingCronTestSuite) TearDownTest() {
	s.PgxMock.Close()

	if err := s.Cache.Close(); err != nil {
		s.T().Fatalf("failed to close redis mock: %v", err)
	}
}

func TestRoutingCronTestSuite(t *testing.T) {
	suite.Run(t, new(RoutingCronTestSuite))
}

func (s *RoutingCronTestSuite) TestWarm() {
	tests := []struct {
		name        string
		setupMock   func()
		expectError bool
	}{
		{
			name: "database error",
			setupMock: func() {
				s.PgxMock.ExpectQuery("SELECT id, ticket_provider FROM concerts").
					WillReturnError(fmt.Errorf("db error"))
			},
			expectError: true,
		},
		{
			name: "no concerts",
			setupMock: func() {
				s.PgxMock.ExpectQuery("SELECT id, ticket_provider FROM concerts").
					WillReturnRows(pgxmock.NewRows([]string{"id", "ticket_provider"}))
			},
		},
		{
			name: "cache error",
			setupMock: func() {
				s.PgxMock.ExpectQuery("SELECT id, ticket_provider FROM concerts").
					WillReturnRows(pgxmock.NewRows([]string{"id", "ticket_provider"}).AddRow(int32(42), "sql"))
				s.CacheMock.ExpectTxPipeline()
				s.CacheMock.ExpectSetNX("concert:42:ticket_provider", "sql", 0).SetVal(true)
				s.CacheMock.ExpectTxPipelineExec().SetErr(redis.ErrClosed)
			},
			expectError: true,
		},
		{
			name: "success",
			setupMock: func() {
				s.PgxMock.ExpectQuery("SELECT id, ticket_provider FROM concerts").
					WillReturnRows(pgxmock.NewRows([]string{"id", "ticket_provider"}).AddRow(int32(77), "external_api"))
				s.CacheMock.ExpectTxPipeline()
				s.CacheMock.ExpectSetNX("concert:77:ticket_provider", "external_api", 0).SetVal(true)
				s.CacheMock.ExpectTxPipelineExec()
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			err := s.cron.Warm(context.Background())

			if tc.expectError {
				s.Error(err)
			} else {
				s.NoError(err)
			}
			s.NoError(s.PgxMock.ExpectationsWereMet())
			s.NoError(s.CacheMock.ExpectationsWereMet())
		})
	}
}

func (s *RoutingCronTestSuite) TestStart() {
	s.Cfg.Set("cron.routing.refresh.interval", "100ms")

	s.PgxMock.ExpectQuery("SELECT id, ticket_provider FROM concerts").
		WillReturnRows(pgxmock.NewRows([]string{"id", "ticket_provider"}).AddRow(int32(77), "external_api"))
	s.CacheMock.ExpectTxPipeline()
	s.CacheMock.ExpectSetNX("concert:77:ticket_provider", "external_api", 0).SetVal(true)
	s.CacheMock.ExpectTxPipelineExec()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		s.cron.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("cron did not stop after context cancel")
	}

	s.NoError(s.PgxMock.ExpectationsWereMet())
	s.NoError(s.CacheMock.ExpectationsWereMet())
}
