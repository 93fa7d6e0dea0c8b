package cmd

import (
	"concert-purchase/common/constant"
	"concert-purchase/common/jetstream"
	"concert-purchase/common/otel"
	"concert-purchase/common/resilience"
	"concert-purchase/common/vars"
	"concert-purchase/outbound/concertstore"
	eventOutbound "concert-purchase/outbound/event"
	"concert-purchase/outbound/payment"
	"concert-purchase/outbound/routingcache"
	"concert-purchase/outbound/sqlgen"
	"concert-purchase/outbound/ticketing"
	"concert-purchase/service"
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	natsJetstream "github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"log"
	"net/http"
	"os"
)

func newCfg(name string) *viper.Viper {
	config := viper.New()

	config.SetConfigName(name)
	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	err := config.ReadInConfig()
	if err != nil {
		log.Fatalln(err)
	}

	err = os.Setenv("TZ", config.GetString("server.timezone"))
	if err != nil {
		log.Fatalln(err)
	}

	return config
}

func newTracer(ctx context.Context, cfg *viper.Viper, serviceName string) func(context.Context) error {
	shutdown, err := otel.InitTracerProvider(ctx, cfg.GetString("otel.endpoint"), serviceName, cfg.GetFloat64("otel.sample_ratio"))
	if err != nil {
		log.Fatalln("unable to init tracer provider", err)
	}

	return shutdown
}

func newDb(cfg *viper.Viper) *pgxpool.Pool {
	username := cfg.GetString("db.user")
	password := cfg.GetString("db.password")
	host := cfg.GetString("db.host")
	port := cfg.GetInt("db.port")
	database := cfg.GetString("db.name")
	maxConn := cfg.GetInt("db.pool.max")
	minConn := cfg.GetInt("db.pool.min")
	timezone := cfg.GetString("server.timezone")

	connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?timezone=%s",
		username, password, host, port, database, timezone)

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		log.Fatalln(err)
	}

	config.MaxConns = int32(maxConn)
	config.MinConns = int32(minConn)
	config.ConnConfig.Tracer = &otel.PgxCustomTracer{}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatalln(err)
	}

	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatalln(err)
	}

	return pool
}

func newRedis(cfg *viper.Viper) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetString("redis.addr"),
		Password: cfg.GetString("redis.password"),
		DB:       0,
	})

	err := rdb.Ping(context.Background()).Err()
	if err != nil {
		log.Fatalln(err)
	}

	return rdb
}

func newNats(viper *viper.Viper) *nats.Conn {
	conn, err := nats.Connect(viper.GetString("nats.addr"))
	if err != nil {
		log.Fatalln(err)
	}

	return conn
}

func newJs(conn *nats.Conn) natsJetstream.JetStream {
	js, err := natsJetstream.New(conn)
	if err != nil {
		log.Fatalln(err)
	}

	return js
}

func createStreamWorkQueue(ctx context.Context, js natsJetstream.JetStream) natsJetstream.Stream {
	st, err := jetstream.CreateQueueStream(ctx, js, -1)
	if err != nil {
		panic(err)
	}

	return st
}

func newBreakers(cfg *viper.Viper) *resilience.BreakerRegistry {
	settings := resilience.DefaultBreakerSettings()
	if cfg.IsSet("resilience.breaker.failure_threshold") {
		settings.FailureThreshold = cfg.GetUint32("resilience.breaker.failure_threshold")
	}
	if cfg.IsSet("resilience.breaker.cooldown") {
		settings.Cooldown = cfg.GetDuration("resilience.breaker.cooldown")
	}
	if cfg.IsSet("resilience.breaker.half_open_max_requests") {
		settings.HalfOpenMaxRequests = cfg.GetUint32("resilience.breaker.half_open_max_requests")
	}

	return resilience.NewBreakerRegistry(settings)
}

func newRetrySettings(cfg *viper.Viper, key string, defaults resilience.RetrySettings) resilience.RetrySettings {
	if cfg.IsSet(key + ".max_retries") {
		defaults.MaxRetries = cfg.GetUint64(key + ".max_retries")
	}
	if cfg.IsSet(key + ".base_delay") {
		defaults.BaseDelay = cfg.GetDuration(key + ".base_delay")
	}
	if cfg.IsSet(key + ".max_delay") {
		defaults.MaxDelay = cfg.GetDuration(key + ".max_delay")
	}

	return defaults
}

func newResilienceClient(cfg *viper.Viper, breakers *resilience.BreakerRegistry, notFoundIsTransient bool) *resilience.Client {
	httpClient := &http.Client{
		Timeout: cfg.GetDuration("resilience.request_timeout"),
	}

	return resilience.NewClient(httpClient, breakers, newRetrySettings(cfg, "resilience.retry", resilience.DefaultRetrySettings()), notFoundIsTransient)
}

type routingCache interface {
	service.RoutingCache
	Warm(ctx context.Context, providers map[int32]string) error
}

func newRoutingCache(cfg *viper.Viper, cacheClient *redis.Client) routingCache {
	if cfg.GetString("routing.cache") == "memory" {
		return vars.NewProviderCache()
	}

	return routingcache.NewRedisCache(cacheClient, cfg.GetDuration("routing.ttl"))
}

type purchaseStack struct {
	Concerts *concertstore.Store
	Router   *service.Router
	Purchase *service.PurchaseService
	Cache    routingCache
}

func newPurchaseStack(
	cfg *viper.Viper,
	db *pgxpool.Pool,
	cacheClient *redis.Client,
	publisher jetstream.Publisher,
	breakers *resilience.BreakerRegistry,
) purchaseStack {
	querier := sqlgen.New(db)
	concerts := concertstore.New(querier)
	events := eventOutbound.NewSender(publisher)

	sqlBackend := ticketing.NewSqlBackend(db, querier, events, newRetrySettings(cfg, "ticketing.sql.retry", ticketing.DefaultReserveRetry()))
	remoteBackend := ticketing.NewRemoteBackend(
		newResilienceClient(cfg, breakers, true),
		cfg.GetString("ticketing.external_api.base_url"),
		concerts, db, querier, events,
	)

	backends, err := service.NewBackendRegistry(sqlBackend, remoteBackend)
	if err != nil {
		log.Fatalln("unable to register ticket backends", err)
	}

	if err := backends.Require(constant.ProviderSql, constant.ProviderExternalApi); err != nil {
		log.Fatalln("missing ticket backend", err)
	}

	cache := newRoutingCache(cfg, cacheClient)
	router := service.NewRouter(concerts, cache, backends)

	purchase := &service.PurchaseService{
		Concerts:             concerts,
		Payments:             payment.NewGateway(newResilienceClient(cfg, breakers, false), cfg.GetString("payment.base_url")),
		Router:               router,
		Validate:             service.NewValidator(),
		ReleaseHoldOnFailure: cfg.GetBool("purchase.release_hold_on_failure"),
		Timeout:              cfg.GetDuration("purchase.timeout"),
		SettleTimeout:        cfg.GetDuration("purchase.settle_timeout"),
	}

	return purchaseStack{
		Concerts: concerts,
		Router:   router,
		Purchase: purchase,
		Cache:    cache,
	}
}
