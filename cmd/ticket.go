package cmd

import (
	"concert-purchase/common/constant"
	"concert-purchase/inbound/event"
	"concert-purchase/outbound/sqlgen"
	"context"
	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"log"
	"log/slog"
)

func runQueueTicketCmd(ctx context.Context) {
	cfg := newCfg("env")

	shutdownTracer := newTracer(ctx, cfg, "concert-purchase-queue-ticket")
	defer shutdownTracer(context.Background())

	db := newDb(cfg)
	defer db.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	st := createStreamWorkQueue(ctx, js)

	ticketEvent := event.TicketEvent{
		Querier:           sqlgen.New(db),
		Publisher:         js,
		CurrencyFormatter: message.NewPrinter(language.AmericanEnglish),
		Timeout:           cfg.GetDuration("queue.ticket.timeout"),
	}

	cons, err := st.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       "consumer:ticket",
		FilterSubject: constant.TicketWildcard,
		MaxDeliver:    cfg.GetInt("queue.ticket.max_deliver"),
		AckWait:       cfg.GetDuration("queue.ticket.ack_wait"),
	})
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	iter, err := cons.Messages(jetstream.PullMaxMessages(cfg.GetInt("queue.ticket.batch_size")))
	if err != nil {
		panic(err)
	}

	go consumeMessages(ctx, iter, map[string]messageHandler{
		constant.SubjectTicketCreated: ticketEvent.CreatedHandler,
	}, cfg.GetDuration("queue.ticket.nak_delay"))

	slog.InfoContext(ctx, "ticket queue consumer started")

	<-ctx.Done()

	iter.Stop()

	slog.InfoContext(ctx, "ticket queue consumer stopped")
}
