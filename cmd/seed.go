package cmd

import (
	"concert-purchase/outbound/sqlgen"
	"concert-purchase/outbound/ticketing"
	"context"
	"log"
	"log/slog"
)

func runSeedTicketNumbersCmd(ctx context.Context, concertId int32, count int) {
	cfg := newCfg("env")

	db := newDb(cfg)
	defer db.Close()

	seeder := ticketing.NewNumberSeeder(sqlgen.New(db), cfg.GetInt("ticketing.sql.ticket_number_length"))

	inserted, err := seeder.Seed(ctx, concertId, count)
	if err != nil {
		log.Fatalln("unable to seed ticket numbers", err)
	}

	slog.InfoContext(ctx, "ticket numbers seeded", slog.Int("concert_id", int(concertId)), slog.Int("inserted", inserted))
}
