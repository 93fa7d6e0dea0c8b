package cmd

import (
	"context"
	"github.com/spf13/cobra"
	"log"
	"log/slog"
	"os"
	"os/signal"
)

func Start() {
	cfg := newCfg("env")
	slog.SetLogLoggerLevel(slog.Level(cfg.GetInt("log.level")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := &cobra.Command{}

	var concertId int32
	var count int
	seedCmd := &cobra.Command{
		Use:   "seed-ticket-numbers",
		Short: "Generate unassigned ticket numbers for a concert",
		Run: func(cmd *cobra.Command, args []string) {
			runSeedTicketNumbersCmd(ctx, concertId, count)
		},
	}
	seedCmd.Flags().Int32Var(&concertId, "concert-id", 0, "concert to generate ticket numbers for")
	seedCmd.Flags().IntVar(&count, "count", 100, "number of ticket numbers to generate")
	_ = seedCmd.MarkFlagRequired("concert-id")

	cmd := []*cobra.Command{
		{
			Use:   "serve-http",
			Short: "Run HTTP server",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx)
			},
		},
		{
			Use:   "serve-queue:ticket",
			Short: "Run queue ticket server",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueTicketCmd(ctx)
			},
		},
		{
			Use:   "serve-queue:email",
			Short: "Run queue email server",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueEmailCmd(ctx)
			},
		},
		{
			Use:   "serve-simulator",
			Short: "Run payment gateway and ticket management simulators",
			Run: func(cmd *cobra.Command, args []string) {
				runSimulatorCmd(ctx)
			},
		},
		seedCmd,
		{
			Use:   "dev",
			Short: "Run dev server, for testing purpose",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx)
			},
			PreRun: func(cmd *cobra.Command, args []string) {
				go func() {
					runSimulatorCmd(ctx)
				}()
				go func() {
					runQueueTicketCmd(ctx)
				}()
				go func() {
					runQueueEmailCmd(ctx)
				}()
			},
		},
	}

	rootCmd.AddCommand(cmd...)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
