package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/lucidbank/lcbridge/internal/app"
	"github.com/lucidbank/lcbridge/internal/env"
	"github.com/lucidbank/lcbridge/internal/seeder"
	"github.com/lucidbank/lcbridge/internal/version"
	"github.com/lucidbank/lcbridge/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	showVersion := flag.Bool("version", false, "display version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	application, err := app.NewApplication(logger)
	if err != nil {
		return err
	}
	defer application.DB.Close()

	if env.GetBool("SEED_DEMO_DATA", false) {
		seeder.New(application.DB).Run()
	}

	wk := worker.New(&worker.Worker{
		KafkaStream: application.Kafka,
		DB:          application.DB,
		Ctx:         context.Background(),
		Helper:      application.Helper,
		Mailer:      application.Mailer,
		Config:      &application.Config,
	})

	go wk.DraftWorker()
	go wk.DraftReadyWorker()
	go wk.DiscrepancyWorker()

	return application.ServeHTTP()
}
