// cmd/lostwheel/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"lostwheel-go/host/acquire"
	"lostwheel-go/host/config"
	"lostwheel-go/host/logfile"
	"lostwheel-go/host/store"
	"lostwheel-go/host/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		println("Error: config:", err.Error())
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("lostwheel failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	port, err := acquire.OpenPort(cfg.Port, cfg.Baud)
	if err != nil {
		return err
	}

	repo, err := store.Open(store.Config{DBPath: cfg.DBPath}, log)
	if err != nil {
		port.Close()
		return err
	}
	defer repo.Close()

	csv := logfile.New(cfg.LogDir, log)

	acq := acquire.New(port, log)
	acqErr := make(chan error, 1)
	go func() { acqErr <- acq.Run(ctx) }()

	if cfg.UI {
		runUI(ctx, acq, repo, csv, log)
	} else if err := pump(ctx, cfg, acq, repo, csv, log); err != nil {
		return err
	}

	cancel()
	if err := <-acqErr; err != nil && ctx.Err() == nil {
		return err
	}
	return csv.Stop()
}

// pump is the headless mode: everything that arrives goes straight into one
// session until the process is interrupted.
func pump(ctx context.Context, cfg *config.Config, acq *acquire.Acquirer,
	repo *store.Repository, csv *logfile.Writer, log zerolog.Logger,
) error {
	session := cfg.Session
	if session == "" {
		session = time.Now().Format("20060102-150405")
	}
	if err := csv.Start(session); err != nil {
		return err
	}

	for m := range acq.Measurements() {
		if err := csv.Append(m); err != nil {
			log.Error().Err(err).Msg("csv append")
		}
		if err := repo.Record(store.Row{
			Session:    session,
			RecordedAt: m.At,
			Elapsed:    m.Elapsed,
			Count:      m.Count,
		}); err != nil {
			log.Error().Err(err).Msg("db record")
		}
	}

	total, err := repo.SessionTotal(context.Background(), session)
	if err != nil {
		return err
	}
	log.Info().Str("session", session).Uint64("total", total).Msg("session finished")
	return nil
}

// runUI hands the stream to the desktop window; session control comes from
// its buttons.
func runUI(ctx context.Context, acq *acquire.Acquirer,
	repo *store.Repository, csv *logfile.Writer, log zerolog.Logger,
) {
	var session string
	hooks := ui.Hooks{
		StartRecord: func(s string) error {
			session = s
			return csv.Start(s)
		},
		Append: func(m acquire.Measurement) error {
			if err := repo.Record(store.Row{
				Session:    session,
				RecordedAt: m.At,
				Elapsed:    m.Elapsed,
				Count:      m.Count,
			}); err != nil {
				return err
			}
			return csv.Append(m)
		},
		StopRecord: func() error { return csv.Stop() },
	}
	ui.New(acq.Measurements(), hooks, log).Run(ctx)
}
