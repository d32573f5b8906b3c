package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/dhawton/log4g"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/vchicago/fir-flights/database"
)

var log = log4g.Category("main")

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Error("Error loading .env file: " + err.Error())
		}
	}

	cfg, err := loadConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		fatal(err)
	}
	if cfg.Debug {
		log4g.SetLogLevel(log4g.DEBUG)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg, stdout: os.Stdout}
	if cfg.Store {
		log.Debug("Connecting to database and handling migrations")
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			fatal(err)
		}
		a.store = database.NewStore(db)
	}

	if cfg.Schedule != "" {
		intro := figure.NewFigure("FIR FP", "", false).Slicify()
		for i := 0; i < len(intro); i++ {
			log.Info(intro[i])
		}
	}

	if err := a.run(ctx); err != nil {
		fatal(err)
	}

	if cfg.Schedule != "" {
		if err := a.schedule(ctx); err != nil {
			fatal(err)
		}
	}
}

// schedule repeats the run on cfg.Schedule until ctx is cancelled. Failed
// runs are logged and the next one is attempted as usual.
func (a *app) schedule(ctx context.Context) error {
	log.Info(fmt.Sprintf("Scheduling runs %q", a.cfg.Schedule))
	jobs := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := jobs.AddFunc(a.cfg.Schedule, func() {
		if err := a.run(ctx); err != nil {
			log.Error("Scheduled run failed: " + err.Error())
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", a.cfg.Schedule, err)
	}

	jobs.Start()
	<-ctx.Done()
	log.Info("Shutting down scheduler")
	<-jobs.Stop().Done()
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "fir-flights: %s\n", err)
	os.Exit(1)
}
