package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/vchicago/fir-flights/database"
)

// Config holds everything a run needs. Defaults come from the environment
// (optionally a .env file) and command-line flags override them.
type Config struct {
	FIRSource     string
	FlightsSource string

	CSV       bool
	Crossings bool
	Debug     bool

	// Output, when set, receives every row appended to it.
	Output        string
	OutputMaxSize int // megabytes before the output file is rotated

	Store    bool
	Database database.Config

	// Schedule is a cron spec; when set the run repeats until interrupted.
	Schedule string
}

func loadConfig(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{
		OutputMaxSize: GetenvInt("FP_OUTPUT_MAX_SIZE", 100),
		Database: database.Config{
			Driver:   Getenv("DB_DRIVER", "mysql"),
			Username: Getenv("DB_USERNAME", "root"),
			Password: Getenv("DB_PASSWORD", "secret"),
			Hostname: Getenv("DB_HOSTNAME", "localhost"),
			Port:     Getenv("DB_PORT", "3306"),
			Database: Getenv("DB_DATABASE", "fir_flights"),
		},
	}

	fs := flag.NewFlagSet("fir-flights", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: fir-flights [flags] FIR_JSON FLIGHTS_JSON\n\n")
		fmt.Fprintf(stderr, "Display info about flights and their relations with a FIR.\n")
		fmt.Fprintf(stderr, "FIR_JSON and FLIGHTS_JSON are geojson files or http(s) URLs.\n\n")
		fs.PrintDefaults()
	}
	fs.BoolVar(&cfg.CSV, "csv", GetenvBool("FP_CSV", false), "print results in csv format")
	fs.StringVar(&cfg.Output, "output", Getenv("FP_OUTPUT", ""), "also append results to this file")
	fs.BoolVar(&cfg.Crossings, "crossings", false, "include how many times each flight enters the FIR")
	fs.BoolVar(&cfg.Store, "store", GetenvBool("FP_STORE", false), "save results to the database (DB_* variables)")
	fs.StringVar(&cfg.Schedule, "schedule", Getenv("FP_SCHEDULE", ""), "re-run on this cron schedule, e.g. \"@every 5m\"")
	fs.BoolVar(&cfg.Debug, "debug", GetenvBool("FP_DEBUG", false), "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return Config{}, fmt.Errorf("expected FIR_JSON and FLIGHTS_JSON, got %d arguments", fs.NArg())
	}
	cfg.FIRSource, cfg.FlightsSource = fs.Arg(0), fs.Arg(1)

	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			return Config{}, fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
		}
	}
	if cfg.OutputMaxSize <= 0 {
		return Config{}, fmt.Errorf("FP_OUTPUT_MAX_SIZE must be positive, got %d", cfg.OutputMaxSize)
	}

	return cfg, nil
}

func Getenv(key string, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func GetenvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(Getenv(key, strconv.FormatBool(defaultValue))))
	if err != nil {
		log.Error(fmt.Sprintf("Ignoring %s: %s", key, err.Error()))
		return defaultValue
	}
	return b
}

func GetenvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(strings.TrimSpace(Getenv(key, strconv.Itoa(defaultValue))))
	if err != nil {
		log.Error(fmt.Sprintf("Ignoring %s: %s", key, err.Error()))
		return defaultValue
	}
	return n
}
