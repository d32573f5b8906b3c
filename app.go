package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vchicago/fir-flights/airspace"
)

// app runs the classification described by cfg. Each run is independent:
// it reloads both documents and starts a fresh airline tally.
type app struct {
	cfg    Config
	stdout io.Writer
	store  crossingStore
}

func (a *app) run(ctx context.Context) (err error) {
	runID := uuid.NewString()
	log.Debug(fmt.Sprintf("Run %s: loading FIR from %s", runID, a.cfg.FIRSource))
	fir, err := loadFIR(ctx, a.cfg.FIRSource)
	if err != nil {
		return err
	}

	log.Debug(fmt.Sprintf("Run %s: loading flights from %s", runID, a.cfg.FlightsSource))
	flights, err := loadFlights(ctx, a.cfg.FlightsSource)
	if err != nil {
		return err
	}

	sinks := a.sinks(runID)
	defer func() {
		// The store sink is last, so a sink that fails to finish keeps
		// the run out of the store too.
		for _, s := range sinks {
			if ferr := s.Finish(ctx, err == nil); ferr != nil && err == nil {
				err = ferr
			}
		}
	}()

	opts := reportOptions{CSV: a.cfg.CSV, Crossings: a.cfg.Crossings}
	tally, err := classifyAll(fir, flights, opts, sinks)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(a.stdout, tally.Summary()); err != nil {
		return err
	}
	log.Debug(fmt.Sprintf("Run %s: processed %d flights against %s, %d airlines crossing", runID, len(flights), fir, tally.Len()))
	return nil
}

func (a *app) sinks(runID string) []sink {
	sinks := []sink{&consoleSink{w: a.stdout}}
	if a.cfg.Output != "" {
		sinks = append(sinks, newFileSink(a.cfg.Output, a.cfg.OutputMaxSize))
	}
	if a.store != nil {
		sinks = append(sinks, &storeSink{store: a.store, runID: runID})
	}
	return sinks
}

// classifyAll relates every flight to the FIR, hands each row to every sink
// and tallies the airlines of crossing flights.
func classifyAll(fir *airspace.FIR, flights []*airspace.Flight, opts reportOptions, sinks []sink) (*airlineTally, error) {
	tally := newAirlineTally()
	for _, f := range flights {
		rel := airspace.Classify(f, fir)
		row := formatRelation(rel, opts)

		if rel.Crosses {
			tally.Add(f.Airline)
		}
		for _, s := range sinks {
			if err := s.Emit(rel, row); err != nil {
				return nil, fmt.Errorf("flight %s: %w", f.Number, err)
			}
		}
	}
	return tally, nil
}
