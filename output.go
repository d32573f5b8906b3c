package main

import (
	"context"
	"fmt"
	"io"

	"github.com/vchicago/fir-flights/airspace"
	"github.com/vchicago/fir-flights/database"
	"gopkg.in/natefinch/lumberjack.v2"
)

// sink receives every formatted row of a run. Finish is called once after
// the last row; commit is false when the run failed part way.
type sink interface {
	Emit(rel airspace.Relation, row string) error
	Finish(ctx context.Context, commit bool) error
}

type consoleSink struct {
	w io.Writer
}

func (s *consoleSink) Emit(_ airspace.Relation, row string) error {
	_, err := fmt.Fprintln(s.w, row)
	return err
}

func (s *consoleSink) Finish(context.Context, bool) error { return nil }

// fileSink appends rows to a file, rotating it once it grows past
// maxSize megabytes. Rotated files are all kept.
type fileSink struct {
	w io.WriteCloser
}

func newFileSink(path string, maxSize int) *fileSink {
	return &fileSink{w: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize, // MB
		MaxBackups: 0,
	}}
}

func (s *fileSink) Emit(_ airspace.Relation, row string) error {
	if _, err := io.WriteString(s.w, row+"\n"); err != nil {
		return fmt.Errorf("appending to output file: %w", err)
	}
	return nil
}

// Finish closes the file. Rows already appended stay there either way, the
// same as on the console.
func (s *fileSink) Finish(context.Context, bool) error {
	return s.w.Close()
}

type crossingStore interface {
	SaveCrossings(ctx context.Context, rows []database.Crossing) error
}

// storeSink collects one row per flight and saves them all when the run
// finishes. A failed run saves nothing.
type storeSink struct {
	store crossingStore
	runID string
	rows  []database.Crossing
}

func (s *storeSink) Emit(rel airspace.Relation, _ string) error {
	s.rows = append(s.rows, database.Crossing{
		RunID:        s.runID,
		FIR:          rel.FIR.Code,
		FlightID:     rel.Flight.ID,
		FlightNumber: rel.Flight.Number,
		Airline:      rel.Flight.Airline,
		ChargeFactor: int(rel.Charge),
		Crosses:      rel.Crosses,
		Crossings:    rel.Crossings,
		Domestic:     rel.Domestic,
		Flythrough:   rel.Flythrough,
	})
	return nil
}

func (s *storeSink) Finish(ctx context.Context, commit bool) error {
	if !commit {
		log.Debug(fmt.Sprintf("Run %s failed, discarding %d crossings", s.runID, len(s.rows)))
		return nil
	}
	return s.store.SaveCrossings(ctx, s.rows)
}
