package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestFileSinkKeepsRotatedFiles(t *testing.T) {
	s := newFileSink(filepath.Join(t.TempDir(), "out.csv"), 10)

	l, ok := s.w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, 0, l.MaxBackups)
	assert.Equal(t, 0, l.MaxAge)
	assert.Equal(t, 10, l.MaxSize)
	assert.NoError(t, s.Finish(context.Background(), true))
}

func TestStoreSinkDiscardsOnFailure(t *testing.T) {
	store := &fakeStore{}
	s := &storeSink{store: store, runID: "run"}
	rel := relation(t, "AB123", orb.Point{-5, 5}, orb.Point{15, 5})
	require.NoError(t, s.Emit(rel, ""))

	require.NoError(t, s.Finish(context.Background(), false))
	assert.Empty(t, store.saved)

	require.NoError(t, s.Finish(context.Background(), true))
	require.Len(t, store.saved, 1)
	assert.Equal(t, "AB123", store.saved[0][0].FlightNumber)
}
