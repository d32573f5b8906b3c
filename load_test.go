package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vchicago/fir-flights/airspace"
	"github.com/vchicago/fir-flights/geo"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFIR(t *testing.T) {
	fir, err := loadFIR(context.Background(), "testdata/fir.geojson")
	require.NoError(t, err)
	assert.Equal(t, "TEST", fir.Code)
	assert.Equal(t, "Test FIR", fir.Name)
	assert.Len(t, fir.Boundary.Ring(), 5)
}

func TestLoadFIRUsesFirstFeatureAndOuterRing(t *testing.T) {
	path := writeFile(t, "fir.geojson", `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"ICAOCODE": "LIRR"},
			 "geometry": {"type": "Polygon", "coordinates": [
				[[0, 0], [0, 10], [10, 10], [10, 0], [0, 0]],
				[[4, 4], [4, 6], [6, 6], [6, 4], [4, 4]]]}},
			{"type": "Feature", "properties": {"ICAOCODE": "LIMM"},
			 "geometry": {"type": "Polygon", "coordinates": [[[20, 20], [20, 30], [30, 30], [20, 20]]]}}
		]}`)

	fir, err := loadFIR(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "LIRR", fir.Code)
	// The hole is ignored.
	assert.True(t, geo.Contains(fir.Boundary, orb.Point{5, 5}))
}

func TestLoadFIRFromBareFeature(t *testing.T) {
	path := writeFile(t, "fir.geojson", `{"type": "Feature", "properties": {"ICAOCODE": "LIRR", "NAME": "Roma"},
		"geometry": {"type": "Polygon", "coordinates": [[[0, 0], [0, 10], [10, 10], [10, 0], [0, 0]]]}}`)

	fir, err := loadFIR(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "LIRR", fir.Code)
	assert.Equal(t, "Roma", fir.Name)
	assert.True(t, geo.Contains(fir.Boundary, orb.Point{10, 5}))

	// Flight documents must still be collections.
	_, err = loadFlights(context.Background(), path)
	assert.ErrorContains(t, err, "not a feature collection")
}

func TestLoadFlights(t *testing.T) {
	flights, err := loadFlights(context.Background(), "testdata/flights.geojson")
	require.NoError(t, err)
	require.Len(t, flights, 5)

	assert.Equal(t, "1", flights[0].ID)
	assert.Equal(t, "AB123", flights[0].Number)
	assert.Equal(t, "ABC", flights[0].Airline)
	assert.Equal(t, orb.Point{-5, 5}, flights[0].Track.First())
	assert.Equal(t, orb.Point{15, 5}, flights[0].Track.Last())
	assert.Equal(t, "f2", flights[1].ID)
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		fir     bool
		content string
		target  error
		msg     string
	}{
		{name: "not json", content: `{"type": `, msg: "failed to unmarshal"},
		{name: "not a collection", content: `{"type": "Feature", "properties": {}, "geometry": null}`, msg: "not a feature collection"},
		{name: "region not a feature", fir: true, content: `{"type": "Polygon", "coordinates": []}`, msg: "not a feature collection"},
		{name: "no region", fir: true, content: `{"type": "FeatureCollection", "features": []}`, msg: "no FIR feature"},
		{
			name: "region without code", fir: true,
			content: `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {},
				"geometry": {"type": "Polygon", "coordinates": [[[0, 0], [0, 1], [1, 1], [0, 0]]]}}]}`,
			target: airspace.ErrMissingProperty,
		},
		{
			name: "empty ring", fir: true,
			content: `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {"ICAOCODE": "X"},
				"geometry": {"type": "Polygon", "coordinates": [[]]}}]}`,
			target: geo.ErrShortRing,
		},
		{
			name: "flight without airline",
			content: `{"type": "FeatureCollection", "features": [{"type": "Feature", "id": 7, "properties": {"flight_number": "AB1"},
				"geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}}]}`,
			target: airspace.ErrMissingProperty,
			msg:    `feature 0: flight "7"`,
		},
		{
			name: "flight without properties",
			content: `{"type": "FeatureCollection", "features": [{"type": "Feature", "id": "a", "properties": null,
				"geometry": {"type": "LineString", "coordinates": [[0, 0]]}}]}`,
			target: airspace.ErrMissingProperty,
		},
		{
			name: "empty track",
			content: `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {"flight_number": "AB1", "airline": "A"},
				"geometry": {"type": "LineString", "coordinates": []}}]}`,
			target: geo.ErrEmptyLine,
		},
		{
			name: "region is a line", fir: true,
			content: `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {"ICAOCODE": "X"},
				"geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}}]}`,
			target: geo.ErrGeometryType,
			msg:    "expected Polygon, got LineString",
		},
		{
			name: "track is a polygon",
			content: `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {"flight_number": "AB1", "airline": "A"},
				"geometry": {"type": "Polygon", "coordinates": [[[0, 0], [0, 1], [1, 1], [0, 0]]]}}]}`,
			target: geo.ErrGeometryType,
			msg:    "expected LineString, got Polygon",
		},
		{
			name: "missing geometry",
			content: `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {"flight_number": "AB1", "airline": "A"}}]}`,
			target: geo.ErrGeometryType,
			msg:    "no geometry",
		},
		{
			name: "numeric flight number",
			content: `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {"flight_number": 123, "airline": "A"},
				"geometry": {"type": "LineString", "coordinates": [[0, 0]]}}]}`,
			msg: "property flight_number: expected a string, got float64",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "doc.geojson", tt.content)

			var err error
			if tt.fir {
				_, err = loadFIR(ctx, path)
			} else {
				_, err = loadFlights(ctx, path)
			}
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.msg != "" {
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loadFIR(context.Background(), filepath.Join(t.TempDir(), "nope.geojson"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromURL(t *testing.T) {
	data, err := os.ReadFile("testdata/flights.geojson")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flights.geojson" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write(data)
	}))
	defer srv.Close()

	flights, err := loadFlights(context.Background(), srv.URL+"/flights.geojson")
	require.NoError(t, err)
	assert.Len(t, flights, 5)

	_, err = loadFlights(context.Background(), srv.URL+"/missing.geojson")
	assert.ErrorContains(t, err, "404")
}

func TestFeatureID(t *testing.T) {
	assert.Equal(t, "abc", featureID("abc"))
	assert.Equal(t, "42", featureID(float64(42)))
	assert.Equal(t, "4.5", featureID(4.5))
	assert.Equal(t, "", featureID(nil))
}
