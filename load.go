package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/vchicago/fir-flights/airspace"
	"github.com/vchicago/fir-flights/geo"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// readSource returns the contents of a local file or an http(s) URL.
func readSource(ctx context.Context, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: %s", src, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body from %s: %w", src, err)
	}
	return body, nil
}

// loadFeatures decodes a FeatureCollection. If single is set, a bare Feature
// document is also accepted and returned as the only feature.
func loadFeatures(ctx context.Context, src string, single bool) ([]*geojson.Feature, error) {
	data, err := readSource(ctx, src)
	if err != nil {
		return nil, err
	}

	if single {
		var doc struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", src, err)
		}
		if doc.Type == "Feature" {
			f, err := geojson.UnmarshalFeature(data)
			if err != nil {
				return nil, fmt.Errorf("failed to unmarshal %s: %w", src, err)
			}
			return []*geojson.Feature{f}, nil
		}
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", src, err)
	}
	return fc.Features, nil
}

// loadFIR reads the region document, either a FeatureCollection or a single
// Feature. Only the first feature is used.
func loadFIR(ctx context.Context, src string) (*airspace.FIR, error) {
	features, err := loadFeatures(ctx, src, true)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("%s: no FIR feature", src)
	}
	if len(features) > 1 {
		log.Debug(fmt.Sprintf("%s has %d features, using the first one", src, len(features)))
	}

	fir, err := firFromFeature(features[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return fir, nil
}

func firFromFeature(f *geojson.Feature) (*airspace.FIR, error) {
	code, err := stringProp(f.Properties, propICAOCode)
	if err != nil {
		return nil, fmt.Errorf("FIR: %w", err)
	}
	name, err := stringProp(f.Properties, propName)
	if err != nil {
		return nil, fmt.Errorf("FIR %s: %w", code, err)
	}

	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("FIR %s: %w: expected Polygon, got %s", code, geo.ErrGeometryType, geometryType(f.Geometry))
	}
	if len(poly) == 0 {
		return nil, fmt.Errorf("FIR %s: %w", code, geo.ErrShortRing)
	}

	// Holes, if any, are ignored.
	boundary, err := geo.NewPolygon(poly[0])
	if err != nil {
		return nil, fmt.Errorf("FIR %s: %w", code, err)
	}
	return airspace.NewFIR(code, name, boundary)
}

// loadFlights reads the flight document. Any bad feature fails the whole
// load.
func loadFlights(ctx context.Context, src string) ([]*airspace.Flight, error) {
	features, err := loadFeatures(ctx, src, false)
	if err != nil {
		return nil, err
	}

	flights := make([]*airspace.Flight, 0, len(features))
	for i, feat := range features {
		f, err := flightFromFeature(feat)
		if err != nil {
			return nil, fmt.Errorf("%s: feature %d: %w", src, i, err)
		}
		flights = append(flights, f)
	}
	return flights, nil
}

func flightFromFeature(f *geojson.Feature) (*airspace.Flight, error) {
	id := featureID(f.ID)

	number, err := stringProp(f.Properties, propFlightNumber)
	if err != nil {
		return nil, fmt.Errorf("flight %q: %w", id, err)
	}
	airline, err := stringProp(f.Properties, propAirline)
	if err != nil {
		return nil, fmt.Errorf("flight %q: %w", id, err)
	}

	ls, ok := f.Geometry.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("flight %q: %w: expected LineString, got %s", id, geo.ErrGeometryType, geometryType(f.Geometry))
	}
	track, err := geo.NewLine(ls)
	if err != nil {
		return nil, fmt.Errorf("flight %q: %w", id, err)
	}
	return airspace.NewFlight(id, number, airline, track)
}
