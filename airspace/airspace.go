// Package airspace relates flights to a Flight Information Region (FIR) and
// derives the charge factor used for billing.
package airspace

import (
	"errors"
	"fmt"

	"github.com/vchicago/fir-flights/geo"
)

var ErrMissingProperty = errors.New("missing required property")

// FIR is a Flight Information Region. It is read-only once built and can be
// shared by any number of classifications.
type FIR struct {
	Code     string
	Name     string
	Boundary geo.Polygon
}

func NewFIR(code, name string, boundary geo.Polygon) (*FIR, error) {
	if code == "" {
		return nil, fmt.Errorf("fir: %w: ICAOCODE", ErrMissingProperty)
	}
	if len(boundary.Ring()) == 0 {
		return nil, fmt.Errorf("fir %s: %w", code, geo.ErrShortRing)
	}
	return &FIR{Code: code, Name: name, Boundary: boundary}, nil
}

func (r *FIR) String() string {
	if r.Name != "" {
		return r.Code + " (" + r.Name + ")"
	}
	return r.Code
}

// Flight is a single flight and its track, origin first.
type Flight struct {
	ID      string
	Number  string
	Airline string
	Track   geo.Line
}

func NewFlight(id, number, airline string, track geo.Line) (*Flight, error) {
	switch {
	case number == "":
		return nil, fmt.Errorf("flight %q: %w: flight_number", id, ErrMissingProperty)
	case airline == "":
		return nil, fmt.Errorf("flight %q: %w: airline", id, ErrMissingProperty)
	case track.Len() == 0:
		return nil, fmt.Errorf("flight %q: %w", id, geo.ErrEmptyLine)
	}
	return &Flight{ID: id, Number: number, Airline: airline, Track: track}, nil
}

// StartsIn returns true if the flight departs from inside the FIR.
func (f *Flight) StartsIn(r *FIR) bool {
	return geo.Contains(r.Boundary, f.Track.First())
}

// EndsIn returns true if the flight arrives inside the FIR.
func (f *Flight) EndsIn(r *FIR) bool {
	return geo.Contains(r.Boundary, f.Track.Last())
}

// Crosses returns true if the track touches the FIR at least once.
func (f *Flight) Crosses(r *FIR) bool {
	return geo.Intersects(f.Track, r.Boundary)
}

// TimesCrosses returns how many separate times the track is sampled inside
// the FIR. See geo.CrossingCount for the sampling caveat.
func (f *Flight) TimesCrosses(r *FIR) int {
	return geo.CrossingCount(f.Track, r.Boundary)
}

func (f *Flight) IsDomestic(r *FIR) bool {
	return f.StartsIn(r) && f.EndsIn(r)
}

func (f *Flight) IsFlythrough(r *FIR) bool {
	return !f.StartsIn(r) && !f.EndsIn(r)
}

// ChargeFactor returns the charge factor the FIR applies to the flight.
func (r *FIR) ChargeFactor(f *Flight) ChargeFactor {
	return chargeFactor(f.Crosses(r), f.IsDomestic(r), f.IsFlythrough(r))
}
