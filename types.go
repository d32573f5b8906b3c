package main

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Property names read from the region and flight documents.
const (
	propICAOCode     = "ICAOCODE"
	propName         = "NAME"
	propFlightNumber = "flight_number"
	propAirline      = "airline"
)

func getProp[T any](props geojson.Properties, name string) (T, bool) {
	p, ok := props[name]
	if !ok {
		var t T
		return t, false
	}

	pv, ok := p.(T)
	if !ok {
		var t T
		return t, false
	}

	return pv, true
}

// stringProp returns a string property. A missing or null property is
// returned as "", and the constructors report which one is missing. Any
// other type is an error.
func stringProp(props geojson.Properties, name string) (string, error) {
	if v, ok := getProp[string](props, name); ok {
		return v, nil
	}
	if v := props[name]; v != nil {
		return "", fmt.Errorf("property %s: expected a string, got %T", name, v)
	}
	return "", nil
}

// featureID renders a GeoJSON id, which may be a string or a number.
func featureID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "no geometry"
	}
	return g.GeoJSONType()
}
