package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/vchicago/fir-flights/airspace"
)

type reportOptions struct {
	CSV       bool
	Crossings bool
}

func formatRelation(rel airspace.Relation, opts reportOptions) string {
	if opts.CSV {
		return formatCSV(rel, opts.Crossings)
	}
	return formatInfo(rel, opts.Crossings)
}

// formatInfo returns a multi-line block describing the relation. It ends
// with a newline.
func formatInfo(rel airspace.Relation, crossings bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flight %s: charge %s!\n", rel.Flight.Number, rel.Charge)

	verb := "does not cross"
	if rel.Crosses {
		verb = "crosses"
	}
	fmt.Fprintf(&b, "    %s %s\n", verb, rel.FIR.Code)
	fmt.Fprintf(&b, "    is %sdomestic\n", maybeNot(rel.Domestic))
	fmt.Fprintf(&b, "    is %sfly-through\n", maybeNot(rel.Flythrough))
	if crossings {
		fmt.Fprintf(&b, "    enters %s %d time(s)\n", rel.FIR.Code, rel.Crossings)
	}
	return b.String()
}

func maybeNot(b bool) string {
	if b {
		return ""
	}
	return "not "
}

// formatCSV returns code,flight,factor,crosses,domestic,flythrough with
// booleans written as True/False.
func formatCSV(rel airspace.Relation, crossings bool) string {
	fields := []string{
		rel.FIR.Code,
		rel.Flight.Number,
		strconv.Itoa(int(rel.Charge)),
		boolText(rel.Crosses),
		boolText(rel.Domestic),
		boolText(rel.Flythrough),
	}
	if crossings {
		fields = append(fields, strconv.Itoa(rel.Crossings))
	}
	return strings.Join(fields, ",")
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

///////////////////////////////////////////////////////////////////////////
// Airline tally

type airlineCount struct {
	Airline string
	Flights int
}

// airlineTally counts crossing flights per airline, remembering the order in
// which airlines were first seen.
type airlineTally struct {
	counts *orderedmap.OrderedMap
}

func newAirlineTally() *airlineTally {
	return &airlineTally{counts: orderedmap.New()}
}

func (t *airlineTally) Add(airline string) {
	n := 0
	if v, ok := t.counts.Get(airline); ok {
		n = v.(int)
	}
	t.counts.Set(airline, n+1)
}

func (t *airlineTally) Len() int {
	return len(t.counts.Keys())
}

// Ranked returns the airlines by descending count. Airlines with equal
// counts stay in first-seen order.
func (t *airlineTally) Ranked() []airlineCount {
	keys := t.counts.Keys()
	ranked := make([]airlineCount, 0, len(keys))
	for _, k := range keys {
		v, _ := t.counts.Get(k)
		ranked = append(ranked, airlineCount{Airline: k, Flights: v.(int)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Flights > ranked[j].Flights
	})
	return ranked
}

func (t *airlineTally) Summary() string {
	var b strings.Builder
	b.WriteString("\nMost popular airlines:\n")
	for _, a := range t.Ranked() {
		fmt.Fprintf(&b, "%s: %d flights crossing the FIR\n", a.Airline, a.Flights)
	}
	return b.String()
}
