package airspace

import "strconv"

// ChargeFactor is the billing multiplier for a flight over a FIR.
type ChargeFactor int

const (
	// NoFee: the flight does not cross the FIR, or it is domestic.
	NoFee ChargeFactor = iota
	// Standard: the flight departs from or arrives into the FIR.
	Standard
	// Double: the flight flies through the FIR without landing or departing.
	Double
)

func (c ChargeFactor) String() string {
	switch c {
	case NoFee:
		return "no fee"
	case Standard:
		return "standard"
	case Double:
		return "double"
	default:
		return "ChargeFactor(" + strconv.Itoa(int(c)) + ")"
	}
}

// Domestic flights are never charged, even when their track trivially
// crosses the region.
func chargeFactor(crosses, domestic, flythrough bool) ChargeFactor {
	switch {
	case !crosses || domestic:
		return NoFee
	case flythrough:
		return Double
	default:
		return Standard
	}
}

// Relation holds everything known about one flight with respect to one FIR.
type Relation struct {
	FIR    *FIR
	Flight *Flight

	StartsIn   bool
	EndsIn     bool
	Crosses    bool
	Crossings  int
	Domestic   bool
	Flythrough bool
	Charge     ChargeFactor
}

// Classify evaluates every predicate for the pair once.
func Classify(f *Flight, r *FIR) Relation {
	rel := Relation{
		FIR:       r,
		Flight:    f,
		StartsIn:  f.StartsIn(r),
		EndsIn:    f.EndsIn(r),
		Crosses:   f.Crosses(r),
		Crossings: f.TimesCrosses(r),
	}
	rel.Domestic = rel.StartsIn && rel.EndsIn
	rel.Flythrough = !rel.StartsIn && !rel.EndsIn
	rel.Charge = chargeFactor(rel.Crosses, rel.Domestic, rel.Flythrough)
	return rel
}
