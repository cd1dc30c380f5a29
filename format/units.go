package format

import "math"

// DisplayUnit scales large values down and appends a suffix, 1500 -> 1.5K.
type DisplayUnit struct {
	Value  float64
	Suffix string
}

var NoUnit = DisplayUnit{Value: 1}

var displayUnits = []DisplayUnit{
	{Value: 1e12, Suffix: "T"},
	{Value: 1e9, Suffix: "bn"},
	{Value: 1e6, Suffix: "M"},
	{Value: 1e3, Suffix: "K"},
}

// ChooseDisplayUnit picks the unit from the larger magnitude of the
// bounding values.
func ChooseDisplayUnit(min, max float64) DisplayUnit {
	magnitude := math.Max(math.Abs(min), math.Abs(max))
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return NoUnit
	}
	for _, unit := range displayUnits {
		if magnitude >= unit.Value {
			return unit
		}
	}
	return NoUnit
}
