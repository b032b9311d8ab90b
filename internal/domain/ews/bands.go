package ews

import "math"

// band is one row of an ordered threshold table: values at or below Upper
// score Points, provided no earlier band matched. Encoding the published
// NEWS2 reference tables this way keeps every boundary testable in one
// place instead of buried in nested conditionals.
type band struct {
	Upper  float64
	Points int
}

// lookup walks the ordered bands and returns the points for the first band
// whose upper bound is >= value. Tables always end with an +Inf band, so
// lookup is total.
func lookup(bands []band, value float64) int {
	for _, b := range bands {
		if value <= b.Upper {
			return b.Points
		}
	}
	return 0
}

var inf = math.Inf(1)

// NEWS2 per-parameter tables. Points per the National Early Warning Score 2
// reference chart (Royal College of Physicians, 2017).
var (
	respRateBands = []band{
		{8, 3}, {11, 1}, {20, 0}, {24, 2}, {inf, 3},
	}

	// Scale 1: default SpO2 scoring.
	spO2Scale1Bands = []band{
		{91, 3}, {93, 2}, {95, 1}, {inf, 0},
	}

	// Scale 2: for hypercapnic respiratory failure, where the target
	// saturation range is 88-92% and high saturations also score.
	spO2Scale2Bands = []band{
		{83, 3}, {85, 2}, {87, 1}, {92, 0}, {94, 1}, {96, 2}, {inf, 3},
	}

	temperatureBands = []band{
		{35.0, 3}, {36.0, 1}, {38.0, 0}, {39.0, 1}, {inf, 2},
	}

	systolicBPBands = []band{
		{90, 3}, {100, 2}, {110, 1}, {219, 0}, {inf, 3},
	}

	heartRateBands = []band{
		{40, 3}, {50, 1}, {90, 0}, {110, 1}, {130, 2}, {inf, 3},
	}
)
