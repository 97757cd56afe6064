package astro

import "math"

// WholeSignCusps derives the 12 house-cusp longitudes for the whole-sign
// system: the first cusp sits at 0 degrees of the Ascendant's sign and each
// subsequent cusp advances one sign.
func WholeSignCusps(ascLon float64) [12]float64 {
	signStart := math.Floor(Normalize(ascLon)/30) * 30

	var cusps [12]float64
	for i := 0; i < 12; i++ {
		cusps[i] = Normalize(signStart + float64(i)*30)
	}
	return cusps
}
