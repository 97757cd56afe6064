package astro

import "math"

// Sect classifies a chart as diurnal or nocturnal.
type Sect string

const (
	SectDiurnal   Sect = "diurnal"
	SectNocturnal Sect = "nocturnal"
)

// SignIndex returns the zodiac sign index (0-11, Aries = 0) of a longitude.
func SignIndex(lon float64) int {
	return int(Normalize(lon) / 30)
}

// HouseNumber places a longitude into a whole-sign house (1-12) relative to
// the Ascendant: house = floor(((lon - asc) mod 360) / 30) + 1.
func HouseNumber(lon, asc float64) int {
	return int(math.Floor(Normalize(lon-asc)/30)) + 1
}

// ChartSect determines sect by the Sun's whole-sign house relative to the
// Ascendant: houses 7-12 are above the horizon (diurnal), 1-6 below
// (nocturnal).
func ChartSect(sunLon, asc float64) Sect {
	if HouseNumber(sunLon, asc) >= 7 {
		return SectDiurnal
	}
	return SectNocturnal
}

// IsDayChart is the horizon test used by the lot formulas: the chart counts
// as day when (sun - asc) mod 360 falls in [0, 180).
//
// Note this is deliberately NOT derived from ChartSect. The chart-level
// sect field and the lot day/night switch are independent computations with
// different horizon conventions; see DESIGN.md.
func IsDayChart(sunLon, asc float64) bool {
	return Normalize(sunLon-asc) < 180
}

// ChartRuler returns the canonical id of the body ruling the Ascendant's
// sign, from the traditional rulership table.
func ChartRuler(ascLon float64) string {
	return signRulers[SignIndex(ascLon)]
}
