package astro

// FixedStar is a bright star carried as a secondary chart annotation.
// Longitudes are J2000 ecliptic positions; current-epoch positions apply a
// flat precession offset.
type FixedStar struct {
	ID       string
	Name     string
	LonJ2000 float64
}

// precessionOffset approximates precession from J2000 to the current epoch
// (~0.014 degrees/year over 25 years).
const precessionOffset = 0.35

// fixedStars is the seven-star subset attached to natal and design charts.
// Order is fixed; output tables key by ID so serialization order comes from
// the canonical encoder.
var fixedStars = [7]FixedStar{
	{"reg", "Regulus", 149.451},
	{"spi", "Spica", 203.796},
	{"alg", "Algol", 56.166},
	{"ald", "Aldebaran", 69.679},
	{"ant", "Antares", 249.496},
	{"fom", "Fomalhaut", 3.521},
	{"sir", "Sirius", 104.024},
}

// FixedStars returns the star table.
func FixedStars() []FixedStar {
	return fixedStars[:]
}

// Longitude returns the star's current-epoch ecliptic longitude in [0, 360).
func (s FixedStar) Longitude() float64 {
	return Normalize(s.LonJ2000 + precessionOffset)
}
