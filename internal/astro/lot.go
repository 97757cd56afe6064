package astro

// LotDef describes a Hermetic lot: by day the lot falls at
// asc + addend - subtrahend; by night the addend and subtrahend swap.
type LotDef struct {
	Name       string
	Addend     string
	Subtrahend string
}

// lotDefs is the core Hermetic lot set. Every formula is anchored on the
// Ascendant; the Sun participates in each, plus one paired planet.
var lotDefs = [7]LotDef{
	{"fortune", "moon", "sun"},
	{"spirit", "sun", "moon"},
	{"eros", "venus", "sun"},
	{"necessity", "sat", "sun"},
	{"victory", "jup", "sun"},
	{"courage", "mars", "sun"},
	{"nemesis", "merc", "sun"},
}

// LotLongitude applies the sect-conditional lot formula and normalizes the
// result into [0, 360).
func LotLongitude(asc, addend, subtrahend float64, isDay bool) float64 {
	if isDay {
		return Normalize(asc + addend - subtrahend)
	}
	return Normalize(asc + subtrahend - addend)
}

// Lots computes the Hermetic lot set from canonical body longitudes and the
// Ascendant. The caller must have verified that the Sun is present (the
// day/night switch needs it); a lot whose paired planet is absent is
// skipped individually, so partial lot sets are valid.
func Lots(longitudes map[string]float64, asc float64, isDay bool) map[string]float64 {
	lots := make(map[string]float64, len(lotDefs))
	for _, def := range lotDefs {
		add, okAdd := longitudes[def.Addend]
		sub, okSub := longitudes[def.Subtrahend]
		if !okAdd || !okSub {
			continue
		}
		lots[def.Name] = LotLongitude(asc, add, sub, isDay)
	}
	return lots
}
