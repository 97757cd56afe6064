package astro

// DignityScore holds the essential (sign-based) and accidental (house-based)
// strength of a body's placement.
type DignityScore struct {
	Essential  int
	Accidental int
}

// EssentialScore looks up the sign-based dignity of a canonical body id:
// rulership 5, exaltation 4, no entry 0. Detriment and fall are not scored.
func EssentialScore(id string, signIdx int) int {
	if signs, ok := essentialDignity[id]; ok {
		return signs[signIdx]
	}
	return 0
}

// AccidentalScore scores house placement: angular houses (1,4,7,10) score 2,
// succedent (2,5,8,11) score 1, cadent 0. A body without a resolvable house
// scores 0 rather than being omitted.
func AccidentalScore(house int, hasHouse bool) int {
	if !hasHouse {
		return 0
	}
	switch house {
	case 1, 4, 7, 10:
		return 2
	case 2, 5, 8, 11:
		return 1
	}
	return 0
}

// Dignity scores a body's placement. The second return is false for ids
// outside the closed enumeration, which are excluded from dignity lookup.
func Dignity(id string, signIdx, house int, hasHouse bool) (DignityScore, bool) {
	if !KnownBody(id) {
		return DignityScore{}, false
	}
	return DignityScore{
		Essential:  EssentialScore(id, signIdx),
		Accidental: AccidentalScore(house, hasHouse),
	}, true
}
