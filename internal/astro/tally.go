package astro

// Element indices for tally arrays: [fire, air, earth, water].
// Modality indices: [cardinal, fixed, mutable]. Both orders are part of the
// output contract.

var signElement = [12]int{
	0, // Aries: fire
	2, // Taurus: earth
	1, // Gemini: air
	3, // Cancer: water
	0, // Leo: fire
	2, // Virgo: earth
	1, // Libra: air
	3, // Scorpio: water
	0, // Sagittarius: fire
	2, // Capricorn: earth
	1, // Aquarius: air
	3, // Pisces: water
}

var signModality = [12]int{
	0, // Aries: cardinal
	1, // Taurus: fixed
	2, // Gemini: mutable
	0, // Cancer: cardinal
	1, // Leo: fixed
	2, // Virgo: mutable
	0, // Libra: cardinal
	1, // Scorpio: fixed
	2, // Sagittarius: mutable
	0, // Capricorn: cardinal
	1, // Aquarius: fixed
	2, // Pisces: mutable
}

// ElementTally counts bodies per element in the fixed order
// [fire, air, earth, water], given their sign indices.
func ElementTally(signIdxs []int) [4]int {
	var tally [4]int
	for _, s := range signIdxs {
		tally[signElement[s%12]]++
	}
	return tally
}

// ModalityTally counts bodies per modality in the fixed order
// [cardinal, fixed, mutable], given their sign indices.
func ModalityTally(signIdxs []int) [3]int {
	var tally [3]int
	for _, s := range signIdxs {
		tally[signModality[s%12]]++
	}
	return tally
}
