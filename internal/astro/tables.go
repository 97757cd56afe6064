package astro

import "strings"

// bodyIDs maps ephemeris body names to canonical short ids (3-5 chars).
// This is the closed enumeration: only ids produced by this table
// participate in class-based orb filtering and dignity lookup.
var bodyIDs = map[string]string{
	"Sun":               "sun",
	"Moon":              "moon",
	"Mercury":           "merc",
	"Venus":             "venus",
	"Mars":              "mars",
	"Jupiter":           "jup",
	"Saturn":            "sat",
	"Uranus":            "uran",
	"Neptune":           "nep",
	"Pluto":             "pluto",
	"North Node":        "nn",
	"South Node":        "sn",
	"Chiron":            "chir",
	"Ceres":             "cer",
	"Pallas":            "pal",
	"Juno":              "juno",
	"Vesta":             "vest",
	"Black Moon Lilith": "bml",
	"Pallas Athena":     "pall", // alternative name for Pallas
	"Pholus":            "phol",
}

// knownIDs is the reverse index of the closed enumeration.
var knownIDs = func() map[string]bool {
	m := make(map[string]bool, len(bodyIDs))
	for _, id := range bodyIDs {
		m[id] = true
	}
	return m
}()

// CanonicalBodyID maps an ephemeris body name to its canonical id.
// Unknown names degrade to a deterministic fallback (lowercase, first five
// characters) so no body is silently lost; such ids are not part of the
// closed enumeration (see KnownBody).
func CanonicalBodyID(name string) string {
	if id, ok := bodyIDs[name]; ok {
		return id
	}
	fallback := strings.ToLower(name)
	if len(fallback) > 5 {
		fallback = fallback[:5]
	}
	return fallback
}

// KnownBody reports whether id belongs to the closed body enumeration.
func KnownBody(id string) bool {
	return knownIDs[id]
}

// BodyClass buckets canonical ids for orb-cap selection.
type BodyClass string

const (
	ClassLuminary BodyClass = "lum"
	ClassPlanet   BodyClass = "planet"
	ClassAsteroid BodyClass = "asteroid"
)

var bodyClasses = map[string]BodyClass{
	"sun":  ClassLuminary,
	"moon": ClassLuminary,

	"merc":  ClassPlanet,
	"venus": ClassPlanet,
	"mars":  ClassPlanet,
	"jup":   ClassPlanet,
	"sat":   ClassPlanet,
	"uran":  ClassPlanet,
	"nep":   ClassPlanet,
	"pluto": ClassPlanet,
	"nn":    ClassPlanet,
	"sn":    ClassPlanet,
	"chir":  ClassPlanet,
	"bml":   ClassPlanet,

	"cer":  ClassAsteroid,
	"pal":  ClassAsteroid,
	"juno": ClassAsteroid,
	"vest": ClassAsteroid,
	"pall": ClassAsteroid,
	"phol": ClassAsteroid,
}

// ClassOf returns the orb class for a canonical id. The second return is
// false for ids outside the closed enumeration; aspects involving such
// bodies are dropped from class-filtered output.
func ClassOf(id string) (BodyClass, bool) {
	c, ok := bodyClasses[id]
	return c, ok
}

// OrbPolicy holds the per-class orb caps in degrees. The cap applied to a
// body pair is the larger of the two class caps.
type OrbPolicy struct {
	Luminary float64 `yaml:"lum"`
	Planet   float64 `yaml:"planet"`
	Asteroid float64 `yaml:"asteroid"`
}

// DefaultOrbPolicy returns the standard caps: luminaries 5.0, planets 3.0,
// asteroids 1.5.
func DefaultOrbPolicy() OrbPolicy {
	return OrbPolicy{Luminary: 5.0, Planet: 3.0, Asteroid: 1.5}
}

// CapFor returns the cap in degrees for a body class.
func (p OrbPolicy) CapFor(c BodyClass) float64 {
	switch c {
	case ClassLuminary:
		return p.Luminary
	case ClassPlanet:
		return p.Planet
	case ClassAsteroid:
		return p.Asteroid
	}
	return 0
}

// Zodiac signs by index, Aries = 0.
var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignName returns the sign name for index 0-11.
func SignName(idx int) string {
	return signNames[idx%12]
}

// Traditional sign rulers by sign index. No sect-conditional splitting.
var signRulers = [12]string{
	"mars",  // Aries
	"venus", // Taurus
	"merc",  // Gemini
	"moon",  // Cancer
	"sun",   // Leo
	"merc",  // Virgo
	"venus", // Libra
	"mars",  // Scorpio
	"jup",   // Sagittarius
	"sat",   // Capricorn
	"sat",   // Aquarius
	"jup",   // Pisces
}

// Essential dignity scores by canonical id and sign index.
// Rulership scores 5, exaltation 4. No detriment/fall scoring.
var essentialDignity = map[string]map[int]int{
	"sun":   {4: 5, 0: 4},         // Leo rulership, Aries exaltation
	"moon":  {3: 5, 1: 4},         // Cancer rulership, Taurus exaltation
	"merc":  {2: 5, 5: 4},         // Gemini rulership, Virgo exaltation
	"venus": {1: 5, 6: 5, 11: 4},  // Taurus/Libra rulership, Pisces exaltation
	"mars":  {0: 5, 7: 5, 9: 4},   // Aries/Scorpio rulership, Capricorn exaltation
	"jup":   {8: 5, 11: 5, 3: 4},  // Sagittarius/Pisces rulership, Cancer exaltation
	"sat":   {9: 5, 10: 5, 6: 4},  // Capricorn/Aquarius rulership, Libra exaltation
	"uran":  {10: 5},              // Aquarius (modern)
	"nep":   {11: 5},              // Pisces (modern)
	"pluto": {7: 5},               // Scorpio (modern)
}
