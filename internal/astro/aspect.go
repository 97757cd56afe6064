package astro

import (
	"math"
	"slices"
	"strings"
)

// Aspect is an angular relationship between two chart points. A and B are
// canonical body ids (or angle names for angle aspects), Type is one of the
// five major aspect ids, and Orb1e4 is the fixed-point absolute deviation
// from the exact aspect angle.
type Aspect struct {
	A      string
	B      string
	Type   string
	Orb1e4 int64
}

// aspectDef pairs a target angle with its nominal maximum orb in degrees.
type aspectDef struct {
	angle  float64
	id     string
	maxOrb float64
}

// The five major aspects. Nothing else is ever classified: minor aspects
// (semisextile, semisquare, sesquiquadrate, quincunx) have no definition
// here and so cannot reach any output path.
var majorAspects = [5]aspectDef{
	{0, "con", 8},
	{60, "sex", 6},
	{90, "squ", 8},
	{120, "tri", 8},
	{180, "opp", 8},
}

// MajorAspectIDs is the closed set of aspect type ids that may appear in
// digest output.
var MajorAspectIDs = map[string]bool{
	"con": true, "opp": true, "squ": true, "tri": true, "sex": true,
}

// angleAspectCap is the fixed orb cap in degrees for transit-to-angle
// aspects, regardless of body class. Angle hits are short-horizon timing
// triggers and use a tighter window.
const angleAspectCap = 3.0

// Separation returns the angular separation of two longitudes, in [0, 180].
func Separation(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// classify matches a separation against the five major aspects.
// Returns the aspect id and orb, or ok=false when no major aspect is within
// its nominal max orb. The major targets are far enough apart that at most
// one can match.
func classify(sep float64) (id string, orb float64, ok bool) {
	for _, def := range majorAspects {
		o := math.Abs(sep - def.angle)
		if o <= def.maxOrb {
			return def.id, o, true
		}
	}
	return "", 0, false
}

// pairCap1e4 returns the fixed-point orb cap for a body pair: the larger of
// the two class caps. ok is false when either body falls outside the closed
// enumeration, in which case the pair cannot be classified and is dropped.
func pairCap1e4(a, b string, policy OrbPolicy) (int64, bool) {
	ca, okA := ClassOf(a)
	cb, okB := ClassOf(b)
	if !okA || !okB {
		return 0, false
	}
	limit := math.Max(policy.CapFor(ca), policy.CapFor(cb))
	return EncodeDeg(limit), true
}

// ChartAspects computes all major aspects between distinct body pairs
// within a single chart, applying the class orb policy, sorted tightest
// first.
func ChartAspects(longitudes map[string]float64, policy OrbPolicy) []Aspect {
	ids := sortedIDs(longitudes)

	var out []Aspect
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if asp, ok := classifyPair(ids[i], ids[j], longitudes[ids[i]], longitudes[ids[j]], policy); ok {
				out = append(out, asp)
			}
		}
	}

	sortAspects(out)
	return out
}

// CrossAspects computes major aspects between every body of one chart and
// every body of another (transit vs natal/design), applying the class orb
// policy, sorted tightest first. Self-pairs (same canonical id on both
// sides) are dropped unconditionally.
func CrossAspects(from, to map[string]float64, policy OrbPolicy) []Aspect {
	fromIDs := sortedIDs(from)
	toIDs := sortedIDs(to)

	var out []Aspect
	for _, a := range fromIDs {
		for _, b := range toIDs {
			if a == b {
				continue
			}
			if asp, ok := classifyPair(a, b, from[a], to[b], policy); ok {
				out = append(out, asp)
			}
		}
	}

	sortAspects(out)
	return out
}

// AngleAspects computes major aspects between transiting bodies and the
// natal ASC and MC only (not DESC/IC), with the fixed 3-degree cap instead
// of the class policy. Sorted tightest first.
func AngleAspects(bodies map[string]float64, angles map[string]float64) []Aspect {
	ids := sortedIDs(bodies)
	cap1e4 := EncodeDeg(angleAspectCap)

	var out []Aspect
	for _, id := range ids {
		for _, angle := range [2]string{"asc", "mc"} {
			angleLon, ok := angles[angle]
			if !ok {
				continue
			}
			typ, orb, matched := classify(Separation(bodies[id], angleLon))
			if !matched {
				continue
			}
			orb1e4 := EncodeDeg(orb)
			if orb1e4 > cap1e4 {
				continue
			}
			out = append(out, Aspect{A: id, B: angle, Type: typ, Orb1e4: orb1e4})
		}
	}

	sortAspects(out)
	return out
}

// classifyPair runs the full intra/cross filtering path for one body pair:
// major-aspect classification, then the class orb cap.
func classifyPair(a, b string, lonA, lonB float64, policy OrbPolicy) (Aspect, bool) {
	cap1e4, ok := pairCap1e4(a, b, policy)
	if !ok {
		return Aspect{}, false
	}
	typ, orb, matched := classify(Separation(lonA, lonB))
	if !matched {
		return Aspect{}, false
	}
	orb1e4 := EncodeDeg(orb)
	if orb1e4 > cap1e4 {
		return Aspect{}, false
	}
	return Aspect{A: a, B: b, Type: typ, Orb1e4: orb1e4}, true
}

// sortAspects orders ascending by orb (tightest first). Consumers rely on
// position 0 being the most exact hit. Ties break on (a, b, t) so the order
// is total and input-shape independent.
func sortAspects(aspects []Aspect) {
	slices.SortFunc(aspects, func(x, y Aspect) int {
		if x.Orb1e4 != y.Orb1e4 {
			if x.Orb1e4 < y.Orb1e4 {
				return -1
			}
			return 1
		}
		if c := strings.Compare(x.A, y.A); c != 0 {
			return c
		}
		if c := strings.Compare(x.B, y.B); c != 0 {
			return c
		}
		return strings.Compare(x.Type, y.Type)
	})
}

// sortedIDs returns map keys in lexical order so pair iteration never
// depends on map iteration order or on the input's original shape.
func sortedIDs(m map[string]float64) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
