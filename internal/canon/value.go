package canon

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface representing constrained payload value types.
// Only String, Int, Bool, Array, and Object implement it.
// NO Float - floating point is forbidden in digest payloads (breaks
// cross-language byte identity). Degree values must be fixed-point encoded
// before they enter the model.
type Value interface {
	canonValue() // Sealed - only these types implement it
}

// String represents a string value in the payload.
type String string

func (String) canonValue() {}

// Int represents an integer value in the payload.
// Always int64; fixed-point degree fields (*_1e4) use this type.
type Int int64

func (Int) canonValue() {}

// Bool represents a boolean value in the payload.
type Bool bool

func (Bool) canonValue() {}

// Array represents an ordered sequence of Values.
// Element order is owned by the producer (e.g. aspect lists are pre-sorted
// by orb); the encoder never reorders arrays.
type Array []Value

func (Array) canonValue() {}

// Kind identifies the payload object type for key-ordering dispatch.
//
// Every Object is tagged at construction. This replaces structural
// fingerprinting (inferring an object's type from which keys it happens to
// contain), which is fragile when two unrelated object types share key
// subsets.
type Kind string

const (
	// KindRoot is the top-level digest envelope.
	KindRoot Kind = "root"

	// KindMetadata is the digest metadata block.
	KindMetadata Kind = "metadata"

	// KindBirth is the birth metadata block inside metadata.
	KindBirth Kind = "birth"

	// KindOrbPolicy is the orb policy block inside metadata.
	KindOrbPolicy Kind = "orb_policy"

	// KindChart is a single chart entry.
	KindChart Kind = "chart"

	// KindBody is a body placement record.
	KindBody Kind = "body"

	// KindAngle is an angle record (asc/mc/desc/ic).
	KindAngle Kind = "angle"

	// KindAspect is an aspect record {a, b, t, orb_1e4}.
	KindAspect Kind = "aspect"

	// KindStar is a fixed-star record.
	KindStar Kind = "star"

	// KindScore is a dignity score record {ess, acc}.
	KindScore Kind = "score"

	// KindGeneric has no preferred key order; all keys sort canonically.
	// Used for keyed tables (bodies, lots, dignity) whose keys are ids.
	KindGeneric Kind = "generic"
)

// kindKeyOrder defines the preferred leading key order per Kind.
// Keys not listed here sort after the listed ones in canonical
// (UTF-16 code unit) order.
var kindKeyOrder = map[Kind][]string{
	KindRoot:      {"schemaVer", "metadata", "charts"},
	KindMetadata:  {"api_ver", "format", "ephem", "bodies", "orb", "house_system", "birth"},
	KindBirth:     {"name", "date", "time", "lat_1e4", "lon_1e4", "tz"},
	KindOrbPolicy: {"lum_1e4", "planet_1e4", "asteroid_1e4"},
	KindChart: {
		"id", "timestamp", "bodies", "angles", "cusps", "stars",
		"tightAspects", "tightDesignAspects", "toNatal", "toDesign", "toAngles",
		"arabicLots", "elemTally", "modeTally", "dignity", "chartRuler", "sect",
	},
	KindBody:   {"lng_1e4", "lat_1e4", "spd_1e4", "dec_1e4", "rx", "house", "dec", "term", "gate"},
	KindAngle:  {"lng_1e4"},
	KindAspect: {"a", "b", "t", "orb_1e4"},
	KindStar:   {"lng_1e4", "house", "gate"},
	KindScore:  {"ess", "acc"},
}

// Object represents a payload object with an explicit Kind discriminant.
// The zero Object is not usable; construct with NewObject.
type Object struct {
	kind   Kind
	fields map[string]Value
}

func (Object) canonValue() {}

// NewObject creates an empty Object of the given Kind.
func NewObject(kind Kind) Object {
	return Object{kind: kind, fields: make(map[string]Value)}
}

// Kind returns the object's discriminant.
func (o Object) Kind() Kind {
	return o.kind
}

// Set stores a field. Setting a nil Value is a programming error and panics;
// absence is expressed by not calling Set.
func (o Object) Set(key string, v Value) {
	if v == nil {
		panic("canon: nil Value for key " + key)
	}
	o.fields[key] = v
}

// Get returns the value for key and whether it is present.
func (o Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Len returns the number of fields.
func (o Object) Len() int {
	return len(o.fields)
}

// OrderedKeys returns the object's keys in serialization order: the Kind's
// preferred keys first (those present), then all remaining keys in canonical
// UTF-16 code unit order.
func (o Object) OrderedKeys() []string {
	preferred := kindKeyOrder[o.kind]

	keys := make([]string, 0, len(o.fields))
	seen := make(map[string]bool, len(preferred))
	for _, k := range preferred {
		if _, ok := o.fields[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	rest := make([]string, 0, len(o.fields))
	for k := range o.fields {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.SortFunc(rest, compareUTF16)

	return append(keys, rest...)
}

// compareUTF16 compares strings by UTF-16 code units as required for
// canonical JSON key ordering (RFC 8785).
// CRITICAL: Go's native string comparison is UTF-8 byte order, which
// produces a DIFFERENT order for code points above the BMP versus
// unpaired-surrogate-range characters. Must encode to UTF-16 first.
func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := len(a16)
	if len(b16) < n {
		n = len(b16)
	}
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}
