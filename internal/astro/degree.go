package astro

import "math"

// Scale is the fixed-point factor for degree encoding: all degree-valued
// digest fields carry round(degrees * 10000) as an int64 (field suffix
// _1e4). This keeps payloads free of floating-point formatting drift.
const Scale = 10_000

// fullCircle1e4 is 360 degrees in fixed-point form.
const fullCircle1e4 = 360 * Scale

// Normalize wraps a degree value into [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// EncodeDeg converts a degree value to fixed-point form. Total and lossless
// to four decimal places; does NOT normalize (signed values such as speeds
// and declinations encode as-is).
func EncodeDeg(deg float64) int64 {
	return int64(math.Round(deg * Scale))
}

// DecodeDeg converts a fixed-point value back to degrees.
func DecodeDeg(v int64) float64 {
	return float64(v) / Scale
}

// EncodeLon normalizes a longitude into [0, 360) and encodes it.
// The result is always in [0, 3600000). Values that round up to exactly
// 360 degrees wrap to 0.
func EncodeLon(deg float64) int64 {
	e := EncodeDeg(Normalize(deg))
	return ((e % fullCircle1e4) + fullCircle1e4) % fullCircle1e4
}
