package astro

import (
	"fmt"
	"math"
)

const (
	gateWidth = 5.625  // 360 / 64
	lineWidth = 0.9375 // gateWidth / 6
)

// DecanIndex returns the decan (0-2) of a longitude within its sign.
func DecanIndex(lon float64) int {
	return int(math.Mod(Normalize(lon), 30) / 10)
}

// TermIndex returns the Egyptian term/bound index (0-4) of a longitude
// within its sign. The 30-degree boundary clamps to 4 rather than
// overflowing to 5.
func TermIndex(lon float64) int {
	idx := int(math.Mod(Normalize(lon), 30) / 6)
	if idx > 4 {
		idx = 4
	}
	return idx
}

// GateLine maps a longitude onto the 64-gate x 6-line partition of the
// zodiac. gate is in [1,64], line in [1,6].
//
// The input must already be normalized into [0, 360): a computed gate or
// line outside its range returns a *FaultError, since it signals an
// upstream normalization defect rather than missing data.
func GateLine(lon float64) (gate, line int, err error) {
	gate = int(math.Floor(lon/gateWidth)) + 1
	// Guard the float boundary just below 360: floor can land on 64.0
	// exactly and overshoot by one.
	if gate == 65 && lon < 360 {
		gate = 64
	}
	if gate < 1 || gate > 64 {
		return 0, 0, newGateFault(gate, lon)
	}

	gateStart := float64(gate-1) * gateWidth
	line = int(math.Floor((lon-gateStart)/lineWidth)) + 1
	if line == 7 && lon < gateStart+gateWidth {
		line = 6
	}
	if line < 1 || line > 6 {
		return 0, 0, newLineFault(line, lon)
	}

	return gate, line, nil
}

// FormatGateLine renders the gate/line annotation as "gate.line".
func FormatGateLine(lon float64) (string, error) {
	gate, line, err := GateLine(lon)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", gate, line), nil
}
