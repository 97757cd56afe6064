package astro

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecanIndex(t *testing.T) {
	tests := []struct {
		lon      float64
		expected int
	}{
		{0, 0},
		{9.9999, 0},
		{10, 1},
		{19.9999, 1},
		{20, 2},
		{29.9999, 2},
		{30, 0},   // next sign
		{355, 2},  // 355 mod 30 = 25
		{100, 1},  // 100 mod 30 = 10
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.lon), func(t *testing.T) {
			assert.Equal(t, tt.expected, DecanIndex(tt.lon))
		})
	}
}

func TestTermIndex(t *testing.T) {
	tests := []struct {
		lon      float64
		expected int
	}{
		{0, 0},
		{5.9999, 0},
		{6, 1},
		{12, 2},
		{18, 3},
		{24, 4},
		{29.9999, 4}, // boundary clamps to 4, never 5
		{355, 4},     // 355 mod 30 = 25
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.lon), func(t *testing.T) {
			assert.Equal(t, tt.expected, TermIndex(tt.lon))
		})
	}
}

func TestGateLine(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		gate     int
		line     int
	}{
		{"zero is gate 1 line 1", 0, 1, 1},
		{"first line boundary", 0.9374, 1, 1},
		{"second line", 0.9375, 1, 2},
		{"gate 2", 5.625, 2, 1},
		{"mid zodiac", 180, 33, 1},
		{"last gate", 354.375, 64, 1},
		{"boundary maps to 64.6 without overflow", 359.9999, 64, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, line, err := GateLine(tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.gate, gate)
			assert.Equal(t, tt.line, line)
			assert.GreaterOrEqual(t, gate, 1)
			assert.LessOrEqual(t, gate, 64)
			assert.GreaterOrEqual(t, line, 1)
			assert.LessOrEqual(t, line, 6)
		})
	}
}

func TestGateLineSweepStaysInRange(t *testing.T) {
	for d := 0.0; d < 360.0; d += 0.31 {
		gate, line, err := GateLine(d)
		require.NoError(t, err)
		require.GreaterOrEqual(t, gate, 1)
		require.LessOrEqual(t, gate, 64)
		require.GreaterOrEqual(t, line, 1)
		require.LessOrEqual(t, line, 6)
	}
}

func TestGateLineFaultsOnUnnormalizedInput(t *testing.T) {
	tests := []struct {
		name string
		lon  float64
	}{
		{"negative", -10},
		{"full circle", 360},
		{"beyond circle", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GateLine(tt.lon)
			require.Error(t, err)
			assert.True(t, IsFault(err))
		})
	}
}

func TestFormatGateLine(t *testing.T) {
	s, err := FormatGateLine(359.9999)
	require.NoError(t, err)
	assert.Equal(t, "64.6", s)

	_, err = FormatGateLine(-1)
	require.Error(t, err)
	assert.True(t, IsFault(err))
}
