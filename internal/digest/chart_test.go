package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/roach88/astrodigest/internal/canon"
	"github.com/roach88/astrodigest/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(
		WithLogger(zaptest.NewLogger(t)),
		WithClock(testutil.NewFixedClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))),
	)
}

// getObject digs a nested Object out of a payload for assertions.
func getObject(t *testing.T, o canon.Object, key string) canon.Object {
	t.Helper()
	v, ok := o.Get(key)
	require.True(t, ok, "missing key %q", key)
	obj, ok := v.(canon.Object)
	require.True(t, ok, "key %q is %T, not Object", key, v)
	return obj
}

func getInt(t *testing.T, o canon.Object, key string) int64 {
	t.Helper()
	v, ok := o.Get(key)
	require.True(t, ok, "missing key %q", key)
	i, ok := v.(canon.Int)
	require.True(t, ok, "key %q is %T, not Int", key, v)
	return int64(i)
}

func getString(t *testing.T, o canon.Object, key string) string {
	t.Helper()
	v, ok := o.Get(key)
	require.True(t, ok, "missing key %q", key)
	s, ok := v.(canon.String)
	require.True(t, ok, "key %q is %T, not String", key, v)
	return string(s)
}

func TestCanonicalizeMapsNamesAndNormalizes(t *testing.T) {
	in := &ChartInput{
		Houses: map[string]AngleRecord{
			"ascendant": {Longitude: 375.0}, // wraps to 15
			"midheaven": {Longitude: -90.0}, // wraps to 270
		},
	}
	in.Planets.records = []BodyRecord{
		{Name: "Sun", Longitude: 460.0}, // wraps to 100
		{Name: "North Node", Longitude: 10.0},
		{Name: "Sedna", Longitude: 20.0}, // fallback id
	}

	data := canonicalize("natal", in, zaptest.NewLogger(t))

	assert.Equal(t, 100.0, data.longitudes["sun"])
	assert.Equal(t, 10.0, data.longitudes["nn"])
	assert.Equal(t, 20.0, data.longitudes["sedna"])
	assert.Equal(t, 15.0, data.angles["asc"])
	assert.Equal(t, 270.0, data.angles["mc"])
}

func TestBuildChartNatal(t *testing.T) {
	b := testBuilder(t)

	in := &ChartInput{
		Houses: map[string]AngleRecord{
			"ascendant": {Longitude: 0.0},
			"midheaven": {Longitude: 270.0},
		},
	}
	in.Planets.records = []BodyRecord{
		{Name: "Sun", Longitude: 100.0, House: ptr(10)},
		{Name: "Moon", Longitude: 10.0, House: ptr(7), Retrograde: ptr(false)},
	}

	chart, err := b.buildChart(canonicalize("natal", in, zaptest.NewLogger(t)), nil)
	require.NoError(t, err)

	assert.Equal(t, "natal", getString(t, chart, "id"))

	bodies := getObject(t, chart, "bodies")
	sun := getObject(t, bodies, "sun")
	assert.Equal(t, int64(1000000), getInt(t, sun, "lng_1e4"))
	assert.Equal(t, int64(1), getInt(t, sun, "dec"))
	assert.Equal(t, int64(1), getInt(t, sun, "term"))
	assert.Equal(t, "18.5", getString(t, sun, "gate"))
	assert.Equal(t, int64(10), getInt(t, sun, "house"))
	assert.False(t, sun.Has("lat_1e4"))
	assert.False(t, sun.Has("rx"))

	moon := getObject(t, bodies, "moon")
	assert.Equal(t, "2.5", getString(t, moon, "gate"))
	rx, ok := moon.Get("rx")
	require.True(t, ok)
	assert.Equal(t, canon.Bool(false), rx)

	// Whole-sign cusps anchored on the Ascendant's sign start.
	cusps, ok := chart.Get("cusps")
	require.True(t, ok)
	arr, ok := cusps.(canon.Array)
	require.True(t, ok)
	require.Len(t, arr, 12)
	assert.Equal(t, canon.Int(0), arr[0])
	assert.Equal(t, canon.Int(300000), arr[1])
	assert.Equal(t, canon.Int(3300000), arr[11])

	// Sun square Moon, exact.
	aspects, ok := chart.Get("tightAspects")
	require.True(t, ok)
	aspArr := aspects.(canon.Array)
	require.Len(t, aspArr, 1)
	asp := aspArr[0].(canon.Object)
	assert.Equal(t, "moon", getString(t, asp, "a"))
	assert.Equal(t, "sun", getString(t, asp, "b"))
	assert.Equal(t, "squ", getString(t, asp, "t"))
	assert.Equal(t, int64(0), getInt(t, asp, "orb_1e4"))

	// Day formula: Sun 100 above the horizon for the lot switch even though
	// its whole-sign house (4) makes the chart-level sect nocturnal.
	lots := getObject(t, chart, "arabicLots")
	assert.Equal(t, int64(2700000), getInt(t, lots, "fortune"))
	assert.Equal(t, int64(900000), getInt(t, lots, "spirit"))
	assert.False(t, lots.Has("eros")) // venus absent
	assert.Equal(t, "nocturnal", getString(t, chart, "sect"))

	assert.Equal(t, "mars", getString(t, chart, "chartRuler"))

	dignity := getObject(t, chart, "dignity")
	sunScore := getObject(t, dignity, "sun")
	assert.Equal(t, int64(0), getInt(t, sunScore, "ess"))
	assert.Equal(t, int64(2), getInt(t, sunScore, "acc"))

	stars := getObject(t, chart, "stars")
	assert.Equal(t, 7, stars.Len())
	reg := getObject(t, stars, "reg")
	assert.Equal(t, int64(1498010), getInt(t, reg, "lng_1e4"))
	assert.Equal(t, int64(5), getInt(t, reg, "house"))
	assert.Equal(t, "27.4", getString(t, reg, "gate"))
}

func TestBuildChartOmitsLotsWithoutSun(t *testing.T) {
	b := testBuilder(t)

	in := &ChartInput{
		Houses: map[string]AngleRecord{"ascendant": {Longitude: 0.0}},
	}
	in.Planets.records = []BodyRecord{
		{Name: "Moon", Longitude: 10.0},
	}

	chart, err := b.buildChart(canonicalize("natal", in, zaptest.NewLogger(t)), nil)
	require.NoError(t, err)
	assert.False(t, chart.Has("arabicLots"))
	// Sect defaults diurnal when the Sun is unresolvable.
	assert.Equal(t, "diurnal", getString(t, chart, "sect"))
}

func TestBuildChartOmitsLotsWithoutAscendant(t *testing.T) {
	b := testBuilder(t)

	in := &ChartInput{}
	in.Planets.records = []BodyRecord{
		{Name: "Sun", Longitude: 100.0},
		{Name: "Moon", Longitude: 10.0},
	}

	chart, err := b.buildChart(canonicalize("natal", in, zaptest.NewLogger(t)), nil)
	require.NoError(t, err)
	assert.False(t, chart.Has("arabicLots"))
	assert.False(t, chart.Has("angles"))

	// Cusps degrade to zeros, never disappear.
	cusps, ok := chart.Get("cusps")
	require.True(t, ok)
	arr := cusps.(canon.Array)
	require.Len(t, arr, 12)
	for _, c := range arr {
		assert.Equal(t, canon.Int(0), c)
	}

	assert.Equal(t, "sun", getString(t, chart, "chartRuler"))
}

func TestBuildChartHouseOutOfRangeOmitted(t *testing.T) {
	b := testBuilder(t)

	in := &ChartInput{}
	in.Planets.records = []BodyRecord{
		{Name: "Sun", Longitude: 100.0, House: ptr(13)},
		{Name: "Moon", Longitude: 10.0, House: ptr(0)},
	}

	chart, err := b.buildChart(canonicalize("natal", in, zaptest.NewLogger(t)), nil)
	require.NoError(t, err)

	bodies := getObject(t, chart, "bodies")
	assert.False(t, getObject(t, bodies, "sun").Has("house"))
	assert.False(t, getObject(t, bodies, "moon").Has("house"))
}

func TestBuildChartTransitSkipsNatalOnlyArtifacts(t *testing.T) {
	b := testBuilder(t)

	in := &ChartInput{
		Houses: map[string]AngleRecord{"ascendant": {Longitude: 0.0}},
	}
	in.Planets.records = []BodyRecord{
		{Name: "Sun", Longitude: 100.0},
		{Name: "Moon", Longitude: 10.0},
	}

	chart, err := b.buildChart(canonicalize("transit", in, zaptest.NewLogger(t)), nil)
	require.NoError(t, err)

	assert.False(t, chart.Has("tightAspects"))
	assert.False(t, chart.Has("arabicLots"))
	assert.False(t, chart.Has("stars"))
	assert.False(t, chart.Has("elemTally"))
	assert.True(t, chart.Has("dignity"))
	assert.True(t, chart.Has("sect"))
}

func TestBuildChartTallies(t *testing.T) {
	b := testBuilder(t)

	in := &ChartInput{}
	in.Planets.records = []BodyRecord{
		{Name: "Sun", Longitude: 100.0}, // Cancer: water, cardinal
		{Name: "Moon", Longitude: 10.0}, // Aries: fire, cardinal
	}

	chart, err := b.buildChart(canonicalize("natal", in, zaptest.NewLogger(t)), nil)
	require.NoError(t, err)

	elem := chart
	v, ok := elem.Get("elemTally")
	require.True(t, ok)
	assert.Equal(t, canon.Array{canon.Int(1), canon.Int(0), canon.Int(0), canon.Int(1)}, v)

	v, ok = chart.Get("modeTally")
	require.True(t, ok)
	assert.Equal(t, canon.Array{canon.Int(2), canon.Int(0), canon.Int(0)}, v)
}

func TestChartTimestampResolution(t *testing.T) {
	b := testBuilder(t)
	meta := &RequestMeta{BirthDate: "1990-06-15", BirthTime: "08:30:00"}

	tests := []struct {
		name     string
		data     chartData
		meta     *RequestMeta
		expected string
	}{
		{
			name:     "chart input wins",
			data:     chartData{kind: "natal", timestamp: "2001-01-01T00:00:00Z"},
			meta:     meta,
			expected: "2001-01-01T00:00:00Z",
		},
		{
			name:     "birth metadata for natal",
			data:     chartData{kind: "natal"},
			meta:     meta,
			expected: "1990-06-15T08:30:00Z",
		},
		{
			name:     "birth date only defaults to noon",
			data:     chartData{kind: "design"},
			meta:     &RequestMeta{BirthDate: "1990-06-15"},
			expected: "1990-06-15T12:00:00Z",
		},
		{
			name:     "zone offset suffix preserved",
			data:     chartData{kind: "natal"},
			meta:     &RequestMeta{BirthDate: "1990-06-15", BirthTime: "08:30:00+02:00"},
			expected: "1990-06-15T08:30:00+02:00",
		},
		{
			name:     "negative zone offset preserved",
			data:     chartData{kind: "natal"},
			meta:     &RequestMeta{BirthDate: "1990-06-15", BirthTime: "08:30:00-05:00"},
			expected: "1990-06-15T08:30:00-05:00",
		},
		{
			name:     "transit never uses birth metadata",
			data:     chartData{kind: "transit"},
			meta:     meta,
			expected: "2025-06-15T12:00:00Z",
		},
		{
			name:     "clock fallback",
			data:     chartData{kind: "natal"},
			meta:     nil,
			expected: "2025-06-15T12:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.chartTimestamp(tt.data, tt.meta))
		})
	}
}
