package digest

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/astrodigest/internal/astro"
	"github.com/roach88/astrodigest/internal/canon"
)

// anglePairTolerance is the soft-invariant tolerance in degrees for the
// desc = asc + 180 and ic = mc + 180 relationships. Violations are logged,
// not enforced.
const anglePairTolerance = 0.01

// chartData is the canonicalized view of one chart: every downstream
// calculator reads from here, so input shape is branched on exactly once.
type chartData struct {
	kind       string
	bodies     map[string]BodyRecord
	longitudes map[string]float64
	angles     map[string]float64
	timestamp  string
}

// canonicalize normalizes a raw chart into chartData: body names map to
// canonical ids (unknown names degrade to the fallback id), longitudes wrap
// into [0, 360), and angles re-key to their short names.
func canonicalize(kind string, in *ChartInput, logger *zap.Logger) chartData {
	data := chartData{
		kind:       kind,
		bodies:     make(map[string]BodyRecord),
		longitudes: make(map[string]float64),
		angles:     make(map[string]float64),
		timestamp:  in.Timestamp,
	}

	for _, rec := range in.Planets.Records() {
		if rec.Name == "" {
			logger.Warn("dropping body record with no name", zap.String("chart", kind))
			continue
		}
		id := astro.CanonicalBodyID(rec.Name)
		if !astro.KnownBody(id) {
			logger.Warn("body name not in canonical table, using fallback id",
				zap.String("chart", kind),
				zap.String("name", rec.Name),
				zap.String("id", id))
		}
		rec.Longitude = astro.Normalize(rec.Longitude)
		data.bodies[id] = rec
		data.longitudes[id] = rec.Longitude
	}

	for long, short := range angleNames {
		if rec, ok := in.Houses[long]; ok {
			data.angles[short] = astro.Normalize(rec.Longitude)
		}
	}
	checkAnglePair(data.angles, "asc", "desc", kind, logger)
	checkAnglePair(data.angles, "mc", "ic", kind, logger)

	return data
}

// checkAnglePair logs when the opposite angle strays from base + 180.
func checkAnglePair(angles map[string]float64, base, opposite, kind string, logger *zap.Logger) {
	b, okB := angles[base]
	o, okO := angles[opposite]
	if !okB || !okO {
		return
	}
	expected := astro.Normalize(b + 180)
	delta := math.Abs(astro.Normalize(o - expected))
	if delta > 180 {
		delta = 360 - delta
	}
	if delta > anglePairTolerance {
		logger.Warn("angle pair violates horizon relationship",
			zap.String("chart", kind),
			zap.String("base", base),
			zap.String("opposite", opposite),
			zap.Float64("delta_deg", delta))
	}
}

// buildChart assembles one chart object. Validation faults (gate/line out
// of range) abort the chart and propagate; everything else degrades by
// omission.
func (b *Builder) buildChart(data chartData, meta *RequestMeta) (canon.Object, error) {
	chart := canon.NewObject(canon.KindChart)
	chart.Set("id", canon.String(data.kind))
	chart.Set("timestamp", canon.String(b.chartTimestamp(data, meta)))

	bodies, err := bodyTable(data)
	if err != nil {
		return canon.Object{}, err
	}
	chart.Set("bodies", bodies)

	if angles := angleTable(data.angles); angles.Len() > 0 {
		chart.Set("angles", angles)
	}

	chart.Set("cusps", cuspArray(data.angles))

	asc, hasAsc := data.angles["asc"]
	sun, hasSun := data.longitudes["sun"]

	if data.kind == "natal" || data.kind == "design" {
		if stars, err := starTable(data.angles); err == nil {
			chart.Set("stars", stars)
		} else {
			return canon.Object{}, err
		}

		aspects := astro.ChartAspects(data.longitudes, b.policy)
		if len(aspects) > 0 {
			key := "tightAspects"
			if data.kind == "design" {
				key = "tightDesignAspects"
			}
			chart.Set(key, aspectArray(aspects))
		}

		// Lots require both Sun and Ascendant; if either is missing the
		// whole lot set is omitted, never zeroed.
		if hasSun && hasAsc {
			lots := astro.Lots(data.longitudes, asc, astro.IsDayChart(sun, asc))
			if len(lots) > 0 {
				chart.Set("arabicLots", lotTable(lots))
			}
		} else {
			b.logger.Debug("skipping lots: sun or ascendant unresolvable",
				zap.String("chart", data.kind),
				zap.Bool("has_sun", hasSun),
				zap.Bool("has_asc", hasAsc))
		}

		signIdxs := make([]int, 0, len(data.longitudes))
		for _, lon := range data.longitudes {
			signIdxs = append(signIdxs, astro.SignIndex(lon))
		}
		chart.Set("elemTally", tallyArray4(astro.ElementTally(signIdxs)))
		chart.Set("modeTally", tallyArray3(astro.ModalityTally(signIdxs)))
	}

	if dignity := dignityTable(data.bodies); dignity.Len() > 0 {
		chart.Set("dignity", dignity)
	}

	ruler := "sun"
	if hasAsc {
		ruler = astro.ChartRuler(asc)
	}
	chart.Set("chartRuler", canon.String(ruler))

	sect := astro.SectDiurnal
	if hasSun {
		sect = astro.ChartSect(sun, asc) // asc defaults to 0 when absent
	}
	chart.Set("sect", canon.String(string(sect)))

	return chart, nil
}

// bodyTable builds the canonical-id-keyed body table with fixed-point
// positions, subdivision indices, and the gate annotation.
func bodyTable(data chartData) (canon.Object, error) {
	table := canon.NewObject(canon.KindGeneric)
	for id, rec := range data.bodies {
		body := canon.NewObject(canon.KindBody)
		body.Set("lng_1e4", canon.Int(astro.EncodeLon(rec.Longitude)))
		body.Set("dec", canon.Int(int64(astro.DecanIndex(rec.Longitude))))
		body.Set("term", canon.Int(int64(astro.TermIndex(rec.Longitude))))

		if rec.Latitude != nil {
			body.Set("lat_1e4", canon.Int(astro.EncodeDeg(*rec.Latitude)))
		}
		if rec.Speed != nil {
			body.Set("spd_1e4", canon.Int(astro.EncodeDeg(*rec.Speed)))
		}
		if rec.Declination != nil {
			body.Set("dec_1e4", canon.Int(astro.EncodeDeg(*rec.Declination)))
		}
		if rec.Retrograde != nil {
			body.Set("rx", canon.Bool(*rec.Retrograde))
		}
		if rec.House != nil && *rec.House >= 1 && *rec.House <= 12 {
			body.Set("house", canon.Int(int64(*rec.House)))
		}

		gate, err := astro.FormatGateLine(rec.Longitude)
		if err != nil {
			return canon.Object{}, err
		}
		body.Set("gate", canon.String(gate))

		table.Set(id, body)
	}
	return table, nil
}

// angleTable builds the short-name-keyed angle table.
func angleTable(angles map[string]float64) canon.Object {
	table := canon.NewObject(canon.KindGeneric)
	for short, lon := range angles {
		angle := canon.NewObject(canon.KindAngle)
		angle.Set("lng_1e4", canon.Int(astro.EncodeLon(lon)))
		table.Set(short, angle)
	}
	return table
}

// cuspArray derives the 12 whole-sign cusps; without an Ascendant all
// cusps default to 0.
func cuspArray(angles map[string]float64) canon.Array {
	cusps := make(canon.Array, 12)
	asc, ok := angles["asc"]
	if !ok {
		for i := range cusps {
			cusps[i] = canon.Int(0)
		}
		return cusps
	}
	for i, lon := range astro.WholeSignCusps(asc) {
		cusps[i] = canon.Int(astro.EncodeLon(lon))
	}
	return cusps
}

// starTable builds the fixed-star annotation table for natal and design
// charts, with whole-sign house placement against the Ascendant.
func starTable(angles map[string]float64) (canon.Object, error) {
	asc := angles["asc"] // zero when absent

	table := canon.NewObject(canon.KindGeneric)
	for _, s := range astro.FixedStars() {
		lon := s.Longitude()
		gate, err := astro.FormatGateLine(lon)
		if err != nil {
			return canon.Object{}, err
		}
		star := canon.NewObject(canon.KindStar)
		star.Set("lng_1e4", canon.Int(astro.EncodeLon(lon)))
		star.Set("house", canon.Int(int64(astro.HouseNumber(lon, asc))))
		star.Set("gate", canon.String(gate))
		table.Set(s.ID, star)
	}
	return table, nil
}

// dignityTable scores every body in the closed enumeration; fallback-id
// bodies are excluded from dignity lookup.
func dignityTable(bodies map[string]BodyRecord) canon.Object {
	table := canon.NewObject(canon.KindGeneric)
	for id, rec := range bodies {
		house, hasHouse := 0, false
		if rec.House != nil && *rec.House >= 1 && *rec.House <= 12 {
			house, hasHouse = *rec.House, true
		}
		score, ok := astro.Dignity(id, astro.SignIndex(rec.Longitude), house, hasHouse)
		if !ok {
			continue
		}
		entry := canon.NewObject(canon.KindScore)
		entry.Set("ess", canon.Int(int64(score.Essential)))
		entry.Set("acc", canon.Int(int64(score.Accidental)))
		table.Set(id, entry)
	}
	return table
}

// lotTable encodes computed lot longitudes keyed by lot name.
func lotTable(lots map[string]float64) canon.Object {
	table := canon.NewObject(canon.KindGeneric)
	for name, lon := range lots {
		table.Set(name, canon.Int(astro.EncodeLon(lon)))
	}
	return table
}

// aspectArray converts engine output (already sorted tightest-first) into
// payload records.
func aspectArray(aspects []astro.Aspect) canon.Array {
	arr := make(canon.Array, len(aspects))
	for i, asp := range aspects {
		entry := canon.NewObject(canon.KindAspect)
		entry.Set("a", canon.String(asp.A))
		entry.Set("b", canon.String(asp.B))
		entry.Set("t", canon.String(asp.Type))
		entry.Set("orb_1e4", canon.Int(asp.Orb1e4))
		arr[i] = entry
	}
	return arr
}

func tallyArray4(t [4]int) canon.Array {
	return canon.Array{canon.Int(t[0]), canon.Int(t[1]), canon.Int(t[2]), canon.Int(t[3])}
}

func tallyArray3(t [3]int) canon.Array {
	return canon.Array{canon.Int(t[0]), canon.Int(t[1]), canon.Int(t[2])}
}

// chartTimestamp resolves the chart timestamp: chart input first, then
// birth metadata for natal/design charts, then the builder clock.
func (b *Builder) chartTimestamp(data chartData, meta *RequestMeta) string {
	if data.timestamp != "" {
		return data.timestamp
	}
	if (data.kind == "natal" || data.kind == "design") && meta != nil && meta.BirthDate != "" {
		ts := meta.BirthDate + "T"
		if meta.BirthTime != "" {
			ts += meta.BirthTime
		} else {
			ts += "12:00:00"
		}
		if !hasZoneSuffix(ts) {
			ts += "Z"
		}
		return ts
	}
	return b.clock.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// hasZoneSuffix reports whether a timestamp already carries a zone marker.
// Only the last 6 characters are inspected, so the date's own dashes never
// count as an offset.
func hasZoneSuffix(ts string) bool {
	if strings.HasSuffix(ts, "Z") {
		return true
	}
	tail := ts
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return strings.ContainsAny(tail, "+-")
}
