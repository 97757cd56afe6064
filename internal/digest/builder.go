package digest

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/astrodigest/internal/astro"
	"github.com/roach88/astrodigest/internal/canon"
)

const (
	// SchemaVersion is the digest payload schema version.
	SchemaVersion = "3.3"

	apiVersion         = "1.0.0"
	formatID           = "astrodigest_v3.3"
	ephemerisID        = "DE441"
	defaultHouseSystem = "whole_sign"
)

// Clock supplies the current time for charts that carry no timestamp of
// their own. Injected so digests are reproducible in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Builder assembles digest payloads. The zero value is not usable;
// construct with NewBuilder.
type Builder struct {
	policy astro.OrbPolicy
	logger *zap.Logger
	clock  Clock
}

// Option configures a Builder.
type Option func(*Builder)

// WithOrbPolicy overrides the default aspect orb caps.
func WithOrbPolicy(p astro.OrbPolicy) Option {
	return func(b *Builder) { b.policy = p }
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithClock sets the fallback timestamp source.
func WithClock(c Clock) Option {
	return func(b *Builder) { b.clock = c }
}

// NewBuilder creates a Builder with the default orb policy, a no-op
// logger, and the system clock.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		policy: astro.DefaultOrbPolicy(),
		logger: zap.NewNop(),
		clock:  systemClock{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles the full digest payload from up to three charts. It
// never returns a Go error across the library boundary: whole-digest
// failures surface as a payload carrying a metadata error field and an
// empty chart list.
func (b *Builder) Build(req Request) canon.Object {
	root, err := b.build(req)
	if err != nil {
		b.logger.Error("digest assembly failed", zap.Error(err))
		return b.errorPayload(err)
	}
	return root
}

func (b *Builder) build(req Request) (canon.Object, error) {
	inputs := []struct {
		kind string
		in   *ChartInput
	}{
		{"natal", req.Natal},
		{"design", req.Design},
		{"transit", req.Transit},
	}

	var charts []chartData
	for _, ci := range inputs {
		if ci.in == nil {
			continue
		}
		if ci.in.Err != "" {
			b.logger.Warn("skipping chart with upstream error",
				zap.String("chart", ci.kind),
				zap.String("error", ci.in.Err))
			continue
		}
		charts = append(charts, canonicalize(ci.kind, ci.in, b.logger))
	}

	root := canon.NewObject(canon.KindRoot)
	root.Set("schemaVer", canon.String(SchemaVersion))
	root.Set("metadata", b.metadataBlock(req, charts))

	var natal, design *chartData
	built := make(canon.Array, 0, len(charts))
	for i := range charts {
		data := &charts[i]
		chart, err := b.buildChart(*data, req.Meta)
		if err != nil {
			return canon.Object{}, fmt.Errorf("chart %s: %w", data.kind, err)
		}
		switch data.kind {
		case "natal":
			natal = data
		case "design":
			design = data
		case "transit":
			b.addTransitAspects(chart, *data, natal, design)
		}
		built = append(built, chart)
	}
	root.Set("charts", built)

	return root, nil
}

// addTransitAspects attaches the transit-only cross-reference artifacts:
// aspects to natal bodies, to design bodies, and to the natal horizon
// angles. Empty lists are omitted.
func (b *Builder) addTransitAspects(chart canon.Object, transit chartData, natal, design *chartData) {
	if natal != nil {
		if aspects := astro.CrossAspects(transit.longitudes, natal.longitudes, b.policy); len(aspects) > 0 {
			chart.Set("toNatal", aspectArray(aspects))
		}
		if aspects := astro.AngleAspects(transit.longitudes, natal.angles); len(aspects) > 0 {
			chart.Set("toAngles", aspectArray(aspects))
		}
	}
	if design != nil {
		if aspects := astro.CrossAspects(transit.longitudes, design.longitudes, b.policy); len(aspects) > 0 {
			chart.Set("toDesign", aspectArray(aspects))
		}
	}
}

// metadataBlock builds the digest metadata: version identifiers, the
// sorted body union across all charts, the orb policy in fixed-point
// form, the resolved house system, and the birth block.
func (b *Builder) metadataBlock(req Request, charts []chartData) canon.Object {
	md := canon.NewObject(canon.KindMetadata)
	md.Set("api_ver", canon.String(apiVersion))
	md.Set("format", canon.String(formatID))
	md.Set("ephem", canon.String(ephemerisID))

	union := make(map[string]bool)
	for _, data := range charts {
		for id := range data.longitudes {
			union[id] = true
		}
	}
	ids := make([]string, 0, len(union))
	for id := range union {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	bodies := make(canon.Array, len(ids))
	for i, id := range ids {
		bodies[i] = canon.String(id)
	}
	md.Set("bodies", bodies)

	orb := canon.NewObject(canon.KindOrbPolicy)
	orb.Set("lum_1e4", canon.Int(astro.EncodeDeg(b.policy.Luminary)))
	orb.Set("planet_1e4", canon.Int(astro.EncodeDeg(b.policy.Planet)))
	orb.Set("asteroid_1e4", canon.Int(astro.EncodeDeg(b.policy.Asteroid)))
	md.Set("orb", orb)

	md.Set("house_system", canon.String(houseSystem(req)))
	md.Set("birth", birthBlock(req.Meta))

	return md
}

// houseSystem resolves the house-system identifier: request metadata
// wins, then the natal chart input, then the whole-sign default.
func houseSystem(req Request) string {
	if req.Meta != nil && req.Meta.HouseSystem != "" {
		return req.Meta.HouseSystem
	}
	if req.Natal != nil && req.Natal.HouseSystem != "" {
		return req.Natal.HouseSystem
	}
	return defaultHouseSystem
}

// birthBlock builds the birth metadata block. Missing fields take fixed
// placeholder defaults so the block is always fully populated.
func birthBlock(meta *RequestMeta) canon.Object {
	name, date, tm, tz := "Unknown", "1900-01-01", "12:00:00", "+00:00"
	var lat, lon float64
	if meta != nil {
		if meta.Name != "" {
			name = meta.Name
		}
		if meta.BirthDate != "" {
			date = meta.BirthDate
		}
		if meta.BirthTime != "" {
			tm = meta.BirthTime
		}
		if meta.Timezone != "" {
			tz = meta.Timezone
		}
		lat, lon = meta.Latitude, meta.Longitude
	}

	birth := canon.NewObject(canon.KindBirth)
	birth.Set("name", canon.String(name))
	birth.Set("date", canon.String(date))
	birth.Set("time", canon.String(tm))
	birth.Set("lat_1e4", canon.Int(astro.EncodeDeg(lat)))
	birth.Set("lon_1e4", canon.Int(astro.EncodeDeg(lon)))
	birth.Set("tz", canon.String(tz))
	return birth
}

// errorPayload is the whole-digest failure shape: schema version, minimal
// metadata with an error field, and an empty chart list.
func (b *Builder) errorPayload(err error) canon.Object {
	md := canon.NewObject(canon.KindMetadata)
	md.Set("api_ver", canon.String(apiVersion))
	md.Set("format", canon.String(formatID))
	md.Set("error", canon.String(fmt.Sprintf("digest assembly failed: %v", err)))

	root := canon.NewObject(canon.KindRoot)
	root.Set("schemaVer", canon.String(SchemaVersion))
	root.Set("metadata", md)
	root.Set("charts", canon.Array{})
	return root
}
