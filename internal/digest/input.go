package digest

import (
	"encoding/json"
	"fmt"
	"sort"
)

// BodyRecord is one raw body position as supplied by the ephemeris
// collaborator. Optional attributes are pointers so that absence survives
// decoding; absent fields are omitted from the digest, never zeroed.
type BodyRecord struct {
	Name        string   `json:"name,omitempty"`
	Longitude   float64  `json:"longitude"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Speed       *float64 `json:"speed,omitempty"`
	Declination *float64 `json:"declination,omitempty"`
	Retrograde  *bool    `json:"retrograde,omitempty"`
	House       *int     `json:"house,omitempty"`
}

// BodySet accepts the two wire shapes for a chart's body collection: an
// ordered array of records carrying name fields, or a name-keyed object.
// This is the single union-decoding point; downstream code only ever sees
// the record slice.
type BodySet struct {
	records []BodyRecord
}

// Records returns the decoded body records. For the keyed-object shape the
// records are ordered by name so that both shapes decode identically.
func (b *BodySet) Records() []BodyRecord {
	return b.records
}

// UnmarshalJSON decodes either wire shape.
func (b *BodySet) UnmarshalJSON(data []byte) error {
	trimmed := firstNonSpace(data)
	switch trimmed {
	case '[':
		var list []BodyRecord
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("body list: %w", err)
		}
		b.records = list
		return nil
	case '{':
		var keyed map[string]BodyRecord
		if err := json.Unmarshal(data, &keyed); err != nil {
			return fmt.Errorf("body map: %w", err)
		}
		names := make([]string, 0, len(keyed))
		for name := range keyed {
			names = append(names, name)
		}
		sort.Strings(names)

		b.records = make([]BodyRecord, 0, len(keyed))
		for _, name := range names {
			rec := keyed[name]
			rec.Name = name
			b.records = append(b.records, rec)
		}
		return nil
	default:
		return fmt.Errorf("bodies must be an array or a name-keyed object")
	}
}

// MarshalJSON re-encodes as the list shape.
func (b BodySet) MarshalJSON() ([]byte, error) {
	if b.records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.records)
}

func firstNonSpace(data []byte) byte {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}

// AngleRecord is a raw angle position keyed by its long name in the input
// (ascendant, midheaven, descendant, imum_coeli).
type AngleRecord struct {
	Longitude float64 `json:"longitude"`
}

// ChartInput is one raw chart as supplied by the ephemeris collaborator.
type ChartInput struct {
	Planets     BodySet                `json:"planets"`
	Houses      map[string]AngleRecord `json:"houses,omitempty"`
	HouseSystem string                 `json:"house_system,omitempty"`
	Timestamp   string                 `json:"calculation_time,omitempty"`
	Err         string                 `json:"error,omitempty"`
}

// RequestMeta carries request context: birth data for the metadata block
// and the house-system override.
type RequestMeta struct {
	Name        string  `json:"name,omitempty"`
	BirthDate   string  `json:"birth_date,omitempty"`
	BirthTime   string  `json:"birth_time,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
	HouseSystem string  `json:"house_system,omitempty"`
}

// Request is the full Build input. Any chart may be absent.
type Request struct {
	Natal   *ChartInput  `json:"natal,omitempty"`
	Transit *ChartInput  `json:"transit,omitempty"`
	Design  *ChartInput  `json:"design,omitempty"`
	Meta    *RequestMeta `json:"request_metadata,omitempty"`
}

// angleNames maps input angle keys to their canonical short ids.
var angleNames = map[string]string{
	"ascendant":  "asc",
	"midheaven":  "mc",
	"descendant": "desc",
	"imum_coeli": "ic",
}
