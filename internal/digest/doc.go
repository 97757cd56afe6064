// Package digest assembles the canonical chart digest: it adapts raw chart
// input (either body shape), runs the astro calculators per chart, and
// composes the schema-versioned payload with canonical key ordering.
//
// Error policy: per-artifact failures degrade by omitting the field;
// whole-chart and whole-digest failures are caught once at the Build
// boundary and surfaced as a structured error payload. Build never panics
// across the library boundary.
package digest
