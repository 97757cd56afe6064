// Package astro implements the pure chart calculators: the fixed-point
// degree codec, body canonicalization tables, sign subdivisions and
// gate/line mapping, sect and rulership, the aspect engine, dignity
// scoring, Hermetic lot arithmetic, whole-sign house cusps, and the
// fixed-star table.
//
// Everything in this package is a pure function of its arguments. Lookup
// tables are immutable package constants exposed through accessor
// functions; mutable policy (orb caps) is passed in explicitly so tests
// and future schema versions can inject their own.
package astro
