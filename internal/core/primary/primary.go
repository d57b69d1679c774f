package primary

import "time"

// MaxSpecEntries bounds how many identifiers one textual spec may resolve,
// which in turn bounds the IN (...) clause of the assembled query.
const MaxSpecEntries = 64

// Expansion is the resolved form of a textual identifier spec.
// Count == 0 is a distinguishable "no matches" signal: callers must return
// an empty page with the matching warning code, never drop the filter.
type Expansion struct {
	IDs   []uint64   `json:"ids"`
	Count int        `json:"count"`
	// Strictest per-group retention bound across the matched groups;
	// group expansions only.
	DateLimit *time.Time `json:"dateLimit,omitempty"`
}
