// Package record contains the JSON record type passed between layers.
package record

import (
	"encoding/json"
	"errors"
	"math"
)

// Record is a JSON object representing one stored entity. There is no fixed
// schema; by convention the "id" key holds an integer identifier used for
// lookups. A record without "id" is legal but can never be matched by an
// update.
type Record map[string]any

// Sentinel kinds for record validation errors.
var (
	ErrInvalidID = errors.New("id must be an integer")
)

// ID extracts the integer identifier from the record. The second return is
// false when the id is absent or not an integer number. All numeric shapes
// produced by encoding/json are handled (float64 by default, json.Number when
// a decoder uses it).
func (r Record) ID() (int64, bool) {
	v, ok := r["id"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		id, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return id, true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// Validate checks boundary constraints for incoming records. A missing id is
// accepted; a present id that is not an integer number is rejected so the
// failure surfaces here instead of deep inside a collection scan.
func (r Record) Validate() error {
	if _, ok := r["id"]; !ok {
		return nil
	}
	if _, ok := r.ID(); !ok {
		return ErrInvalidID
	}
	return nil
}

// Merge overlays the patch fields onto the record. Fields present in patch
// overwrite same-named fields; everything else is left untouched.
func (r Record) Merge(patch Record) {
	for k, v := range patch {
		r[k] = v
	}
}

// Clone returns a deep copy of the record by round-tripping through JSON,
// so callers can never alias maps held inside the store.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		// Records come from json decoding, so marshaling them back cannot
		// fail; fall back to a shallow copy to keep the contract total.
		out := make(Record, len(r))
		for k, v := range r {
			out[k] = v
		}
		return out
	}
	var out Record
	_ = json.Unmarshal(b, &out)
	return out
}
