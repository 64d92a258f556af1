// Package record implements the ordered field → value mapping that flows
// through the assessment pipeline, together with payload parsing, registry
// alignment, and bounds validation.
//
// A Record preserves field order explicitly: after alignment it carries
// exactly the registry's field set in registry column order, which is what
// the codec and the imputer index into.
package record

import (
	"bytes"
	"encoding/json"

	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Record is an ordered mapping from field name to tagged value.  The zero
// value is not usable; construct with New.
type Record struct {
	names  []string
	values map[string]lca.Value
}

// New returns an empty record with capacity for n fields.
func New(n int) *Record {
	return &Record{
		names:  make([]string, 0, n),
		values: make(map[string]lca.Value, n),
	}
}

// Set stores a value, appending the field to the order on first sight.
func (r *Record) Set(name string, v lca.Value) {
	if _, seen := r.values[name]; !seen {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Get returns the value for a field and whether the field is present.
func (r *Record) Get(name string) (lca.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.names) }

// Names returns the field names in record order.
func (r *Record) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Values returns the values in record order.
func (r *Record) Values() []lca.Value {
	out := make([]lca.Value, len(r.names))
	for i, name := range r.names {
		out[i] = r.values[name]
	}
	return out
}

// MissingCount returns the number of missing values.
func (r *Record) MissingCount() int {
	n := 0
	for _, name := range r.names {
		if r.values[name].IsMissing() {
			n++
		}
	}
	return n
}

// Clone returns an independent copy preserving order.
func (r *Record) Clone() *Record {
	cp := New(len(r.names))
	for _, name := range r.names {
		cp.Set(name, r.values[name])
	}
	return cp
}

// ToMap exports the record as a plain map: Missing → nil, numerics → float64,
// labels → string.  Field order is lost; use MarshalJSON where order matters.
func (r *Record) ToMap() map[string]any {
	out := make(map[string]any, len(r.names))
	for _, name := range r.names {
		v := r.values[name]
		switch v.Kind() {
		case lca.ValueNumeric:
			n, _ := v.AsNumeric()
			out[name] = n
		case lca.ValueCategorical:
			s, _ := v.AsCategorical()
			out[name] = s
		default:
			out[name] = nil
		}
	}
	return out
}

// MarshalJSON renders the record as a JSON object with keys in record order,
// so serialized output reads in registry column order rather than Go's map
// iteration order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

//Personal.AI order the ending
