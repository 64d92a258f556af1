package lca

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueKind discriminates the three states of a Value.
type ValueKind uint8

const (
	ValueMissing ValueKind = iota
	ValueNumeric
	ValueCategorical
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueNumeric:
		return "numeric"
	case ValueCategorical:
		return "categorical"
	default:
		return "missing"
	}
}

// Value is the tagged representation of a single record cell.  A Value is
// exactly one of: a categorical label, a finite numeric, or missing.  The
// zero value is Missing.  Values are immutable; NaN and ±Inf can never be
// stored (the Numeric constructor normalises them to Missing).
type Value struct {
	kind  ValueKind
	num   float64
	label string
}

// Missing returns the missing Value.
func Missing() Value { return Value{} }

// Numeric returns a numeric Value.  Non-finite inputs yield Missing so that
// NaN never leaks into records.
func Numeric(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{kind: ValueNumeric, num: v}
}

// Categorical returns a categorical Value.  The empty label yields Missing.
func Categorical(label string) Value {
	if label == "" {
		return Value{}
	}
	return Value{kind: ValueCategorical, label: label}
}

// Kind returns the state of the Value.
func (v Value) Kind() ValueKind { return v.kind }

// IsMissing reports whether the Value is missing.
func (v Value) IsMissing() bool { return v.kind == ValueMissing }

// AsNumeric returns the numeric payload.  The bool is false unless the Value
// is numeric.
func (v Value) AsNumeric() (float64, bool) {
	if v.kind != ValueNumeric {
		return 0, false
	}
	return v.num, true
}

// AsCategorical returns the label payload.  The bool is false unless the
// Value is categorical.
func (v Value) AsCategorical() (string, bool) {
	if v.kind != ValueCategorical {
		return "", false
	}
	return v.label, true
}

// Equal reports whether two Values have the same state and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueNumeric:
		return v.num == o.num
	case ValueCategorical:
		return v.label == o.label
	default:
		return true
	}
}

// String renders the Value for logs and CLI table output.
func (v Value) String() string {
	switch v.kind {
	case ValueNumeric:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case ValueCategorical:
		return v.label
	default:
		return "<missing>"
	}
}

// MarshalJSON encodes Missing as null, numerics as JSON numbers, and
// categorical labels as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueNumeric:
		return json.Marshal(v.num)
	case ValueCategorical:
		return json.Marshal(v.label)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, numbers, and strings; anything else is an
// error.  Coercion of looser payload shapes belongs to the record parser,
// not here.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Missing()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("lca: non-finite numeric value")
		}
		*v = Numeric(t)
	case string:
		*v = Categorical(t)
	default:
		return fmt.Errorf("lca: cannot decode %T into Value", t)
	}
	return nil
}

//Personal.AI order the ending
