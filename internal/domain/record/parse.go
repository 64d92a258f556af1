package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Parse coerces a JSON-ish payload into tagged values, letting the registry
// pick the coercion per field: numbers and strings-of-numbers become Numeric
// for numeric fields, anything stringable becomes Categorical for categorical
// fields, nil and blank strings become Missing.  NaN and ±Inf are rejected —
// they must never enter a record.
//
// Registry-declared fields come first in registry order; payload keys the
// registry does not know are appended in sorted order with best-effort
// coercion (alignment drops them later).  Absent fields stay absent; Parse
// does not fill, Align does.
func Parse(reg *schema.Registry, payload map[string]any) (*Record, error) {
	rec := New(len(payload))

	for _, f := range reg.Fields() {
		raw, present := payload[f.Name]
		if !present {
			continue
		}
		v, err := coerce(f, raw)
		if err != nil {
			return nil, err
		}
		rec.Set(f.Name, v)
	}

	var extras []string
	for name := range payload {
		if !reg.Has(name) {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		rec.Set(name, coerceLoose(payload[name]))
	}

	return rec, nil
}

// ParseJSON decodes a JSON object and parses it.  Numbers are decoded as
// json.Number so large values survive the trip into cast untouched.
func ParseJSON(reg *schema.Registry, data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRecordParseFailed, "record: payload is not a JSON object")
	}
	return Parse(reg, payload)
}

// coerce applies the kind-directed coercion for a declared field.
func coerce(f schema.Field, raw any) (lca.Value, error) {
	if raw == nil {
		return lca.Missing(), nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return lca.Missing(), nil
	}

	if f.IsNumeric() {
		n, err := cast.ToFloat64E(raw)
		if err != nil {
			return lca.Missing(), errors.Wrap(err, errors.ErrCodeRecordParseFailed,
				fmt.Sprintf("record: field %q expects a number", f.Name))
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return lca.Missing(), errors.New(errors.ErrCodeNonFiniteNumericValue,
				fmt.Sprintf("record: field %q is NaN or infinite", f.Name))
		}
		return lca.Numeric(n), nil
	}

	s, err := cast.ToStringE(raw)
	if err != nil {
		return lca.Missing(), errors.Wrap(err, errors.ErrCodeRecordParseFailed,
			fmt.Sprintf("record: field %q expects a label", f.Name))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return lca.Missing(), nil
	}
	return lca.Categorical(s), nil
}

// coerceLoose is the best-effort coercion for fields the registry does not
// declare.  Unconvertible payloads collapse to Missing; these fields are
// dropped at alignment, so refusing the whole record over them helps nobody.
func coerceLoose(raw any) lca.Value {
	if raw == nil {
		return lca.Missing()
	}
	switch t := raw.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return lca.Missing()
		}
		return lca.Categorical(s)
	case bool:
		return lca.Categorical(cast.ToString(t))
	}
	if n, err := cast.ToFloat64E(raw); err == nil {
		return lca.Numeric(n)
	}
	if s, err := cast.ToStringE(raw); err == nil && strings.TrimSpace(s) != "" {
		return lca.Categorical(strings.TrimSpace(s))
	}
	return lca.Missing()
}

//Personal.AI order the ending
