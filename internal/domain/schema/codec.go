package schema

import (
	"fmt"
	"math"
	"sort"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Codec is the stateless label ↔ code view over a Registry.  Both directions
// are total at the value level: encoding falls back to the -1 sentinel,
// decoding falls back to the "Unknown" label.  Model output is continuous, so
// decoding rounds to the nearest integer before the range check; any index
// outside [0, len(vocabulary)) — negative included — decodes to "Unknown"
// instead of wrapping around.
type Codec struct {
	reg *Registry
}

// NewCodec returns a codec over the given registry.
func NewCodec(reg *Registry) *Codec {
	return &Codec{reg: reg}
}

// Registry returns the registry the codec reads from.
func (c *Codec) Registry() *Registry { return c.reg }

// ─────────────────────────────────────────────────────────────────────────────
// Value-level operations (total, never fail)
// ─────────────────────────────────────────────────────────────────────────────

// EncodeValue maps a tagged value to its vocabulary index for the given
// field.  Missing values, labels outside the vocabulary, and non-label values
// all map to the -1 sentinel.  Vocabularies are sorted, so lookup is a binary
// search — the same index arithmetic the training-side label encoder used.
func (c *Codec) EncodeValue(f Field, v lca.Value) float64 {
	label, ok := v.AsCategorical()
	if !ok {
		return lca.MissingCode
	}
	i := sort.SearchStrings(f.Classes, label)
	if i >= len(f.Classes) || f.Classes[i] != label {
		return lca.MissingCode
	}
	return float64(i)
}

// DecodeValue maps a continuous code back to a vocabulary label for the given
// field.  The code is rounded to the nearest integer first; indices outside
// [0, len(vocabulary)) and non-finite codes decode to the "Unknown" label.
func (c *Codec) DecodeValue(f Field, code float64) string {
	if math.IsNaN(code) || math.IsInf(code, 0) {
		return lca.UnknownLabel
	}
	i := int(math.Round(code))
	if i < 0 || i >= len(f.Classes) {
		return lca.UnknownLabel
	}
	return f.Classes[i]
}

// ─────────────────────────────────────────────────────────────────────────────
// Name-level operations
// ─────────────────────────────────────────────────────────────────────────────

// Encode resolves the field by name and encodes the value.  It fails with
// UnknownField when the name is undeclared or names a numeric field; the
// value-level mapping itself never fails.
func (c *Codec) Encode(name string, v lca.Value) (float64, error) {
	f, err := c.categoricalField(name)
	if err != nil {
		return lca.MissingCode, err
	}
	return c.EncodeValue(f, v), nil
}

// Decode resolves the field by name and decodes the code.  Same failure
// surface as Encode.
func (c *Codec) Decode(name string, code float64) (string, error) {
	f, err := c.categoricalField(name)
	if err != nil {
		return "", err
	}
	return c.DecodeValue(f, code), nil
}

func (c *Codec) categoricalField(name string) (Field, error) {
	i, ok := c.reg.index[name]
	if !ok {
		return Field{}, errors.UnknownField(name)
	}
	f := c.reg.fields[i]
	if !f.IsCategorical() {
		return Field{}, errors.UnknownField(name).WithDetail("field is numeric and has no vocabulary")
	}
	return f, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Record-level operations
// ─────────────────────────────────────────────────────────────────────────────

// EncodeRecord turns a registry-aligned value slice into its encoded form.
// Categorical cells become vocabulary indices, with present-but-unknown labels
// pinned to the -1 sentinel; missing cells of either kind stay flagged missing
// so the imputer can tell "absent" from "observed as unrecognised".  The input
// length must match the registry width.
func (c *Codec) EncodeRecord(values []lca.Value) (lca.EncodedRecord, error) {
	if len(values) != len(c.reg.fields) {
		return nil, errors.New(errors.ErrCodeRecordNotAligned,
			fmt.Sprintf("schema: got %d values for a %d-column registry", len(values), len(c.reg.fields)))
	}

	out := make(lca.EncodedRecord, len(values))
	for i, f := range c.reg.fields {
		v := values[i]
		if v.IsMissing() {
			out[i] = lca.MissingCell()
			continue
		}
		if f.IsCategorical() {
			out[i] = lca.FilledCell(c.EncodeValue(f, v))
			continue
		}
		n, ok := v.AsNumeric()
		if !ok {
			// A label in a numeric column cannot be encoded; leave it
			// for the imputer.
			out[i] = lca.MissingCell()
			continue
		}
		out[i] = lca.FilledCell(n)
	}
	return out, nil
}

// DecodeRecord turns an encoded vector back into tagged values: categorical
// codes become labels under the round / "Unknown" policy, numeric cells pass
// through.  Cells still flagged missing decode to Missing; after imputation
// there are none.
func (c *Codec) DecodeRecord(enc lca.EncodedRecord) ([]lca.Value, error) {
	if len(enc) != len(c.reg.fields) {
		return nil, errors.New(errors.ErrCodeRecordNotAligned,
			fmt.Sprintf("schema: got %d cells for a %d-column registry", len(enc), len(c.reg.fields)))
	}

	out := make([]lca.Value, len(enc))
	for i, f := range c.reg.fields {
		cell := enc[i]
		if cell.Missing {
			out[i] = lca.Missing()
			continue
		}
		if f.IsCategorical() {
			out[i] = lca.Categorical(c.DecodeValue(f, cell.Value))
			continue
		}
		out[i] = lca.Numeric(cell.Value)
	}
	return out, nil
}

//Personal.AI order the ending
