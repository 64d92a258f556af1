// Package schema defines the ordered field registry and the categorical codec
// that anchor every record transformation in the engine.
//
// A Registry is the single source of truth for field order, field kinds, and
// per-field vocabularies.  It is built once — from the compiled-in canonical
// definition, from a persisted encoders artifact, or learned from the
// reference dataset — and is pure lookup afterwards: immutable, shared,
// concurrency-safe without locking.
package schema

import (
	"fmt"
	"sort"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

// Registry is an immutable ordered collection of Fields with O(1) name lookup.
type Registry struct {
	fields []Field
	index  map[string]int
}

// NewRegistry validates a field definition and returns an immutable Registry.
//
// Rules enforced at construction so that every later lookup can stay total:
// names must be unique and non-empty, kinds must be valid, categorical fields
// need at least one class, numeric fields must not carry classes.  Vocabularies
// are deduplicated and sorted here; callers may pass them in any order.
// A definition without a single categorical field fails with
// SchemaUnavailable: alignment against a vocabulary-free schema would encode
// nothing and silently corrupt downstream inference.
func NewRegistry(def []Field) (*Registry, error) {
	if len(def) == 0 {
		return nil, errors.SchemaUnavailable("empty schema definition")
	}

	fields := make([]Field, 0, len(def))
	index := make(map[string]int, len(def))
	categoricals := 0

	for i, f := range def {
		if f.Name == "" {
			return nil, errors.InvalidParam(fmt.Sprintf("schema: field %d has no name", i))
		}
		if _, dup := index[f.Name]; dup {
			return nil, errors.InvalidParam(fmt.Sprintf("schema: duplicate field %q", f.Name))
		}
		if !f.Kind.IsValid() {
			return nil, errors.InvalidParam(fmt.Sprintf("schema: field %q has invalid kind %q", f.Name, f.Kind))
		}

		cp := f.clone()
		switch {
		case cp.IsCategorical():
			if len(cp.Classes) == 0 {
				return nil, errors.InvalidParam(fmt.Sprintf("schema: categorical field %q has no classes", cp.Name))
			}
			cp.Classes = normalizeClasses(cp.Classes)
			if len(cp.Classes) == 0 {
				return nil, errors.InvalidParam(fmt.Sprintf("schema: categorical field %q has only empty labels", cp.Name))
			}
			categoricals++
		case cp.IsNumeric():
			if len(cp.Classes) != 0 {
				return nil, errors.InvalidParam(fmt.Sprintf("schema: numeric field %q must not declare classes", cp.Name))
			}
		}

		index[cp.Name] = len(fields)
		fields = append(fields, cp)
	}

	if categoricals == 0 {
		return nil, errors.SchemaUnavailable("schema definition declares no categorical field")
	}

	return &Registry{fields: fields, index: index}, nil
}

// normalizeClasses drops empty labels, deduplicates, and sorts
// lexicographically so that vocabulary index i is stable across sources.
func normalizeClasses(classes []string) []string {
	seen := make(map[string]struct{}, len(classes))
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Lookup
// ─────────────────────────────────────────────────────────────────────────────

// Len returns the number of registry fields.
func (r *Registry) Len() int { return len(r.fields) }

// Fields returns the ordered field list as a deep copy.
func (r *Registry) Fields() []Field {
	out := make([]Field, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.clone()
	}
	return out
}

// FieldNames returns the ordered field names.
func (r *Registry) FieldNames() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Name
	}
	return out
}

// Field returns the named field, or UnknownField for undeclared names.
func (r *Registry) Field(name string) (Field, error) {
	i, ok := r.index[name]
	if !ok {
		return Field{}, errors.UnknownField(name)
	}
	return r.fields[i].clone(), nil
}

// Index returns the registry position of a field name.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Has reports whether the name is a declared field.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Vocabulary returns the sorted class list of a categorical field.  Undeclared
// names and vocabulary queries on numeric fields both fail with UnknownField:
// from the caller's perspective neither names a field that has a vocabulary.
func (r *Registry) Vocabulary(name string) ([]string, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, errors.UnknownField(name)
	}
	f := r.fields[i]
	if !f.IsCategorical() {
		return nil, errors.UnknownField(name).WithDetail("field is numeric and has no vocabulary")
	}
	out := make([]string, len(f.Classes))
	copy(out, f.Classes)
	return out, nil
}

// CategoricalFields returns the ordered categorical subset as a deep copy.
func (r *Registry) CategoricalFields() []Field {
	var out []Field
	for _, f := range r.fields {
		if f.IsCategorical() {
			out = append(out, f.clone())
		}
	}
	return out
}

// KPIIndexes returns the registry positions of the indicator target columns,
// in registry order.  Predictors exclude exactly these positions from their
// feature vectors; alignment forces caller-supplied values at these positions
// to Missing.
func (r *Registry) KPIIndexes() []int {
	var out []int
	for i, f := range r.fields {
		if f.IsKPI() {
			out = append(out, i)
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Alternate constructors
// ─────────────────────────────────────────────────────────────────────────────

// FromEncoders overlays a persisted encoders artifact (field name → vocabulary)
// onto the canonical field skeleton.  The artifact is a JSON object and so
// carries no column order; order and kinds always come from the canonical
// definition, vocabularies come from the artifact where present.  Canonical
// categorical fields absent from the artifact keep their compiled-in
// vocabulary.  An artifact key that names no canonical categorical field fails
// with UnknownField — silent drift between trained encoders and the engine
// schema is exactly what this constructor exists to catch.
func FromEncoders(vocabularies map[string][]string) (*Registry, error) {
	def := canonicalDefinition()
	byName := make(map[string]int, len(def))
	for i, f := range def {
		byName[f.Name] = i
	}

	for name, classes := range vocabularies {
		i, ok := byName[name]
		if !ok {
			return nil, errors.UnknownField(name).WithDetail("encoders artifact references a field outside the canonical schema")
		}
		if !def[i].IsCategorical() {
			return nil, errors.UnknownField(name).WithDetail("encoders artifact carries a vocabulary for a numeric field")
		}
		if len(classes) == 0 {
			return nil, errors.InvalidParam(fmt.Sprintf("schema: encoders artifact has empty vocabulary for %q", name))
		}
		def[i].Classes = classes
	}

	return NewRegistry(def)
}

//Personal.AI order the ending
