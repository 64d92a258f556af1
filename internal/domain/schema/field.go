package schema

import (
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Field describes one registry column: its canonical long-form name, its kind,
// and — for categorical fields — the lexicographically sorted vocabulary
// learned at training time.  Code i always refers to Classes[i].
type Field struct {
	Name    string        `json:"name"`
	Kind    lca.FieldKind `json:"kind"`
	Classes []string      `json:"classes,omitempty"`
}

// IsCategorical reports whether the field carries a vocabulary.
func (f Field) IsCategorical() bool { return f.Kind == lca.FieldKindCategorical }

// IsNumeric reports whether the field holds continuous values.
func (f Field) IsNumeric() bool { return f.Kind == lca.FieldKindNumeric }

// VocabSize returns the number of vocabulary classes (0 for numeric fields).
func (f Field) VocabSize() int { return len(f.Classes) }

// IsKPI reports whether the field is one of the predicted indicator targets.
func (f Field) IsKPI() bool { return lca.IsKPI(f.Name) }

// clone returns a deep copy so registry internals never alias caller slices.
func (f Field) clone() Field {
	cp := f
	if f.Classes != nil {
		cp.Classes = make([]string, len(f.Classes))
		copy(cp.Classes, f.Classes)
	}
	return cp
}

//Personal.AI order the ending
