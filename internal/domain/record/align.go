package record

import (
	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Align normalizes a record to the registry contract: exactly the registry's
// field set, in registry column order, with absent fields added as Missing and
// undeclared fields dropped.  Pure and idempotent — aligning an already
// aligned record returns an equal record.
func Align(reg *schema.Registry, rec *Record) *Record {
	out := New(reg.Len())
	for _, name := range reg.FieldNames() {
		v, ok := rec.Get(name)
		if !ok {
			v = lca.Missing()
		}
		out.Set(name, v)
	}
	return out
}

// MaskKPIs returns a copy with every indicator target field forced to
// Missing.  The assessment pipeline applies this after alignment so that a
// caller-supplied KPI value can influence neither the imputation of other
// columns nor, through it, any predictor's features.  Autofill skips this
// mask and keeps caller-supplied KPI values.
func MaskKPIs(rec *Record) *Record {
	out := rec.Clone()
	for _, kpi := range lca.KPINames() {
		if _, ok := out.Get(kpi); ok {
			out.Set(kpi, lca.Missing())
		}
	}
	return out
}

//Personal.AI order the ending
