package record

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// Violation describes one failed validation rule: which field, which
// constraint, and the offending value.
type Violation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Got        string `json:"got"`
}

// String renders the violation for logs and CLI output.
func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (got %s)", v.Field, v.Constraint, v.Got)
}

// bound is a numeric range constraint in the upstream request contract.
type bound struct {
	min          float64
	minExclusive bool
	max          float64
}

func (b bound) check(n float64) bool {
	if b.minExclusive {
		if n <= b.min {
			return false
		}
	} else if n < b.min {
		return false
	}
	return n <= b.max
}

func (b bound) String() string {
	if math.IsInf(b.max, 1) {
		if b.minExclusive {
			return fmt.Sprintf("must be > %g", b.min)
		}
		return fmt.Sprintf("must be >= %g", b.min)
	}
	return fmt.Sprintf("must be within [%g, %g]", b.min, b.max)
}

var unboundedAbove = math.Inf(1)

// numericBounds mirrors the upstream request contract: quantities strictly
// positive, distances/costs/emissions non-negative, the recyclability factor
// a fraction.  Derived columns and indicator targets carry no bounds — they
// are model territory, not caller input.
var numericBounds = map[string]bound{
	"Raw Material Quantity (kg or unit)":         {min: 0, minExclusive: true, max: unboundedAbove},
	"Energy Input Quantity (MJ)":                 {min: 0, minExclusive: true, max: unboundedAbove},
	"Transport Distance (km)":                    {min: 0, max: unboundedAbove},
	"Material Cost (USD)":                        {min: 0, max: unboundedAbove},
	"Processing Cost (USD)":                      {min: 0, max: unboundedAbove},
	"Emissions to Air CO2 (kg)":                  {min: 0, max: unboundedAbove},
	"Emissions to Air SOx (kg)":                  {min: 0, max: unboundedAbove},
	"Emissions to Air NOx (kg)":                  {min: 0, max: unboundedAbove},
	"Emissions to Air Particulate Matter (kg)":   {min: 0, max: unboundedAbove},
	"Emissions to Water Acid Mine Drainage (kg)": {min: 0, max: unboundedAbove},
	"Emissions to Water Heavy Metals (kg)":       {min: 0, max: unboundedAbove},
	"Emissions to Water BOD (kg)":                {min: 0, max: unboundedAbove},
	"Greenhouse Gas Emissions (kg CO2-eq)":       {min: 0, max: unboundedAbove},
	"Scope 1 Emissions (kg CO2-eq)":              {min: 0, max: unboundedAbove},
	"Scope 2 Emissions (kg CO2-eq)":              {min: 0, max: unboundedAbove},
	"Scope 3 Emissions (kg CO2-eq)":              {min: 0, max: unboundedAbove},
	"Environmental Impact Score":                 {min: 0, max: unboundedAbove},
	"Metal Recyclability Factor":                 {min: 0, max: 1},
}

// requiredFields lists the upstream-mandatory inputs: the 13 categorical
// process descriptors plus the 5 core quantities.  Everything else is
// optional and imputable.
var requiredFields = []string{
	"Process Stage",
	"Technology",
	"Time Period",
	"Location",
	"Functional Unit",
	"Raw Material Type",
	"Raw Material Quantity (kg or unit)",
	"Energy Input Type",
	"Energy Input Quantity (MJ)",
	"Processing Method",
	"Transport Mode",
	"Transport Distance (km)",
	"Fuel Type",
	"Metal Quality Grade",
	"Material Scarcity Level",
	"Material Cost (USD)",
	"Processing Cost (USD)",
	"End-of-Life Treatment",
}

var requiredSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(requiredFields))
	for _, f := range requiredFields {
		s[f] = struct{}{}
	}
	return s
}()

// Validate checks every present value against its field's bounds and, for
// categorical fields, vocabulary membership.  Missing values pass — filling
// them is the imputer's job.  The record is never mutated; violations come
// back in registry field order, nil means clean.
func Validate(reg *schema.Registry, rec *Record) []Violation {
	return validate(reg, rec, false)
}

// ValidateStrict additionally requires the upstream-mandatory fields to be
// present, mirroring the original request contract.
func ValidateStrict(reg *schema.Registry, rec *Record) []Violation {
	return validate(reg, rec, true)
}

func validate(reg *schema.Registry, rec *Record, strict bool) []Violation {
	var out []Violation

	for _, f := range reg.Fields() {
		v, present := rec.Get(f.Name)
		if !present || v.IsMissing() {
			if strict {
				if _, req := requiredSet[f.Name]; req {
					out = append(out, Violation{Field: f.Name, Constraint: "required", Got: "<missing>"})
				}
			}
			continue
		}

		if f.IsCategorical() {
			label, ok := v.AsCategorical()
			if !ok {
				out = append(out, Violation{Field: f.Name, Constraint: "must be a label", Got: v.String()})
				continue
			}
			i := sort.SearchStrings(f.Classes, label)
			if i >= len(f.Classes) || f.Classes[i] != label {
				out = append(out, Violation{
					Field:      f.Name,
					Constraint: fmt.Sprintf("must be one of {%s}", strings.Join(f.Classes, ", ")),
					Got:        label,
				})
			}
			continue
		}

		n, ok := v.AsNumeric()
		if !ok {
			out = append(out, Violation{Field: f.Name, Constraint: "must be a number", Got: v.String()})
			continue
		}
		if b, bounded := numericBounds[f.Name]; bounded && !b.check(n) {
			out = append(out, Violation{Field: f.Name, Constraint: b.String(), Got: v.String()})
		}
	}

	return out
}

// ViolationsError folds violations into a single validation error, nil when
// the list is empty.
func ViolationsError(vs []Violation) error {
	if len(vs) == 0 {
		return nil
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return errors.Validation(fmt.Sprintf("record validation failed with %d violation(s)", len(vs))).
		WithDetail(strings.Join(parts, "; "))
}

//Personal.AI order the ending
