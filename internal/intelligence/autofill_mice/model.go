// Package autofill_mice implements the round-based regression imputer: an
// initial statistic fill followed by a fixed number of refinement rounds in
// which per-column estimators re-predict the cells that arrived missing.
package autofill_mice

import (
	"fmt"
	"math"

	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// ---------------------------------------------------------------------------
// Compiled model
// ---------------------------------------------------------------------------

// step is one compiled regression: estimate target from the other columns.
type step struct {
	target    string
	targetIdx int
	estimator common.Estimator
}

// Model is an imputer artifact compiled against a schema registry.  It is
// immutable after construction and shared safely across goroutines.
type Model struct {
	schemaVersion int
	columns       []string
	columnIndex   map[string]int
	initialFill   []float64
	vocabSize     []int // 0 for numeric columns
	rounds        int
	steps         []step
}

// NewModel validates the artifact against the registry and compiles every
// step estimator.  The artifact's column order must match the registry
// exactly; the imputer addresses cells by position.
func NewModel(art *common.ImputerArtifact, reg *schema.Registry) (*Model, error) {
	if art == nil {
		return nil, errors.ImputerUnavailable()
	}
	if reg == nil {
		return nil, errors.InvalidParam("schema registry is required")
	}

	names := reg.FieldNames()
	if len(art.Columns) != len(names) {
		return nil, errors.Newf(errors.ErrCodeImputerWidthMismatch,
			"imputer was fitted on %d columns but the schema has %d", len(art.Columns), len(names))
	}
	for i, col := range art.Columns {
		if col != names[i] {
			return nil, errors.Newf(errors.ErrCodeImputerWidthMismatch,
				"imputer column %d is %q but the schema has %q", i, col, names[i])
		}
	}

	fields := reg.Fields()
	vocabSize := make([]int, len(fields))
	for i, f := range fields {
		vocabSize[i] = f.VocabSize()
	}
	if len(art.InitialFill) != len(art.Columns) {
		return nil, errors.Newf(errors.ErrCodeArtifactCorrupt,
			"imputer has %d initial fill values for %d columns", len(art.InitialFill), len(art.Columns))
	}
	for i, fill := range art.InitialFill {
		if !finite(fill) {
			return nil, errors.Newf(errors.ErrCodeArtifactCorrupt,
				"imputer initial fill for %q is not finite", art.Columns[i])
		}
	}

	columnIndex := make(map[string]int, len(art.Columns))
	for i, col := range art.Columns {
		columnIndex[col] = i
	}

	steps := make([]step, 0, len(art.Steps))
	seen := make(map[string]struct{}, len(art.Steps))
	for i, s := range art.Steps {
		idx, ok := columnIndex[s.Target]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeArtifactCorrupt,
				"imputer step %d targets unknown column %q", i, s.Target)
		}
		if _, dup := seen[s.Target]; dup {
			return nil, errors.Newf(errors.ErrCodeArtifactCorrupt,
				"imputer step %d targets %q twice", i, s.Target)
		}
		seen[s.Target] = struct{}{}

		est, err := common.CompileEstimator(s.Estimator)
		if err != nil {
			return nil, errors.Wrap(err, errors.GetCode(err),
				fmt.Sprintf("imputer step %d (%s)", i, s.Target))
		}
		steps = append(steps, step{target: s.Target, targetIdx: idx, estimator: est})
	}

	return &Model{
		schemaVersion: art.SchemaVersion,
		columns:       append([]string(nil), art.Columns...),
		columnIndex:   columnIndex,
		initialFill:   append([]float64(nil), art.InitialFill...),
		vocabSize:     vocabSize,
		rounds:        art.Rounds,
		steps:         steps,
	}, nil
}

// SchemaVersion returns the artifact's declared schema version.
func (m *Model) SchemaVersion() int { return m.schemaVersion }

// Width returns the number of columns the imputer was fitted on.
func (m *Model) Width() int { return len(m.columns) }

// Rounds returns the number of refinement rounds the artifact prescribes.
func (m *Model) Rounds() int { return m.rounds }

// WithRounds returns a model that runs r refinement rounds instead of the
// fitted count.  Non-positive r returns the receiver unchanged.  The copy
// shares the compiled steps; both remain immutable.
func (m *Model) WithRounds(r int) *Model {
	if r <= 0 || r == m.rounds {
		return m
	}
	cp := *m
	cp.rounds = r
	return &cp
}

// Targets returns the step target columns in artifact order.
func (m *Model) Targets() []string {
	out := make([]string, len(m.steps))
	for i, s := range m.steps {
		out[i] = s.target
	}
	return out
}

// clamp keeps categorical estimates inside the decodable code range; numeric
// columns pass through untouched.
func (m *Model) clamp(col int, v float64) float64 {
	size := m.vocabSize[col]
	if size == 0 {
		return v
	}
	if v < 0 {
		return 0
	}
	if hi := float64(size - 1); v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

//Personal.AI order the ending
