package autofill_mice

import (
	"context"

	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// ---------------------------------------------------------------------------
// Engine
// ---------------------------------------------------------------------------

// Engine runs the compiled imputer over single records.  It never mutates its
// input and never touches a cell that arrived observed.
type Engine struct {
	model  *Model
	logger logging.Logger
}

// NewEngine wires a compiled model to a logger.
func NewEngine(model *Model, logger logging.Logger) (*Engine, error) {
	if model == nil {
		return nil, errors.ImputerUnavailable()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Engine{model: model, logger: logger.Named("imputer")}, nil
}

// Model exposes the compiled artifact for inventory reporting.
func (e *Engine) Model() *Model { return e.model }

// Impute returns a fully observed copy of rec.  A record with no gaps comes
// back as an unchanged copy without running any rounds.
func (e *Engine) Impute(ctx context.Context, rec lca.EncodedRecord) (lca.EncodedRecord, error) {
	m := e.model
	if len(rec) != len(m.columns) {
		return nil, errors.Newf(errors.ErrCodeImputerWidthMismatch,
			"record has %d cells for a %d-column imputer", len(rec), len(m.columns))
	}

	missing := rec.MissingIndexes()
	if len(missing) == 0 {
		return rec.Clone(), nil
	}

	// 1. Initial fill: every gap takes its fitted column statistic.
	working := rec.Clone()
	wasMissing := make([]bool, len(working))
	for _, i := range missing {
		working[i] = lca.FilledCell(m.initialFill[i])
		wasMissing[i] = true
	}

	// 2. Refinement rounds.  Each step re-estimates its target from the
	//    current state of the other columns, so later rounds see the previous
	//    round's estimates.
	for round := 1; round <= m.rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeImputationFailed, "imputation aborted")
		}
		for _, s := range m.steps {
			if !wasMissing[s.targetIdx] {
				continue
			}
			features := common.BuildFeatures(s.estimator.Features(), m.columnIndex, working)
			est := s.estimator.Predict(features)
			if !finite(est) {
				return nil, errors.Newf(errors.ErrCodeImputationFailed,
					"step %q produced a non-finite estimate in round %d", s.target, round)
			}
			working[s.targetIdx] = lca.FilledCell(m.clamp(s.targetIdx, est))
		}
	}

	e.logger.Debug("record imputed",
		logging.Int("missing_cells", len(missing)),
		logging.Int("rounds", m.rounds),
	)
	return working, nil
}

//Personal.AI order the ending
