package kpi_xgb

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Result is the outcome of one KPI prediction inside a fan-out.  Err is set
// when that indicator's model failed; the others are unaffected.
type Result struct {
	KPI     string
	Value   float64
	Err     error
	Elapsed time.Duration
}

// Predictor holds the loaded KPI models and evaluates them against completed
// records.  It is immutable after construction.
type Predictor struct {
	models      map[string]*Model
	order       []string
	columnIndex map[string]int
	concurrency int
	logger      logging.Logger
}

// NewPredictor indexes the models by indicator.  concurrency bounds how many
// models evaluate at once during PredictAll; zero or negative means all of
// them.
func NewPredictor(models []*Model, reg *schema.Registry, concurrency int, logger logging.Logger) (*Predictor, error) {
	if reg == nil {
		return nil, errors.InvalidParam("schema registry is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	byKPI := make(map[string]*Model, len(models))
	for _, m := range models {
		if m == nil {
			return nil, errors.InvalidParam("nil KPI model")
		}
		if _, dup := byKPI[m.kpi]; dup {
			return nil, errors.InvalidParam(fmt.Sprintf("duplicate KPI model for %q", m.kpi))
		}
		byKPI[m.kpi] = m
	}

	// Loaded indicators keep the canonical KPI order, not load order.
	var order []string
	for _, kpi := range lca.KPINames() {
		if _, ok := byKPI[kpi]; ok {
			order = append(order, kpi)
		}
	}

	columnIndex := make(map[string]int, reg.Len())
	for i, name := range reg.FieldNames() {
		columnIndex[name] = i
	}

	if concurrency <= 0 {
		concurrency = len(order)
	}

	return &Predictor{
		models:      byKPI,
		order:       order,
		columnIndex: columnIndex,
		concurrency: concurrency,
		logger:      logger.Named("kpi"),
	}, nil
}

// KPIs returns the loaded indicators in canonical order.
func (p *Predictor) KPIs() []string {
	return append([]string(nil), p.order...)
}

// Predict evaluates a single indicator against a registry-ordered record.
func (p *Predictor) Predict(ctx context.Context, kpi string, rec lca.EncodedRecord) (float64, error) {
	model, ok := p.models[kpi]
	if !ok {
		if !lca.IsKPI(kpi) {
			return 0, errors.Newf(errors.ErrCodeUnknownKPI, "%q is not a registered KPI", kpi)
		}
		return 0, errors.Newf(errors.ErrCodePredictorNotLoaded, "no model loaded for %q", kpi)
	}
	if err := ctx.Err(); err != nil {
		return 0, errors.PredictorFailed(kpi, err)
	}

	features := common.BuildFeatures(model.estimator.Features(), p.columnIndex, rec)
	est := model.estimator.Predict(features)
	if math.IsNaN(est) || math.IsInf(est, 0) {
		return 0, errors.PredictorFailed(kpi, fmt.Errorf("estimate %v is not finite", est))
	}
	return est, nil
}

// PredictAll fans out over every loaded indicator, at most concurrency at a
// time, and returns one slot per indicator in canonical order.  A failing
// model marks its own slot and the rest continue.
func (p *Predictor) PredictAll(ctx context.Context, rec lca.EncodedRecord) []Result {
	results := make([]Result, len(p.order))
	for i, kpi := range p.order {
		results[i] = Result{KPI: kpi}
	}

	for start := 0; start < len(p.order); start += p.concurrency {
		end := start + p.concurrency
		if end > len(p.order) {
			end = len(p.order)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				kpi := p.order[slot]
				began := time.Now()
				value, err := p.Predict(ctx, kpi, rec)
				results[slot].Elapsed = time.Since(began)
				if err != nil {
					p.logger.Warn("KPI prediction failed",
						logging.String("kpi", kpi),
						logging.Err(err),
					)
					results[slot].Err = err
					return
				}
				results[slot].Value = value
			}(i)
		}
		wg.Wait()
	}

	return results
}

//Personal.AI order the ending
