// Package assessment orchestrates the KPI assessment pipeline over the loaded
// model state: align, encode, impute, decode, predict, merge.  The Engine is
// the explicit context object the whole application hangs off — registry,
// codec, imputer, predictor set, logger, and metrics, wired once at startup
// and immutable afterwards.  Concurrent runs share it without locking.
package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/Alloyance-Intelligence/internal/config"
	"github.com/turtacn/Alloyance-Intelligence/internal/domain/record"
	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/autofill_mice"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/kpi_xgb"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Run operation labels used in metrics and logs.
const (
	opAssess   = "assess"
	opAutofill = "autofill"
)

// Deps carries the loaded components the engine composes.  Registry, Imputer,
// and Predictor are mandatory; Models is the optional artifact inventory for
// introspection; Logger and Metrics fall back to no-ops.
type Deps struct {
	Registry  *schema.Registry
	Imputer   *autofill_mice.Engine
	Predictor *kpi_xgb.Predictor
	Models    *common.ModelSet
	Logger    logging.Logger
	Metrics   *prometheus.AppMetrics
}

// Engine runs assessments.  All fields are set at construction and never
// mutated.
type Engine struct {
	registry  *schema.Registry
	codec     *schema.Codec
	imputer   *autofill_mice.Engine
	predictor *kpi_xgb.Predictor
	models    *common.ModelSet
	logger    logging.Logger
	metrics   *prometheus.AppMetrics
	strict    bool
}

// NewEngine validates and assembles the pipeline.
func NewEngine(cfg config.PipelineConfig, deps Deps) (*Engine, error) {
	if deps.Registry == nil {
		return nil, errors.SchemaUnavailable("engine requires a schema registry")
	}
	if deps.Imputer == nil {
		return nil, errors.ImputerUnavailable()
	}
	if deps.Predictor == nil {
		return nil, errors.InvalidParam("engine requires a KPI predictor")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &Engine{
		registry:  deps.Registry,
		codec:     schema.NewCodec(deps.Registry),
		imputer:   deps.Imputer,
		predictor: deps.Predictor,
		models:    deps.Models,
		logger:    logger.Named("assessment"),
		metrics:   deps.Metrics,
		strict:    cfg.StrictValidation,
	}, nil
}

// Registry returns the schema registry the engine aligns against.
func (e *Engine) Registry() *schema.Registry { return e.registry }

// Models returns the loaded artifact inventory, nil when none was supplied.
func (e *Engine) Models() *common.ModelSet { return e.models }

// KPIs returns the indicators that have a loaded model, in canonical order.
func (e *Engine) KPIs() []string { return e.predictor.KPIs() }

// ─────────────────────────────────────────────────────────────────────────────
// Run — the full six-step pipeline
// ─────────────────────────────────────────────────────────────────────────────

// Run executes the full pipeline against a raw payload and returns the
// completed record plus one outcome per registered indicator.  Per-indicator
// failures are folded into their KPIOutcome; the returned error covers only
// malformed input, strict-mode validation, and structural pipeline failures.
func (e *Engine) Run(ctx context.Context, payload map[string]any) (*Outcome, error) {
	runID := uuid.New().String()
	log := e.logger.With(logging.String("run_id", runID))
	started := time.Now()
	if e.metrics != nil {
		e.metrics.ActiveRuns.WithLabelValues(opAssess).Inc()
		defer e.metrics.ActiveRuns.WithLabelValues(opAssess).Dec()
	}

	outcome, err := e.assess(ctx, log, runID, payload)
	elapsed := time.Since(started)
	prometheus.RecordRun(e.metrics, opAssess, err == nil, elapsed)
	if err != nil {
		prometheus.RecordError(e.metrics, "assessment", string(errors.GetCode(err)))
		log.Error("assessment run failed", logging.Err(err))
		return nil, err
	}

	outcome.Elapsed = elapsed
	log.Info("assessment run completed",
		logging.Int("missing_kpis", len(outcome.MissingKPIs())),
		logging.Duration("elapsed", elapsed))
	return outcome, nil
}

func (e *Engine) assess(ctx context.Context, log logging.Logger, runID string, payload map[string]any) (*Outcome, error) {
	// 1. Align: parse the payload, normalise to registry order, and discard
	//    caller-supplied indicator values so they can steer neither the
	//    imputation nor any prediction.
	stepStart := time.Now()
	parsed, err := record.Parse(e.registry, payload)
	if err != nil {
		return nil, err
	}
	masked := record.MaskKPIs(record.Align(e.registry, parsed))
	prepared, err := e.screen(log, masked)
	if err != nil {
		return nil, err
	}
	prometheus.RecordStep(e.metrics, lca.StepAlign.String(), time.Since(stepStart))

	// 2–4. Encode, impute, decode.
	values, stats, err := e.complete(ctx, prepared)
	if err != nil {
		return nil, err
	}

	// 5. Predict: re-encode the completed record and blank the indicator
	//    columns so no model can see its own target.
	stepStart = time.Now()
	if err := ctx.Err(); err != nil {
		return nil, errors.Pipeline(lca.StepPredict.String(), err)
	}
	features, err := e.codec.EncodeRecord(values)
	if err != nil {
		return nil, errors.Pipeline(lca.StepPredict.String(), err)
	}
	for _, i := range e.registry.KPIIndexes() {
		features[i] = lca.MissingCell()
	}
	results := e.predictor.PredictAll(ctx, features)
	prometheus.RecordStep(e.metrics, lca.StepPredict.String(), time.Since(stepStart))

	// 6. Merge: completed fields first, indicator columns overwritten by
	//    predictor output in canonical order.
	stepStart = time.Now()
	byKPI := make(map[string]kpi_xgb.Result, len(results))
	for _, r := range results {
		byKPI[r.KPI] = r
	}

	full := record.New(e.registry.Len())
	for i, name := range e.registry.FieldNames() {
		full.Set(name, values[i])
	}

	kpiNames := lca.KPINames()
	outcomes := make([]KPIOutcome, 0, len(kpiNames))
	for _, kpi := range kpiNames {
		res, attempted := byKPI[kpi]
		o := KPIOutcome{KPI: kpi}
		switch {
		case !attempted:
			o.Missing = true
			o.Err = errors.Newf(errors.ErrCodePredictorNotLoaded, "no model loaded for %q", kpi)
		case res.Err != nil:
			o.Missing = true
			o.Err = res.Err
			prometheus.RecordPrediction(e.metrics, kpi, false, res.Elapsed)
		default:
			o.Value = res.Value
			prometheus.RecordPrediction(e.metrics, kpi, true, res.Elapsed)
		}
		if o.Missing {
			full.Set(kpi, lca.Missing())
		} else {
			full.Set(kpi, lca.Numeric(o.Value))
		}
		outcomes = append(outcomes, o)
	}
	prometheus.RecordStep(e.metrics, lca.StepMerge.String(), time.Since(stepStart))

	if stats.total() > 0 && e.metrics != nil {
		e.metrics.RecordsFilled.WithLabelValues(opAssess).Inc()
	}

	return &Outcome{RunID: runID, Record: full, KPIs: outcomes}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Autofill — steps 1–4 only
// ─────────────────────────────────────────────────────────────────────────────

// Autofill completes a record without predicting: gaps are imputed, decoded,
// and returned, and caller-supplied indicator values are kept.  Indicator
// columns the caller left empty carry the imputer's estimate.
func (e *Engine) Autofill(ctx context.Context, payload map[string]any) (*FillOutcome, error) {
	runID := uuid.New().String()
	log := e.logger.With(logging.String("run_id", runID))
	started := time.Now()
	if e.metrics != nil {
		e.metrics.ActiveRuns.WithLabelValues(opAutofill).Inc()
		defer e.metrics.ActiveRuns.WithLabelValues(opAutofill).Dec()
	}

	outcome, err := e.autofill(ctx, log, runID, payload)
	elapsed := time.Since(started)
	prometheus.RecordRun(e.metrics, opAutofill, err == nil, elapsed)
	if err != nil {
		prometheus.RecordError(e.metrics, "assessment", string(errors.GetCode(err)))
		log.Error("autofill run failed", logging.Err(err))
		return nil, err
	}

	outcome.Elapsed = elapsed
	log.Info("autofill run completed",
		logging.Int("filled", len(outcome.Filled)),
		logging.Duration("elapsed", elapsed))
	return outcome, nil
}

func (e *Engine) autofill(ctx context.Context, log logging.Logger, runID string, payload map[string]any) (*FillOutcome, error) {
	// 1. Align, keeping caller-supplied indicator values.
	stepStart := time.Now()
	parsed, err := record.Parse(e.registry, payload)
	if err != nil {
		return nil, err
	}
	prepared, err := e.screen(log, record.Align(e.registry, parsed))
	if err != nil {
		return nil, err
	}
	prometheus.RecordStep(e.metrics, lca.StepAlign.String(), time.Since(stepStart))

	// 2–4. Encode, impute, decode.
	values, stats, err := e.complete(ctx, prepared)
	if err != nil {
		return nil, err
	}

	full := record.New(e.registry.Len())
	for i, name := range e.registry.FieldNames() {
		full.Set(name, values[i])
	}

	if stats.total() > 0 && e.metrics != nil {
		e.metrics.RecordsFilled.WithLabelValues(opAutofill).Inc()
	}

	return &FillOutcome{RunID: runID, Record: full, Filled: stats.names}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared stages
// ─────────────────────────────────────────────────────────────────────────────

// screen applies the validation policy.  Strict mode rejects any violation;
// lenient mode logs each one and hands the offending field to the imputer as
// missing.
func (e *Engine) screen(log logging.Logger, rec *record.Record) (*record.Record, error) {
	if e.strict {
		vs := record.ValidateStrict(e.registry, rec)
		for _, v := range vs {
			prometheus.RecordValidationFailure(e.metrics, v.Field, v.Constraint)
		}
		if err := record.ViolationsError(vs); err != nil {
			return nil, err
		}
		return rec, nil
	}

	vs := record.Validate(e.registry, rec)
	if len(vs) == 0 {
		return rec, nil
	}
	out := rec.Clone()
	for _, v := range vs {
		prometheus.RecordValidationFailure(e.metrics, v.Field, v.Constraint)
		log.Warn("field failed validation; deferring to the imputer",
			logging.String("field", v.Field),
			logging.String("constraint", v.Constraint),
			logging.String("got", v.Got))
		out.Set(v.Field, lca.Missing())
	}
	return out, nil
}

// fillStats records which cells were empty before imputation.
type fillStats struct {
	categorical int
	numeric     int
	names       []string
}

func (s *fillStats) total() int { return s.categorical + s.numeric }

func (e *Engine) missingCells(enc lca.EncodedRecord) *fillStats {
	stats := &fillStats{}
	for i, f := range e.registry.Fields() {
		if !enc[i].Missing {
			continue
		}
		stats.names = append(stats.names, f.Name)
		if f.IsCategorical() {
			stats.categorical++
		} else {
			stats.numeric++
		}
	}
	return stats
}

// complete runs encode → impute → decode and returns the completed values in
// registry order.  Cancellation is checked at stage boundaries only; a run
// that has started a stage finishes it.
func (e *Engine) complete(ctx context.Context, rec *record.Record) ([]lca.Value, *fillStats, error) {
	// 2. Encode categoricals to vocabulary codes.
	stepStart := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Pipeline(lca.StepEncode.String(), err)
	}
	enc, err := e.codec.EncodeRecord(rec.Values())
	if err != nil {
		return nil, nil, errors.Pipeline(lca.StepEncode.String(), err)
	}
	prometheus.RecordStep(e.metrics, lca.StepEncode.String(), time.Since(stepStart))

	// 3. Impute every gap.
	stepStart = time.Now()
	stats := e.missingCells(enc)
	imputed, err := e.imputer.Impute(ctx, enc)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeImputerUnavailable) {
			return nil, nil, err
		}
		return nil, nil, errors.Pipeline(lca.StepImpute.String(), err)
	}
	imputeDur := time.Since(stepStart)
	prometheus.RecordStep(e.metrics, lca.StepImpute.String(), imputeDur)
	prometheus.RecordImputation(e.metrics, stats.categorical, stats.numeric, e.imputer.Model().Rounds(), imputeDur)

	// 4. Decode codes back to labels.
	stepStart = time.Now()
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Pipeline(lca.StepDecode.String(), err)
	}
	values, err := e.codec.DecodeRecord(imputed)
	if err != nil {
		return nil, nil, errors.Pipeline(lca.StepDecode.String(), err)
	}
	prometheus.RecordStep(e.metrics, lca.StepDecode.String(), time.Since(stepStart))

	return values, stats, nil
}

//Personal.AI order the ending
