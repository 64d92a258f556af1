package client

import (
	"context"
	"time"

	"github.com/turtacn/Alloyance-Intelligence/internal/application/assessment"
)

// ─────────────────────────────────────────────────────────────────────────────
// Result types
// ─────────────────────────────────────────────────────────────────────────────

// KPIResult is the outcome for one circularity indicator: either a finite
// predicted value or an explicit missing marker carrying the reason.
type KPIResult struct {
	KPI     string  `json:"kpi"`
	Value   float64 `json:"value"`
	Missing bool    `json:"missing,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Assessment is the result of a full run: the completed record keyed by
// canonical field names, plus one entry per registered indicator in
// canonical order.
type Assessment struct {
	RunID   string         `json:"run_id"`
	Record  map[string]any `json:"record"`
	KPIs    []KPIResult    `json:"kpis"`
	Elapsed time.Duration  `json:"elapsed"`
}

// KPI looks up one indicator result by canonical name.
func (a *Assessment) KPI(name string) (KPIResult, bool) {
	for _, k := range a.KPIs {
		if k.KPI == name {
			return k, true
		}
	}
	return KPIResult{}, false
}

// MissingKPIs returns the indicators that came back without a value, in
// canonical order.
func (a *Assessment) MissingKPIs() []string {
	var out []string
	for _, k := range a.KPIs {
		if k.Missing {
			out = append(out, k.KPI)
		}
	}
	return out
}

// Fill is the result of an autofill-only run: the completed record plus the
// names of the fields the imputer populated, in registry order.
type Fill struct {
	RunID   string         `json:"run_id"`
	Record  map[string]any `json:"record"`
	Filled  []string       `json:"filled"`
	Elapsed time.Duration  `json:"elapsed"`
}

// ModelSummary describes one loaded artifact.
type ModelSummary struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	KPI       string `json:"kpi,omitempty"`
	Estimator string `json:"estimator,omitempty"`
	Checksum  string `json:"checksum"`
	SizeBytes int64  `json:"size_bytes"`
}

func newAssessment(out *assessment.Outcome) *Assessment {
	a := &Assessment{
		RunID:   out.RunID,
		Record:  out.Record.ToMap(),
		KPIs:    make([]KPIResult, 0, len(out.KPIs)),
		Elapsed: out.Elapsed,
	}
	for _, k := range out.KPIs {
		r := KPIResult{KPI: k.KPI, Value: k.Value, Missing: k.Missing}
		if k.Err != nil {
			r.Error = k.Err.Error()
		}
		a.KPIs = append(a.KPIs, r)
	}
	return a
}

func newFill(out *assessment.FillOutcome) *Fill {
	return &Fill{
		RunID:   out.RunID,
		Record:  out.Record.ToMap(),
		Filled:  append([]string(nil), out.Filled...),
		Elapsed: out.Elapsed,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Operations
// ─────────────────────────────────────────────────────────────────────────────

// Assess runs the full pipeline against a sparse payload: gaps are imputed
// and every registered indicator is predicted.  Caller-supplied indicator
// values are discarded before imputation so they cannot steer their own
// prediction.  A failed indicator is folded into its KPIResult; the returned
// error covers only malformed input, strict-mode validation, and structural
// pipeline failures.
func (c *Client) Assess(ctx context.Context, payload map[string]any) (*Assessment, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	out, err := c.engine.Run(ctx, payload)
	if err != nil {
		return nil, err
	}
	return newAssessment(out), nil
}

// Autofill completes a record without predicting: gaps are imputed, decoded,
// and returned, and caller-supplied indicator values are kept.  Indicator
// fields the caller left empty carry the imputer's estimate.
func (c *Client) Autofill(ctx context.Context, payload map[string]any) (*Fill, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	out, err := c.engine.Autofill(ctx, payload)
	if err != nil {
		return nil, err
	}
	return newFill(out), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Introspection
// ─────────────────────────────────────────────────────────────────────────────

// KPIs returns the indicators that have a loaded model, in canonical order.
func (c *Client) KPIs() []string { return c.engine.KPIs() }

// Fields returns the canonical field names in registry order.  Payload keys
// outside this set are tolerated but ignored.
func (c *Client) Fields() []string { return c.engine.Registry().FieldNames() }

// Vocabulary returns the sorted label set of a categorical field.  Numeric
// and unrecognised field names are rejected.
func (c *Client) Vocabulary(field string) ([]string, error) {
	return c.engine.Registry().Vocabulary(field)
}

// Models returns the loaded artifact inventory in name order.
func (c *Client) Models() []ModelSummary {
	set := c.engine.Models()
	if set == nil {
		return nil
	}
	out := make([]ModelSummary, 0, set.Len())
	for _, info := range set.List() {
		out = append(out, ModelSummary{
			Name:      info.Name,
			Kind:      string(info.Kind),
			KPI:       info.KPI,
			Estimator: info.Estimator,
			Checksum:  info.Checksum,
			SizeBytes: info.SizeBytes,
		})
	}
	return out
}

//Personal.AI order the ending
