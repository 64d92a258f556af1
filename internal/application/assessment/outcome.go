package assessment

import (
	"encoding/json"
	"time"

	"github.com/turtacn/Alloyance-Intelligence/internal/domain/record"
)

// KPIOutcome is the per-indicator result of a run: either a finite predicted
// value or an explicit missing marker carrying the failure that caused it.
// Indicator failures are values, not errors — one broken model never aborts
// the run that produced the other four.
type KPIOutcome struct {
	KPI     string
	Value   float64
	Missing bool
	Err     error
}

// MarshalJSON renders a present outcome as {"kpi", "value"} and a missing one
// as {"kpi", "value": null, "missing": true, "error"}.
func (o KPIOutcome) MarshalJSON() ([]byte, error) {
	type payload struct {
		KPI     string   `json:"kpi"`
		Value   *float64 `json:"value"`
		Missing bool     `json:"missing,omitempty"`
		Error   string   `json:"error,omitempty"`
	}
	p := payload{KPI: o.KPI, Missing: o.Missing}
	if !o.Missing {
		v := o.Value
		p.Value = &v
	}
	if o.Err != nil {
		p.Error = o.Err.Error()
	}
	return json.Marshal(p)
}

// Outcome is the result of one full assessment run: the completed record with
// indicator columns overwritten by predictor output, plus one KPIOutcome per
// registered indicator in canonical order.
type Outcome struct {
	RunID   string         `json:"run_id"`
	Record  *record.Record `json:"record"`
	KPIs    []KPIOutcome   `json:"kpis"`
	Elapsed time.Duration  `json:"elapsed"`
}

// KPI looks up the outcome for one indicator by canonical name.
func (o *Outcome) KPI(name string) (KPIOutcome, bool) {
	for _, k := range o.KPIs {
		if k.KPI == name {
			return k, true
		}
	}
	return KPIOutcome{}, false
}

// MissingKPIs returns the indicators that came back without a value, in
// canonical order.
func (o *Outcome) MissingKPIs() []string {
	var out []string
	for _, k := range o.KPIs {
		if k.Missing {
			out = append(out, k.KPI)
		}
	}
	return out
}

// FillOutcome is the result of an autofill-only run: the completed record and
// the names of the fields the imputer populated, in registry order.
type FillOutcome struct {
	RunID   string         `json:"run_id"`
	Record  *record.Record `json:"record"`
	Filled  []string       `json:"filled"`
	Elapsed time.Duration  `json:"elapsed"`
}

//Personal.AI order the ending
