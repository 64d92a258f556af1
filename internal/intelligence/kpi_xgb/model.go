// Package kpi_xgb serves the per-indicator boosted-tree regressors.  Each
// model predicts one key performance indicator from the completed,
// re-encoded record; the five indicators fan out concurrently.
package kpi_xgb

import (
	"fmt"

	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Model is one KPI artifact compiled to a runtime estimator.
type Model struct {
	kpi       string
	estimator common.Estimator
}

// NewModel validates and compiles a KPI model artifact.  A model may only
// regress on non-KPI columns; an artifact that lists an indicator among its
// features would leak targets into inputs and is rejected outright.
func NewModel(art *common.KPIModelArtifact) (*Model, error) {
	if art == nil {
		return nil, errors.New(errors.ErrCodePredictorNotLoaded, "KPI model artifact is nil")
	}
	if !lca.IsKPI(art.KPI) {
		return nil, errors.Newf(errors.ErrCodeUnknownKPI, "%q is not a registered KPI", art.KPI)
	}
	for _, f := range art.Estimator.Features {
		if lca.IsKPI(f) {
			return nil, errors.Newf(errors.ErrCodeEstimatorInvalid,
				"model for %q uses KPI column %q as a feature", art.KPI, f)
		}
	}
	est, err := common.CompileEstimator(art.Estimator)
	if err != nil {
		return nil, errors.Wrap(err, errors.GetCode(err), fmt.Sprintf("KPI model %s", art.KPI))
	}
	return &Model{kpi: art.KPI, estimator: est}, nil
}

// KPI returns the indicator this model predicts.
func (m *Model) KPI() string { return m.kpi }

// Features returns the model's feature names in evaluation order.
func (m *Model) Features() []string { return m.estimator.Features() }

// Kind returns the underlying estimator family.
func (m *Model) Kind() string { return m.estimator.Kind() }

//Personal.AI order the ending
