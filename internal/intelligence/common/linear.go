package common

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// linearEstimator computes intercept + <w, x>.  Missing cells take the
// per-feature fill value before the dot product.
type linearEstimator struct {
	features  []string
	intercept float64
	weights   *mat.VecDense
	fill      []float64
}

func compileLinear(env EstimatorEnvelope) (*linearEstimator, error) {
	width := len(env.Features)
	if len(env.Coefficients) != width {
		return nil, errors.New(errors.ErrCodeEstimatorInvalid,
			fmt.Sprintf("linear estimator has %d coefficients for %d features", len(env.Coefficients), width))
	}
	fill := env.Fill
	switch {
	case fill == nil:
		fill = make([]float64, width)
	case len(fill) != width:
		return nil, errors.New(errors.ErrCodeEstimatorInvalid,
			fmt.Sprintf("linear estimator has %d fill values for %d features", len(fill), width))
	}
	if !finite(env.Intercept) {
		return nil, errors.New(errors.ErrCodeEstimatorInvalid, "linear estimator intercept is not finite")
	}
	for i, c := range env.Coefficients {
		if !finite(c) {
			return nil, errors.New(errors.ErrCodeEstimatorInvalid,
				fmt.Sprintf("linear estimator coefficient %d is not finite", i))
		}
	}
	for i, f := range fill {
		if !finite(f) {
			return nil, errors.New(errors.ErrCodeEstimatorInvalid,
				fmt.Sprintf("linear estimator fill value %d is not finite", i))
		}
	}
	weights := mat.NewVecDense(width, append([]float64(nil), env.Coefficients...))
	return &linearEstimator{
		features:  append([]string(nil), env.Features...),
		intercept: env.Intercept,
		weights:   weights,
		fill:      append([]float64(nil), fill...),
	}, nil
}

func (e *linearEstimator) Predict(features lca.EncodedRecord) float64 {
	x := make([]float64, len(e.features))
	for i := range e.features {
		if i < len(features) && !features[i].Missing {
			x[i] = features[i].Value
			continue
		}
		x[i] = e.fill[i]
	}
	return e.intercept + mat.Dot(mat.NewVecDense(len(x), x), e.weights)
}

func (e *linearEstimator) Features() []string { return e.features }

func (e *linearEstimator) Kind() string { return EstimatorLinear }

//Personal.AI order the ending
