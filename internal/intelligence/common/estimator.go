// Package common provides the shared inference layer for the imputer and the
// KPI predictors: the two estimator families the trained artifacts use
// (linear and gradient-boosted trees), their JSON envelopes, and the loaded
// model inventory.
//
// Estimators are compiled from their envelopes once at startup and are
// immutable afterwards; evaluation is pure CPU work, safe for concurrent use
// without locking.
package common

import (
	"fmt"
	"math"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Estimator kinds as they appear in the artifact envelopes.
const (
	EstimatorLinear = "linear"
	EstimatorGBTree = "gbtree"
)

// Estimator evaluates one trained regressor over a feature vector.  The
// vector is in the estimator's own feature order (see BuildFeatures); cells
// flagged missing route through the estimator's missing policy instead of
// contributing a value.
type Estimator interface {
	Predict(features lca.EncodedRecord) float64
	Features() []string
	Kind() string
}

// ─────────────────────────────────────────────────────────────────────────────
// Envelopes
// ─────────────────────────────────────────────────────────────────────────────

// EstimatorEnvelope is the serialized estimator shared by imputer steps and
// KPI models.  Type selects the family; the remaining fields are
// family-specific and ignored by the other family.
type EstimatorEnvelope struct {
	Type     string   `json:"type"`
	Features []string `json:"features"`

	// linear
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients,omitempty"`
	// Fill supplies per-feature stand-ins for missing cells; absent means
	// zeros.
	Fill []float64 `json:"fill,omitempty"`

	// gbtree
	BaseScore float64        `json:"base_score"`
	Trees     []TreeEnvelope `json:"trees,omitempty"`
}

// TreeEnvelope is one regression tree as a flat node array rooted at index 0.
type TreeEnvelope struct {
	Nodes []NodeEnvelope `json:"nodes"`
}

// NodeEnvelope is either a split (Leaf nil) or a leaf (Leaf set).  Children
// are indices into the owning tree's node array and always come after their
// parent.
type NodeEnvelope struct {
	Feature     int      `json:"feature,omitempty"`
	Threshold   float64  `json:"threshold,omitempty"`
	Left        int      `json:"left,omitempty"`
	Right       int      `json:"right,omitempty"`
	Leaf        *float64 `json:"leaf,omitempty"`
	DefaultLeft bool     `json:"default_left,omitempty"`
}

// IsLeaf reports whether the node terminates evaluation.
func (n NodeEnvelope) IsLeaf() bool { return n.Leaf != nil }

// ─────────────────────────────────────────────────────────────────────────────
// Compilation
// ─────────────────────────────────────────────────────────────────────────────

// CompileEstimator validates an envelope and returns the runtime evaluator.
// Width and structure problems surface here, at load time, so that Predict
// can stay total.
func CompileEstimator(env EstimatorEnvelope) (Estimator, error) {
	if len(env.Features) == 0 {
		return nil, errors.New(errors.ErrCodeEstimatorInvalid, "estimator declares no features")
	}
	switch env.Type {
	case EstimatorLinear:
		return compileLinear(env)
	case EstimatorGBTree:
		return compileGBTree(env)
	default:
		return nil, errors.New(errors.ErrCodeEstimatorTypeUnknown,
			fmt.Sprintf("estimator type %q is not supported", env.Type))
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ─────────────────────────────────────────────────────────────────────────────
// Feature assembly
// ─────────────────────────────────────────────────────────────────────────────

// BuildFeatures maps a registry-ordered encoded record onto an estimator's
// feature order.  Names the column index does not know yield missing cells,
// which the estimator's missing policy then absorbs — an artifact trained
// against a superset schema degrades instead of crashing.
func BuildFeatures(names []string, columnIndex map[string]int, rec lca.EncodedRecord) lca.EncodedRecord {
	out := make(lca.EncodedRecord, len(names))
	for i, name := range names {
		col, ok := columnIndex[name]
		if !ok || col < 0 || col >= len(rec) {
			out[i] = lca.MissingCell()
			continue
		}
		out[i] = rec[col]
	}
	return out
}

//Personal.AI order the ending
