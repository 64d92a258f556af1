package common

import (
	"fmt"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// gbtreeEstimator sums a base score and the leaf values of a tree ensemble.
// Split routing: x < threshold goes left, otherwise right; a missing cell
// follows the split's default child, the same convention the training
// library records for features that were sparse at fit time.
type gbtreeEstimator struct {
	features  []string
	baseScore float64
	trees     []TreeEnvelope
}

func compileGBTree(env EstimatorEnvelope) (*gbtreeEstimator, error) {
	width := len(env.Features)
	if !finite(env.BaseScore) {
		return nil, errors.New(errors.ErrCodeEstimatorInvalid, "gbtree estimator base score is not finite")
	}
	for ti, tree := range env.Trees {
		if len(tree.Nodes) == 0 {
			return nil, errors.New(errors.ErrCodeEstimatorInvalid,
				fmt.Sprintf("gbtree estimator tree %d has no nodes", ti))
		}
		for ni, node := range tree.Nodes {
			if node.IsLeaf() {
				if !finite(*node.Leaf) {
					return nil, errors.New(errors.ErrCodeEstimatorInvalid,
						fmt.Sprintf("gbtree estimator tree %d node %d has a non-finite leaf", ti, ni))
				}
				continue
			}
			if node.Feature < 0 || node.Feature >= width {
				return nil, errors.New(errors.ErrCodeEstimatorInvalid,
					fmt.Sprintf("gbtree estimator tree %d node %d splits on feature %d of %d", ti, ni, node.Feature, width))
			}
			if !finite(node.Threshold) {
				return nil, errors.New(errors.ErrCodeEstimatorInvalid,
					fmt.Sprintf("gbtree estimator tree %d node %d has a non-finite threshold", ti, ni))
			}
			// Children must come after their parent; that ordering is what
			// guarantees every walk terminates.
			for _, child := range []int{node.Left, node.Right} {
				if child <= ni || child >= len(tree.Nodes) {
					return nil, errors.New(errors.ErrCodeEstimatorInvalid,
						fmt.Sprintf("gbtree estimator tree %d node %d has child index %d out of order", ti, ni, child))
				}
			}
		}
	}
	return &gbtreeEstimator{
		features:  append([]string(nil), env.Features...),
		baseScore: env.BaseScore,
		trees:     env.Trees,
	}, nil
}

func (e *gbtreeEstimator) Predict(features lca.EncodedRecord) float64 {
	sum := e.baseScore
	for i := range e.trees {
		sum += evalTree(e.trees[i].Nodes, features)
	}
	return sum
}

func evalTree(nodes []NodeEnvelope, features lca.EncodedRecord) float64 {
	i := 0
	for {
		n := nodes[i]
		if n.IsLeaf() {
			return *n.Leaf
		}
		missing := n.Feature >= len(features) || features[n.Feature].Missing
		switch {
		case missing && n.DefaultLeft:
			i = n.Left
		case missing:
			i = n.Right
		case features[n.Feature].Value < n.Threshold:
			i = n.Left
		default:
			i = n.Right
		}
	}
}

func (e *gbtreeEstimator) Features() []string { return e.features }

func (e *gbtreeEstimator) Kind() string { return EstimatorGBTree }

//Personal.AI order the ending
