package common

import (
	"encoding/json"
	"fmt"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Imputer artifact
// ─────────────────────────────────────────────────────────────────────────────

// ImputerArtifact is the serialized round-based imputer: the column order it
// was fitted against, the per-column initial fill statistics, and one
// estimator step per target column, replayed for a fixed number of rounds.
type ImputerArtifact struct {
	SchemaVersion int           `json:"schema_version"`
	Columns       []string      `json:"columns"`
	InitialFill   []float64     `json:"initial_fill"`
	Rounds        int           `json:"rounds"`
	Steps         []ImputerStep `json:"steps"`
}

// ImputerStep regresses one target column on the others.
type ImputerStep struct {
	Target    string            `json:"target"`
	Estimator EstimatorEnvelope `json:"estimator"`
}

// DecodeImputerArtifact unmarshals and structurally checks an imputer
// payload.  Estimator compilation happens later, in the engine constructor.
func DecodeImputerArtifact(data []byte) (*ImputerArtifact, error) {
	var art ImputerArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeArtifactDecode, "imputer artifact is not valid JSON")
	}
	if len(art.Columns) == 0 {
		return nil, errors.New(errors.ErrCodeArtifactDecode, "imputer artifact declares no columns")
	}
	if len(art.InitialFill) != len(art.Columns) {
		return nil, errors.New(errors.ErrCodeArtifactDecode,
			fmt.Sprintf("imputer artifact has %d fill values for %d columns", len(art.InitialFill), len(art.Columns)))
	}
	if art.Rounds < 1 {
		return nil, errors.New(errors.ErrCodeArtifactDecode,
			fmt.Sprintf("imputer artifact declares %d rounds", art.Rounds))
	}
	if len(art.Steps) == 0 {
		return nil, errors.New(errors.ErrCodeArtifactDecode, "imputer artifact declares no steps")
	}
	return &art, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// KPI model artifact
// ─────────────────────────────────────────────────────────────────────────────

// KPIModelArtifact wraps the estimator for one key performance indicator.
type KPIModelArtifact struct {
	KPI       string            `json:"kpi"`
	Estimator EstimatorEnvelope `json:"estimator"`
}

// DecodeKPIModelArtifact unmarshals a KPI model payload.
func DecodeKPIModelArtifact(data []byte) (*KPIModelArtifact, error) {
	var art KPIModelArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeArtifactDecode, "KPI model artifact is not valid JSON")
	}
	if art.KPI == "" {
		return nil, errors.New(errors.ErrCodeArtifactDecode, "KPI model artifact names no indicator")
	}
	return &art, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Label encoders artifact
// ─────────────────────────────────────────────────────────────────────────────

// DecodeEncoders unmarshals label_encoders.json: categorical field name to
// its sorted class vocabulary.
func DecodeEncoders(data []byte) (map[string][]string, error) {
	var enc map[string][]string
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeArtifactDecode, "label encoders artifact is not valid JSON")
	}
	if len(enc) == 0 {
		return nil, errors.New(errors.ErrCodeArtifactDecode, "label encoders artifact is empty")
	}
	for field, classes := range enc {
		if len(classes) == 0 {
			return nil, errors.New(errors.ErrCodeArtifactDecode,
				fmt.Sprintf("label encoders artifact has no classes for %q", field))
		}
	}
	return enc, nil
}

//Personal.AI order the ending
