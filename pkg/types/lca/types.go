// Package lca defines the shared vocabulary of the Alloyance-Intelligence
// engine: field kinds, pipeline steps, the registered KPI set, and the
// canonical artifact names.  Both internal packages and the public client
// depend on these types, so they live outside internal/.
package lca

// FieldKind classifies a schema field as categorical or numeric.
type FieldKind string

const (
	FieldKindCategorical FieldKind = "categorical"
	FieldKindNumeric     FieldKind = "numeric"
)

// String returns the human-readable representation of a FieldKind.
func (k FieldKind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the declared kinds.
func (k FieldKind) IsValid() bool {
	return k == FieldKindCategorical || k == FieldKindNumeric
}

// PipelineStep identifies one stage of the assessment pipeline.  Structural
// failures are tagged with the step they occurred in.
type PipelineStep string

const (
	StepAlign   PipelineStep = "align"
	StepEncode  PipelineStep = "encode"
	StepImpute  PipelineStep = "impute"
	StepDecode  PipelineStep = "decode"
	StepPredict PipelineStep = "predict"
	StepMerge   PipelineStep = "merge"
)

// String returns the step name.
func (s PipelineStep) String() string {
	return string(s)
}

// Canonical KPI names.  These are schema fields like any other, but they are
// predictor targets: excluded from every feature vector and overwritten by
// predictor outputs in the final result.
const (
	KPIRecycledContent     = "Recycled Content (%)"
	KPIResourceEfficiency  = "Resource Efficiency (%)"
	KPIExtendedProductLife = "Extended Product Life (years)"
	KPIRecoveryRate        = "Recovery Rate (%)"
	KPIReusePotential      = "Reuse Potential (%)"
)

// kpiOrder fixes the registry-relative order of the KPI set.
var kpiOrder = []string{
	KPIRecycledContent,
	KPIResourceEfficiency,
	KPIExtendedProductLife,
	KPIRecoveryRate,
	KPIReusePotential,
}

// KPINames returns the registered KPI names in canonical order.  The returned
// slice is a copy; callers may mutate it freely.
func KPINames() []string {
	out := make([]string, len(kpiOrder))
	copy(out, kpiOrder)
	return out
}

// IsKPI reports whether name is a registered KPI.
func IsKPI(name string) bool {
	for _, k := range kpiOrder {
		if k == name {
			return true
		}
	}
	return false
}

// Sentinel values of the categorical codec.  MissingCode stands in for "label
// not recognized or absent"; UnknownLabel stands in for "code outside the
// vocabulary range".  Neither is ever a real vocabulary member.
const (
	MissingCode  = -1.0
	UnknownLabel = "Unknown"
)

// Canonical artifact object names, shared by the filesystem and object-store
// backends.
const (
	ArtifactEncoders = "label_encoders.json"
	ArtifactImputer  = "imputer.json"
	ArtifactManifest = "manifest.yaml"
	ArtifactDataset  = "lca_dataset.csv"
)

// kpiArtifacts maps each KPI to its model artifact name.
var kpiArtifacts = map[string]string{
	KPIRecycledContent:     "model_recycled_content.json",
	KPIResourceEfficiency:  "model_resource_efficiency.json",
	KPIExtendedProductLife: "model_extended_product_life.json",
	KPIRecoveryRate:        "model_recovery_rate.json",
	KPIReusePotential:      "model_reuse_potential.json",
}

// KPIArtifactName returns the artifact object name for a KPI, or "" when name
// is not a registered KPI.
func KPIArtifactName(name string) string {
	return kpiArtifacts[name]
}

//Personal.AI order the ending
