package lca_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

func TestFieldKind_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, lca.FieldKindCategorical.IsValid())
	assert.True(t, lca.FieldKindNumeric.IsValid())
	assert.False(t, lca.FieldKind("ordinal").IsValid())
}

func TestKPINames_OrderAndCopySemantics(t *testing.T) {
	t.Parallel()

	names := lca.KPINames()
	assert.Equal(t, []string{
		lca.KPIRecycledContent,
		lca.KPIResourceEfficiency,
		lca.KPIExtendedProductLife,
		lca.KPIRecoveryRate,
		lca.KPIReusePotential,
	}, names)

	names[0] = "tampered"
	assert.Equal(t, lca.KPIRecycledContent, lca.KPINames()[0], "KPINames must return a fresh copy")
}

func TestIsKPI(t *testing.T) {
	t.Parallel()

	assert.True(t, lca.IsKPI(lca.KPIRecoveryRate))
	assert.False(t, lca.IsKPI("Transport Mode"))
	assert.False(t, lca.IsKPI(""))
}

func TestKPIArtifactName(t *testing.T) {
	t.Parallel()

	for _, kpi := range lca.KPINames() {
		assert.NotEmpty(t, lca.KPIArtifactName(kpi), "every KPI needs a model artifact name")
	}
	assert.Equal(t, "model_recycled_content.json", lca.KPIArtifactName(lca.KPIRecycledContent))
	assert.Empty(t, lca.KPIArtifactName("Transport Mode"))
}

//Personal.AI order the ending
