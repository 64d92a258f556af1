package schema

import (
	"sync"

	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// cat and num keep the canonical table below readable.
func cat(name string, classes ...string) Field {
	return Field{Name: name, Kind: lca.FieldKindCategorical, Classes: classes}
}

func num(name string) Field {
	return Field{Name: name, Kind: lca.FieldKindNumeric}
}

// canonicalDefinition returns a fresh copy of the compiled-in schema: the 45
// columns of the reference LCA dataset in training column order.  Vocabularies
// are listed pre-sorted; NewRegistry re-sorts anyway, so editing this table
// cannot silently shift codes.
func canonicalDefinition() []Field {
	return []Field{
		cat("Process Stage", "End-of-Life", "Manufacturing", "Raw Material Extraction", "Transport", "Use"),
		cat("Technology", "Advanced", "Conventional", "Emerging"),
		cat("Time Period", "2010-2014", "2015-2019", "2020-2025"),
		cat("Location", "Asia", "Europe", "North America", "South America"),
		cat("Functional Unit", "1 kg Aluminium Sheet", "1 kg Copper Wire", "1 m2 Aluminium Panel"),
		cat("Raw Material Type", "Aluminium Ore", "Aluminium Scrap", "Copper Ore", "Copper Scrap"),
		num("Raw Material Quantity (kg or unit)"),
		cat("Energy Input Type", "Coal", "Electricity", "Natural Gas"),
		num("Energy Input Quantity (MJ)"),
		cat("Processing Method", "Advanced", "Conventional", "Emerging"),
		cat("Transport Mode", "Rail", "Ship", "Truck"),
		num("Transport Distance (km)"),
		cat("Fuel Type", "Diesel", "Electric", "Heavy Fuel Oil"),
		cat("Metal Quality Grade", "High", "Low", "Medium"),
		cat("Material Scarcity Level", "High", "Low", "Medium"),
		num("Material Cost (USD)"),
		num("Processing Cost (USD)"),
		num("Emissions to Air CO2 (kg)"),
		num("Emissions to Air SOx (kg)"),
		num("Emissions to Air NOx (kg)"),
		num("Emissions to Air Particulate Matter (kg)"),
		num("Emissions to Water Acid Mine Drainage (kg)"),
		num("Emissions to Water Heavy Metals (kg)"),
		num("Emissions to Water BOD (kg)"),
		num("Greenhouse Gas Emissions (kg CO2-eq)"),
		num("Scope 1 Emissions (kg CO2-eq)"),
		num("Scope 2 Emissions (kg CO2-eq)"),
		num("Scope 3 Emissions (kg CO2-eq)"),
		cat("End-of-Life Treatment", "Incineration", "Landfill", "Recycling", "Reuse"),
		num("Environmental Impact Score"),
		num("Metal Recyclability Factor"),
		num("Energy_per_Material"),
		num("Total_Air_Emissions"),
		num("Total_Water_Emissions"),
		num("Transport_Intensity"),
		num("GHG_per_Material"),
		num("Time_Period_Numeric"),
		num("Total_Cost"),
		num("Circularity_Score"),
		num("Circular_Economy_Index"),
		num(lca.KPIRecycledContent),
		num(lca.KPIResourceEfficiency),
		num(lca.KPIExtendedProductLife),
		num(lca.KPIRecoveryRate),
		num(lca.KPIReusePotential),
	}
}

var (
	canonicalOnce sync.Once
	canonicalReg  *Registry
)

// Canonical returns the shared registry built from the compiled-in schema.
// The instance is immutable, so handing the same pointer to every caller is
// safe.  The table above is validated by NewRegistry; a broken edit fails the
// first call loudly rather than mis-aligning records quietly.
func Canonical() *Registry {
	canonicalOnce.Do(func() {
		reg, err := NewRegistry(canonicalDefinition())
		if err != nil {
			panic("schema: canonical definition invalid: " + err.Error())
		}
		canonicalReg = reg
	})
	return canonicalReg
}

//Personal.AI order the ending
