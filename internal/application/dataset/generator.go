// Package dataset synthesises the circular-metals reference dataset: the full
// canonical column set with the joint distributions of the published corpus,
// deterministic for a fixed seed.  Generated files double as schema-learning
// input and as integration fixtures.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/turtacn/Alloyance-Intelligence/internal/config"
	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

const formatCSV = "csv"

// Cancellation is checked once per batch; a started batch always finishes.
const cancelCheckEvery = 1024

// vocabFields are the categorical columns drawn directly from their
// vocabularies; the remaining categoricals derive from these.
var vocabFields = []string{
	"Process Stage",
	"Technology",
	"Time Period",
	"Location",
	"Functional Unit",
	"Raw Material Type",
	"Energy Input Type",
	"Transport Mode",
	"Fuel Type",
	"Metal Quality Grade",
	"Material Scarcity Level",
	"End-of-Life Treatment",
}

var (
	transportFactor = map[string]float64{"Truck": 0.1, "Rail": 0.03, "Ship": 0.015}
	qualityMult     = map[string]float64{"High": 1.3, "Medium": 1.0, "Low": 0.75}
	techMult        = map[string]float64{"Emerging": 1.25, "Advanced": 1.15, "Conventional": 1.0}
	yearMarks       = []float64{2012, 2017, 2023}
)

// Generator emits synthetic assessment records over the canonical schema.
// It is bound to the built-in schema: the synthesis formulas name its columns
// and vocabularies, so a foreign registry has nothing to offer it.
type Generator struct {
	reg     *schema.Registry
	cfg     config.DatasetConfig
	vocabs  map[string][]string
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

func NewGenerator(cfg config.DatasetConfig, logger logging.Logger, metrics *prometheus.AppMetrics) (*Generator, error) {
	if cfg.Rows < 1 {
		return nil, errors.InvalidParam("dataset: rows must be at least 1")
	}
	if cfg.MissingRate < 0 || cfg.MissingRate >= 1 {
		return nil, errors.InvalidParam("dataset: missing_rate must be within [0, 1)")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	reg := schema.Canonical()
	vocabs := make(map[string][]string, len(vocabFields))
	for _, name := range vocabFields {
		classes, err := reg.Vocabulary(name)
		if err != nil {
			return nil, err
		}
		vocabs[name] = classes
	}
	return &Generator{
		reg:     reg,
		cfg:     cfg,
		vocabs:  vocabs,
		logger:  logger.Named("dataset"),
		metrics: metrics,
	}, nil
}

// WriteCSV streams the configured number of rows to w, header first, columns
// in canonical order.  It returns the number of data rows written.  Two calls
// on the same generator produce byte-identical output.
func (g *Generator) WriteCSV(ctx context.Context, w io.Writer) (int, error) {
	began := time.Now()
	rng := rand.New(rand.NewSource(uint64(g.cfg.Seed)))
	names := g.reg.FieldNames()

	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatasetGenerateFailed, "dataset: writing header")
	}

	row := make([]string, len(names))
	written := 0
	for written < g.cfg.Rows {
		if written%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return written, errors.Wrap(err, errors.ErrCodeDatasetGenerateFailed, "dataset: generation cancelled")
			}
		}
		cells := g.synthesize(rng)
		for i, name := range names {
			cell, ok := cells[name]
			if !ok {
				return written, errors.Newf(errors.ErrCodeInternal, "dataset: no value synthesised for column %q", name)
			}
			row[i] = cell
		}
		g.blank(rng, names, row)
		if err := cw.Write(row); err != nil {
			return written, errors.Wrap(err, errors.ErrCodeDatasetGenerateFailed, "dataset: writing row")
		}
		written++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, errors.Wrap(err, errors.ErrCodeDatasetGenerateFailed, "dataset: flushing output")
	}

	if g.metrics != nil {
		g.metrics.DatasetRowsTotal.WithLabelValues(formatCSV).Add(float64(written))
		g.metrics.DatasetBuildDuration.WithLabelValues(formatCSV).Observe(time.Since(began).Seconds())
	}
	g.logger.Info("synthetic dataset generated",
		logging.Int("rows", written),
		logging.Int64("seed", g.cfg.Seed),
		logging.Float64("missing_rate", g.cfg.MissingRate),
		logging.Duration("elapsed", time.Since(began)),
	)
	return written, nil
}

// WriteFile renders to path, falling back to the configured output path when
// path is empty.
func (g *Generator) WriteFile(ctx context.Context, path string) (int, error) {
	if path == "" {
		path = g.cfg.Output
	}
	if path == "" {
		return 0, errors.InvalidParam("dataset: output path is empty")
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatasetGenerateFailed, "dataset: creating output file")
	}
	rows, werr := g.WriteCSV(ctx, f)
	if cerr := f.Close(); werr == nil && cerr != nil {
		werr = errors.Wrap(cerr, errors.ErrCodeDatasetGenerateFailed, "dataset: closing output file")
	}
	return rows, werr
}

// synthesize draws one record.  The correlations are the published corpus's:
// primary ore routes are energy- and emission-heavy with low recycled
// fractions, secondary scrap routes the reverse, and the end-of-life
// treatment dominates the circularity indicators.
func (g *Generator) synthesize(rng *rand.Rand) map[string]string {
	uni := func(lo, hi float64) float64 {
		return distuv.Uniform{Min: lo, Max: hi, Src: rng}.Rand()
	}
	gauss := func(mu, sigma float64) float64 {
		return distuv.Normal{Mu: mu, Sigma: sigma, Src: rng}.Rand()
	}

	stage := g.pick(rng, "Process Stage")
	tech := g.pick(rng, "Technology")
	loc := g.pick(rng, "Location")
	rawType := g.pick(rng, "Raw Material Type")
	energyType := g.pick(rng, "Energy Input Type")
	transportMode := g.pick(rng, "Transport Mode")
	eol := g.pick(rng, "End-of-Life Treatment")
	funcUnit := g.pick(rng, "Functional Unit")

	qty := 500.0
	if strings.Contains(funcUnit, "kg") {
		qty = 1000
	}
	isPrimary := strings.Contains(rawType, "Ore")

	recycledFraction := 0.1
	if !isPrimary {
		recycledFraction = uni(0.7, 0.99)
	}

	energyMu := 1.5
	if isPrimary {
		energyMu = 15
	}
	energyPerKg := gauss(energyMu, 0.5)
	energyInput := energyPerKg * qty

	var ghgPerKg float64
	switch energyType {
	case "Coal":
		if isPrimary {
			ghgPerKg = uni(10, 18)
		} else {
			ghgPerKg = uni(1, 3)
		}
	case "Natural Gas":
		ghgPerKg = uni(6, 10)
	default:
		ghgPerKg = uni(1, 5)
	}
	ghgTotal := ghgPerKg * qty

	materialCost := uni(0.8, 2.0) * qty
	if isPrimary {
		materialCost *= 1.2
	}
	processingCost := materialCost * uni(0.5, 1.0)

	airEmissions := ghgTotal * uni(0.03, 0.06)
	waterEmissions := ghgTotal * uni(0.001, 0.003)

	transportDistance := uni(50, 2000)
	factor := transportFactor[transportMode]
	scope3 := ghgTotal*0.2 + transportDistance*factor*(qty/1000)

	circularity := clip(recycledFraction*100-ghgPerKg*2+uni(-5, 5), 0, 100)

	recycledContent := recycledFraction * 100
	resourceEff := recycledContent + uni(-5, 5)
	recoveryRate := clip(recycledContent+uni(-10, 5), 0, 100)
	reusePotential := clip(circularity+uni(-10, 10), 0, 100)

	quality := g.pick(rng, "Metal Quality Grade")
	life := baseLife(funcUnit) * qualityMult[quality] * techMult[tech]
	life *= (1 + circularity/200) * eolMult(eol)
	life *= gauss(1, 0.05)
	life = clip(life, 2, 120)

	switch eol {
	case "Recycling":
		recoveryRate = uni(80, 95)
		reusePotential = uni(20, 40)
		circularity = clip(circularity+uni(15, 25), 0, 100)
	case "Reuse":
		reusePotential = uni(70, 95)
		recoveryRate = uni(50, 70)
		circularity = clip(circularity+uni(20, 30), 0, 100)
	case "Landfill":
		recoveryRate = uni(0, 10)
		reusePotential = uni(0, 5)
		circularity = clip(circularity-uni(20, 30), 0, 100)
	case "Incineration":
		recoveryRate = uni(5, 15)
		reusePotential = uni(0, 2)
		circularity = clip(circularity-uni(10, 20), 0, 100)
	}

	out := make(map[string]string, g.reg.Len())
	put := func(name, cell string) { out[name] = cell }
	putF := func(name string, v float64, places int) { out[name] = rounded(v, places) }

	put("Process Stage", stage)
	put("Technology", tech)
	put("Time Period", g.pick(rng, "Time Period"))
	put("Location", loc)
	put("Functional Unit", funcUnit)
	put("Raw Material Type", rawType)
	putF("Raw Material Quantity (kg or unit)", qty, 0)
	put("Energy Input Type", energyType)
	putF("Energy Input Quantity (MJ)", energyInput, 2)
	put("Processing Method", tech)
	put("Transport Mode", transportMode)
	putF("Transport Distance (km)", transportDistance, 2)
	put("Fuel Type", g.pick(rng, "Fuel Type"))
	put("Metal Quality Grade", quality)
	put("Material Scarcity Level", g.pick(rng, "Material Scarcity Level"))
	putF("Material Cost (USD)", materialCost, 2)
	putF("Processing Cost (USD)", processingCost, 2)
	putF("Emissions to Air CO2 (kg)", ghgTotal*0.6, 2)
	putF("Emissions to Air SOx (kg)", airEmissions*0.1, 3)
	putF("Emissions to Air NOx (kg)", airEmissions*0.08, 3)
	putF("Emissions to Air Particulate Matter (kg)", airEmissions*0.05, 3)
	putF("Emissions to Water Acid Mine Drainage (kg)", waterEmissions*0.5, 4)
	putF("Emissions to Water Heavy Metals (kg)", waterEmissions*0.3, 4)
	putF("Emissions to Water BOD (kg)", waterEmissions*0.2, 4)
	putF("Greenhouse Gas Emissions (kg CO2-eq)", ghgTotal, 2)
	putF("Scope 1 Emissions (kg CO2-eq)", ghgTotal*0.5, 2)
	putF("Scope 2 Emissions (kg CO2-eq)", ghgTotal*0.3, 2)
	putF("Scope 3 Emissions (kg CO2-eq)", scope3, 2)
	put("End-of-Life Treatment", eol)
	putF("Environmental Impact Score", 100-circularity, 2)
	putF("Metal Recyclability Factor", recycledFraction, 2)
	putF("Energy_per_Material", energyPerKg, 2)
	putF("Total_Air_Emissions", airEmissions, 2)
	putF("Total_Water_Emissions", waterEmissions, 3)
	putF("Transport_Intensity", transportDistance*factor, 3)
	putF("GHG_per_Material", ghgPerKg, 2)
	putF("Time_Period_Numeric", yearMarks[rng.Intn(len(yearMarks))], 0)
	putF("Total_Cost", materialCost+processingCost, 2)
	putF("Circularity_Score", circularity, 2)
	putF("Circular_Economy_Index", circularity/100, 2)
	putF(lca.KPIRecycledContent, recycledContent, 2)
	putF(lca.KPIResourceEfficiency, resourceEff, 2)
	putF(lca.KPIExtendedProductLife, life, 1)
	putF(lca.KPIRecoveryRate, recoveryRate, 2)
	putF(lca.KPIReusePotential, reusePotential, 2)
	return out
}

// blank knocks out non-indicator cells at the configured rate.  Indicator
// columns stay complete so generated files remain usable as training and
// schema-learning references.
func (g *Generator) blank(rng *rand.Rand, names []string, row []string) {
	if g.cfg.MissingRate <= 0 {
		return
	}
	for i, name := range names {
		if lca.IsKPI(name) {
			continue
		}
		if rng.Float64() < g.cfg.MissingRate {
			row[i] = ""
		}
	}
}

func (g *Generator) pick(rng *rand.Rand, field string) string {
	classes := g.vocabs[field]
	return classes[rng.Intn(len(classes))]
}

func baseLife(funcUnit string) float64 {
	switch {
	case strings.Contains(funcUnit, "Aluminium Sheet"):
		return 10
	case strings.Contains(funcUnit, "Copper Wire"):
		return 30
	case strings.Contains(funcUnit, "Aluminium Panel"):
		return 40
	default:
		return 15
	}
}

func eolMult(eol string) float64 {
	switch eol {
	case "Reuse":
		return 1.6
	case "Recycling":
		return 1.1
	case "Landfill":
		return 0.9
	case "Incineration":
		return 0.85
	default:
		return 1.0
	}
}

func clip(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// rounded renders v to places decimal digits without trailing zeros, the way
// the reference corpus was serialised.
func rounded(v float64, places int) string {
	p := math.Pow(10, float64(places))
	return strconv.FormatFloat(math.Round(v*p)/p, 'f', -1, 64)
}

//Personal.AI order the ending
