package assessment

import (
	"bytes"
	"context"
	"time"

	"github.com/turtacn/Alloyance-Intelligence/internal/config"
	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/artifacts"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/autofill_mice"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/kpi_xgb"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// Bundle holds everything NewEngine needs that comes out of the artifact
// store.  All loading happens here, once, at startup; nothing is fetched per
// run.
type Bundle struct {
	Registry  *schema.Registry
	Imputer   *autofill_mice.Engine
	Predictor *kpi_xgb.Predictor
	Models    *common.ModelSet
}

// LoadOptions parameterises LoadBundle.  Store and Config are mandatory.
// A non-nil Registry skips schema resolution and aligns everything against
// the supplied definition instead.
type LoadOptions struct {
	Store    artifacts.Store
	Config   *config.Config
	Registry *schema.Registry
	Logger   logging.Logger
	Metrics  *prometheus.AppMetrics
}

// LoadBundle fetches, verifies, decodes, and compiles the artifact set.
//
// The imputer artifact is mandatory — its absence fails the load with
// ImputerUnavailable.  A KPI model that is absent or unreadable disables that
// indicator with a warning and the load continues; a checksum mismatch on any
// artifact fails the whole load.
func LoadBundle(ctx context.Context, opts LoadOptions) (*Bundle, error) {
	if opts.Store == nil {
		return nil, errors.InvalidParam("artifact store is required")
	}
	if opts.Config == nil {
		return nil, errors.InvalidParam("configuration is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	l := &bundleLoader{
		store:   opts.Store,
		metrics: opts.Metrics,
		logger:  logger.Named("bundle"),
	}

	if opts.Config.Artifacts.VerifyChecksums {
		if err := l.loadManifest(ctx); err != nil {
			return nil, err
		}
	}

	reg := opts.Registry
	if reg == nil {
		resolved, err := l.resolveRegistry(ctx)
		if err != nil {
			return nil, err
		}
		reg = resolved
	}

	imputer, err := l.loadImputer(ctx, reg, opts.Config.Pipeline.ImputationRounds)
	if err != nil {
		return nil, err
	}

	models, err := l.loadKPIModels(ctx)
	if err != nil {
		return nil, err
	}

	predictor, err := kpi_xgb.NewPredictor(models, reg, opts.Config.Pipeline.PredictorConcurrency, logger)
	if err != nil {
		return nil, err
	}

	set, err := common.NewModelSet(l.infos)
	if err != nil {
		return nil, err
	}

	if opts.Metrics != nil {
		opts.Metrics.PredictorsLoaded.WithLabelValues(string(common.ModelKindImputer)).Set(1)
		opts.Metrics.PredictorsLoaded.WithLabelValues(string(common.ModelKindKPI)).Set(float64(len(models)))
	}

	l.logger.Info("model bundle loaded",
		logging.Int("artifacts", set.Len()),
		logging.Int("kpi_models", len(models)),
		logging.Bool("verified", l.manifest != nil))

	return &Bundle{Registry: reg, Imputer: imputer, Predictor: predictor, Models: set}, nil
}

// NewEngineFromConfig is the one-call assembly path used by the CLI and the
// embedding client: open the configured store, load the bundle, build the
// engine.
func NewEngineFromConfig(ctx context.Context, cfg *config.Config, logger logging.Logger, metrics *prometheus.AppMetrics) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidParam("configuration is required")
	}

	store, err := artifacts.NewStore(cfg.Artifacts, logger)
	if err != nil {
		return nil, err
	}

	bundle, err := LoadBundle(ctx, LoadOptions{
		Store:   store,
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return nil, err
	}

	return NewEngine(cfg.Pipeline, Deps{
		Registry:  bundle.Registry,
		Imputer:   bundle.Imputer,
		Predictor: bundle.Predictor,
		Models:    bundle.Models,
		Logger:    logger,
		Metrics:   metrics,
	})
}

type bundleLoader struct {
	store    artifacts.Store
	manifest artifacts.Manifest
	metrics  *prometheus.AppMetrics
	logger   logging.Logger
	infos    []common.ModelInfo
}

func (l *bundleLoader) loadManifest(ctx context.Context) error {
	m, err := artifacts.LoadManifest(ctx, l.store)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeArtifactNotFound) {
			l.logger.Info("no manifest in store; checksum verification skipped")
			return nil
		}
		return err
	}
	l.manifest = m
	return nil
}

// fetch downloads one artifact and verifies it against the manifest when one
// is loaded.  Optional artifacts report absence as (nil, false, nil).
func (l *bundleLoader) fetch(ctx context.Context, name string) ([]byte, bool, error) {
	started := time.Now()
	payload, err := l.store.Get(ctx, name)
	prometheus.RecordArtifactLoad(l.metrics, name, int64(len(payload)), err, time.Since(started))
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeArtifactNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if l.manifest != nil {
		if err := l.manifest.Verify(name, payload); err != nil {
			return nil, false, err
		}
	}
	return payload, true, nil
}

func (l *bundleLoader) addInfo(name string, kind common.ModelKind, kpi, estimator string, payload []byte) {
	l.infos = append(l.infos, common.ModelInfo{
		Name:      name,
		Kind:      kind,
		KPI:       kpi,
		Estimator: estimator,
		Checksum:  artifacts.Digest(payload),
		SizeBytes: int64(len(payload)),
		LoadedAt:  time.Now(),
	})
}

// resolveRegistry prefers the trained encoders artifact, then the reference
// dataset, then the compiled-in canonical definition.
func (l *bundleLoader) resolveRegistry(ctx context.Context) (*schema.Registry, error) {
	payload, ok, err := l.fetch(ctx, lca.ArtifactEncoders)
	if err != nil {
		return nil, err
	}
	if ok {
		vocab, err := common.DecodeEncoders(payload)
		if err != nil {
			return nil, err
		}
		reg, err := schema.FromEncoders(vocab)
		if err != nil {
			return nil, err
		}
		l.addInfo(lca.ArtifactEncoders, common.ModelKindEncoders, "", "", payload)
		return reg, nil
	}

	csv, ok, err := l.fetch(ctx, lca.ArtifactDataset)
	if err != nil {
		return nil, err
	}
	if ok {
		reg, err := schema.LearnFromCSV(bytes.NewReader(csv))
		if err != nil {
			return nil, err
		}
		l.logger.Info("schema learned from reference dataset",
			logging.Int("fields", reg.Len()))
		return reg, nil
	}

	l.logger.Info("using built-in canonical schema")
	return schema.Canonical(), nil
}

func (l *bundleLoader) loadImputer(ctx context.Context, reg *schema.Registry, roundsOverride int) (*autofill_mice.Engine, error) {
	payload, ok, err := l.fetch(ctx, lca.ArtifactImputer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.ImputerUnavailable()
	}

	art, err := common.DecodeImputerArtifact(payload)
	if err != nil {
		return nil, err
	}
	model, err := autofill_mice.NewModel(art, reg)
	if err != nil {
		return nil, err
	}
	if roundsOverride > 0 {
		model = model.WithRounds(roundsOverride)
	}

	l.addInfo(lca.ArtifactImputer, common.ModelKindImputer, "", "", payload)
	return autofill_mice.NewEngine(model, l.logger)
}

// loadKPIModels loads whichever indicator models the store has.  Broken or
// absent models disable their indicator only.
func (l *bundleLoader) loadKPIModels(ctx context.Context) ([]*kpi_xgb.Model, error) {
	var models []*kpi_xgb.Model
	for _, kpi := range lca.KPINames() {
		name := lca.KPIArtifactName(kpi)
		payload, ok, err := l.fetch(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			l.logger.Warn("indicator disabled; model artifact absent",
				logging.String("kpi", kpi),
				logging.String("artifact", name))
			continue
		}

		model, err := l.compileKPIModel(kpi, payload)
		if err != nil {
			l.logger.Warn("indicator disabled; model artifact unusable",
				logging.String("kpi", kpi),
				logging.String("artifact", name),
				logging.Err(err))
			prometheus.RecordError(l.metrics, "bundle", string(errors.GetCode(err)))
			continue
		}

		models = append(models, model)
		l.addInfo(name, common.ModelKindKPI, kpi, model.Kind(), payload)
	}
	return models, nil
}

func (l *bundleLoader) compileKPIModel(kpi string, payload []byte) (*kpi_xgb.Model, error) {
	art, err := common.DecodeKPIModelArtifact(payload)
	if err != nil {
		return nil, err
	}
	if art.KPI != kpi {
		return nil, errors.Newf(errors.ErrCodeArtifactCorrupt,
			"artifact for %q declares indicator %q", kpi, art.KPI)
	}
	return kpi_xgb.NewModel(art)
}

//Personal.AI order the ending
