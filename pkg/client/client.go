// Package client is the embeddable façade over the circularity assessment
// engine.  A host application constructs a Client once at startup, pointing
// it at an artifact store, and then calls Assess and Autofill from as many
// goroutines as it likes; every model is loaded during construction and the
// Client is immutable afterwards.
//
// The package exposes no engine-internal types.  Inputs are plain maps keyed
// by canonical field names, results are value structs defined here, and the
// only third-party types in the API belong to the Prometheus client library,
// so a host program can consume the full surface without reaching into
// internal packages.
//
//	c, err := client.NewClient(ctx, "/var/lib/alloyance/models")
//	if err != nil {
//		return err
//	}
//	result, err := c.Assess(ctx, map[string]any{
//		"Process Stage": "Manufacturing",
//		"Technology":    "Emerging",
//	})
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/Alloyance-Intelligence/internal/application/assessment"
	"github.com/turtacn/Alloyance-Intelligence/internal/config"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// Logger is the minimal printf-style logging contract a host satisfies to
// observe client activity.  Structured engine entries are flattened onto the
// same three methods, so one implementation covers both layers.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// noopLogger is the default when no WithLogger option is given.
type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// ─────────────────────────────────────────────────────────────────────────────
// Client
// ─────────────────────────────────────────────────────────────────────────────

// Client wraps a fully-loaded assessment engine.  Safe for concurrent use.
type Client struct {
	cfg       *config.Config
	logger    Logger
	timeout   time.Duration
	metricsOn bool

	engine    *assessment.Engine
	collector prometheus.MetricsCollector
}

// NewClient constructs a client over a filesystem artifact directory.  The
// directory must exist and hold at least the imputer artifact; indicator
// models and the checksum manifest are picked up when present.  Checksum
// verification is on by default, matching the configuration loader.
func NewClient(ctx context.Context, artifactsDir string, opts ...Option) (*Client, error) {
	if artifactsDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "client: artifact directory is required")
	}

	cfg := &config.Config{}
	cfg.Artifacts.Backend = "filesystem"
	cfg.Artifacts.Dir = artifactsDir
	cfg.Artifacts.VerifyChecksums = true
	config.ApplyDefaults(cfg)

	return newClient(ctx, cfg, opts)
}

// NewClientFromEnv constructs a client entirely from ALLOYANCE_* environment
// variables, the 12-factor path for containerised hosts.  The MinIO backend
// is reachable this way: set ALLOYANCE_ARTIFACTS_BACKEND=minio plus the
// ALLOYANCE_ARTIFACTS_MINIO_* variables.
func NewClientFromEnv(ctx context.Context, opts ...Option) (*Client, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "client: environment configuration rejected")
	}
	return newClient(ctx, cfg, opts)
}

func newClient(ctx context.Context, cfg *config.Config, opts []Option) (*Client, error) {
	c := &Client{cfg: cfg, logger: noopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "client: configuration rejected")
	}

	ilog := engineLogger(c.logger).Named("client")

	var metrics *prometheus.AppMetrics
	if c.metricsOn {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			Subsystem:            cfg.Metrics.Subsystem,
			EnableGoMetrics:      cfg.Metrics.EnableGoMetrics,
			EnableProcessMetrics: cfg.Metrics.EnableProcessMetrics,
		}, ilog)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "client: metrics collector construction failed")
		}
		c.collector = collector
		metrics = prometheus.NewAppMetrics(collector)
	}

	engine, err := assessment.NewEngineFromConfig(ctx, cfg, ilog, metrics)
	if err != nil {
		return nil, err
	}
	c.engine = engine

	c.logger.Debugf("alloyance client ready: %d artifacts, %d indicators",
		engine.Models().Len(), len(engine.KPIs()))
	return c, nil
}

// opContext applies the configured per-call timeout.  Context deadlines
// compose by taking the earlier bound, so an existing caller deadline is
// never extended.
func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics surface
// ─────────────────────────────────────────────────────────────────────────────

// MetricsGatherer exposes the client's private metric registry so a host can
// scrape it next to its own collectors.  Without WithMetrics the gatherer is
// empty.
func (c *Client) MetricsGatherer() prom.Gatherer {
	if c.collector == nil {
		return prom.NewRegistry()
	}
	return c.collector.Gatherer()
}

// MetricsHandler returns a scrape handler over the same registry, ready to
// mount on the host's mux:
//
//	mux.Handle("/metrics", c.MetricsHandler())
func (c *Client) MetricsHandler() http.Handler {
	if c.collector == nil {
		return promhttp.HandlerFor(prom.NewRegistry(), promhttp.HandlerOpts{})
	}
	return c.collector.Handler()
}

// ─────────────────────────────────────────────────────────────────────────────
// bridgeLogger — engine logging.Logger on top of the printf Logger
// ─────────────────────────────────────────────────────────────────────────────

// engineLogger wraps the host logger for engine injection, or returns the
// nop implementation when the host did not install one.
func engineLogger(l Logger) logging.Logger {
	if l == nil {
		return logging.NewNopLogger()
	}
	if _, nop := l.(noopLogger); nop {
		return logging.NewNopLogger()
	}
	return &bridgeLogger{sink: l}
}

// bridgeLogger renders structured engine entries as single printf lines of
// the form "name: message key=value key=value".  Debug maps to Debugf, Info
// and Warn to Infof, Error and Fatal to Errorf; the engine never calls Fatal
// on a run path, so no exit semantics are lost in the mapping.
type bridgeLogger struct {
	sink   Logger
	name   string
	fields []logging.Field
}

func (b *bridgeLogger) line(msg string, fields []logging.Field) string {
	var sb strings.Builder
	if b.name != "" {
		sb.WriteString(b.name)
		sb.WriteString(": ")
	}
	sb.WriteString(msg)
	for _, f := range b.fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key, f.Value)
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key, f.Value)
	}
	return sb.String()
}

func (b *bridgeLogger) Debug(msg string, fields ...logging.Field) {
	b.sink.Debugf("%s", b.line(msg, fields))
}

func (b *bridgeLogger) Info(msg string, fields ...logging.Field) {
	b.sink.Infof("%s", b.line(msg, fields))
}

func (b *bridgeLogger) Warn(msg string, fields ...logging.Field) {
	b.sink.Infof("%s", b.line(msg, fields))
}

func (b *bridgeLogger) Error(msg string, fields ...logging.Field) {
	b.sink.Errorf("%s", b.line(msg, fields))
}

func (b *bridgeLogger) Fatal(msg string, fields ...logging.Field) {
	b.sink.Errorf("%s", b.line(msg, fields))
}

func (b *bridgeLogger) With(fields ...logging.Field) logging.Logger {
	merged := make([]logging.Field, 0, len(b.fields)+len(fields))
	merged = append(merged, b.fields...)
	merged = append(merged, fields...)
	return &bridgeLogger{sink: b.sink, name: b.name, fields: merged}
}

func (b *bridgeLogger) Named(name string) logging.Logger {
	full := name
	if b.name != "" {
		full = b.name + "." + name
	}
	return &bridgeLogger{sink: b.sink, name: full, fields: b.fields}
}

//Personal.AI order the ending
