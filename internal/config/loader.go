package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all engine settings.
const envPrefix = "ALLOYANCE"

// Sentinel errors for callers that need to distinguish load failure modes.
var (
	ErrFileNotFound = errors.New("config file not found")
	ErrParse        = errors.New("config parse error")
	ErrValidation   = errors.New("config validation error")
)

// configKeys lists every recognised configuration key.  Each key is bound to
// its environment variable explicitly because viper's AutomaticEnv alone does
// not surface env-only keys to Unmarshal.
var configKeys = []string{
	"artifacts.backend",
	"artifacts.dir",
	"artifacts.verify_checksums",
	"artifacts.minio.endpoint",
	"artifacts.minio.access_key",
	"artifacts.minio.secret_key",
	"artifacts.minio.bucket",
	"artifacts.minio.prefix",
	"artifacts.minio.use_ssl",
	"artifacts.minio.connect_timeout",
	"pipeline.strict_validation",
	"pipeline.predictor_concurrency",
	"pipeline.imputation_rounds",
	"dataset.rows",
	"dataset.seed",
	"dataset.missing_rate",
	"dataset.output",
	"log.level",
	"log.format",
	"log.output_paths",
	"log.error_output_paths",
	"metrics.enabled",
	"metrics.namespace",
	"metrics.subsystem",
	"metrics.enable_go_metrics",
	"metrics.enable_process_metrics",
}

// newViper builds a pre-configured Viper instance with the engine's standard
// settings: YAML file type, ALLOYANCE_ env prefix, automatic env binding, and
// a key replacer that maps "." → "_" so that nested keys like "artifacts.dir"
// resolve to "ALLOYANCE_ARTIFACTS_DIR".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
	// Boolean with a true default; a struct zero value cannot express it.
	v.SetDefault("artifacts.verify_checksums", true)
	return v
}

// Load reads the YAML file at configPath, merges any ALLOYANCE_* environment
// variable overrides, applies engine defaults for unset fields, and validates
// the result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: %q: %v", ErrParse, configPath, err)
		}
		return nil, fmt.Errorf("%w: %q: %v", ErrFileNotFound, configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from ALLOYANCE_* environment
// variables, with no config file required.  This is the preferred loading
// strategy for containerised (12-factor) deployments.
//
// Environment variable naming convention:
//
//	ALLOYANCE_<SECTION>_<FIELD>   e.g.  ALLOYANCE_ARTIFACTS_DIR
func LoadFromEnv() (*Config, error) {
	v := newViper()
	// No config file — rely solely on env vars and defaults.
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, validates the result, and publishes it as the process-wide
// configuration.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	setGlobal(cfg)
	return cfg, nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always
// fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

// ─────────────────────────────────────────────────────────────────────────────
// Process-wide configuration access
// ─────────────────────────────────────────────────────────────────────────────

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

func setGlobal(cfg *Config) {
	globalMu.Lock()
	globalCfg = cfg
	globalMu.Unlock()
}

// Get returns the most recently loaded configuration, or nil when no
// configuration has been loaded yet.  Constructor injection is preferred;
// Get exists for code paths with no access to the loading site.
func Get() *Config {
	globalMu.RLock()
	cfg := globalCfg
	globalMu.RUnlock()
	return cfg
}

//Personal.AI order the ending
