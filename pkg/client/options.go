package client

import "time"

// Option is a functional option for configuring the Client.  Options run
// before the configuration is validated and the model bundle is loaded, so
// they can still reshape pipeline behaviour.
type Option func(*Client)

// WithLogger installs a host logger.  Structured engine entries are
// flattened into printf lines on the same interface.  A nil logger is
// ignored.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout caps every Assess and Autofill call.  Zero or negative leaves
// calls bounded only by the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithStrictValidation toggles reject-on-violation screening.  When off,
// violations are logged and the offending cells are handed to the imputer
// as missing.
func WithStrictValidation(strict bool) Option {
	return func(c *Client) {
		c.cfg.Pipeline.StrictValidation = strict
	}
}

// WithPredictorConcurrency bounds the indicator fan-out worker count.
// Values below one are ignored.
func WithPredictorConcurrency(n int) Option {
	return func(c *Client) {
		if n >= 1 {
			c.cfg.Pipeline.PredictorConcurrency = n
		}
	}
}

// WithImputationRounds overrides the refinement round count stored in the
// imputer artifact.  Zero keeps the artifact's own value.
func WithImputationRounds(rounds int) Option {
	return func(c *Client) {
		if rounds > 0 {
			c.cfg.Pipeline.ImputationRounds = rounds
		}
	}
}

// WithChecksumVerification toggles manifest checking at load time.  On by
// default; verification is skipped either way when the store carries no
// manifest.
func WithChecksumVerification(verify bool) Option {
	return func(c *Client) {
		c.cfg.Artifacts.VerifyChecksums = verify
	}
}

// WithMetrics enables Prometheus instrumentation on a private registry,
// exposed through MetricsGatherer and MetricsHandler.
func WithMetrics(enabled bool) Option {
	return func(c *Client) {
		c.metricsOn = enabled
	}
}

//Personal.AI order the ending
