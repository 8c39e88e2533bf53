package actionlog

import "go.uber.org/zap"

// Option configures a Logger at creation time.
type Option func(*loggerConfig)

type loggerConfig struct {
	environment string
	log         *zap.Logger
	failFast    bool
	mirrorPath  string
	spoolDir    string
}

// WithEnvironment tags every event with an environment label
// (e.g. "production", "staging").
func WithEnvironment(env string) Option {
	return func(c *loggerConfig) { c.environment = env }
}

// WithLogger sets the zap logger for absorbed-failure warnings.
// Default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *loggerConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithFailFast makes Log return submission errors to the caller instead of
// absorbing them.
func WithFailFast() Option {
	return func(c *loggerConfig) { c.failFast = true }
}

// WithMirror appends every acknowledged event to a local hash-chained JSONL
// file at path, for offline tamper checks with ledgerctl mirror verify.
func WithMirror(path string) Option {
	return func(c *loggerConfig) { c.mirrorPath = path }
}

// WithSpool queues transport-failed submissions under dir for later
// re-submission with ledgerctl flush.
func WithSpool(dir string) Option {
	return func(c *loggerConfig) { c.spoolDir = dir }
}
