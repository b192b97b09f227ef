package mbst

import (
	"log/slog"

	"github.com/jrhy/mbst/internal/telemetry"
)

// config collects everything an Option can set, mirroring mast.RemoteConfig's
// shape (pluggable hashing, a node cache) minus the fields that named a
// remote store.
type config struct {
	algorithm HashAlgorithm
	hashFunc  HashFunc
	logger    *slog.Logger
	cacheSize int
}

// Option configures a Tree at construction time, following the
// Option func(*T) pattern used throughout the pack (e.g.
// robusthttp.Option, blockberry/node.Option).
type Option func(*config)

// WithHashAlgorithm selects one of the built-in digest functions. The
// default is SHA256.
func WithHashAlgorithm(algo HashAlgorithm) Option {
	return func(c *config) { c.algorithm = algo }
}

// WithHashFunc installs a user-supplied digest function, overriding
// WithHashAlgorithm. It must be pure and deterministic (spec.md §6).
func WithHashFunc(fn HashFunc) Option {
	return func(c *config) { c.hashFunc = fn }
}

// WithLogger sets the logger the tree uses for its debug-level structural
// tracing (rotations, inserts, deletes, audit proofs). The default discards
// everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithHashCacheSize sets the capacity of the LRU that memoizes H(key)
// results. The default is 1024 entries.
func WithHashCacheSize(n int) Option {
	return func(c *config) { c.cacheSize = n }
}

func buildConfig(opts []Option) *config {
	c := &config{algorithm: SHA256}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = telemetry.NewNopLogger()
	}
	return c
}

func (c *config) resolveHashFunc() (HashFunc, error) {
	if c.hashFunc != nil {
		return c.hashFunc, nil
	}
	return builtinHashFunc(c.algorithm)
}
