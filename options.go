package treesort

import "runtime"

const (
	// defaultCountingLimit caps the counting sort frequency table at 16M
	// entries (128 MiB per worker).
	defaultCountingLimit = uint64(1) << 24
)

// Option is a functional option for configuring a Sorter.
type Option func(*sortConfig)

type sortConfig struct {
	workers       int
	strategy      Strategy
	countingLimit uint64
	verify        bool
	metrics       *Metrics
	observer      func(RoundInfo)
}

func defaultSortConfig() *sortConfig {
	return &sortConfig{
		workers:       runtime.GOMAXPROCS(0),
		strategy:      StrategyCounting,
		countingLimit: defaultCountingLimit,
	}
}

// WithWorkers sets the number of partitions, which is also the number of
// local-sort workers. n must be positive.
func WithWorkers(n int) Option {
	return func(c *sortConfig) {
		c.workers = n
	}
}

// WithStrategy selects the local sort algorithm.
// Default is StrategyCounting.
func WithStrategy(s Strategy) Option {
	return func(c *sortConfig) {
		c.strategy = s
	}
}

// WithCountingLimit sets the largest value the counting strategy builds a
// frequency table for. Partitions whose maximum exceeds it are radix sorted
// instead, so the limit bounds memory without rejecting any input.
// Ignored by StrategyRadix.
func WithCountingLimit(maxValue uint64) Option {
	return func(c *sortConfig) {
		c.countingLimit = maxValue
	}
}

// WithVerify enables post-sort verification: the output must be
// non-decreasing and carry the same multiset fingerprint as the input.
// A mismatch fails the sort with ErrVerifyFailed.
func WithVerify(enabled bool) Option {
	return func(c *sortConfig) {
		c.verify = enabled
	}
}

// WithMetrics records every sort run into m.
func WithMetrics(m *Metrics) Option {
	return func(c *sortConfig) {
		c.metrics = m
	}
}

// WithRoundObserver registers fn to be called after the local-sort phase
// (Round 0) and after every merge round, with the shape of the chunk set at
// that point. fn runs on the calling goroutine between phases.
func WithRoundObserver(fn func(RoundInfo)) Option {
	return func(c *sortConfig) {
		c.observer = fn
	}
}
