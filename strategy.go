package treesort

import (
	"errors"
	"fmt"

	sorterrors "github.com/tamirms/treesort/errors"
	"github.com/tamirms/treesort/internal/counting"
	"github.com/tamirms/treesort/internal/radix"
)

// Strategy identifies the algorithm used to sort each partition in place
// during the local-sort phase.
type Strategy uint16

const (
	// StrategyCounting uses a stable counting sort. Memory is proportional to
	// the largest value in a partition, bounded by WithCountingLimit;
	// partitions above the limit are radix sorted instead.
	StrategyCounting Strategy = 0

	// StrategyRadix uses a stable base-10 LSD radix sort. Memory is
	// proportional to the partition length only.
	StrategyRadix Strategy = 1
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyCounting:
		return "counting"
	case StrategyRadix:
		return "radix"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the Strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "counting":
		return StrategyCounting, nil
	case "radix":
		return StrategyRadix, nil
	}
	return 0, fmt.Errorf("%w: %q", sorterrors.ErrInvalidStrategy, name)
}

// localSorter sorts one partition in place by key.
//
// Implementations are stable and stateless, so a single instance is shared by
// every local-sort worker. An empty slice is a valid no-op input.
type localSorter[T any] interface {
	Sort(data []T) error
}

// newLocalSorter creates the local sorter for a strategy.
// Returns ErrInvalidStrategy if the strategy is unknown.
func newLocalSorter[T any](s Strategy, key func(T) uint64, countingLimit uint64) (localSorter[T], error) {
	switch s {
	case StrategyCounting:
		return &boundedCounting[T]{
			counting: counting.New(key, countingLimit),
			radix:    radix.New(key),
		}, nil
	case StrategyRadix:
		return radix.New(key), nil
	}
	return nil, fmt.Errorf("%w: strategy ID %d", sorterrors.ErrInvalidStrategy, uint16(s))
}

// boundedCounting counting-sorts a partition unless its frequency table would
// exceed the counting limit, in which case the partition is radix sorted.
// Both sorts are stable, so the fallback is invisible in the output.
type boundedCounting[T any] struct {
	counting *counting.Sorter[T]
	radix    *radix.Sorter[T]
}

func (s *boundedCounting[T]) Sort(data []T) error {
	err := s.counting.Sort(data)
	if errors.Is(err, sorterrors.ErrValueRangeTooLarge) {
		// Rejected before any write; data is still the original partition.
		return s.radix.Sort(data)
	}
	return err
}
