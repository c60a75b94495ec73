package reference

import (
	"fmt"

	"github.com/cwbudde/algo-ecog/electrode"
)

// Remainder selects how SubtractCAR treats the trailing channels that do not
// fill a whole block.
type Remainder int

const (
	// RemainderTemporalMean subtracts each remainder channel's own mean over
	// time.
	RemainderTemporalMean Remainder = iota
	// RemainderBlockMean treats the remainder as a short block and subtracts
	// the per-sample mean across its channels.
	RemainderBlockMean
)

func (r Remainder) String() string {
	switch r {
	case RemainderTemporalMean:
		return "temporal-mean"
	case RemainderBlockMean:
		return "block-mean"
	default:
		return fmt.Sprintf("Remainder(%d)", int(r))
	}
}

type config struct {
	electrodes electrode.Table
	excludeBad bool
	remainder  Remainder
	workers    int
}

// Option configures a reference operation.
type Option func(*config)

// WithElectrodes supplies the electrode table. Its length must equal the
// number of channels.
func WithElectrodes(t electrode.Table) Option {
	return func(cfg *config) {
		cfg.electrodes = t
	}
}

// WithExcludeBad keeps channels flagged bad out of every reference estimate.
// Bad channels are still corrected.
func WithExcludeBad(exclude bool) Option {
	return func(cfg *config) {
		cfg.excludeBad = exclude
	}
}

// WithRemainder sets the remainder block policy of SubtractCAR.
func WithRemainder(r Remainder) Option {
	return func(cfg *config) {
		cfg.remainder = r
	}
}

// WithWorkers processes up to n blocks or groups concurrently. Values below
// one are ignored.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

func applyOptions(opts ...Option) config {
	cfg := config{
		remainder: RemainderTemporalMean,
		workers:   1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// skipMask returns the channels to leave out of reference estimates, or nil
// when nothing is excluded. The electrode table must already be validated.
func (cfg config) skipMask() []bool {
	if !cfg.excludeBad {
		return nil
	}

	return cfg.electrodes.BadMask()
}

// checkElectrodes validates the electrode table against nCh channels.
// required reports whether a missing table is an error.
func (cfg config) checkElectrodes(nCh int, required bool) error {
	if cfg.electrodes == nil {
		if required || cfg.excludeBad {
			return ErrMissingMetadata
		}

		return nil
	}

	if err := cfg.electrodes.Validate(nCh); err != nil {
		return fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}

	return nil
}
