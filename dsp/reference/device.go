package reference

import (
	"github.com/cwbudde/algo-ecog/dsp/ndarray"
	"github.com/cwbudde/algo-ecog/electrode"
)

// SubtractCARByDevice subtracts a common average reference computed
// separately for every recording device in the electrode table.
//
// Channels of groups whose name starts with electrode.NullGroupPrefix are
// returned unchanged. WithExcludeBad(true) leaves bad channels out of their
// device's reference; they are still corrected. A WithElectrodes option is
// ignored in favor of the electrodes argument.
func SubtractCARByDevice(x *ndarray.Array, electrodes electrode.Table, opts ...Option) (*ndarray.Array, error) {
	refs, err := EstimateCARByDevice(x, electrodes, opts...)
	if err != nil {
		return nil, err
	}

	return Apply(x, refs, opts...)
}

// EstimateCARByDevice returns one reference per non-null device group, in
// first-occurrence order of the group names.
func EstimateCARByDevice(x *ndarray.Array, electrodes electrode.Table, opts ...Option) ([]Reference, error) {
	if err := checkMatrix(x); err != nil {
		return nil, err
	}

	cfg := applyOptions(append(opts[:len(opts):len(opts)], WithElectrodes(electrodes))...)
	if err := cfg.checkElectrodes(x.Dim(0), true); err != nil {
		return nil, err
	}

	var refs []Reference
	for _, g := range electrodes.Groups() {
		if g.Null() {
			continue
		}

		refs = append(refs, Reference{Name: g.Name, Channels: g.Indices})
	}

	skip := cfg.skipMask()
	run(cfg.workers, len(refs), func(k int) {
		refs[k].Signal = channelMean(x, refs[k].Channels, skip)
	})

	return refs, nil
}
