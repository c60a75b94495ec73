// Package synth generates deterministic multi-channel recordings with known
// shared components, for exercising and demonstrating reference removal.
package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ecog/dsp/ndarray"
	"github.com/cwbudde/algo-ecog/electrode"
)

// Generator creates deterministic recordings from a shared configuration.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSampleRate sets the sample rate in Hz. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) Option {
	return func(g *Generator) {
		if sampleRate > 0 {
			g.sampleRate = sampleRate
		}
	}
}

// WithSeed sets the deterministic random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator at 1 kHz with seed 1 unless configured.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		sampleRate: 1000,
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// SampleRate returns the sample rate in Hz.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Seed returns the random seed.
func (g *Generator) Seed() int64 { return g.seed }

// Layout describes a synthetic recording.
type Layout struct {
	Channels int
	Samples  int

	// Devices splits the channels into this many contiguous groups named
	// "grid0", "grid1", ... Zero means one device.
	Devices int

	// CommonAmplitude and CommonFreqHz set the shared interference added to
	// every channel of a device. Each device gets its own phase.
	CommonAmplitude float64
	CommonFreqHz    float64

	// ChannelAmplitude scales each channel's own oscillation, at a random
	// frequency between 4 and 40 Hz.
	ChannelAmplitude float64

	// NoiseAmplitude scales independent white noise in [-a, a].
	NoiseAmplitude float64

	// Bad channels are flagged in the table and carry BadAmplitude of extra
	// noise. Dead channels are flagged and filled with NaN.
	Bad          []int
	BadAmplitude float64
	Dead         []int

	// NullChannels are assigned to the "null" group and carry no shared
	// interference.
	NullChannels []int
}

// Recording returns a [channels, time] array and its electrode table.
func (g *Generator) Recording(l Layout) (*ndarray.Array, electrode.Table, error) {
	if l.Channels <= 0 {
		return nil, nil, fmt.Errorf("recording channels must be > 0: %d", l.Channels)
	}
	if l.Samples <= 0 {
		return nil, nil, fmt.Errorf("recording samples must be > 0: %d", l.Samples)
	}
	if l.Devices < 0 || l.Devices > l.Channels {
		return nil, nil, fmt.Errorf("recording devices must be in [0, %d]: %d", l.Channels, l.Devices)
	}
	for _, set := range [][]int{l.Bad, l.Dead, l.NullChannels} {
		for _, ch := range set {
			if ch < 0 || ch >= l.Channels {
				return nil, nil, fmt.Errorf("recording channel %d out of range [0, %d)", ch, l.Channels)
			}
		}
	}

	devices := l.Devices
	if devices == 0 {
		devices = 1
	}

	rng := rand.New(rand.NewSource(g.seed))
	tbl := make(electrode.Table, l.Channels)
	perDevice := (l.Channels + devices - 1) / devices
	for ch := range tbl {
		tbl[ch] = electrode.Electrode{
			Label:     fmt.Sprintf("E%d", ch+1),
			GroupName: fmt.Sprintf("grid%d", ch/perDevice),
			Location:  [3]float64{float64(ch % 8), float64(ch / 8), 0},
		}
	}
	for _, ch := range l.NullChannels {
		tbl[ch].GroupName = electrode.NullGroupPrefix
	}

	phases := make([]float64, devices)
	for d := range phases {
		phases[d] = rng.Float64() * 2 * math.Pi
	}

	x, err := ndarray.New(l.Channels, l.Samples)
	if err != nil {
		return nil, nil, err
	}

	commonStep := 2 * math.Pi * l.CommonFreqHz / g.sampleRate
	for ch := 0; ch < l.Channels; ch++ {
		freq := 4 + rng.Float64()*36
		step := 2 * math.Pi * freq / g.sampleRate
		phase := phases[ch/perDevice]
		shared := l.CommonAmplitude
		if electrode.IsNullGroup(tbl[ch].GroupName) {
			shared = 0
		}

		row := x.Row(ch)
		for i := range row {
			row[i] = l.ChannelAmplitude*math.Sin(step*float64(i)) +
				shared*math.Sin(commonStep*float64(i)+phase) +
				(rng.Float64()*2-1)*l.NoiseAmplitude
		}
	}

	for _, ch := range l.Bad {
		tbl[ch].Bad = true
		row := x.Row(ch)
		for i := range row {
			row[i] += (rng.Float64()*2 - 1) * l.BadAmplitude
		}
	}

	nan := math.NaN()
	for _, ch := range l.Dead {
		tbl[ch].Bad = true
		row := x.Row(ch)
		for i := range row {
			row[i] = nan
		}
	}

	return x, tbl, nil
}
