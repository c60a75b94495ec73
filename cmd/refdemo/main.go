// Command refdemo synthesizes a multi-channel recording with shared
// interference and reports how well each re-referencing method removes it.
//
// Usage:
//
//	refdemo [flags] [method ...]
//
// Without arguments it runs every method.
//
// Examples:
//
//	refdemo car median
//	refdemo -channels 128 -devices 8 device
//	refdemo -bad 3,17 -exclude car device
//	refdemo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-ecog/dsp/ndarray"
	"github.com/cwbudde/algo-ecog/dsp/reference"
	"github.com/cwbudde/algo-ecog/dsp/synth"
	"github.com/cwbudde/algo-ecog/electrode"
	"github.com/cwbudde/algo-ecog/stats/crosschannel"
)

type settings struct {
	block   int
	exclude bool
	workers int
}

type method struct {
	name  string
	apply func(x *ndarray.Array, tbl electrode.Table, s settings) (*ndarray.Array, error)
}

var registry = []method{
	{"none", func(x *ndarray.Array, _ electrode.Table, _ settings) (*ndarray.Array, error) {
		return x.Clone(), nil
	}},
	{"car", func(x *ndarray.Array, tbl electrode.Table, s settings) (*ndarray.Array, error) {
		return reference.SubtractCAR(x, s.block, s.options(tbl)...)
	}},
	{"car-block", func(x *ndarray.Array, tbl electrode.Table, s settings) (*ndarray.Array, error) {
		opts := append(s.options(tbl), reference.WithRemainder(reference.RemainderBlockMean))
		return reference.SubtractCAR(x, s.block, opts...)
	}},
	{"device", func(x *ndarray.Array, tbl electrode.Table, s settings) (*ndarray.Array, error) {
		return reference.SubtractCARByDevice(x, tbl, s.options(tbl)...)
	}},
	{"median", func(x *ndarray.Array, tbl electrode.Table, s settings) (*ndarray.Array, error) {
		if s.exclude {
			masked, err := electrode.MaskBad(x, tbl)
			if err != nil {
				return nil, err
			}
			x = masked
		}
		return reference.SubtractCommonMedian(x, reference.DefaultChannelAxis)
	}},
}

func (s settings) options(tbl electrode.Table) []reference.Option {
	return []reference.Option{
		reference.WithElectrodes(tbl),
		reference.WithExcludeBad(s.exclude),
		reference.WithWorkers(s.workers),
	}
}

func main() {
	channels := flag.Int("channels", 64, "number of channels")
	samples := flag.Int("samples", 2000, "samples per channel")
	devices := flag.Int("devices", 4, "number of recording devices")
	block := flag.Int("block", reference.DefaultBlockSize, "CAR block size in channels")
	rate := flag.Float64("rate", 1000, "sample rate in Hz")
	line := flag.Float64("line", 60, "shared interference frequency in Hz")
	common := flag.Float64("common", 5, "shared interference amplitude")
	seed := flag.Int64("seed", 1, "random seed")
	bad := flag.String("bad", "", "comma-separated bad channel indices")
	dead := flag.String("dead", "", "comma-separated dead (NaN) channel indices")
	exclude := flag.Bool("exclude", false, "exclude bad channels from reference estimates")
	workers := flag.Int("workers", 1, "blocks or devices processed concurrently")
	list := flag.Bool("list", false, "list available methods")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: refdemo [flags] [method ...]\n\n")
		fmt.Fprintf(os.Stderr, "Reports residual shared signal after each re-referencing method.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	badIdx, err := parseIndices(*bad)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: -bad: %v\n", err)
		os.Exit(2)
	}
	deadIdx, err := parseIndices(*dead)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: -dead: %v\n", err)
		os.Exit(2)
	}

	methods := resolveMethods(flag.Args())
	if len(methods) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching methods\n")
		os.Exit(1)
	}

	g := synth.NewGenerator(synth.WithSampleRate(*rate), synth.WithSeed(*seed))
	x, tbl, err := g.Recording(synth.Layout{
		Channels:         *channels,
		Samples:          *samples,
		Devices:          *devices,
		CommonAmplitude:  *common,
		CommonFreqHz:     *line,
		ChannelAmplitude: 1,
		NoiseAmplitude:   0.5,
		Bad:              badIdx,
		BadAmplitude:     50,
		Dead:             deadIdx,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s := settings{block: *block, exclude: *exclude, workers: *workers}
	if err := printAnalysis(methods, x, tbl, s); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList() {
	names := make([]string, len(registry))
	for i, m := range registry {
		names[i] = m.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolveMethods(names []string) []method {
	if len(names) == 0 {
		return registry
	}

	byName := make(map[string]method, len(registry))
	for _, m := range registry {
		byName[m.name] = m
	}

	var result []method
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		m, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown method %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, m)
	}
	return result
}

func parseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var idx []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad channel index %q: %w", part, err)
		}
		idx = append(idx, v)
	}
	return idx, nil
}

func printAnalysis(methods []method, x *ndarray.Array, tbl electrode.Table, s settings) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Method\tMean Corr\tMean RMS\tNaN Channels\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t---------\t--------\t------------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, m := range methods {
		y, err := m.apply(x, tbl, s)
		if err != nil {
			return fmt.Errorf("%s: %w", m.name, err)
		}

		var rmsSum float64
		rmsN, nanCh := 0, 0
		for _, sum := range crosschannel.Summarize(y) {
			if sum.Finite == 0 {
				nanCh++
				continue
			}
			if !math.IsNaN(sum.RMS) {
				rmsSum += sum.RMS
				rmsN++
			}
		}
		meanRMS := math.NaN()
		if rmsN > 0 {
			meanRMS = rmsSum / float64(rmsN)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%d\n",
			m.name,
			crosschannel.MeanCorrelation(y),
			meanRMS,
			nanCh,
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
