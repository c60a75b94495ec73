package reference

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-ecog/internal/testutil"
)

var benchSizes = []struct {
	channels int
	samples  int
}{
	{64, 1024},
	{256, 4096},
}

func BenchmarkSubtractCAR(b *testing.B) {
	for _, sz := range benchSizes {
		x := testutil.NoisyRecording(1, sz.channels, sz.samples, 1)
		for _, workers := range []int{1, 4} {
			b.Run(fmt.Sprintf("%dx%d/w%d", sz.channels, sz.samples, workers), func(b *testing.B) {
				b.SetBytes(int64(x.Len() * 8))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := SubtractCAR(x, DefaultBlockSize, WithWorkers(workers)); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkSubtractCARByDevice(b *testing.B) {
	for _, sz := range benchSizes {
		x := testutil.NoisyRecording(1, sz.channels, sz.samples, 1)
		groups := make([]string, sz.channels)
		for i := range groups {
			groups[i] = fmt.Sprintf("grid%d", i/32)
		}
		tbl := testutil.Electrodes(groups...)

		b.Run(fmt.Sprintf("%dx%d", sz.channels, sz.samples), func(b *testing.B) {
			b.SetBytes(int64(x.Len() * 8))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := SubtractCARByDevice(x, tbl); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSubtractCommonMedian(b *testing.B) {
	for _, sz := range benchSizes {
		x := testutil.NoisyRecording(1, sz.channels, sz.samples, 1)

		b.Run(fmt.Sprintf("%dx%d", sz.channels, sz.samples), func(b *testing.B) {
			b.SetBytes(int64(x.Len() * 8))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := SubtractCommonMedian(x, DefaultChannelAxis); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
