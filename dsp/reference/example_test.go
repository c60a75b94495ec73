package reference_test

import (
	"fmt"

	"github.com/cwbudde/algo-ecog/dsp/ndarray"
	"github.com/cwbudde/algo-ecog/dsp/reference"
	"github.com/cwbudde/algo-ecog/electrode"
)

func ExampleSubtractCAR() {
	x, _ := ndarray.FromRows([][]float64{{1, 2}, {3, 4}, {10, 10}, {20, 30}})

	y, err := reference.SubtractCAR(x, 2)
	if err != nil {
		panic(err)
	}
	fmt.Println(y.Rows())

	// Output:
	// [[-1 -1] [1 1] [-5 -10] [5 10]]
}

func ExampleSubtractCARByDevice() {
	x, _ := ndarray.FromRows([][]float64{{1, 3}, {3, 5}, {7, 7}})
	tbl := electrode.Table{
		{GroupName: "grid"},
		{GroupName: "grid"},
		{GroupName: "null"},
	}

	y, err := reference.SubtractCARByDevice(x, tbl)
	if err != nil {
		panic(err)
	}
	fmt.Println(y.Rows())

	// Output:
	// [[-1 -1] [1 1] [7 7]]
}

func ExampleSubtractCommonMedian() {
	x, _ := ndarray.FromRows([][]float64{{1, 10}, {2, -4}, {9, 0}})

	y, err := reference.SubtractCommonMedian(x, reference.DefaultChannelAxis)
	if err != nil {
		panic(err)
	}
	fmt.Println(y.Rows())

	// Output:
	// [[-1 10] [0 -4] [7 0]]
}
