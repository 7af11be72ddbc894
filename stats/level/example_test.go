package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-chanfilter/stats/level"
)

func ExampleMeasure() {
	l := level.Measure([]int16{1000, -1000, 1000, -1000})
	fmt.Printf("rms=%.0f peak=%d zc=%d\n", l.RMS, l.Peak, l.ZeroCrossings)

	// Output:
	// rms=1000 peak=1000 zc=3
}
