package main

import (
	"fmt"
	"time"

	"github.com/vearne/lockcounter"
	"github.com/vearne/lockcounter/harness"
)

// Ten readers read twenty times while one writer increments twenty times,
// first behind a mutex and then behind a reader-writer lock.
func main() {
	cmp, err := harness.Compare(harness.DefaultDescriptor(),
		harness.WithObservations(true),
		harness.WithHoldTime(200*time.Microsecond),
	)
	if err != nil {
		fmt.Println("error", err)
		return
	}

	for _, r := range []*harness.RunReport{cmp.Exclusive, cmp.ReaderWriter} {
		fmt.Println(r.Strategy(), "cost", r.Elapsed, "value", r.FinalValue,
			"peak readers", harness.PeakConcurrentReaders(r.Observations))
		for _, o := range r.Observations {
			if o.Op == lockcounter.OpRead {
				fmt.Printf("  %v worker %d read value as %d\n", o.Acquired.Format("15:04:05.000000"), o.Worker, o.Value)
			} else {
				fmt.Printf("  %v worker %d incremented value by 1 to %d\n", o.Acquired.Format("15:04:05.000000"), o.Worker, o.Value)
			}
		}
	}
	fmt.Printf("speedup %.2fx\n", cmp.Speedup())
}
