package harness

import "github.com/vearne/lockcounter"

// Comparison holds the same workload run once per strategy.
type Comparison struct {
	Exclusive    *RunReport
	ReaderWriter *RunReport
}

// Speedup is how many times faster the reader-writer run finished.
func (c *Comparison) Speedup() float64 {
	if c.ReaderWriter.Elapsed <= 0 {
		return 0
	}
	return float64(c.Exclusive.Elapsed) / float64(c.ReaderWriter.Elapsed)
}

// Compare runs d under the exclusive strategy, then under the reader-writer
// strategy, each against a fresh counter. d.Strategy is ignored.
func Compare(d Descriptor, opts ...Option) (*Comparison, error) {
	h := New(opts...)

	d.Strategy = lockcounter.Exclusive
	ex, err := h.Run(d)
	if err != nil {
		return nil, err
	}

	d.Strategy = lockcounter.ReaderWriter
	rw, err := h.Run(d)
	if err != nil {
		return nil, err
	}
	return &Comparison{Exclusive: ex, ReaderWriter: rw}, nil
}
