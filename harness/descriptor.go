package harness

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/vearne/lockcounter"
)

// Descriptor describes the workload of one run.
type Descriptor struct {
	Strategy lockcounter.Strategy
	Initial  int64

	Readers         int
	Writers         int
	ReadsPerReader  int
	WritesPerWriter int
}

// DefaultDescriptor is the classic exercise: ten readers reading twenty times
// while one writer increments twenty times.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		Strategy:        lockcounter.Exclusive,
		Readers:         10,
		Writers:         1,
		ReadsPerReader:  20,
		WritesPerWriter: 20,
	}
}

func (d Descriptor) Workers() int {
	return d.Readers + d.Writers
}

func (d Descriptor) Validate() error {
	if !d.Strategy.Valid() {
		return errors.Wrapf(lockcounter.ErrInvalidConfiguration, "unknown strategy %v", d.Strategy)
	}
	if d.Readers < 0 {
		return errors.Wrapf(lockcounter.ErrInvalidConfiguration, "readers must not be negative, got %d", d.Readers)
	}
	if d.Writers < 0 {
		return errors.Wrapf(lockcounter.ErrInvalidConfiguration, "writers must not be negative, got %d", d.Writers)
	}
	if d.ReadsPerReader < 0 {
		return errors.Wrapf(lockcounter.ErrInvalidConfiguration, "reads per reader must not be negative, got %d", d.ReadsPerReader)
	}
	if d.WritesPerWriter < 0 {
		return errors.Wrapf(lockcounter.ErrInvalidConfiguration, "writes per writer must not be negative, got %d", d.WritesPerWriter)
	}
	if d.Readers > math.MaxInt32-d.Writers {
		return errors.Wrapf(lockcounter.ErrInvalidConfiguration, "too many workers: %d readers, %d writers", d.Readers, d.Writers)
	}
	return nil
}

func (c *config) validate(d Descriptor) error {
	for id, op := range c.faultAt {
		if id < 0 || id >= d.Workers() {
			return errors.Wrapf(lockcounter.ErrInvalidConfiguration, "fault worker %d out of range [0, %d)", id, d.Workers())
		}
		if op < 0 {
			return errors.Wrapf(lockcounter.ErrInvalidConfiguration, "fault op must not be negative, got %d", op)
		}
	}
	return nil
}

// CounterFactory builds the counter a run is driven against.
type CounterFactory func(initial int64, strategy lockcounter.Strategy) lockcounter.Counter

// maxPrealloc bounds the observation slice allocated per worker at spawn.
const maxPrealloc = 1024

type config struct {
	record     bool
	hold       time.Duration
	faultAt    map[int]int
	logsPerSec float64
	newCounter CounterFactory
}

func defaultConfig() config {
	return config{newCounter: lockcounter.New}
}

type Option func(*config)

// WithObservations enables the observation log. Recording adds a clock read
// and an append to every critical section.
func WithObservations(record bool) Option {
	return func(c *config) {
		c.record = record
	}
}

// WithHoldTime makes every operation hold the lock for at least d.
func WithHoldTime(d time.Duration) Option {
	return func(c *config) {
		c.hold = d
	}
}

// WithFault makes the given worker panic while holding the lock, right
// before its op-th operation (counting from zero) would run. Run rejects a
// worker index that the descriptor does not spawn.
func WithFault(worker, op int) Option {
	return func(c *config) {
		if c.faultAt == nil {
			c.faultAt = make(map[int]int)
		}
		c.faultAt[worker] = op
	}
}

// WithLogEvery caps per-operation debug logging at perSecond lines.
func WithLogEvery(perSecond float64) Option {
	return func(c *config) {
		c.logsPerSec = perSecond
	}
}

func WithCounterFactory(f CounterFactory) Option {
	return func(c *config) {
		if f != nil {
			c.newCounter = f
		}
	}
}
