package lockcounter

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Counter is an integer counter guarded by a locking strategy.
type Counter interface {
	// Increment adds one to the counter under the write lock.
	Increment() error
	// Read returns the value seen while holding the lock the strategy uses for reads.
	Read() (int64, error)
	Strategy() Strategy
	// Poisoned reports whether a holder panicked inside the critical section.
	Poisoned() bool
	// WithHook returns a handle that shares the lock and value with its receiver
	// and reports every critical section to h.
	WithHook(h Hook) Counter
}

type Strategy int

const (
	Exclusive Strategy = iota
	ReaderWriter
)

func (s Strategy) String() string {
	switch s {
	case Exclusive:
		return "exclusive"
	case ReaderWriter:
		return "reader-writer"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

func (s Strategy) Valid() bool {
	return s == Exclusive || s == ReaderWriter
}

// ParseStrategy maps a strategy name to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "exclusive", "mutex":
		return Exclusive, nil
	case "reader-writer", "readerwriter", "rw", "rwlock":
		return ReaderWriter, nil
	}
	return Exclusive, errors.Wrapf(ErrInvalidConfiguration, "unknown strategy %q", name)
}

type Op int

const (
	OpRead Op = iota
	OpIncrement
)

func (o Op) String() string {
	if o == OpIncrement {
		return "increment"
	}
	return "read"
}

// Hook observes critical sections. Both methods run while the lock is held,
// so a slow hook extends the time the lock is held.
type Hook interface {
	OnAcquire(op Op)
	OnRelease(op Op, value int64)
}

type noopHook struct{}

func (noopHook) OnAcquire(Op)        {}
func (noopHook) OnRelease(Op, int64) {}

func orNoop(h Hook) Hook {
	if h == nil {
		return noopHook{}
	}
	return h
}

// New creates a counter starting at initial and guarded by strategy.
// It panics if strategy is not Exclusive or ReaderWriter.
func New(initial int64, strategy Strategy) Counter {
	switch strategy {
	case Exclusive:
		return NewExclusiveCounter(initial)
	case ReaderWriter:
		return NewReaderWriterCounter(initial)
	default:
		panic(fmt.Sprintf("lockcounter: unknown strategy %v", strategy))
	}
}
