package lockcounter

import (
	"github.com/pkg/errors"
	slog "github.com/vearne/simplelog"
	"go.uber.org/atomic"
)

// cell is the state shared by every handle of one counter.
type cell struct {
	value int64
	// poison is read by concurrent readers under ReaderWriter, so it cannot
	// live under the lock like value does.
	poison atomic.Error
}

// BaseCounter holds the guarded cell and the handle's hook. The embedding
// type supplies the lock and must hold it around increment and read.
type BaseCounter struct {
	cell *cell
	hook Hook
}

func newBaseCounter(initial int64) BaseCounter {
	return BaseCounter{cell: &cell{value: initial}, hook: noopHook{}}
}

func (b *BaseCounter) Poisoned() bool {
	return b.cell.poison.Load() != nil
}

func (b *BaseCounter) increment() error {
	if err := b.cell.poison.Load(); err != nil {
		return err
	}
	done := false
	defer b.poisonUnlessDone(OpIncrement, &done)

	b.hook.OnAcquire(OpIncrement)
	v := b.cell.value
	v++
	b.cell.value = v
	b.hook.OnRelease(OpIncrement, v)
	done = true
	return nil
}

func (b *BaseCounter) read() (int64, error) {
	if err := b.cell.poison.Load(); err != nil {
		return 0, err
	}
	done := false
	defer b.poisonUnlessDone(OpRead, &done)

	b.hook.OnAcquire(OpRead)
	v := b.cell.value
	b.hook.OnRelease(OpRead, v)
	done = true
	return v, nil
}

// poisonUnlessDone must be deferred directly inside the critical section.
// A holder that leaves before setting done, by panic or runtime.Goexit,
// poisons the cell. A panic keeps unwinding after the cell is marked, so the
// caller's deferred unlock still runs.
func (b *BaseCounter) poisonUnlessDone(op Op, done *bool) {
	if *done {
		return
	}
	r := recover()
	if r == nil {
		b.cell.poison.Store(errors.WithMessagef(ErrLockPoisoned, "holder exited during %s", op))
		slog.Error("counter poisoned, op:%v, holder exited", op)
		return
	}
	b.cell.poison.Store(errors.WithMessagef(ErrLockPoisoned, "holder panicked during %s: %v", op, r))
	slog.Error("counter poisoned, op:%v, panic:%v", op, r)
	panic(r)
}
