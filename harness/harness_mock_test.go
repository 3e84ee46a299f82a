package harness

import (
	"errors"
	"runtime"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/vearne/lockcounter"
)

func TestWorkerFailuresAreReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	counter := NewMockCounter(ctrl)

	counter.EXPECT().WithHook(gomock.Any()).Return(counter).Times(3)
	// one reader fails, the final read after the join fails the same way
	counter.EXPECT().Read().Return(int64(0), errors.New("stale state")).Times(2)
	counter.EXPECT().Increment().DoAndReturn(func() error {
		panic("kaboom")
	}).Times(1)
	counter.EXPECT().Increment().Return(nil).Times(5)

	factory := func(int64, lockcounter.Strategy) lockcounter.Counter { return counter }
	d := Descriptor{
		Strategy:        lockcounter.Exclusive,
		Readers:         1,
		ReadsPerReader:  5,
		Writers:         2,
		WritesPerWriter: 5,
	}
	report, err := Run(d, WithCounterFactory(factory))
	assert.NoError(t, err)
	assert.Equal(t, CompletedWithError, report.State)
	assert.Equal(t, 3, report.Joined)

	reader := report.Workers[0]
	assert.True(t, errors.Is(reader.Err, lockcounter.ErrWorkerFailure))
	assert.Contains(t, reader.Err.Error(), "stale state")
	assert.Equal(t, 0, reader.Ops)

	var panicked, clean int
	for _, w := range report.Workers[1:] {
		if w.Err != nil {
			assert.True(t, errors.Is(w.Err, lockcounter.ErrWorkerFailure))
			assert.Contains(t, w.Err.Error(), "kaboom")
			panicked++
		} else {
			assert.Equal(t, 5, w.Ops)
			clean++
		}
	}
	// whichever writer drew the panicking call stopped, the other one finished
	assert.Equal(t, 1, panicked)
	assert.Equal(t, 1, clean)

	assert.Error(t, report.FinalErr)
	assert.Len(t, report.Failures(), 3)
}

func TestPoisonedErrorsKeepTheirKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	counter := NewMockCounter(ctrl)

	poisoned := lockcounter.ErrLockPoisoned
	counter.EXPECT().WithHook(gomock.Any()).Return(counter).AnyTimes()
	counter.EXPECT().Read().Return(int64(0), poisoned).AnyTimes()

	factory := func(int64, lockcounter.Strategy) lockcounter.Counter { return counter }
	report, err := Run(Descriptor{Readers: 2, ReadsPerReader: 3}, WithCounterFactory(factory))
	assert.NoError(t, err)

	for _, w := range report.Workers {
		assert.True(t, errors.Is(w.Err, lockcounter.ErrLockPoisoned))
		assert.False(t, errors.Is(w.Err, lockcounter.ErrWorkerFailure))
	}
	assert.True(t, errors.Is(report.Err(), lockcounter.ErrLockPoisoned))
}

func TestWorkerExitIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	counter := NewMockCounter(ctrl)

	counter.EXPECT().WithHook(gomock.Any()).Return(counter).Times(1)
	counter.EXPECT().Increment().Return(nil).Times(2)
	counter.EXPECT().Increment().DoAndReturn(func() error {
		runtime.Goexit()
		return nil
	}).Times(1)
	counter.EXPECT().Read().Return(int64(2), nil).Times(1)

	factory := func(int64, lockcounter.Strategy) lockcounter.Counter { return counter }
	report, err := Run(Descriptor{Writers: 1, WritesPerWriter: 10}, WithCounterFactory(factory))
	assert.NoError(t, err)
	assert.Equal(t, CompletedWithError, report.State)
	assert.Equal(t, 1, report.Joined)

	w := report.Workers[0]
	assert.Equal(t, 2, w.Ops)
	assert.True(t, errors.Is(w.Err, lockcounter.ErrWorkerFailure))
	assert.Contains(t, w.Err.Error(), "stopped after 2/10 ops")
	assert.True(t, report.Failed())
}
