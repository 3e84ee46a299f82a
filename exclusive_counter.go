package lockcounter

import "sync"

// ExclusiveCounter serializes readers and writers behind one mutex.
type ExclusiveCounter struct {
	BaseCounter
	mu *sync.Mutex
}

func NewExclusiveCounter(initial int64) *ExclusiveCounter {
	return &ExclusiveCounter{
		BaseCounter: newBaseCounter(initial),
		mu:          &sync.Mutex{},
	}
}

func (c *ExclusiveCounter) Increment() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.increment()
}

// Read takes the same lock as Increment.
func (c *ExclusiveCounter) Read() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

func (c *ExclusiveCounter) Strategy() Strategy {
	return Exclusive
}

func (c *ExclusiveCounter) WithHook(h Hook) Counter {
	handle := *c
	handle.hook = orNoop(h)
	return &handle
}
