package lockcounter

import "sync"

// ReaderWriterCounter lets readers share the lock while writers hold it alone.
type ReaderWriterCounter struct {
	BaseCounter
	mu *sync.RWMutex
}

func NewReaderWriterCounter(initial int64) *ReaderWriterCounter {
	return &ReaderWriterCounter{
		BaseCounter: newBaseCounter(initial),
		mu:          &sync.RWMutex{},
	}
}

func (c *ReaderWriterCounter) Increment() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.increment()
}

func (c *ReaderWriterCounter) Read() (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.read()
}

func (c *ReaderWriterCounter) Strategy() Strategy {
	return ReaderWriter
}

func (c *ReaderWriterCounter) WithHook(h Hook) Counter {
	handle := *c
	handle.hook = orNoop(h)
	return &handle
}
