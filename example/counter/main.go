package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/vearne/lockcounter"
	slog "github.com/vearne/simplelog"
)

func incr(c lockcounter.Counter, group *sync.WaitGroup, times int) {
	defer group.Done()
	for i := 0; i < times; i++ {
		err := c.Increment()
		if err != nil {
			slog.Error("error:%v", err)
			return
		}
	}
}

// One spawned goroutine and the main goroutine each increment 50 times.
func main() {
	counter := lockcounter.New(0, lockcounter.Exclusive)

	var wg sync.WaitGroup
	start := time.Now()
	wg.Add(2)
	go incr(counter, &wg, 50)
	incr(counter, &wg, 50)
	wg.Wait()

	value, err := counter.Read()
	if err != nil {
		fmt.Println("error", err)
		return
	}
	fmt.Println("cost", time.Since(start), "value", value)
}
