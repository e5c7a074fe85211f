package flow

import (
	"sync"
	"time"
)

const (
	// CountdownSeconds is the length of the informational session timer.
	CountdownSeconds = 300
	// UrgentSeconds is the threshold below which the timer is shown as urgent.
	UrgentSeconds = 60
)

// countdown is purely informational: reaching zero never changes the flow.
type countdown struct {
	start time.Time
	now   func() time.Time
	ticks chan int
	stop  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

func startCountdown(now func() time.Time, interval time.Duration) *countdown {
	c := &countdown{
		start: now(),
		now:   now,
		ticks: make(chan int, 1),
		stop:  make(chan struct{}),
	}
	c.wg.Add(1)
	go c.run(interval)
	return c
}

func (c *countdown) run(interval time.Duration) {
	defer c.wg.Done()
	defer close(c.ticks)

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			left := c.remaining()
			select {
			case c.ticks <- left:
			default:
				// Slow reader; it sees the next value instead.
			}
			if left == 0 {
				return
			}
		}
	}
}

// remaining returns the whole seconds left, never below zero.
func (c *countdown) remaining() int {
	elapsed := int(c.now().Sub(c.start) / time.Second)
	return max(0, CountdownSeconds-elapsed)
}

// halt stops the ticker goroutine and waits for it to exit.
func (c *countdown) halt() {
	c.once.Do(func() { close(c.stop) })
	c.wg.Wait()
}
