package game

import (
	"sync"
	"time"
)

// Clock counts down the thinking time of one side. It runs from the
// opponent's committed move until the owner's own move is complete.
type Clock struct {
	mu          sync.Mutex
	initial     time.Duration
	timeLeft    time.Duration
	lastStarted time.Time
	isRunning   bool
	now         func() time.Time
}

func newClock(initialTime time.Duration, now func() time.Time) *Clock {
	return &Clock{
		initial:  initialTime,
		timeLeft: initialTime,
		now:      now,
	}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.timeLeft -= c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

func (c *Clock) GetTimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.timeLeft - c.now().Sub(c.lastStarted)
	}
	return c.timeLeft
}

// Expired reports whether the flag has fallen.
func (c *Clock) Expired() bool {
	return c.GetTimeLeft() <= 0
}

// Reset stops the clock and restores the initial allowance.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timeLeft = c.initial
	c.isRunning = false
}
