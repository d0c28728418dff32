// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/frameclock/clock.go
// Summary: Frame scheduler that wakes transition waiters before each redraw.
// Usage: Pass a Clock as the carousel scheduler; onFrame asks the host to draw.
// Notes: A frame is only armed while someone waits for it, so an idle
// carousel costs no timers.

package frameclock

import (
	"sync"
	"time"
)

// DefaultInterval is one frame at 60 frames per second.
const DefaultInterval = 16 * time.Millisecond

var closed = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Clock batches frame requests into one timer per frame.
type Clock struct {
	mu       sync.Mutex
	interval time.Duration
	onFrame  func()
	pending  chan struct{}
	timer    *time.Timer
	frames   uint64
	stopped  bool
}

// New returns a clock firing every interval while frames are requested.
// onFrame runs after waiters are released, typically to request a redraw.
func New(interval time.Duration, onFrame func()) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Clock{interval: interval, onFrame: onFrame}
}

// NextFrame returns a channel closed at the next frame. After Stop it returns
// an already-closed channel so pending transitions finish promptly.
func (c *Clock) NextFrame() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return closed
	}
	if c.pending == nil {
		c.pending = make(chan struct{})
		c.timer = time.AfterFunc(c.interval, c.fire)
	}
	return c.pending
}

func (c *Clock) fire() {
	c.mu.Lock()
	ch := c.pending
	c.pending = nil
	c.timer = nil
	c.frames++
	onFrame := c.onFrame
	c.mu.Unlock()

	if ch != nil {
		close(ch)
	}
	if onFrame != nil {
		onFrame()
	}
}

// Frames returns how many frames have fired.
func (c *Clock) Frames() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Stop cancels the armed frame and releases its waiters.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.pending != nil {
		close(c.pending)
		c.pending = nil
	}
}

// Immediate fires every frame request at once. Headless runs use it to play
// transitions without waiting on wall-clock time.
type Immediate struct{}

// NextFrame returns a closed channel.
func (Immediate) NextFrame() <-chan struct{} {
	return closed
}
