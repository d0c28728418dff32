// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package carousel

import (
	"sync"
	"testing"
	"time"
)

type fakeView struct {
	item int
}

// fakeSurface confirms attach/detach immediately unless a gate is installed.
type fakeSurface struct {
	mu       sync.Mutex
	layout   Layout
	props    map[View]Props
	attached map[View]bool
	attaches int
	detaches int
	gate     chan struct{}
}

func newFakeSurface(width, height, cardWidth, cardHeight float64) *fakeSurface {
	return &fakeSurface{
		layout:   Layout{ViewportWidth: width, ViewportHeight: height, CardWidth: cardWidth, CardHeight: cardHeight},
		props:    make(map[View]Props),
		attached: make(map[View]bool),
	}
}

func (s *fakeSurface) Attach(v View) Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached[v] = true
	s.attaches++
	if s.gate != nil {
		return s.gate
	}
	return Confirmed()
}

func (s *fakeSurface) Detach(v View) Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attached, v)
	s.detaches++
	return Confirmed()
}

func (s *fakeSurface) SetProperties(v View, p Props) {
	s.mu.Lock()
	s.props[v] = p
	s.mu.Unlock()
}

func (s *fakeSurface) BoundingBox(v View) Box {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Bounds(s.props[v])
}

func (s *fakeSurface) ViewportSize() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.ViewportWidth, s.layout.ViewportHeight
}

func (s *fakeSurface) setGate(gate chan struct{}) {
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()
}

func (s *fakeSurface) resize(width, height float64) {
	s.mu.Lock()
	s.layout.ViewportWidth, s.layout.ViewportHeight = width, height
	s.mu.Unlock()
}

func (s *fakeSurface) attachedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attached)
}

func (s *fakeSurface) propsOf(v View) Props {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props[v]
}

// immediateScheduler fires every frame request at once.
type immediateScheduler struct{}

func (immediateScheduler) NextFrame() <-chan struct{} {
	return Confirmed()
}

// countingScheduler fires at once and counts requests.
type countingScheduler struct {
	mu     sync.Mutex
	frames int
}

func (s *countingScheduler) NextFrame() <-chan struct{} {
	s.mu.Lock()
	s.frames++
	s.mu.Unlock()
	return Confirmed()
}

// testSlots is a three-slot half sequence: off-screen left, inner, centre.
func testSlots() []Slot {
	return []Slot{
		{X: -50, Y: 50, Scale: 0.5},
		{X: 40, Y: 50, Scale: 0.8},
		{X: 100, Y: 50, Scale: 1},
	}
}

func testData(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

func testOptions(surface *fakeSurface, data []int) Options[int] {
	return Options[int]{
		Slots:      testSlots(),
		CardWidth:  20,
		CardHeight: 50,
		Data:       data,
		Surface:    surface,
		Scheduler:  immediateScheduler{},
		Create: func(slot Slot, item int, dataIndex int) (View, error) {
			return &fakeView{item: item}, nil
		},
		Update: func(v View, item int) {
			v.(*fakeView).item = item
		},
		Duration: 50 * time.Millisecond,
	}
}

func newTestEngine(t *testing.T, dataLen int) (*Engine[int], *fakeSurface) {
	t.Helper()
	surface := newFakeSurface(100, 40, 20, 50)
	e, err := New(testOptions(surface, testData(dataLen)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Close)
	return e, surface
}

// recorder collects navigation events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) listen(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
