// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/events.go
// Summary: Navigation events and disposable listener registrations.

package carousel

import (
	"sort"
	"sync"
)

// EventType identifies a navigation notification.
type EventType int

const (
	// NavigationStarted carries the centre index before the step.
	NavigationStarted EventType = iota
	// NavigationEnded carries the centre index after the step.
	NavigationEnded
)

func (t EventType) String() string {
	switch t {
	case NavigationStarted:
		return "navigation.started"
	case NavigationEnded:
		return "navigation.ended"
	}
	return "navigation.unknown"
}

// Event is delivered to subscribers around every navigation step.
type Event struct {
	Type            EventType
	Direction       Direction
	CentreDataIndex int
}

// Listener receives navigation events on the navigating goroutine.
type Listener func(Event)

// Handle is an explicit registration owned by a carousel instance.
type Handle struct {
	once    sync.Once
	release func()
}

func newHandle(release func()) *Handle {
	return &Handle{release: release}
}

// Dispose removes the registration. Calling it again is a no-op.
func (h *Handle) Dispose() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		if h.release != nil {
			h.release()
		}
	})
}

type emitter struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
}

func newEmitter() *emitter {
	return &emitter{listeners: make(map[int]Listener)}
}

func (e *emitter) subscribe(fn Listener) (int, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return id, func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// emit calls listeners in subscription order.
func (e *emitter) emit(ev Event) {
	e.mu.RLock()
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, e.listeners[id])
	}
	e.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
