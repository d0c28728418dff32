// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/engine.go
// Summary: Navigation engine orchestrating spawn, window shift and transitions.
// Usage: Build with New, drive with Next/Prev (or the control bus), tear down
// with Close.
// Notes: Only one navigation step is ever in flight. Requests made while a
// step runs are dropped, not queued.

package carousel

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/framegrace/texelcarousel/easing"
)

// DefaultDuration is the transition length used when Options.Duration is zero.
const DefaultDuration = 300 * time.Millisecond

// Direction selects which way the window moves.
type Direction int

const (
	Backward Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "next"
	}
	return "prev"
}

// Options configures a carousel instance.
type Options[T any] struct {
	// Slots is the half sequence from the left off-screen slot to the centre.
	// It is mirrored to build the full slot list and must have an odd length.
	Slots []Slot
	// CardWidth and CardHeight are percentages of the viewport.
	CardWidth  float64
	CardHeight float64
	Data       []T

	Surface   Surface
	Scheduler Scheduler
	Create    CardFactory[T]
	Update    CardUpdater[T]

	Duration time.Duration
	Easing   Easing
	// StartIndex is the data index shown in the centre slot initially.
	StartIndex int
}

// Engine is one carousel instance.
type Engine[T any] struct {
	surface          Surface
	data             []T
	slots            []Slot
	diffCentreBorder int
	indices          IndexMapper
	pool             *CardPool[T]
	runner           *TransitionRunner[T]
	events           *emitter
	controls         *controlBus

	// mu guards the window state between suspension points of a step.
	mu      sync.Mutex
	slotMap *SlotMap
	centre  int
	layout  Layout

	animating atomic.Bool
	closed    atomic.Bool
	inflight  sync.WaitGroup

	handlesMu sync.Mutex
	handles   []*Handle
	closeOnce sync.Once
}

// New validates opts, builds the slot window and spawns the on-screen cards.
func New[T any](opts Options[T]) (*Engine[T], error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	width, height := opts.Surface.ViewportSize()
	layout := Layout{
		ViewportWidth:  width,
		ViewportHeight: height,
		CardWidth:      opts.CardWidth,
		CardHeight:     opts.CardHeight,
	}
	if err := checkEntrySlot(layout, opts.Slots[0]); err != nil {
		return nil, err
	}

	slots := MirrorSlots(opts.Slots)
	if len(opts.Data) < len(slots) {
		return nil, configError("data", "need at least %d items to fill %d slots, got %d", len(slots), len(slots), len(opts.Data))
	}
	slotMap, err := BuildSlotMap(len(slots), len(opts.Data))
	if err != nil {
		return nil, err
	}
	if opts.StartIndex < 0 || opts.StartIndex >= len(opts.Data) {
		return nil, configError("start", "index %d outside [0, %d)", opts.StartIndex, len(opts.Data))
	}
	for i := 0; i < opts.StartIndex; i++ {
		slotMap.Shift(true)
	}

	duration := opts.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	ease := opts.Easing
	if ease == nil {
		ease = Easing(easing.EaseOutCSS)
	}

	e := &Engine[T]{
		surface:          opts.Surface,
		data:             opts.Data,
		slots:            slots,
		diffCentreBorder: len(opts.Slots) - 1,
		indices:          NewIndexMapper(len(opts.Data)),
		pool:             NewCardPool(opts.Surface, opts.Create, opts.Update, FrameBudget(float64(duration.Milliseconds()))),
		runner:           NewTransitionRunner[T](opts.Surface, opts.Scheduler, ease),
		events:           newEmitter(),
		controls:         newControlBus(),
		slotMap:          slotMap,
		centre:           opts.StartIndex,
		layout:           layout,
	}
	if err := e.registerControls(); err != nil {
		return nil, err
	}

	// The outer slots stay empty until a step needs them.
	for _, pair := range slotMap.Pairs() {
		if pair.SlotID == 0 || pair.SlotID == len(slots)-1 {
			continue
		}
		slot := slots[pair.SlotID]
		if _, _, err := e.pool.Spawn(pair, slot, opts.Data[pair.DataIndex], layout.Project(slot)); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

func validate[T any](opts Options[T]) error {
	switch {
	case opts.Surface == nil:
		return configError("surface", "a render surface is required")
	case opts.Scheduler == nil:
		return configError("scheduler", "a frame scheduler is required")
	case opts.Create == nil:
		return configError("create", "a card factory is required")
	case opts.CardWidth <= 0 || opts.CardHeight <= 0:
		return configError("sizes", "card width and height must be positive percentages")
	case len(opts.Slots) == 0:
		return configError("slots", "at least one slot is required")
	case len(opts.Slots)%2 == 0:
		return configError("slots", "expected an odd number of slots, got %d", len(opts.Slots))
	case len(opts.Data) == 0:
		return configError("data", "expected at least one item")
	}
	return nil
}

// checkEntrySlot rejects an entry slot whose card would intersect the
// viewport, since enter/exit transitions must start and end off-screen.
func checkEntrySlot(layout Layout, first Slot) error {
	cardWidth, _ := layout.CardSize()
	halfWidth := cardWidth * first.Scale / 2
	centre := percentOf(first.X/2, layout.ViewportWidth)
	if overlap := halfWidth + centre; overlap > 0 {
		return configError("slots", "the first slot must keep its card off-screen; move it at least %.2f units further left", overlap)
	}
	return nil
}

func (e *Engine[T]) registerControls() error {
	controls := []struct {
		id, desc string
		fn       ControlHandler
	}{
		{ControlNext, "Move the carousel one item forward", func(interface{}) error { e.Next(); return nil }},
		{ControlPrev, "Move the carousel one item back", func(interface{}) error { e.Prev(); return nil }},
		{ControlRelayout, "Re-read the viewport size and snap cards into place", func(interface{}) error { e.Relayout(); return nil }},
	}
	for _, c := range controls {
		if err := e.controls.register(c.id, c.desc, c.fn); err != nil {
			return err
		}
		id := c.id
		e.track(newHandle(func() { e.controls.unregister(id) }))
	}
	return nil
}

// Next moves the window one item forward.
func (e *Engine[T]) Next() bool {
	return e.Navigate(Forward)
}

// Prev moves the window one item back.
func (e *Engine[T]) Prev() bool {
	return e.Navigate(Backward)
}

// Navigate starts a step in dir and reports whether it started. It returns
// false while another step is in flight or after Close.
func (e *Engine[T]) Navigate(dir Direction) bool {
	if e.closed.Load() {
		return false
	}
	if !e.animating.CompareAndSwap(false, true) {
		return false
	}
	e.inflight.Add(1)
	go e.step(dir)
	return true
}

// Wait blocks until no step is in flight.
func (e *Engine[T]) Wait() {
	e.inflight.Wait()
}

type move[T any] struct {
	card     *Card[T]
	from, to Props
}

func (e *Engine[T]) step(dir Direction) {
	defer e.inflight.Done()
	forward := dir == Forward

	e.mu.Lock()
	start := e.centre
	edge := Pair{SlotID: 0, DataIndex: e.indices.Shift(start, e.diffCentreBorder, forward)}
	if forward {
		edge.SlotID = len(e.slots) - 1
	}
	edgeSlot := e.slots[edge.SlotID]
	edgeProps := e.layout.Project(edgeSlot)
	e.mu.Unlock()

	e.events.emit(Event{Type: NavigationStarted, Direction: dir, CentreDataIndex: start})

	_, attached, err := e.pool.Spawn(edge, edgeSlot, e.data[edge.DataIndex], edgeProps)
	if err != nil {
		log.Printf("Carousel: %s step aborted: %v", dir, err)
		e.finish(dir, start)
		return
	}
	<-attached
	if e.closed.Load() {
		e.finish(dir, start)
		return
	}

	e.mu.Lock()
	e.slotMap.Shift(forward)
	e.centre = e.indices.Shift(e.centre, 1, forward)
	centre := e.centre
	var moves []move[T]
	for card := range e.pool.Live() {
		pair, err := e.slotMap.FindByData(card.DataIndex())
		if errors.Is(err, ErrNotFound) {
			continue
		}
		moves = append(moves, move[T]{card: card, from: card.Props(), to: e.layout.Project(e.slots[pair.SlotID])})
	}
	e.mu.Unlock()

	var g errgroup.Group
	for _, m := range moves {
		g.Go(func() error {
			e.runner.Run(m.card, m.from, m.to)
			return nil
		})
	}
	_ = g.Wait()

	e.finish(dir, centre)
}

func (e *Engine[T]) finish(dir Direction, centre int) {
	e.animating.Store(false)
	e.events.emit(Event{Type: NavigationEnded, Direction: dir, CentreDataIndex: centre})
}

// Relayout re-reads the viewport size and snaps every live card to its slot.
func (e *Engine[T]) Relayout() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout.ViewportWidth, e.layout.ViewportHeight = e.surface.ViewportSize()
	for card := range e.pool.Live() {
		pair, err := e.slotMap.FindByData(card.DataIndex())
		if err != nil {
			continue
		}
		p := e.layout.Project(e.slots[pair.SlotID])
		card.setProps(p)
		e.surface.SetProperties(card.view, p)
	}
}

// SetDuration changes the transition length for every card.
func (e *Engine[T]) SetDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultDuration
	}
	e.pool.SetFrameBudget(FrameBudget(float64(d.Milliseconds())))
}

// Subscribe registers fn for navigation events until the handle is disposed.
func (e *Engine[T]) Subscribe(fn Listener) *Handle {
	_, release := e.events.subscribe(fn)
	h := newHandle(release)
	e.track(h)
	return h
}

// Controls exposes the engine's control bus.
func (e *Engine[T]) Controls() ControlBus {
	return e.controls
}

func (e *Engine[T]) track(h *Handle) {
	e.handlesMu.Lock()
	e.handles = append(e.handles, h)
	e.handlesMu.Unlock()
}

// Close detaches every view and disposes every registration. It is safe to
// call more than once. A step already in flight still runs to completion but
// attaches nothing new; if Close lands before its edge card is confirmed the
// step ends without moving.
func (e *Engine[T]) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)

		e.handlesMu.Lock()
		handles := e.handles
		e.handles = nil
		e.handlesMu.Unlock()
		for _, h := range handles {
			h.Dispose()
		}

		e.pool.DetachAll()
	})
}

// CentreDataIndex returns the data index shown in the middle slot.
func (e *Engine[T]) CentreDataIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.centre
}

// SlotMap returns a snapshot of the slot window.
func (e *Engine[T]) SlotMap() []Pair {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slotMap.Pairs()
}

// Slots returns the mirrored slot list.
func (e *Engine[T]) Slots() []Slot {
	return append([]Slot(nil), e.slots...)
}

// Navigating reports whether a step is in flight.
func (e *Engine[T]) Navigating() bool {
	return e.animating.Load()
}

// PoolSize returns the number of cards ever created.
func (e *Engine[T]) PoolSize() int {
	return e.pool.Len()
}

// Cards exposes the pool for inspection.
func (e *Engine[T]) Cards() *CardPool[T] {
	return e.pool
}
