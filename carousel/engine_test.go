// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package carousel

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewSpawnsInnerCards(t *testing.T) {
	e, surface := newTestEngine(t, 10)
	if got := e.PoolSize(); got != 3 {
		t.Fatalf("PoolSize() = %d, want 3", got)
	}
	if got := surface.attachedCount(); got != 3 {
		t.Fatalf("attached views = %d, want 3", got)
	}
	var indices []int
	for card := range e.Cards().Live() {
		indices = append(indices, card.DataIndex())
	}
	if diff := cmp.Diff([]int{9, 0, 1}, indices); diff != "" {
		t.Fatalf("live cards mismatch (-want +got):\n%s", diff)
	}
}

func TestNextScenario(t *testing.T) {
	e, surface := newTestEngine(t, 10)
	rec := &recorder{}
	e.Subscribe(rec.listen)

	if !e.Next() {
		t.Fatal("Next() did not start a step")
	}
	e.Wait()

	want := []Pair{{0, 9}, {1, 0}, {2, 1}, {3, 2}, {4, 3}}
	if diff := cmp.Diff(want, e.SlotMap()); diff != "" {
		t.Fatalf("slot map mismatch (-want +got):\n%s", diff)
	}
	if got := e.CentreDataIndex(); got != 1 {
		t.Fatalf("CentreDataIndex() = %d, want 1", got)
	}

	events := rec.snapshot()
	wantEvents := []Event{
		{Type: NavigationStarted, Direction: Forward, CentreDataIndex: 0},
		{Type: NavigationEnded, Direction: Forward, CentreDataIndex: 1},
	}
	if diff := cmp.Diff(wantEvents, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	// The card for item 9 left through slot 0 and was retired.
	var live []int
	for card := range e.Cards().Live() {
		live = append(live, card.DataIndex())
	}
	if diff := cmp.Diff([]int{0, 1, 2}, live); diff != "" {
		t.Fatalf("live cards mismatch (-want +got):\n%s", diff)
	}
	if got := e.PoolSize(); got != 4 {
		t.Fatalf("PoolSize() = %d, want 4", got)
	}
	if got := surface.attachedCount(); got != 3 {
		t.Fatalf("attached views = %d, want 3", got)
	}
}

func TestCardsLandOnSlotProjection(t *testing.T) {
	e, surface := newTestEngine(t, 10)
	e.Next()
	e.Wait()

	layout := Layout{ViewportWidth: 100, ViewportHeight: 40, CardWidth: 20, CardHeight: 50}
	slots := e.Slots()
	for card := range e.Cards().Live() {
		pair, err := func() (Pair, error) {
			for _, p := range e.SlotMap() {
				if p.DataIndex == card.DataIndex() {
					return p, nil
				}
			}
			return Pair{}, ErrNotFound
		}()
		if err != nil {
			t.Fatalf("card %d not in window", card.DataIndex())
		}
		want := layout.Project(slots[pair.SlotID])
		if got := card.Props(); got != want {
			t.Fatalf("card %d props = %+v, want %+v", card.DataIndex(), got, want)
		}
		if got := surface.propsOf(card.View()); got != want {
			t.Fatalf("card %d surface props = %+v, want %+v", card.DataIndex(), got, want)
		}
	}
}

func TestSingleFlight(t *testing.T) {
	e, surface := newTestEngine(t, 10)
	rec := &recorder{}
	e.Subscribe(rec.listen)

	gate := make(chan struct{})
	surface.setGate(gate)

	if !e.Next() {
		t.Fatal("first Next() should start a step")
	}
	if e.Next() {
		t.Fatal("second Next() should be dropped while navigating")
	}
	if e.Prev() {
		t.Fatal("Prev() should be dropped while navigating")
	}
	if !e.Navigating() {
		t.Fatal("expected engine to report navigating")
	}

	close(gate)
	e.Wait()

	ended := 0
	for _, ev := range rec.snapshot() {
		if ev.Type == NavigationEnded {
			ended++
		}
	}
	if ended != 1 {
		t.Fatalf("NavigationEnded fired %d times, want 1", ended)
	}
	if got := e.CentreDataIndex(); got != 1 {
		t.Fatalf("CentreDataIndex() = %d, want 1", got)
	}
	if e.Navigating() {
		t.Fatal("engine still navigating after Wait")
	}
}

func TestRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	initial := e.SlotMap()

	e.Next()
	e.Wait()
	e.Prev()
	e.Wait()

	if got := e.CentreDataIndex(); got != 0 {
		t.Fatalf("CentreDataIndex() = %d, want 0", got)
	}
	if diff := cmp.Diff(initial, e.SlotMap()); diff != "" {
		t.Fatalf("slot map not restored (-want +got):\n%s", diff)
	}
	if got := e.Cards().LiveCount(); got != 3 {
		t.Fatalf("LiveCount() = %d, want 3", got)
	}
}

func TestPoolBound(t *testing.T) {
	e, _ := newTestEngine(t, 12)
	configLength := len(e.Slots())
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 60; i++ {
		if rng.Intn(3) == 0 {
			e.Prev()
		} else {
			e.Next()
		}
		e.Wait()
		if got := e.PoolSize(); got > configLength {
			t.Fatalf("step %d: pool size %d exceeds slot count %d", i, got, configLength)
		}
		if got := e.Cards().LiveCount(); got != configLength-2 {
			t.Fatalf("step %d: %d live cards, want %d", i, got, configLength-2)
		}
	}
}

func TestStepLeavesCentreWhenFactoryFails(t *testing.T) {
	surface := newFakeSurface(100, 40, 20, 50)
	opts := testOptions(surface, testData(10))
	created := 0
	opts.Create = func(slot Slot, item int, dataIndex int) (View, error) {
		created++
		if created > 3 {
			return nil, errors.New("out of views")
		}
		return &fakeView{item: item}, nil
	}
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()
	rec := &recorder{}
	e.Subscribe(rec.listen)

	before := e.SlotMap()
	e.Next()
	e.Wait()

	if got := e.CentreDataIndex(); got != 0 {
		t.Fatalf("CentreDataIndex() = %d, want 0", got)
	}
	if diff := cmp.Diff(before, e.SlotMap()); diff != "" {
		t.Fatalf("slot map moved (-want +got):\n%s", diff)
	}
	events := rec.snapshot()
	if len(events) != 2 || events[1].Type != NavigationEnded || events[1].CentreDataIndex != 0 {
		t.Fatalf("unexpected events %+v", events)
	}
	if e.Navigating() {
		t.Fatal("lock not released")
	}
}

func TestStartIndex(t *testing.T) {
	surface := newFakeSurface(100, 40, 20, 50)
	opts := testOptions(surface, testData(10))
	opts.StartIndex = 4
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	want := []Pair{{0, 2}, {1, 3}, {2, 4}, {3, 5}, {4, 6}}
	if diff := cmp.Diff(want, e.SlotMap()); diff != "" {
		t.Fatalf("slot map mismatch (-want +got):\n%s", diff)
	}
	e.Prev()
	e.Wait()
	if got := e.CentreDataIndex(); got != 3 {
		t.Fatalf("CentreDataIndex() = %d, want 3", got)
	}
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options[int])
		field  string
	}{
		{"even slot count", func(o *Options[int]) { o.Slots = o.Slots[:2] }, "slots"},
		{"no slots", func(o *Options[int]) { o.Slots = nil }, "slots"},
		{"no data", func(o *Options[int]) { o.Data = nil }, "data"},
		{"too little data", func(o *Options[int]) { o.Data = testData(4) }, "data"},
		{"missing size", func(o *Options[int]) { o.CardHeight = 0 }, "sizes"},
		{"missing factory", func(o *Options[int]) { o.Create = nil }, "create"},
		{"missing surface", func(o *Options[int]) { o.Surface = nil }, "surface"},
		{"missing scheduler", func(o *Options[int]) { o.Scheduler = nil }, "scheduler"},
		{"entry slot visible", func(o *Options[int]) { o.Slots[0].X = 0 }, "slots"},
		{"start out of range", func(o *Options[int]) { o.StartIndex = 10 }, "start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(newFakeSurface(100, 40, 20, 50), testData(10))
			tt.mutate(&opts)
			_, err := New(opts)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Fatalf("error field = %q, want %q (%v)", cfgErr.Field, tt.field, err)
			}
		})
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	e, surface := newTestEngine(t, 10)
	called := 0
	e.Subscribe(func(Event) { called++ })

	e.Close()
	e.Close()

	if got := surface.attachedCount(); got != 0 {
		t.Fatalf("attached views after Close = %d, want 0", got)
	}
	if surface.detaches != 3 {
		t.Fatalf("detaches = %d, want 3", surface.detaches)
	}
	if e.Next() {
		t.Fatal("Next() after Close should be dropped")
	}
	if err := e.Controls().Trigger(ControlNext, nil); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("expected ErrUnknownControl after Close, got %v", err)
	}
	if called != 0 {
		t.Fatalf("listener called %d times after Close", called)
	}
}

func TestHandleDispose(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	rec := &recorder{}
	h := e.Subscribe(rec.listen)
	h.Dispose()
	h.Dispose()

	e.Next()
	e.Wait()
	if got := len(rec.snapshot()); got != 0 {
		t.Fatalf("disposed listener received %d events", got)
	}
}

func TestControlBus(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	caps := e.Controls().Capabilities()
	var ids []string
	for _, c := range caps {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff([]string{ControlNext, ControlPrev, ControlRelayout}, ids); diff != "" {
		t.Fatalf("capabilities mismatch (-want +got):\n%s", diff)
	}

	if err := e.Controls().Trigger(ControlPrev, nil); err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	e.Wait()
	if got := e.CentreDataIndex(); got != 9 {
		t.Fatalf("CentreDataIndex() = %d, want 9", got)
	}
	if err := e.controls.register(ControlNext, "dup", func(interface{}) error { return nil }); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if err := e.Controls().Trigger("carousel.bogus", nil); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("expected ErrUnknownControl, got %v", err)
	}
	if c, ok := e.Controls().Lookup(ControlRelayout); !ok || c.Description == "" {
		t.Fatalf("Lookup(%s) = %+v, %v", ControlRelayout, c, ok)
	}

	e.Close()
	if _, ok := e.Controls().Lookup(ControlNext); ok {
		t.Fatal("controls still listed after Close")
	}
	if caps := e.Controls().Capabilities(); len(caps) != 0 {
		t.Fatalf("capabilities after Close = %v", caps)
	}
}

func TestRelayout(t *testing.T) {
	e, surface := newTestEngine(t, 10)
	surface.resize(200, 80)
	if err := e.Controls().Trigger(ControlRelayout, nil); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	layout := Layout{ViewportWidth: 200, ViewportHeight: 80, CardWidth: 20, CardHeight: 50}
	slots := e.Slots()
	pairs := e.SlotMap()
	for card := range e.Cards().Live() {
		for _, p := range pairs {
			if p.DataIndex != card.DataIndex() {
				continue
			}
			want := layout.Project(slots[p.SlotID])
			if got := surface.propsOf(card.View()); got != want {
				t.Fatalf("card %d props = %+v, want %+v", card.DataIndex(), got, want)
			}
		}
	}
}

func TestSetDurationRederivesBudget(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	e.SetDuration(500 * time.Millisecond)
	for card := range e.Cards().All() {
		if got := card.budget(); got != 30 {
			t.Fatalf("frame budget = %v, want 30", got)
		}
	}
}

func TestListenerCanChainSteps(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	steps := 0
	e.Subscribe(func(ev Event) {
		if ev.Type == NavigationEnded {
			steps++
			if steps < 3 {
				e.Next()
			}
		}
	})
	e.Next()
	waitFor(t, time.Second, func() bool { return e.CentreDataIndex() == 3 && !e.Navigating() })
	e.Wait()
}

func TestCloseFromStartedListenerLeavesNothingAttached(t *testing.T) {
	e, surface := newTestEngine(t, 10)
	e.Subscribe(func(ev Event) {
		if ev.Type == NavigationStarted {
			e.Close()
		}
	})

	if !e.Next() {
		t.Fatal("Next() did not start")
	}
	e.Wait()

	if got := surface.attachedCount(); got != 0 {
		t.Fatalf("attached views after Close = %d, want 0", got)
	}
	if got := e.CentreDataIndex(); got != 0 {
		t.Fatalf("centre moved to %d after Close", got)
	}
	if e.Navigating() {
		t.Fatal("engine still navigating after the step ended")
	}
}

func TestCloseWhileEdgeCardAttaches(t *testing.T) {
	e, surface := newTestEngine(t, 10)
	gate := make(chan struct{})
	surface.setGate(gate)

	if !e.Next() {
		t.Fatal("Next() did not start")
	}
	waitFor(t, time.Second, func() bool { return surface.attachedCount() == 4 })

	e.Close()
	close(gate)
	e.Wait()

	if got := surface.attachedCount(); got != 0 {
		t.Fatalf("attached views after Close = %d, want 0", got)
	}
	if got := e.CentreDataIndex(); got != 0 {
		t.Fatalf("centre moved to %d after Close", got)
	}
}
