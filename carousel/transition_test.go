// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package carousel

import (
	"testing"

	"github.com/framegrace/texelcarousel/easing"
)

func newRunnerCard(surface *fakeSurface, budget float64, from Props) *Card[int] {
	card := &Card[int]{view: &fakeView{}}
	card.bind(1, 1, from)
	card.setBudget(budget)
	card.setAttached(true)
	surface.Attach(card.view)
	surface.SetProperties(card.view, from)
	return card
}

func TestFrameBudget(t *testing.T) {
	if got := FrameBudget(300); got != 18 {
		t.Fatalf("FrameBudget(300) = %v, want 18", got)
	}
	if got := FrameBudget(1000); got != 60 {
		t.Fatalf("FrameBudget(1000) = %v, want 60", got)
	}
}

func TestTransitionInterpolates(t *testing.T) {
	surface := newFakeSurface(100, 40, 20, 50)
	sched := &countingScheduler{}
	var samples []float64
	ease := func(t float64) float64 {
		samples = append(samples, t)
		return easing.Linear(t)
	}
	runner := NewTransitionRunner[int](surface, sched, ease)

	from := Props{X: 10, Y: 5, Scale: 0.5}
	to := Props{X: 40, Y: 5, Scale: 1}
	card := newRunnerCard(surface, 6, from)

	if retired := runner.Run(card, from, to); retired {
		t.Fatal("on-screen card should stay alive")
	}
	if got := card.Props(); got != to {
		t.Fatalf("final props = %+v, want %+v", got, to)
	}
	if got := surface.propsOf(card.view); got != to {
		t.Fatalf("surface props = %+v, want %+v", got, to)
	}
	if sched.frames < 6 || sched.frames > 7 {
		t.Fatalf("ran %d frames, want 6 or 7", sched.frames)
	}
	if samples[0] <= 0 {
		t.Fatalf("first sample %v should be past t=0", samples[0])
	}
	for i := 1; i < len(samples); i++ {
		if samples[i] <= samples[i-1] {
			t.Fatalf("t did not advance: %v", samples)
		}
	}
}

func TestTransitionStopsWhenEasingSaturates(t *testing.T) {
	surface := newFakeSurface(100, 40, 20, 50)
	sched := &countingScheduler{}
	// Saturates halfway; the loop must not keep ticking until t reaches 1.
	ease := func(t float64) float64 { return min(1, 2*t) }
	runner := NewTransitionRunner[int](surface, sched, ease)
	from := Props{X: 0, Y: 0, Scale: 1}
	to := Props{X: 30, Y: 0, Scale: 1}
	card := newRunnerCard(surface, 10, from)

	runner.Run(card, from, to)
	if sched.frames > 6 {
		t.Fatalf("ran %d frames after easing saturated", sched.frames)
	}
	if got := card.Props(); got != to {
		t.Fatalf("final props = %+v, want %+v", got, to)
	}
}

func TestTransitionRetirementBoundary(t *testing.T) {
	tests := []struct {
		name    string
		to      Props
		retired bool
	}{
		// Card width is 20 units at scale 1, so X is the left edge.
		{"right edge at zero", Props{X: -20, Y: 0, Scale: 1}, true},
		{"one unit visible on the left", Props{X: -19, Y: 0, Scale: 1}, false},
		{"left edge at viewport width", Props{X: 100, Y: 0, Scale: 1}, true},
		{"one unit visible on the right", Props{X: 99, Y: 0, Scale: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := newFakeSurface(100, 40, 20, 50)
			runner := NewTransitionRunner[int](surface, immediateScheduler{}, Easing(easing.Linear))
			from := Props{X: 40, Y: 0, Scale: 1}
			card := newRunnerCard(surface, 3, from)

			retired := runner.Run(card, from, tt.to)
			if retired != tt.retired {
				t.Fatalf("retired = %v, want %v", retired, tt.retired)
			}
			if card.Alive() == tt.retired {
				t.Fatalf("alive = %v, want %v", card.Alive(), !tt.retired)
			}
			attached := surface.attachedCount() == 1
			if attached == tt.retired {
				t.Fatalf("attached = %v, want %v", attached, !tt.retired)
			}
		})
	}
}

func TestTransitionZeroBudgetFinishesInOneFrame(t *testing.T) {
	surface := newFakeSurface(100, 40, 20, 50)
	sched := &countingScheduler{}
	runner := NewTransitionRunner[int](surface, sched, Easing(easing.Smoothstep))
	from := Props{X: 0, Y: 0, Scale: 1}
	to := Props{X: 50, Y: 0, Scale: 1}
	card := newRunnerCard(surface, 0, from)

	runner.Run(card, from, to)
	if sched.frames != 1 {
		t.Fatalf("ran %d frames, want 1", sched.frames)
	}
	if got := card.Props(); got != to {
		t.Fatalf("final props = %+v, want %+v", got, to)
	}
}
