// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/surface.go
// Summary: Capabilities the engine consumes from its host.
// Usage: A render surface, a frame scheduler and a card factory are injected
// through Options; the engine never draws anything itself.

package carousel

// Signal is closed once the render surface confirms a request.
type Signal <-chan struct{}

var confirmed = func() Signal {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Confirmed returns a signal that has already fired.
func Confirmed() Signal {
	return confirmed
}

// View is the render resource a card drives. Its concrete type belongs to the
// surface that renders it.
type View interface{}

// Surface renders views and reports their geometry.
type Surface interface {
	// Attach adds the view to the surface. The signal fires once the view is
	// actually part of the rendered output.
	Attach(v View) Signal
	// Detach removes the view; the signal fires once it is gone.
	Detach(v View) Signal
	// SetProperties moves the view without animation.
	SetProperties(v View, p Props)
	// BoundingBox returns the live rendered extent of the view.
	BoundingBox(v View) Box
	// ViewportSize returns the surface size in the same units as Props.
	ViewportSize() (width, height float64)
}

// Scheduler notifies the caller before the next render frame.
type Scheduler interface {
	NextFrame() <-chan struct{}
}

// Easing samples a curve at t. Callers supply monotonic curves on [0,1].
type Easing func(t float64) float64

// CardFactory builds the view for a new card.
type CardFactory[T any] func(slot Slot, item T, dataIndex int) (View, error)

// CardUpdater refreshes a reused view with a new item.
type CardUpdater[T any] func(v View, item T)
