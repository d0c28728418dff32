// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/slots.go
// Summary: Slot descriptors, mirroring, and projection to viewport units.
// Notes: X is a percentage from the left edge (0) to the centre (100); Y is a
// plain percentage of the viewport height.

package carousel

// Slot describes one fixed visual position.
type Slot struct {
	ID    int
	X     float64
	Y     float64
	Scale float64
}

// Props are a card's rendered position and scale in viewport units.
type Props struct {
	X     float64
	Y     float64
	Scale float64
}

// Box is the horizontal extent of a rendered card.
type Box struct {
	Left  float64
	Width float64
}

// Right returns the right edge of the box.
func (b Box) Right() float64 {
	return b.Left + b.Width
}

// MirrorSlots completes a half sequence (left edge → centre) by reflecting
// every slot except the centre onto the right side. The result has
// 2*len(half)-1 entries with IDs assigned in order.
func MirrorSlots(half []Slot) []Slot {
	if len(half) == 0 {
		return nil
	}
	full := make([]Slot, 0, 2*len(half)-1)
	full = append(full, half...)
	for i := len(half) - 2; i >= 0; i-- {
		s := half[i]
		s.X = 100 + (100 - s.X)
		full = append(full, s)
	}
	for i := range full {
		full[i].ID = i
	}
	return full
}

// Layout projects slots onto a viewport of a given size.
type Layout struct {
	ViewportWidth  float64
	ViewportHeight float64
	// CardWidth and CardHeight are percentages of the viewport.
	CardWidth  float64
	CardHeight float64
}

func percentOf(percentage, relativeTo float64) float64 {
	return relativeTo / 100 * percentage
}

// CardSize returns the unscaled card size in viewport units.
func (l Layout) CardSize() (float64, float64) {
	return percentOf(l.CardWidth, l.ViewportWidth), percentOf(l.CardHeight, l.ViewportHeight)
}

// Project maps a slot to the top-left translation and scale of a card.
func (l Layout) Project(s Slot) Props {
	w, h := l.CardSize()
	return Props{
		X:     percentOf(s.X/2, l.ViewportWidth) - w/2,
		Y:     percentOf(s.Y, l.ViewportHeight) - h/2,
		Scale: s.Scale,
	}
}

// Bounds returns the box of a card rendered with p, scaled about its centre.
func (l Layout) Bounds(p Props) Box {
	w, _ := l.CardSize()
	return Box{
		Left:  p.X + w/2 - w*p.Scale/2,
		Width: w * p.Scale,
	}
}

// OffScreen reports whether b lies entirely outside [0, viewportWidth).
func OffScreen(b Box, viewportWidth float64) bool {
	return b.Right() <= 0 || b.Left >= viewportWidth
}
