// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/transition.go
// Summary: Per-card interpolation of position and scale, one step per frame.
// Notes: A card left fully outside the viewport after its transition is
// retired and detached; the retirement check reads live surface geometry.

package carousel

// framesPerSecond is the scheduler tick rate the frame budget assumes.
const framesPerSecond = 60

// FrameBudget converts a duration in milliseconds to scheduler ticks.
func FrameBudget(durationMS float64) float64 {
	return durationMS / 1000 * framesPerSecond
}

// TransitionRunner drives card transitions on a surface.
type TransitionRunner[T any] struct {
	surface   Surface
	scheduler Scheduler
	easing    Easing
}

// NewTransitionRunner returns a runner ticking on scheduler.
func NewTransitionRunner[T any](surface Surface, scheduler Scheduler, easing Easing) *TransitionRunner[T] {
	return &TransitionRunner[T]{surface: surface, scheduler: scheduler, easing: easing}
}

// Run animates card from `from` to `to` and blocks until it is done,
// including the detach confirmation of a card that ended off-screen.
// It reports whether the card was retired.
func (r *TransitionRunner[T]) Run(card *Card[T], from, to Props) bool {
	frames := card.budget()
	if frames < 1 {
		frames = 1
	}

	t := 0.0
	for {
		<-r.scheduler.NextFrame()
		t += 1 / frames
		eased := r.easing(t)
		// Either a saturated easing or an exhausted budget ends the loop.
		if eased < 1 && t < 1 {
			r.apply(card, lerpProps(from, to, eased))
			continue
		}
		// Snap to the exact target so rounding never leaves residue.
		r.apply(card, to)
		break
	}

	width, _ := r.surface.ViewportSize()
	if !OffScreen(r.surface.BoundingBox(card.view), width) {
		return false
	}
	card.retire()
	if card.markDetached() {
		<-r.surface.Detach(card.view)
	}
	return true
}

func (r *TransitionRunner[T]) apply(card *Card[T], p Props) {
	card.setProps(p)
	r.surface.SetProperties(card.view, p)
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

func lerpProps(from, to Props, t float64) Props {
	return Props{
		X:     lerp(from.X, to.X, t),
		Y:     lerp(from.Y, to.Y, t),
		Scale: lerp(from.Scale, to.Scale, t),
	}
}
