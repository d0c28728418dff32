// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/card.go
// Summary: Reusable card bound to one slot's worth of visuals at a time.

package carousel

import "sync"

// Card pairs a render view with the item it currently shows.
type Card[T any] struct {
	mu          sync.RWMutex
	alive       bool
	attached    bool
	dataIndex   int
	data        T
	props       Props
	frameBudget float64
	view        View
}

// Alive reports whether the card is part of the visible window.
func (c *Card[T]) Alive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.alive
}

// DataIndex returns the index of the item the card shows.
func (c *Card[T]) DataIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dataIndex
}

// Data returns the item the card shows.
func (c *Card[T]) Data() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

// Props returns the card's current position and scale.
func (c *Card[T]) Props() Props {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.props
}

// View returns the card's render resource.
func (c *Card[T]) View() View {
	return c.view
}

func (c *Card[T]) setProps(p Props) {
	c.mu.Lock()
	c.props = p
	c.mu.Unlock()
}

func (c *Card[T]) bind(item T, dataIndex int, p Props) {
	c.mu.Lock()
	c.alive = true
	c.data = item
	c.dataIndex = dataIndex
	c.props = p
	c.mu.Unlock()
}

func (c *Card[T]) retire() {
	c.mu.Lock()
	c.alive = false
	c.mu.Unlock()
}

func (c *Card[T]) setAttached(attached bool) {
	c.mu.Lock()
	c.attached = attached
	c.mu.Unlock()
}

// markDetached clears the attached flag and reports whether it was set, so
// concurrent teardown and retirement detach a view only once.
func (c *Card[T]) markDetached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	was := c.attached
	c.attached = false
	return was
}

func (c *Card[T]) budget() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frameBudget
}

func (c *Card[T]) setBudget(frames float64) {
	c.mu.Lock()
	c.frameBudget = frames
	c.mu.Unlock()
}
