// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/pool.go
// Summary: Reuse pool of cards; spawns new cards and revives retired ones.
// Notes: The pool only grows. At most one live card exists per slot, so its
// size stays bounded by the slot count.

package carousel

import (
	"fmt"
	"iter"
	"sync"
)

// CardPool owns every card of one carousel.
type CardPool[T any] struct {
	mu          sync.Mutex
	cards       []*Card[T]

	// attachMu orders attachment against DetachAll.
	attachMu sync.Mutex
	detached bool

	surface     Surface
	create      CardFactory[T]
	update      CardUpdater[T]
	frameBudget float64
}

// NewCardPool returns an empty pool rendering through surface.
func NewCardPool[T any](surface Surface, create CardFactory[T], update CardUpdater[T], frameBudget float64) *CardPool[T] {
	return &CardPool[T]{
		surface:     surface,
		create:      create,
		update:      update,
		frameBudget: frameBudget,
	}
}

// Spawn places item on slot, reviving the first retired card or building a
// new one. The returned signal fires once the surface confirms attachment.
// After DetachAll the card is bound but not attached and the signal is
// already fired.
func (p *CardPool[T]) Spawn(pair Pair, slot Slot, item T, props Props) (*Card[T], Signal, error) {
	p.mu.Lock()
	var card *Card[T]
	for _, c := range p.cards {
		if !c.Alive() {
			card = c
			break
		}
	}
	if card != nil {
		card.bind(item, pair.DataIndex, props)
		p.mu.Unlock()
		if p.update != nil {
			p.update(card.view, item)
		}
	} else {
		p.mu.Unlock()
		view, err := p.create(slot, item, pair.DataIndex)
		if err != nil {
			return nil, nil, fmt.Errorf("create card for slot %d: %w", pair.SlotID, err)
		}
		card = &Card[T]{view: view}
		card.bind(item, pair.DataIndex, props)
		card.setBudget(p.budget())
		p.mu.Lock()
		p.cards = append(p.cards, card)
		p.mu.Unlock()
	}

	p.surface.SetProperties(card.view, props)
	p.attachMu.Lock()
	defer p.attachMu.Unlock()
	if p.detached {
		return card, Confirmed(), nil
	}
	card.setAttached(true)
	return card, p.surface.Attach(card.view), nil
}

// DetachAll detaches every attached card. Later spawns no longer attach.
func (p *CardPool[T]) DetachAll() {
	p.attachMu.Lock()
	defer p.attachMu.Unlock()
	p.detached = true
	for _, c := range p.snapshot() {
		if c.markDetached() {
			p.surface.Detach(c.view)
		}
	}
}

// Live yields the live cards in insertion order. Each range re-reads the pool.
func (p *CardPool[T]) Live() iter.Seq[*Card[T]] {
	return func(yield func(*Card[T]) bool) {
		for _, c := range p.snapshot() {
			if c.Alive() && !yield(c) {
				return
			}
		}
	}
}

// All yields every card, live or retired.
func (p *CardPool[T]) All() iter.Seq[*Card[T]] {
	return func(yield func(*Card[T]) bool) {
		for _, c := range p.snapshot() {
			if !yield(c) {
				return
			}
		}
	}
}

// Len returns the number of cards ever created.
func (p *CardPool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cards)
}

// LiveCount returns the number of live cards.
func (p *CardPool[T]) LiveCount() int {
	n := 0
	for range p.Live() {
		n++
	}
	return n
}

// SetFrameBudget re-derives the frame budget of every card.
func (p *CardPool[T]) SetFrameBudget(frames float64) {
	p.mu.Lock()
	p.frameBudget = frames
	cards := append([]*Card[T](nil), p.cards...)
	p.mu.Unlock()
	for _, c := range cards {
		c.setBudget(frames)
	}
}

func (p *CardPool[T]) budget() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frameBudget
}

func (p *CardPool[T]) snapshot() []*Card[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Card[T](nil), p.cards...)
}
