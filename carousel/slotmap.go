// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/slotmap.go
// Summary: Association between fixed visual slots and circular data indices.
// Notes: Pairs are kept ordered by slot ID; Shift realigns the window after a step.

package carousel

import "fmt"

// Pair binds a visual slot to the data index it currently shows.
type Pair struct {
	SlotID    int
	DataIndex int
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.SlotID, p.DataIndex)
}

// SlotMap is the ordered slot↔data window of a carousel.
type SlotMap struct {
	pairs   []Pair
	indices IndexMapper
}

// BuildSlotMap places data index 0 on the centre slot and walks outwards:
// rightwards 1, 2, 3… and leftwards dataLength-1, dataLength-2…
func BuildSlotMap(configLength, dataLength int) (*SlotMap, error) {
	if configLength <= 0 || configLength%2 == 0 {
		return nil, configError("slots", "expected an odd number of slots, got %d", configLength)
	}
	if dataLength <= 0 {
		return nil, configError("data", "expected at least one item")
	}

	indices := NewIndexMapper(dataLength)
	pairs := make([]Pair, configLength)
	centre := centreSlot(configLength)

	dataIndex := 0
	for slot := centre; slot < configLength; slot++ {
		pairs[slot] = Pair{SlotID: slot, DataIndex: dataIndex}
		dataIndex = indices.Next(dataIndex)
	}
	dataIndex = indices.Prev(0)
	for slot := centre - 1; slot >= 0; slot-- {
		pairs[slot] = Pair{SlotID: slot, DataIndex: dataIndex}
		dataIndex = indices.Prev(dataIndex)
	}

	return &SlotMap{pairs: pairs, indices: indices}, nil
}

// centreSlot is configLength/2 + 0.5 - 1 for odd lengths.
func centreSlot(configLength int) int {
	return configLength / 2
}

// Len returns the number of slots.
func (m *SlotMap) Len() int {
	return len(m.pairs)
}

// Shift moves every pair's data index one step, keeping slot order.
func (m *SlotMap) Shift(forward bool) {
	for i := range m.pairs {
		m.pairs[i].DataIndex = m.indices.Shift(m.pairs[i].DataIndex, 1, forward)
	}
}

// FindBySlot returns the pair for a slot ID.
func (m *SlotMap) FindBySlot(slotID int) (Pair, error) {
	if slotID < 0 || slotID >= len(m.pairs) {
		return Pair{}, fmt.Errorf("slot %d: %w", slotID, ErrNotFound)
	}
	return m.pairs[slotID], nil
}

// FindByData returns the pair currently showing dataIndex. Cards that already
// scrolled out of the window report ErrNotFound.
func (m *SlotMap) FindByData(dataIndex int) (Pair, error) {
	for _, p := range m.pairs {
		if p.DataIndex == dataIndex {
			return p, nil
		}
	}
	return Pair{}, fmt.Errorf("data index %d: %w", dataIndex, ErrNotFound)
}

// Centre returns the data index shown in the middle slot.
func (m *SlotMap) Centre() int {
	return m.pairs[centreSlot(len(m.pairs))].DataIndex
}

// Pairs returns a copy of the window in slot order.
func (m *SlotMap) Pairs() []Pair {
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}
