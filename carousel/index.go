// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/index.go
// Summary: Circular data index arithmetic shared by the slot map and engine.

package carousel

// IndexMapper walks data indices around a circular sequence of a fixed length.
type IndexMapper struct {
	length int
}

// NewIndexMapper returns a mapper over [0, length).
func NewIndexMapper(length int) IndexMapper {
	return IndexMapper{length: length}
}

// Len reports the length of the circular range.
func (m IndexMapper) Len() int {
	return m.length
}

// Shift steps value forward or backward `times` times, wrapping at both ends.
func (m IndexMapper) Shift(value, times int, forward bool) int {
	v := value
	for i := 0; i < times; i++ {
		if forward {
			if v+1 < m.length {
				v++
			} else {
				v = 0
			}
			continue
		}
		if v-1 >= 0 {
			v--
		} else {
			v = m.length - 1
		}
	}
	return v
}

// Next returns the index after value.
func (m IndexMapper) Next(value int) int {
	return m.Shift(value, 1, true)
}

// Prev returns the index before value.
func (m IndexMapper) Prev(value int) int {
	return m.Shift(value, 1, false)
}
