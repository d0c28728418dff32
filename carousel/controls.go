// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/controls.go
// Summary: Named engine commands that hosts trigger from key bindings.
// Notes: Commands are listed in registration order so help output follows
// the order the engine declares them in.

package carousel

import (
	"errors"
	"fmt"
	"sync"
)

// Control IDs registered by every engine.
const (
	ControlNext     = "carousel.next"
	ControlPrev     = "carousel.prev"
	ControlRelayout = "carousel.relayout"
)

// ErrUnknownControl is returned when triggering an ID the engine does not
// (or no longer) provide.
var ErrUnknownControl = errors.New("carousel: unknown control")

// ControlHandler runs a command with an optional payload.
type ControlHandler func(payload interface{}) error

// ControlCapability describes one command for help and binding checks.
type ControlCapability struct {
	ID          string
	Description string
}

// ControlBus exposes an engine's commands by ID.
type ControlBus interface {
	Trigger(id string, payload interface{}) error
	// Lookup reports whether id names a live command.
	Lookup(id string) (ControlCapability, bool)
	// Capabilities lists the live commands in registration order.
	Capabilities() []ControlCapability
}

type control struct {
	ControlCapability
	run ControlHandler
}

type controlBus struct {
	mu       sync.RWMutex
	controls []control
}

func newControlBus() *controlBus {
	return &controlBus{}
}

func (b *controlBus) indexLocked(id string) int {
	for i, c := range b.controls {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (b *controlBus) register(id, description string, run ControlHandler) error {
	if id == "" || run == nil {
		return fmt.Errorf("carousel: control %q needs an id and a handler", id)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.indexLocked(id) >= 0 {
		return fmt.Errorf("carousel: control %q already registered", id)
	}
	b.controls = append(b.controls, control{
		ControlCapability: ControlCapability{ID: id, Description: description},
		run:               run,
	})
	return nil
}

func (b *controlBus) unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexLocked(id); i >= 0 {
		b.controls = append(b.controls[:i], b.controls[i+1:]...)
	}
}

func (b *controlBus) Trigger(id string, payload interface{}) error {
	b.mu.RLock()
	i := b.indexLocked(id)
	var run ControlHandler
	if i >= 0 {
		run = b.controls[i].run
	}
	b.mu.RUnlock()
	if run == nil {
		return fmt.Errorf("%w %q", ErrUnknownControl, id)
	}
	return run(payload)
}

func (b *controlBus) Lookup(id string) (ControlCapability, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i := b.indexLocked(id); i >= 0 {
		return b.controls[i].ControlCapability, true
	}
	return ControlCapability{}, false
}

func (b *controlBus) Capabilities() []ControlCapability {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]ControlCapability, len(b.controls))
	for i, c := range b.controls {
		out[i] = c.ControlCapability
	}
	return out
}
