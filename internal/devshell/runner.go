// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Hosts a carousel of preview cards on a local tcell screen.
// Usage: cmd/texelcarousel builds Options from config and calls Run.
// Notes: All drawing happens on the event loop goroutine; the engine and the
// frame clock only post interrupts.

package devshell

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcarousel/carousel"
	"github.com/framegrace/texelcarousel/easing"
	"github.com/framegrace/texelcarousel/internal/frameclock"
	"github.com/framegrace/texelcarousel/internal/preview"
	"github.com/framegrace/texelcarousel/internal/termsurface"
)

// Options configures a hosted carousel.
type Options struct {
	Items      []preview.Item
	Slots      []carousel.Slot
	CardWidth  float64
	CardHeight float64
	Duration   time.Duration
	Easing     easing.Func
	// HighlightStyle names the chroma style used for card bodies.
	HighlightStyle string
	// Theme overrides the default panel theme when set.
	Theme *termsurface.Theme
	// Keys maps a key name (tcell's Name, or the bare rune) to a control ID.
	Keys       map[string]string
	StartIndex int
	// Listener, when set, also receives navigation events.
	Listener carousel.Listener
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run shows opts.Items until the user quits and returns the data index that
// was centred at exit.
func Run(opts Options) (int, error) {
	screen, err := screenFactory()
	if err != nil {
		return 0, fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return 0, fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()

	surface := termsurface.New(screen, opts.CardWidth, opts.CardHeight)
	if opts.Theme != nil {
		surface.SetTheme(*opts.Theme)
	}
	clock := frameclock.New(frameclock.DefaultInterval, surface.RequestDraw)
	defer clock.Stop()

	style := opts.HighlightStyle
	engine, err := carousel.New(carousel.Options[preview.Item]{
		Slots:      opts.Slots,
		CardWidth:  opts.CardWidth,
		CardHeight: opts.CardHeight,
		Data:       opts.Items,
		Surface:    surface,
		Scheduler:  clock,
		Create: func(_ carousel.Slot, item preview.Item, _ int) (carousel.View, error) {
			return termsurface.NewPanel(item, style), nil
		},
		Update: func(v carousel.View, item preview.Item) {
			if p, ok := v.(*termsurface.Panel); ok {
				p.SetItem(item)
			}
		},
		Duration:   opts.Duration,
		Easing:     carousel.Easing(opts.Easing),
		StartIndex: opts.StartIndex,
	})
	if err != nil {
		return 0, err
	}
	defer engine.Close()

	for _, bad := range CheckBindings(engine.Controls(), opts.Keys) {
		log.Printf("Devshell: unknown control %s", bad)
	}

	var showHelp atomic.Bool
	status := func(centre int) {
		item := opts.Items[centre]
		surface.SetStatus(fmt.Sprintf(" %d/%d  %s  [%s]  ? help", centre+1, len(opts.Items), item.Title, item.Language))
	}
	status(engine.CentreDataIndex())
	engine.Subscribe(func(ev carousel.Event) {
		if ev.Type == carousel.NavigationEnded {
			showHelp.Store(false)
			status(ev.CentreDataIndex)
		}
	})
	if opts.Listener != nil {
		engine.Subscribe(opts.Listener)
	}

	surface.Draw()
	for {
		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return engine.CentreDataIndex(), nil
		case *tcell.EventInterrupt:
			surface.Draw()
		case *tcell.EventResize:
			screen.Sync()
			engine.Relayout()
			surface.Draw()
		case *tcell.EventKey:
			if isQuit(tev) {
				settle(engine, surface, clock)
				return engine.CentreDataIndex(), nil
			}
			name := KeyName(tev)
			if name == "?" {
				if showHelp.CompareAndSwap(false, true) {
					surface.SetStatus(HelpLine(engine.Controls(), opts.Keys))
				} else {
					showHelp.Store(false)
					status(engine.CentreDataIndex())
				}
				continue
			}
			id, ok := opts.Keys[name]
			if !ok {
				continue
			}
			if err := engine.Controls().Trigger(id, nil); err != nil {
				log.Printf("Devshell: key %s: %v", name, err)
			}
		}
	}
}

// CheckBindings returns the bindings, as "key -> id", whose control the bus
// does not provide. The result is sorted by key.
func CheckBindings(bus carousel.ControlBus, keys map[string]string) []string {
	var bad []string
	for _, key := range sortedKeys(keys) {
		if _, ok := bus.Lookup(keys[key]); !ok {
			bad = append(bad, fmt.Sprintf("%s -> %s", key, keys[key]))
		}
	}
	return bad
}

// HelpLine describes every bound key with its control's description.
func HelpLine(bus carousel.ControlBus, keys map[string]string) string {
	parts := make([]string, 0, len(keys)+1)
	for _, key := range sortedKeys(keys) {
		if c, ok := bus.Lookup(keys[key]); ok {
			parts = append(parts, key+": "+c.Description)
		}
	}
	parts = append(parts, "q: Quit")
	return " " + strings.Join(parts, " · ")
}

func sortedKeys(keys map[string]string) []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// settle lets an in-flight step land before exit. The step may be waiting
// for an attach that only a Draw confirms, so keep drawing until it is done.
func settle(engine *carousel.Engine[preview.Item], surface *termsurface.Surface, clock *frameclock.Clock) {
	clock.Stop()
	done := make(chan struct{})
	go func() {
		engine.Wait()
		close(done)
	}()
	ticker := time.NewTicker(frameclock.DefaultInterval)
	defer ticker.Stop()
	for {
		surface.Draw()
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// KeyName returns the name a key binding uses for ev: the rune itself for
// printable keys, otherwise tcell's name ("Left", "Ctrl+L").
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return string(ev.Rune())
	}
	return ev.Name()
}
