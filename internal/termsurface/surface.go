// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termsurface/surface.go
// Summary: tcell render surface for carousel cards.
// Usage: The host loop calls Draw on every tcell.EventInterrupt and resize.
// Notes: Attach and Detach only confirm after a Draw that reflects them, so
// the engine never animates a card the terminal has not shown yet.

package termsurface

import (
	"log"
	"math"
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelcarousel/carousel"
)

type pending struct {
	panel *Panel
	done  chan struct{}
}

// Surface draws attached panels onto a tcell screen.
type Surface struct {
	mu         sync.Mutex
	screen     tcell.Screen
	cardWidth  float64
	cardHeight float64
	theme      Theme
	panels     []*Panel
	confirms   []pending
	status     string
	draws      uint64
}

// New returns a surface for cards sized cardWidth×cardHeight percent of the screen.
func New(screen tcell.Screen, cardWidth, cardHeight float64) *Surface {
	return &Surface{
		screen:     screen,
		cardWidth:  cardWidth,
		cardHeight: cardHeight,
		theme:      DefaultTheme(),
	}
}

// SetTheme replaces the panel styles.
func (s *Surface) SetTheme(theme Theme) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
}

// SetStatus sets the text drawn on the bottom row.
func (s *Surface) SetStatus(text string) {
	s.mu.Lock()
	s.status = text
	s.mu.Unlock()
	s.RequestDraw()
}

func panelOf(v carousel.View) *Panel {
	p, ok := v.(*Panel)
	if !ok {
		log.Printf("Surface: unexpected view type %T", v)
	}
	return p
}

// Attach implements carousel.Surface.
func (s *Surface) Attach(v carousel.View) carousel.Signal {
	p := panelOf(v)
	if p == nil {
		return carousel.Confirmed()
	}
	done := make(chan struct{})
	s.mu.Lock()
	s.panels = append(s.panels, p)
	s.confirms = append(s.confirms, pending{panel: p, done: done})
	s.mu.Unlock()
	s.RequestDraw()
	return done
}

// Detach implements carousel.Surface.
func (s *Surface) Detach(v carousel.View) carousel.Signal {
	p := panelOf(v)
	if p == nil {
		return carousel.Confirmed()
	}
	done := make(chan struct{})
	s.mu.Lock()
	for i, attached := range s.panels {
		if attached == p {
			s.panels = append(s.panels[:i], s.panels[i+1:]...)
			break
		}
	}
	s.confirms = append(s.confirms, pending{panel: p, done: done})
	s.mu.Unlock()
	s.RequestDraw()
	return done
}

// SetProperties implements carousel.Surface.
func (s *Surface) SetProperties(v carousel.View, props carousel.Props) {
	if p := panelOf(v); p != nil {
		p.setProps(props)
	}
}

func (s *Surface) layout() carousel.Layout {
	w, h := s.ViewportSize()
	return carousel.Layout{
		ViewportWidth:  w,
		ViewportHeight: h,
		CardWidth:      s.cardWidth,
		CardHeight:     s.cardHeight,
	}
}

// BoundingBox implements carousel.Surface from the panel's live properties.
func (s *Surface) BoundingBox(v carousel.View) carousel.Box {
	p := panelOf(v)
	if p == nil {
		return carousel.Box{}
	}
	return s.layout().Bounds(p.currentProps())
}

// ViewportSize implements carousel.Surface. One unit is one terminal cell;
// the bottom row is reserved for the status line.
func (s *Surface) ViewportSize() (float64, float64) {
	w, h := s.screen.Size()
	if h > 1 {
		h--
	}
	return float64(w), float64(h)
}

// RequestDraw asks the host loop to call Draw.
func (s *Surface) RequestDraw() {
	// A full queue already holds a pending wake-up.
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Attached returns the number of attached panels.
func (s *Surface) Attached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.panels)
}

// Draws returns how many frames were painted.
func (s *Surface) Draws() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draws
}

// Draw paints every attached panel, smallest scale first, then confirms the
// attach and detach requests this frame reflects.
func (s *Surface) Draw() {
	s.mu.Lock()
	panels := append([]*Panel(nil), s.panels...)
	confirms := s.confirms
	s.confirms = nil
	theme := s.theme
	status := s.status
	s.draws++
	s.mu.Unlock()

	layout := s.layout()
	type placed struct {
		panel *Panel
		props carousel.Props
	}
	order := make([]placed, len(panels))
	for i, p := range panels {
		order[i] = placed{panel: p, props: p.currentProps()}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].props.Scale < order[j].props.Scale
	})

	s.screen.Clear()
	for i, pl := range order {
		focused := i == len(order)-1
		var dim float32
		if !focused {
			dim = dimFor(theme, pl.props.Scale)
		}
		pl.panel.draw(s.screen, panelRect(layout, pl.props), theme, focused, dim)
	}
	s.drawStatus(status, theme.Status)
	s.screen.Show()

	for _, c := range confirms {
		close(c.done)
	}
}

func (s *Surface) drawStatus(status string, st tcell.Style) {
	if status == "" {
		return
	}
	w, h := s.screen.Size()
	status = runewidth.Truncate(status, w, "…")
	x := 0
	for _, ch := range status {
		s.screen.SetContent(x, h-1, ch, nil, st)
		x += runewidth.RuneWidth(ch)
	}
}

// panelRect converts props into a cell rectangle scaled about the card centre.
func panelRect(layout carousel.Layout, props carousel.Props) rect {
	cw, ch := layout.CardSize()
	w := cw * props.Scale
	h := ch * props.Scale
	left := props.X + cw/2 - w/2
	top := props.Y + ch/2 - h/2
	return rect{
		x: int(math.Round(left)),
		y: int(math.Round(top)),
		w: int(math.Round(w)),
		h: int(math.Round(h)),
	}
}
