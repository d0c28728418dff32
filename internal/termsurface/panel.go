// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termsurface/panel.go
// Summary: Framed text panel used as the render view of a carousel card.

package termsurface

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelcarousel/carousel"
	"github.com/framegrace/texelcarousel/internal/preview"
)

// Panel is a card's terminal view.
type Panel struct {
	mu        sync.RWMutex
	item      preview.Item
	lines     [][]preview.Cell
	props     carousel.Props
	styleName string
}

// NewPanel builds a panel showing item, highlighted with the named chroma style.
func NewPanel(item preview.Item, styleName string) *Panel {
	p := &Panel{styleName: styleName}
	p.SetItem(item)
	return p
}

// SetItem replaces the panel content.
func (p *Panel) SetItem(item preview.Item) {
	lines := preview.Highlight(item, p.styleName, tcell.StyleDefault)
	p.mu.Lock()
	p.item = item
	p.lines = lines
	p.mu.Unlock()
}

// Item returns the item currently shown.
func (p *Panel) Item() preview.Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.item
}

func (p *Panel) setProps(props carousel.Props) {
	p.mu.Lock()
	p.props = props
	p.mu.Unlock()
}

func (p *Panel) currentProps() carousel.Props {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.props
}

// rect is a panel's integer screen rectangle.
type rect struct {
	x, y, w, h int
}

// draw paints the panel into r, clipped to the screen, with every style
// tinted towards theme.Dim by dim.
func (p *Panel) draw(screen tcell.Screen, r rect, theme Theme, focused bool, dim float32) {
	if r.w < 2 || r.h < 2 {
		return
	}
	p.mu.RLock()
	title := p.item.Title
	lines := p.lines
	p.mu.RUnlock()

	sw, sh := screen.Size()
	put := func(x, y int, ch rune, st tcell.Style) {
		if x < 0 || y < 0 || x >= sw || y >= sh {
			return
		}
		screen.SetContent(x, y, ch, nil, tintStyle(st, theme.Dim, dim))
	}

	border := theme.Border
	if focused {
		border = theme.Focus
	}
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			put(x, y, ' ', theme.Body)
		}
	}
	for x := r.x + 1; x < r.x+r.w-1; x++ {
		put(x, r.y, tcell.RuneHLine, border)
		put(x, r.y+r.h-1, tcell.RuneHLine, border)
	}
	for y := r.y + 1; y < r.y+r.h-1; y++ {
		put(r.x, y, tcell.RuneVLine, border)
		put(r.x+r.w-1, y, tcell.RuneVLine, border)
	}
	put(r.x, r.y, tcell.RuneULCorner, border)
	put(r.x+r.w-1, r.y, tcell.RuneURCorner, border)
	put(r.x, r.y+r.h-1, tcell.RuneLLCorner, border)
	put(r.x+r.w-1, r.y+r.h-1, tcell.RuneLRCorner, border)

	if inner := r.w - 4; inner > 0 && title != "" {
		title = runewidth.Truncate(title, inner, "…")
		x := r.x + 2
		for _, ch := range title {
			put(x, r.y, ch, theme.Title)
			x += runewidth.RuneWidth(ch)
		}
	}

	innerW := r.w - 2
	for row := 0; row < r.h-2 && row < len(lines); row++ {
		x := r.x + 1
		for _, cell := range lines[row] {
			cw := runewidth.RuneWidth(cell.Ch)
			if cw == 0 {
				continue
			}
			if x+cw > r.x+1+innerW {
				break
			}
			put(x, r.y+1+row, cell.Ch, mergeStyle(theme.Body, cell.Style))
			x += cw
		}
	}
}

// mergeStyle keeps the panel background under a highlighted foreground.
func mergeStyle(body, cell tcell.Style) tcell.Style {
	fg, _, attrs := cell.Decompose()
	_, bg, _ := body.Decompose()
	return tcell.StyleDefault.Foreground(fg).Background(bg).Attributes(attrs)
}
