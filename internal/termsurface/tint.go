// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termsurface/tint.go
// Summary: Colour blending used to fade cards that are further from the centre.

package termsurface

import "github.com/gdamore/tcell/v2"

// dimFor scales the theme's dim intensity by how much smaller than full size
// a card is drawn.
func dimFor(theme Theme, scale float64) float32 {
	d := theme.DimIntensity * float32(1-scale)
	switch {
	case d < 0:
		return 0
	case d > 1:
		return 1
	}
	return d
}

func tintStyle(style tcell.Style, overlay tcell.Color, intensity float32) tcell.Style {
	if intensity <= 0 {
		return style
	}
	fg, bg, attrs := style.Decompose()
	if !fg.Valid() {
		fg = tcell.ColorWhite
	}
	if !bg.Valid() {
		bg = tcell.ColorBlack
	}
	return tcell.StyleDefault.
		Foreground(blendColor(fg, overlay, intensity)).
		Background(blendColor(bg, overlay, intensity)).
		Attributes(attrs)
}

func blendColor(base, overlay tcell.Color, intensity float32) tcell.Color {
	if !overlay.Valid() || intensity <= 0 {
		return base
	}
	if !base.Valid() {
		return overlay
	}
	br, bg, bb := base.RGB()
	or, og, ob := overlay.RGB()
	mix := func(b, o int32) int32 {
		return int32(float32(b)*(1-intensity) + float32(o)*intensity)
	}
	return tcell.NewRGBColor(mix(br, or), mix(bg, og), mix(bb, ob))
}
