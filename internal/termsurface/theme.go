// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termsurface/theme.go
// Summary: Panel styles and the default mocha palette.

package termsurface

import "github.com/gdamore/tcell/v2"

// Theme holds the styles used to paint panels.
type Theme struct {
	Body   tcell.Style
	Border tcell.Style
	Focus  tcell.Style
	Title  tcell.Style
	Status tcell.Style
	// Dim is blended into side cards; DimIntensity is the blend at scale 0.
	Dim          tcell.Color
	DimIntensity float32
}

// DefaultTheme mirrors the mocha palette used elsewhere in texel apps.
func DefaultTheme() Theme {
	base := tcell.NewRGBColor(0x1e, 0x1e, 0x2e)
	return Theme{
		Body:         tcell.StyleDefault.Background(base).Foreground(tcell.NewRGBColor(0xcd, 0xd6, 0xf4)),
		Border:       tcell.StyleDefault.Background(base).Foreground(tcell.NewRGBColor(0x6c, 0x70, 0x86)),
		Focus:        tcell.StyleDefault.Background(base).Foreground(tcell.NewRGBColor(0x89, 0xb4, 0xfa)).Bold(true),
		Title:        tcell.StyleDefault.Background(base).Foreground(tcell.NewRGBColor(0xf9, 0xe2, 0xaf)).Bold(true),
		Status:       tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xa6, 0xad, 0xc8)),
		Dim:          tcell.NewRGBColor(20, 20, 32),
		DimIntensity: 0.8,
	}
}
