// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package termsurface

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestBlendColor(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(200, 100, 50)

	if got := blendColor(black, white, 0); got != black {
		t.Fatalf("zero intensity changed the colour: %v", got)
	}
	r, g, b := blendColor(black, white, 0.5).RGB()
	if r != 100 || g != 50 || b != 25 {
		t.Fatalf("half blend = (%d,%d,%d), want (100,50,25)", r, g, b)
	}
	if got := blendColor(black, tcell.ColorDefault, 1); got != black {
		t.Fatalf("invalid overlay should leave the base colour, got %v", got)
	}
}

func TestDimForScale(t *testing.T) {
	theme := Theme{DimIntensity: 0.8}
	cases := []struct {
		scale float64
		want  float32
	}{
		{1, 0},
		{0.5, 0.4},
		{0, 0.8},
		{1.5, 0},
	}
	for _, tc := range cases {
		got := dimFor(theme, tc.scale)
		if d := got - tc.want; d > 1e-6 || d < -1e-6 {
			t.Fatalf("dimFor(%v) = %v, want %v", tc.scale, got, tc.want)
		}
	}
}

func TestTintKeepsAttributes(t *testing.T) {
	st := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 255, 255)).Bold(true)
	out := tintStyle(st, tcell.NewRGBColor(0, 0, 0), 0.5)
	fg, _, attrs := out.Decompose()
	if attrs&tcell.AttrBold == 0 {
		t.Fatal("bold lost after tint")
	}
	if r, _, _ := fg.RGB(); r != 127 {
		t.Fatalf("expected foreground red 127, got %d", r)
	}
}
