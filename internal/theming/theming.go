// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/theming.go
// Summary: Builds the panel theme from the default palette plus config overrides.

package theming

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcarousel/config"
	"github.com/framegrace/texelcarousel/internal/termsurface"
)

// FromConfig returns the default theme with any overrides from the "theme"
// section applied. Colours are names or #rrggbb strings understood by tcell.
func FromConfig(cfg config.Config) termsurface.Theme {
	th := termsurface.DefaultTheme()
	section := cfg.Section("theme")
	if len(section) == 0 {
		return th
	}

	fg := func(st tcell.Style, key string) tcell.Style {
		if c, ok := colour(cfg, key); ok {
			return st.Foreground(c)
		}
		return st
	}
	if c, ok := colour(cfg, "background"); ok {
		th.Body = th.Body.Background(c)
		th.Border = th.Border.Background(c)
		th.Focus = th.Focus.Background(c)
		th.Title = th.Title.Background(c)
	}
	th.Body = fg(th.Body, "text")
	th.Border = fg(th.Border, "border")
	th.Focus = fg(th.Focus, "focus")
	th.Title = fg(th.Title, "title")
	th.Status = fg(th.Status, "status")
	if c, ok := colour(cfg, "dim"); ok {
		th.Dim = c
	}
	th.DimIntensity = float32(cfg.GetFloat("theme", "dim_intensity", float64(th.DimIntensity)))
	return th
}

func colour(cfg config.Config, key string) (tcell.Color, bool) {
	raw := cfg.GetString("theme", key, "")
	if raw == "" {
		return tcell.ColorDefault, false
	}
	c := tcell.GetColor(raw)
	if c == tcell.ColorDefault {
		log.Printf("Theme: ignoring unknown colour %q for %s", raw, key)
		return c, false
	}
	return c, true
}
