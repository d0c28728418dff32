// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values filled into sections missing from texelcarousel.json.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("carousel", Section{
		"duration_ms":     300,
		"easing":          []interface{}{0.0, 0.0, 0.58, 1.0},
		"card_width":      30,
		"card_height":     70,
		"highlight_style": "catppuccin-mocha",
		"slots":           defaultSlots(),
	})
	cfg.RegisterDefaults("keys", Section{
		"Left":  "carousel.prev",
		"Right": "carousel.next",
	})
	cfg.RegisterDefaults("store", Section{
		"db_path": "",
		"session": "default",
	})
	cfg.RegisterDefaults("preview", Section{
		"max_bytes": 8192,
	})
}

func defaultSlots() []interface{} {
	return []interface{}{
		map[string]interface{}{"x": -40.0, "y": 50.0, "scale": 0.6},
		map[string]interface{}{"x": 30.0, "y": 50.0, "scale": 0.75},
		map[string]interface{}{"x": 100.0, "y": 50.0, "scale": 1.0},
	}
}
