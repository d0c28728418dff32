// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/carousel.go
// Summary: Decodes the carousel, keys and store sections into typed settings.

package config

import (
	"fmt"
	"time"

	"github.com/framegrace/texelcarousel/carousel"
	"github.com/framegrace/texelcarousel/easing"
)

// Settings is the typed view of the carousel section.
type Settings struct {
	Duration       time.Duration
	Easing         easing.Func
	CardWidth      float64
	CardHeight     float64
	Slots          []carousel.Slot
	HighlightStyle string
	MaxPreview     int
	DBPath         string
	Session        string
	Keys           map[string]string
}

// LoadSettings decodes cfg. Values that are present but malformed are
// reported rather than silently replaced by defaults.
func LoadSettings(cfg Config) (Settings, error) {
	s := Settings{
		Duration:       cfg.GetDuration("carousel", "duration_ms", carousel.DefaultDuration),
		CardWidth:      cfg.GetFloat("carousel", "card_width", 30),
		CardHeight:     cfg.GetFloat("carousel", "card_height", 70),
		HighlightStyle: cfg.GetString("carousel", "highlight_style", "catppuccin-mocha"),
		MaxPreview:     cfg.GetInt("preview", "max_bytes", 8192),
		DBPath:         cfg.GetString("store", "db_path", ""),
		Session:        cfg.GetString("store", "session", "default"),
		Keys:           cfg.GetStringMap("keys"),
	}

	var raw interface{}
	if section := cfg.Section("carousel"); section != nil {
		raw = section["easing"]
	}
	ease, err := easing.FromConfig(raw)
	if err != nil {
		return s, fmt.Errorf("carousel.easing: %w", err)
	}
	s.Easing = ease

	var rawSlots interface{}
	if section := cfg.Section("carousel"); section != nil {
		rawSlots = section["slots"]
	}
	if rawSlots == nil {
		rawSlots = defaultSlots()
	}
	slots, err := decodeSlots(rawSlots)
	if err != nil {
		return s, fmt.Errorf("carousel.slots: %w", err)
	}
	s.Slots = slots
	return s, nil
}

// decodeSlots accepts a list of {"x","y","scale"} objects or [x, y, scale]
// triples.
func decodeSlots(raw interface{}) ([]carousel.Slot, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", raw)
	}
	slots := make([]carousel.Slot, 0, len(list))
	for i, entry := range list {
		var slot carousel.Slot
		switch v := entry.(type) {
		case map[string]interface{}:
			tmp := Config{"slot": v}
			slot = carousel.Slot{
				X:     tmp.GetFloat("slot", "x", 0),
				Y:     tmp.GetFloat("slot", "y", 50),
				Scale: tmp.GetFloat("slot", "scale", 1),
			}
		case []interface{}:
			if len(v) != 3 {
				return nil, fmt.Errorf("slot %d: expected [x, y, scale], got %d values", i, len(v))
			}
			var vals [3]float64
			for j, n := range v {
				f, ok := n.(float64)
				if !ok {
					return nil, fmt.Errorf("slot %d: value %d is %T, not a number", i, j, n)
				}
				vals[j] = f
			}
			slot = carousel.Slot{X: vals[0], Y: vals[1], Scale: vals[2]}
		default:
			return nil, fmt.Errorf("slot %d: unsupported value %T", i, entry)
		}
		slot.ID = i
		slots = append(slots, slot)
	}
	return slots, nil
}
