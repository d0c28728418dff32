// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: easing/easing.go
// Summary: Easing curves sampled by carousel transitions.
// Usage: Pick a preset, build a cubic Bézier, or resolve one from config.

package easing

import (
	"fmt"
	"sort"
	"strings"
)

// Func maps progress t in [0,1] to eased progress in [0,1].
type Func func(t float64) float64

// Polynomial presets.
var (
	// Linear - No easing, constant speed
	Linear Func = func(t float64) float64 { return t }

	// Smoothstep - Accelerates at start, decelerates at end
	Smoothstep Func = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// Smootherstep - Smoother S-curve with zero derivatives at 0 and 1
	Smootherstep Func = func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}

	InQuad Func = func(t float64) float64 {
		return t * t
	}

	OutQuad Func = func(t float64) float64 {
		return t * (2.0 - t)
	}

	InOutQuad Func = func(t float64) float64 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	}

	InCubic Func = func(t float64) float64 {
		return t * t * t
	}

	OutCubic Func = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	InOutCubic Func = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)

// CSS timing function equivalents.
var (
	EaseCSS      = MustCubicBezier(0.25, 0.1, 0.25, 1)
	EaseInCSS    = MustCubicBezier(0.42, 0, 1, 1)
	EaseOutCSS   = MustCubicBezier(0, 0, 0.58, 1)
	EaseInOutCSS = MustCubicBezier(0.42, 0, 0.58, 1)
)

var named = map[string]Func{
	"linear":       Linear,
	"smoothstep":   Smoothstep,
	"smootherstep": Smootherstep,
	"in-quad":      InQuad,
	"out-quad":     OutQuad,
	"in-out-quad":  InOutQuad,
	"in-cubic":     InCubic,
	"out-cubic":    OutCubic,
	"in-out-cubic": InOutCubic,
	"ease":         EaseCSS,
	"ease-in":      EaseInCSS,
	"ease-out":     EaseOutCSS,
	"ease-in-out":  EaseInOutCSS,
}

// Lookup returns a preset by name.
func Lookup(name string) (Func, bool) {
	fn, ok := named[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}

// Names lists the preset names in sorted order.
func Names() []string {
	out := make([]string, 0, len(named))
	for name := range named {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FromConfig resolves a config value: either a preset name or a list of four
// cubic Bézier control values [x1, y1, x2, y2].
func FromConfig(value interface{}) (Func, error) {
	switch v := value.(type) {
	case nil:
		return EaseOutCSS, nil
	case string:
		if fn, ok := Lookup(v); ok {
			return fn, nil
		}
		return nil, fmt.Errorf("easing: unknown preset %q (known: %s)", v, strings.Join(Names(), ", "))
	case []float64:
		if len(v) != 4 {
			return nil, fmt.Errorf("easing: expected 4 control values, got %d", len(v))
		}
		return CubicBezier(v[0], v[1], v[2], v[3])
	case []interface{}:
		points := make([]float64, 0, len(v))
		for i, raw := range v {
			f, ok := raw.(float64)
			if !ok {
				return nil, fmt.Errorf("easing: control value %d is %T, want number", i, raw)
			}
			points = append(points, f)
		}
		return FromConfig(points)
	}
	return nil, fmt.Errorf("easing: unsupported value %T", value)
}
