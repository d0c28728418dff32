// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: easing/bezier.go
// Summary: CSS-style cubic Bézier timing functions.
// Notes: The curve runs from (0,0) to (1,1); sampling solves x(s) = t for the
// curve parameter s and returns y(s).

package easing

import (
	"fmt"

	"honnef.co/go/curve"
)

const bezierEpsilon = 1e-7

// CubicBezier builds a timing function with control points (x1,y1) and
// (x2,y2). The x values must lie in [0,1] so that x(s) stays monotonic.
func CubicBezier(x1, y1, x2, y2 float64) (Func, error) {
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return nil, fmt.Errorf("easing: bezier x values must be in [0, 1], got %g and %g", x1, x2)
	}
	if x1 == y1 && x2 == y2 {
		return Linear, nil
	}

	c := curve.CubicBez{
		P0: curve.Pt(0, 0),
		P1: curve.Pt(x1, y1),
		P2: curve.Pt(x2, y2),
		P3: curve.Pt(1, 1),
	}
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		s := curve.SolveITP(func(s float64) float64 {
			return c.Eval(s).X - t
		}, 0, 1, bezierEpsilon, 1, 0.2, -t, 1-t)
		return c.Eval(s).Y
	}, nil
}

// MustCubicBezier is CubicBezier for constant control points.
func MustCubicBezier(x1, y1, x2, y2 float64) Func {
	fn, err := CubicBezier(x1, y1, x2, y2)
	if err != nil {
		panic(err)
	}
	return fn
}
