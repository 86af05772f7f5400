/*
Copyright 2023 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package plot

import (
	"math"
)

// Color is a straight (non-premultiplied) RGBA color.  Alpha is a scalar
// in [0, 1]; row-color collaborators embed the opacity the engine hands
// them directly into the returned color.
type Color struct {
	R, G, B uint8
	A       float64
}

// scaled returns the color with its alpha multiplied by factor, used to
// apply layer-level dimming at flush time.
func (c Color) scaled(factor float64) Color {
	c.A *= factor
	return c
}

// PointStyle carries everything the renderer needs to paint one record.
// Styles live in the replay cache as plain values, so replaying a redraw
// never re-derives style logic.
type PointStyle struct {
	LineColor Color
	// LineWidth of zero suppresses the parent-linking segment entirely.
	LineWidth float64
	DotColor  Color
	DotRadius float64

	// TrackPosition records the point's screen position into the
	// displayed-point cache, making it a hover candidate.
	TrackPosition bool
}

const (
	lineOpacityGain = 3
	dotOpacityGain  = 4

	// autoOpacityAreaUnit normalizes canvas area so that opacity behaves
	// consistently across canvas sizes.
	autoOpacityAreaUnit = 400000
)

// AutoOpacity derates per-point opacity as plots get denser, so that many
// overlapping translucent strokes don't saturate while sparse plots stay
// visible.  The result is always in (0, 1] for count >= 1.
func AutoOpacity(gain float64, canvasArea float64, count int) float64 {
	if count < 1 {
		count = 1
	}
	factor := canvasArea / autoOpacityAreaUnit
	op := gain * factor / math.Pow(float64(count), 0.3)
	if op > 1 {
		return 1
	}
	if op <= 0 {
		// zero-area canvases still get *some* ink
		return minVisibleOpacity
	}
	return op
}

// minVisibleOpacity keeps degenerate canvases from computing fully
// transparent styles.
const minVisibleOpacity = 0.01
