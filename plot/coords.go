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

// Margins are the fixed gutters around the drawable area, in pixels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// ScreenPoint is a pixel position on the canvas.
type ScreenPoint struct {
	X, Y float64
}

// SquaredDistanceTo returns the squared euclidean distance to other.
func (p ScreenPoint) SquaredDistanceTo(other ScreenPoint) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Frame is the explicit view state threaded through every render call: the
// chosen axes, the scales built for them, and the canvas geometry.  It is
// passed by value so that no render path shares mutable scale state -- a
// redraw under new scales always carries a new Frame.
type Frame struct {
	XAxis, YAxis   string
	XScale, YScale Scale
	Margins        Margins
	Width, Height  float64
}

// frameScaleRanges computes the pixel ranges scales should be built over
// for a canvas of the given geometry.  X runs left-to-right across the
// drawable area; Y runs bottom-to-top (domain min at the bottom of the
// canvas), hence the reversed range.
func frameScaleRanges(width, height float64, m Margins) (xLo, xHi, yLo, yHi float64) {
	return m.Left, width - m.Right, height - m.Bottom, m.Top
}

// Map converts a record's two axis values into a validated canvas
// position.  It returns false when the point must be skipped entirely: a
// value is missing, is an inf sentinel or otherwise unmappable on its
// axis, or scales to a non-finite pixel coordinate.
func (f Frame) Map(rec Record) (ScreenPoint, bool) {
	x, ok := mapOnAxis(rec, f.XAxis, f.XScale)
	if !ok {
		return ScreenPoint{}, false
	}
	y, ok := mapOnAxis(rec, f.YAxis, f.YScale)
	if !ok {
		return ScreenPoint{}, false
	}
	return ScreenPoint{X: x, Y: y}, true
}

func mapOnAxis(rec Record, axis string, scale Scale) (float64, bool) {
	val, present := rec.Value(axis)
	if !present {
		return 0, false
	}
	if val.IsInfSentinel() {
		return 0, false
	}
	px, ok := scale.Map(val)
	if !ok {
		return 0, false
	}
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return 0, false
	}
	return px, true
}
