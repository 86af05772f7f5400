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

// Brush is a user-drawn selection rectangle in canvas pixel coordinates.
// Corner order doesn't matter.
type Brush struct {
	X0, Y0 float64
	X1, Y1 float64
}

// empty brushes request a reset rather than a zoom
func (b Brush) empty() bool {
	return b.X0 == b.X1 || b.Y0 == b.Y1
}

// BrushEnd drives the zoom state machine.  A non-empty selection moves to
// the Zoomed state: the rectangle's two axis-aligned pixel ranges are
// inverted through the *current* scales to obtain new domain bounds, and
// fresh scales are built over them (re-using the same pixel ranges).  A
// nil or empty selection moves back to Full-Extent, restoring the
// originally-computed scales exactly.  Either transition repaints via the
// replay cache -- styles are never recomputed by a zoom.
func (e *Engine) BrushEnd(sel *Brush) {
	if e.disposed || !e.enabled {
		return
	}

	if sel == nil || sel.empty() {
		e.zoomed = false
		e.setScales(e.fullX, e.fullY)
		e.redraw()
		return
	}

	xPxLo, xPxHi := ordered(sel.X0, sel.X1)
	yPxLo, yPxHi := ordered(sel.Y0, sel.Y1)

	xRangeLo, xRangeHi, yRangeLo, yRangeHi := frameScaleRanges(e.width, e.height, e.cfg.Margins)

	xScale := e.zoomedScale(e.frame.XScale, e.xAxis, xRangeLo, xRangeHi, xPxLo, xPxHi)
	// y pixels grow downward, so the visually-lower (larger-pixel) edge
	// holds the smaller domain value: invert it first so the new domain
	// comes out ascending
	yScale := e.zoomedScale(e.frame.YScale, e.yAxis, yRangeLo, yRangeHi, yPxHi, yPxLo)

	e.zoomed = true
	e.setScales(xScale, yScale)
	e.redraw()
}

// Zoomed reports whether the view is currently showing a brushed-in
// domain rather than the full extent.
func (e *Engine) Zoomed() bool {
	return e.zoomed
}

// zoomedScale builds the scale for one axis of a brush selection.  An
// axis without an inverse (categorical) is a no-op: the current scale is
// kept as-is.
func (e *Engine) zoomedScale(current Scale, axis string, rangeLo, rangeHi, pxLo, pxHi float64) Scale {
	domLo, ok := current.Invert(pxLo)
	if !ok {
		return current
	}
	domHi, ok := current.Invert(pxHi)
	if !ok {
		return current
	}

	desc := e.descriptor(axis).withDomain(domLo, domHi)
	return BuildScale(desc, rangeLo, rangeHi)
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
