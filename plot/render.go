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
	"log"
)

// DisplayedPoint is one currently-rendered screen position, kept so the
// hover picker can answer pointer queries without re-projecting data.
type DisplayedPoint struct {
	At  ScreenPoint
	Rec Record
}

// DisplayedPoints is the transient cache of rendered positions.  It is
// fully rebuilt on every full redraw and never survives a disable
// transition.
type DisplayedPoints struct {
	entries []DisplayedPoint
}

// Clear empties the cache.
func (d *DisplayedPoints) Clear() {
	d.entries = d.entries[:0]
}

// Add records a rendered position.
func (d *DisplayedPoints) Add(at ScreenPoint, rec Record) {
	d.entries = append(d.entries, DisplayedPoint{At: at, Rec: rec})
}

// Len reports the number of cached positions.
func (d *DisplayedPoints) Len() int {
	return len(d.entries)
}

// Entries exposes the cached positions in insertion order.
func (d *DisplayedPoints) Entries() []DisplayedPoint {
	return d.entries
}

// Nearest finds the cached point with the smallest squared distance to
// the pointer, scanning linearly (the cache is selected-record sized, not
// dataset sized).  Ties break to the first-encountered entry.  It returns
// false when the cache is empty.
func (d *DisplayedPoints) Nearest(pointer ScreenPoint) (DisplayedPoint, bool) {
	if len(d.entries) == 0 {
		return DisplayedPoint{}, false
	}
	best := d.entries[0]
	bestDist := best.At.SquaredDistanceTo(pointer)
	for _, cand := range d.entries[1:] {
		if dist := cand.At.SquaredDistanceTo(pointer); dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best, true
}

// replayEntry is one recorded render instruction: a record plus the style
// it was selected with.  Entries are plain values -- replaying them never
// consults selection or style logic again.
type replayEntry struct {
	rec Record
	sty PointStyle
}

// ReplayList is the render replay cache: the per-point instructions for
// the current selection, replayed verbatim whenever the view must repaint
// under new scales (zoom, reset, resize) without the selection changing.
type ReplayList struct {
	entries []replayEntry
}

// Reset empties the list.
func (l *ReplayList) Reset() {
	l.entries = l.entries[:0]
}

// Add appends an instruction.
func (l *ReplayList) Add(rec Record, sty PointStyle) {
	l.entries = append(l.entries, replayEntry{rec: rec, sty: sty})
}

// Len reports the number of recorded instructions.
func (l *ReplayList) Len() int {
	return len(l.entries)
}

// Replay invokes render for every recorded instruction, in order.
func (l *ReplayList) Replay(render func(rec Record, sty PointStyle)) {
	for _, e := range l.entries {
		render(e.rec, e.sty)
	}
}

// Renderer paints records onto layers.  It resolves parent references
// through the lookup it was built with, logging and skipping dangling
// ones, and records hover candidates into the displayed-point cache.
type Renderer struct {
	lookup func(uid string) (Record, bool)
	points *DisplayedPoints
	log    *log.Logger
}

// NewRenderer builds a renderer over the given record lookup and
// displayed-point cache.  logger receives dangling-reference reports; it
// must not be nil (use the debug package's discard logger outside of
// debugging sessions).
func NewRenderer(lookup func(uid string) (Record, bool), points *DisplayedPoints, logger *log.Logger) *Renderer {
	return &Renderer{lookup: lookup, points: points, log: logger}
}

// RenderPoint paints one record under the given frame.  The parent
// segment, if any, is recorded before the dot so the dot sits atop it.
// Invalid points (missing or unmappable values) are skipped entirely; a
// segment is skipped whenever *either* endpoint is invalid, but a valid
// endpoint still gets its own dot.
func (r *Renderer) RenderPoint(frame Frame, rec Record, layer *Layer, sty PointStyle) {
	at, ok := frame.Map(rec)
	if !ok {
		return
	}

	var op pointOp
	if sty.LineWidth > 0 {
		if from, ok := r.parentPosition(frame, rec); ok {
			op.hasLine = true
			op.lineFrom = from
			op.lineTo = at
			op.lineColor = sty.LineColor
			op.lineWidth = sty.LineWidth
		}
	}

	op.hasDot = true
	op.dotAt = at
	op.dotColor = sty.DotColor
	op.dotRadius = sty.DotRadius
	layer.record(op)

	if sty.TrackPosition {
		r.points.Add(at, rec)
	}
}

// parentPosition resolves and maps the record's parent.  A dangling
// reference is a non-fatal data problem: report it and carry on without
// the segment.
func (r *Renderer) parentPosition(frame Frame, rec Record) (ScreenPoint, bool) {
	parentUID, has := rec.Parent()
	if !has {
		return ScreenPoint{}, false
	}
	parent, found := r.lookup(parentUID)
	if !found {
		r.log.Printf("record %q references missing parent %q, skipping segment", rec.UID(), parentUID)
		return ScreenPoint{}, false
	}
	return frame.Map(parent)
}
