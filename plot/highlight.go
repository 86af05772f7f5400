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

// maxAncestryDepth caps chain walks.  Parent references form a forest in
// healthy data, but nothing upstream guarantees acyclicity, so hitting
// the cap is treated as a recoverable cycle-detected condition rather
// than looping forever.
const maxAncestryDepth = 512

const (
	highlightLineWidth = 3
	highlightDotRadius = 4
)

// redrawHighlights re-renders the overlay from the current highlight set.
// Every record on each highlighted leaf's ancestry chain is drawn with
// fixed emphasized styling, ignoring the auto-opacity policy.  The
// overlay/base opacity toggle is purely presentational: base dims while
// anything is highlighted, and snaps back when nothing is.
func (e *Engine) redrawHighlights() {
	e.overlay.Clear()

	highlighted := e.cfg.Data.Highlighted()
	if len(highlighted) == 0 {
		e.overlay.Hidden = true
		e.base.Opacity = 1
		return
	}
	e.overlay.Hidden = false
	e.base.Opacity = dimmedBaseOpacity

	for _, leaf := range highlighted {
		e.renderChain(leaf)
	}
}

// renderChain walks the parent chain from leaf to root, rendering every
// node onto the overlay.  The walk halts at the first record without a
// parent reference, at a dangling reference, or at the depth cap.
func (e *Engine) renderChain(leaf Record) {
	sty := e.highlightStyle
	cur := leaf
	for depth := 0; ; depth++ {
		if depth >= maxAncestryDepth {
			e.log.Printf("ancestry chain from %q exceeds %d records, assuming a cycle and stopping", leaf.UID(), maxAncestryDepth)
			return
		}
		e.renderer.RenderPoint(e.frame, cur, e.overlay, sty(cur))

		parentUID, has := cur.Parent()
		if !has {
			return
		}
		parent, found := e.cfg.Data.Lookup(parentUID)
		if !found {
			// RenderPoint already logged the dangling segment
			return
		}
		cur = parent
	}
}

// highlightStyle is the fixed emphasized styling for cascade rendering:
// thicker line, larger dot, full opacity.  Highlighted positions are not
// hover candidates (the base pass already recorded them).
func (e *Engine) highlightStyle(rec Record) PointStyle {
	return PointStyle{
		LineColor:     e.cfg.RowColor(rec, 1),
		LineWidth:     highlightLineWidth,
		DotColor:      e.cfg.RowColor(rec, 1),
		DotRadius:     highlightDotRadius,
		TrackPosition: false,
	}
}
