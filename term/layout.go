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

package term

import (
	"github.com/gdamore/tcell"
)

// Flushable contains content that can be flushed to a screen.  Widgets
// must only write to the region they were assigned via Resizable.
type Flushable interface {
	FlushTo(screen tcell.Screen)
}

// Resizable widgets receive the screen region they are supposed to fill.
// Receiving a box is *not* a request to draw (that's Flushable).
type Resizable interface {
	SetBox(PositionBox)
}

// View is a widget: it can display and be given a size.
type View interface {
	Flushable
	Resizable
}

// PositionBox describes a rectangular region of the screen in cells,
// zero-indexed from the top-left.
type PositionBox struct {
	StartCol, StartRow int
	Cols, Rows         int
}

// Contains reports whether the given absolute screen cell falls inside
// this region.  Used to route mouse events to the right widget.
func (b PositionBox) Contains(col, row int) bool {
	return col >= b.StartCol && col < b.StartCol+b.Cols &&
		row >= b.StartRow && row < b.StartRow+b.Rows
}

// DockPos names the side a split's fixed-size pane is anchored to.
type DockPos int

const (
	PosBelow DockPos = iota
	PosAbove
	PosLeft
	PosRight
)

// SplitView divides its assigned region between a fixed-size "docked"
// pane and a "flexed" pane that takes whatever is left.  Used for the
// status bar and the command prompt at the bottom of the screen.
type SplitView struct {
	// Dock is the side the fixed-size pane sticks to.
	Dock DockPos

	// DockSize is the docked pane's size in rows or columns, depending on
	// the dock side.  It is clamped so that the flexed pane always keeps
	// at least one row/column.
	DockSize int

	// Docked and Flexed hold the two panes' content.  Panes that are also
	// Flushable get flushed when the split is.
	Docked Resizable
	Flexed Resizable
}

// split carves the given region into the docked and flexed boxes.
func (v *SplitView) split(box PositionBox) (docked, flexed PositionBox) {
	size := v.DockSize
	limit := box.Rows
	if v.Dock == PosLeft || v.Dock == PosRight {
		limit = box.Cols
	}
	if size >= limit {
		size = limit - 1
	}
	if size < 0 {
		size = 0
	}

	docked, flexed = box, box
	switch v.Dock {
	case PosBelow:
		docked.Rows = size
		docked.StartRow = box.StartRow + box.Rows - size
		flexed.Rows = box.Rows - size
	case PosAbove:
		docked.Rows = size
		flexed.Rows = box.Rows - size
		flexed.StartRow = box.StartRow + size
	case PosLeft:
		docked.Cols = size
		flexed.Cols = box.Cols - size
		flexed.StartCol = box.StartCol + size
	case PosRight:
		docked.Cols = size
		docked.StartCol = box.StartCol + box.Cols - size
		flexed.Cols = box.Cols - size
	default:
		panic("invalid dock position")
	}
	return docked, flexed
}

func (v *SplitView) SetBox(box PositionBox) {
	docked, flexed := v.split(box)
	v.Docked.SetBox(docked)
	v.Flexed.SetBox(flexed)
}

func (v *SplitView) FlushTo(screen tcell.Screen) {
	if flushable, canFlush := v.Docked.(Flushable); canFlush {
		flushable.FlushTo(screen)
	}
	if flushable, canFlush := v.Flexed.(Flushable); canFlush {
		flushable.FlushTo(screen)
	}
}

// StaticResizable just records the size it was given.
type StaticResizable struct {
	PositionBox
}

func (r *StaticResizable) SetBox(box PositionBox) {
	r.PositionBox = box
}
