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

	"sigs.k8s.io/runplot/plot"
)

// Label gutters around the plot area, in cells.  The left gutter holds
// right-justified y tick labels plus the axis line; the bottom gutter
// holds the x axis line plus its labels.
const (
	gutterLeftCols   = 8
	gutterBottomRows = 2
	gutterTopRows    = 1
	gutterRightCols  = 2
)

// PlotMargins are the gutters expressed in the engine's pixel space
// (braille positions), for wiring into the engine configuration.
func PlotMargins() plot.Margins {
	return plot.Margins{
		Left:   gutterLeftCols * brailleCellWidth,
		Right:  gutterRightCols * brailleCellWidth,
		Top:    gutterTopRows * brailleCellHeight,
		Bottom: gutterBottomRows * brailleCellHeight,
	}
}

// brushDrag tracks an in-progress mouse selection, in pixel coords.
type brushDrag struct {
	startX, startY float64
	lastX, lastY   float64
	active         bool
}

// PlotView renders a plot engine into its assigned region: the engine
// paints into a braille sub-cell raster, axes and tick labels go into
// the gutters, and mouse input feeds back into the engine as hover and
// brush gestures.
type PlotView struct {
	// Engine drives everything the view displays.  Required.
	Engine *plot.Engine

	// ResizeDebounce, when set, delays the engine resize until a burst of
	// box changes quiets down.  The debouncer's Post function must
	// deliver back onto the event loop.
	ResizeDebounce *plot.Debouncer

	// DisabledText shows when the engine has no axes chosen.
	DisabledText string

	pos    PositionBox
	raster *brailleRaster
	drag   brushDrag
}

func (v *PlotView) SetBox(box PositionBox) {
	v.pos = box
	if box.Cols <= 0 || box.Rows <= 0 {
		v.raster = nil
		return
	}
	v.raster = newBrailleRaster(box.Cols, box.Rows)

	pxCols, pxRows := v.raster.PixelSize()
	if v.ResizeDebounce != nil {
		v.ResizeDebounce.Trigger(func() {
			v.Engine.Resize(float64(pxCols), float64(pxRows))
		})
		return
	}
	v.Engine.Resize(float64(pxCols), float64(pxRows))
}

func (v *PlotView) FlushTo(screen tcell.Screen) {
	if v.raster == nil {
		return
	}
	if !v.Engine.Enabled() {
		text := v.DisabledText
		if text == "" {
			text = "no axes chosen"
		}
		v.drawText(screen, v.pos.StartCol+1, v.pos.StartRow+v.pos.Rows/2,
			tcell.StyleDefault.Dim(true), text)
		return
	}

	v.raster.Clear()
	v.Engine.FlushTo(v.raster)
	v.blit(screen)
	v.drawAxes(screen)
}

// blit copies the raster onto the screen cell by cell, reverse-styling
// cells under an active brush rectangle.
func (v *PlotView) blit(screen tcell.Screen) {
	brushed := v.brushCells()
	for row := 0; row < v.pos.Rows; row++ {
		for col := 0; col < v.pos.Cols; col++ {
			rn, color, painted := v.raster.Cell(col, row)
			sty := tcell.StyleDefault
			if painted {
				sty = sty.Foreground(color)
			}
			if brushed.Contains(col, row) {
				sty = sty.Reverse(true)
			} else if !painted {
				continue
			}
			screen.SetContent(v.pos.StartCol+col, v.pos.StartRow+row, rn, nil, sty)
		}
	}
}

// brushCells is the cell-space rectangle of the active drag (empty box
// when no drag is running).
func (v *PlotView) brushCells() PositionBox {
	if !v.drag.active {
		return PositionBox{}
	}
	x0, x1 := int(v.drag.startX)/brailleCellWidth, int(v.drag.lastX)/brailleCellWidth
	y0, y1 := int(v.drag.startY)/brailleCellHeight, int(v.drag.lastY)/brailleCellHeight
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return PositionBox{StartCol: x0, StartRow: y0, Cols: x1 - x0 + 1, Rows: y1 - y0 + 1}
}

func (v *PlotView) drawAxes(screen tcell.Screen) {
	frame, ok := v.Engine.Frame()
	if !ok {
		return
	}

	axisCol := gutterLeftCols - 1
	axisRow := v.pos.Rows - gutterBottomRows
	if axisRow <= gutterTopRows || v.pos.Cols <= gutterLeftCols {
		return
	}
	var sty tcell.Style

	for row := gutterTopRows; row < axisRow; row++ {
		v.setCell(screen, axisCol, row, '┃', sty)
	}
	for col := axisCol + 1; col < v.pos.Cols-gutterRightCols; col++ {
		v.setCell(screen, col, axisRow, '━', sty)
	}

	// y ticks: marker on the axis, label right-justified beside it
	for _, tick := range frame.YScale.Ticks(axisRow - gutterTopRows) {
		row := int(tick.Px) / brailleCellHeight
		if row < gutterTopRows || row >= axisRow {
			continue
		}
		v.setCell(screen, axisCol, row, '┨', sty)
		lbl := tick.Label
		if len(lbl) > axisCol-1 {
			lbl = lbl[:axisCol-1]
		}
		v.drawText(screen, v.pos.StartCol+axisCol-len(lbl)-1, v.pos.StartRow+row, sty, lbl)
	}

	// x ticks: marker on the axis, label on the row below
	maxXTicks := (v.pos.Cols - gutterLeftCols - gutterRightCols) / 10
	for _, tick := range frame.XScale.Ticks(maxXTicks) {
		col := int(tick.Px) / brailleCellWidth
		if col <= axisCol || col >= v.pos.Cols {
			continue
		}
		v.setCell(screen, col, axisRow, '┯', sty)
		lblCol := col
		if over := lblCol + len(tick.Label) - v.pos.Cols; over > 0 {
			lblCol -= over
		}
		v.drawText(screen, v.pos.StartCol+lblCol, v.pos.StartRow+axisRow+1, sty, tick.Label)
	}

	v.setCell(screen, axisCol, axisRow, '┗', sty)
}

func (v *PlotView) setCell(screen tcell.Screen, col, row int, rn rune, sty tcell.Style) {
	screen.SetContent(v.pos.StartCol+col, v.pos.StartRow+row, rn, nil, sty)
}

func (v *PlotView) drawText(screen tcell.Screen, col, row int, sty tcell.Style, text string) {
	for _, rn := range text {
		screen.SetContent(col, row, rn, nil, sty)
		col++
	}
}

// HandleMouse feeds a mouse event into the view: plain movement becomes
// hover tracking, button-1 drags become a brush selection committed on
// release.  Drags smaller than one cell reset any zoom instead.
func (v *PlotView) HandleMouse(evt *tcell.EventMouse) {
	col, row := evt.Position()
	inside := v.pos.Contains(col, row)

	// cell center, in pixel coords
	px := float64((col-v.pos.StartCol)*brailleCellWidth) + 1
	py := float64((row-v.pos.StartRow)*brailleCellHeight) + 2

	if evt.Buttons()&tcell.Button1 != 0 {
		if !v.drag.active {
			if !inside {
				return
			}
			v.drag = brushDrag{startX: px, startY: py, lastX: px, lastY: py, active: true}
			return
		}
		v.drag.lastX, v.drag.lastY = px, py
		return
	}

	if v.drag.active {
		drag := v.drag
		v.drag = brushDrag{}
		if tinyDrag(drag) {
			v.Engine.BrushEnd(nil)
			return
		}
		v.Engine.BrushEnd(&plot.Brush{
			X0: drag.startX, Y0: drag.startY,
			X1: drag.lastX, Y1: drag.lastY,
		})
		return
	}

	if inside {
		v.Engine.PointerMove(px, py)
	} else {
		v.Engine.PointerLeave()
	}
}

// Dragging reports whether a brush selection is in progress (the view
// wants repaints while it is, to show the rectangle).
func (v *PlotView) Dragging() bool {
	return v.drag.active
}

func tinyDrag(d brushDrag) bool {
	dx, dy := d.lastX-d.startX, d.lastY-d.startY
	return dx*dx < brailleCellWidth*brailleCellWidth &&
		dy*dy < brailleCellHeight*brailleCellHeight
}
