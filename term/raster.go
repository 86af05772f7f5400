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
	"math"

	"github.com/gdamore/tcell"

	"sigs.k8s.io/runplot/plot"
)

// Each terminal cell subdivides into a 2x4 grid of braille positions,
// which is the pixel space the plot engine draws in.
const (
	brailleCellWidth  = 2
	brailleCellHeight = 4
)

// Per the braille patterns block, each position in a cell maps to a bit,
// laid out column-wise:
//
//	0 3
//	1 4
//	2 5
//	6 7
//
// brailleBits is indexed by intraCol*4+intraRow.
var brailleBits = [8]rune{1 << 0, 1 << 1, 1 << 2, 1 << 6, 1 << 3, 1 << 4, 1 << 5, 1 << 7}

const brailleBlockStart = '⠀'

// subPixel is one braille position's accumulated color.  Paint calls
// alpha-blend over what is already there (over black when unset), so
// overlapping strokes brighten toward their colors rather than simply
// replacing each other.
type subPixel struct {
	r, g, b float64
	set     bool
}

// brailleRaster is the PaintSink the plot engine flushes into: a
// sub-cell pixel grid covering a widget's whole assigned region.
type brailleRaster struct {
	pxCols, pxRows int
	px             []subPixel
}

func newBrailleRaster(cellCols, cellRows int) *brailleRaster {
	pxCols := cellCols * brailleCellWidth
	pxRows := cellRows * brailleCellHeight
	return &brailleRaster{
		pxCols: pxCols,
		pxRows: pxRows,
		px:     make([]subPixel, pxCols*pxRows),
	}
}

func (r *brailleRaster) Clear() {
	for i := range r.px {
		r.px[i] = subPixel{}
	}
}

// PixelSize reports the raster's size in braille positions.
func (r *brailleRaster) PixelSize() (cols, rows int) {
	return r.pxCols, r.pxRows
}

func (r *brailleRaster) blend(x, y int, c plot.Color) {
	if x < 0 || x >= r.pxCols || y < 0 || y >= r.pxRows {
		return
	}
	px := &r.px[y*r.pxCols+x]
	a := c.A
	px.r = px.r*(1-a) + float64(c.R)*a
	px.g = px.g*(1-a) + float64(c.G)*a
	px.b = px.b*(1-a) + float64(c.B)*a
	px.set = true
}

// Dot paints a filled disc.
func (r *brailleRaster) Dot(at plot.ScreenPoint, color plot.Color, radius float64) {
	cx, cy := int(math.Round(at.X)), int(math.Round(at.Y))
	ri := int(math.Ceil(radius))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				r.blend(cx+dx, cy+dy, color)
			}
		}
	}
}

// Line strokes a segment with Bresenham, thickened perpendicular to its
// major direction for widths above one.
func (r *brailleRaster) Line(from, to plot.ScreenPoint, color plot.Color, width float64) {
	x0, y0 := int(math.Round(from.X)), int(math.Round(from.Y))
	x1, y1 := int(math.Round(to.X)), int(math.Round(to.Y))

	steep := abs(y1-y0) > abs(x1-x0)
	w := int(math.Round(width))
	if w < 1 {
		w = 1
	}
	// offsets 0, 1, -1, 2, -2, ... keep thick strokes centered
	for i := 0; i < w; i++ {
		off := (i + 1) / 2
		if i%2 == 0 {
			off = -off
		}
		if steep {
			r.stroke(x0+off, y0, x1+off, y1, color)
		} else {
			r.stroke(x0, y0+off, x1, y1+off, color)
		}
	}
}

func (r *brailleRaster) stroke(x0, y0, x1, y1 int, c plot.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		r.blend(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Cell assembles the braille rune and blended color for one terminal
// cell.  ok is false for an entirely unpainted cell.
func (r *brailleRaster) Cell(cellCol, cellRow int) (rn rune, color tcell.Color, ok bool) {
	baseX := cellCol * brailleCellWidth
	baseY := cellRow * brailleCellHeight

	bits := rune(0)
	var sumR, sumG, sumB float64
	count := 0
	for intraCol := 0; intraCol < brailleCellWidth; intraCol++ {
		for intraRow := 0; intraRow < brailleCellHeight; intraRow++ {
			x, y := baseX+intraCol, baseY+intraRow
			if x >= r.pxCols || y >= r.pxRows {
				continue
			}
			px := r.px[y*r.pxCols+x]
			if !px.set {
				continue
			}
			bits |= brailleBits[intraCol*brailleCellHeight+intraRow]
			sumR += px.r
			sumG += px.g
			sumB += px.b
			count++
		}
	}
	if bits == 0 {
		return ' ', tcell.ColorDefault, false
	}
	n := float64(count)
	color = tcell.NewRGBColor(
		int32(math.Round(sumR/n)),
		int32(math.Round(sumG/n)),
		int32(math.Round(sumB/n)))
	return brailleBlockStart + bits, color, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
