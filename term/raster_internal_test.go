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
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/c-bata/go-prompt"
	"github.com/gdamore/tcell"

	"sigs.k8s.io/runplot/plot"
)

var opaque = func(r, g, b uint8) plot.Color {
	return plot.Color{R: r, G: g, B: b, A: 1}
}

var _ = Describe("The braille raster", func() {
	It("should set single braille positions for tiny dots", func() {
		raster := newBrailleRaster(2, 1)
		raster.Dot(plot.ScreenPoint{X: 0, Y: 0}, opaque(255, 0, 0), 0.5)

		rn, color, ok := raster.Cell(0, 0)
		Expect(ok).To(BeTrue())
		// top-left braille position is the 0x01 bit
		Expect(rn).To(Equal('⠁'))
		Expect(color).To(Equal(tcell.NewRGBColor(255, 0, 0)))

		_, _, ok = raster.Cell(1, 0)
		Expect(ok).To(BeFalse())
	})

	It("should map sub-cell rows onto the column-wise braille bits", func() {
		raster := newBrailleRaster(1, 1)
		// bottom-right position is the 0x80 bit
		raster.Dot(plot.ScreenPoint{X: 1, Y: 3}, opaque(255, 255, 255), 0.5)

		rn, _, ok := raster.Cell(0, 0)
		Expect(ok).To(BeTrue())
		Expect(rn).To(Equal('⢀'))
	})

	It("should stroke horizontal lines across cell boundaries", func() {
		raster := newBrailleRaster(2, 1)
		raster.Line(plot.ScreenPoint{X: 0, Y: 0}, plot.ScreenPoint{X: 3, Y: 0}, opaque(255, 255, 255), 1)

		left, _, ok := raster.Cell(0, 0)
		Expect(ok).To(BeTrue())
		// both top positions: bits 0x01 | 0x08
		Expect(left).To(Equal('⠉'))
		right, _, ok := raster.Cell(1, 0)
		Expect(ok).To(BeTrue())
		Expect(right).To(Equal('⠉'))
	})

	It("should blend translucent paint over earlier strokes", func() {
		raster := newBrailleRaster(1, 1)
		at := plot.ScreenPoint{X: 0, Y: 0}
		raster.Dot(at, plot.Color{R: 200, A: 1}, 0.5)
		raster.Dot(at, plot.Color{G: 100, A: 0.5}, 0.5)

		_, color, ok := raster.Cell(0, 0)
		Expect(ok).To(BeTrue())
		Expect(color).To(Equal(tcell.NewRGBColor(100, 50, 0)))
	})

	It("should drop out-of-bounds paint instead of wrapping", func() {
		raster := newBrailleRaster(1, 1)
		raster.Dot(plot.ScreenPoint{X: -10, Y: 0}, opaque(255, 255, 255), 0.5)
		raster.Dot(plot.ScreenPoint{X: 0, Y: 40}, opaque(255, 255, 255), 0.5)

		_, _, ok := raster.Cell(0, 0)
		Expect(ok).To(BeFalse())
	})

	It("should forget everything on Clear", func() {
		raster := newBrailleRaster(1, 1)
		raster.Dot(plot.ScreenPoint{X: 0, Y: 0}, opaque(255, 255, 255), 2)
		raster.Clear()

		_, _, ok := raster.Cell(0, 0)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Key translation", func() {
	It("should pass plain runes through as UTF-8", func() {
		Expect(keyToSequence(tcell.NewEventKey(tcell.KeyRune, 'a', 0))).To(Equal([]byte{'a'}))
		Expect(keyToSequence(tcell.NewEventKey(tcell.KeyRune, 'é', 0))).To(Equal([]byte("é")))
	})

	It("should translate enter and tab to their control sequences", func() {
		Expect(keyToSequence(tcell.NewEventKey(tcell.KeyEnter, 0, 0))).To(Equal([]byte{0x0d}))
		Expect(keyToSequence(tcell.NewEventKey(tcell.KeyTab, 0, 0))).To(Equal([]byte{0x09}))
	})

	It("should translate arrow keys with their modifiers", func() {
		plain := promptKeyFor(tcell.NewEventKey(tcell.KeyLeft, 0, 0))
		Expect(plain).To(Equal(prompt.Left))
		ctrl := promptKeyFor(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl))
		Expect(ctrl).To(Equal(prompt.ControlLeft))
		shift := promptKeyFor(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift))
		Expect(shift).To(Equal(prompt.ShiftLeft))
	})

	It("should translate the control-letter range", func() {
		Expect(promptKeyFor(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))).To(Equal(prompt.ControlC))
	})

	It("should return nil for keys with no prompt equivalent", func() {
		Expect(keyToSequence(tcell.NewEventKey(tcell.KeyPrint, 0, 0))).To(BeNil())
	})
})

var _ = Describe("The text grid", func() {
	render := func(t *textGrid) string {
		screen := tcell.NewSimulationScreen("")
		screen.Init()
		screen.SetSize(t.cols, t.rows)
		t.FlushTo(screen, 0, 0)
		screen.Show()

		cells, _, _ := screen.GetContents()
		out := make([]rune, 0, len(cells))
		for _, cell := range cells {
			if len(cell.Runes) == 0 {
				out = append(out, ' ')
				continue
			}
			out = append(out, cell.Runes[0])
		}
		return string(out)
	}

	It("should wrap text at the grid width", func() {
		grid := &textGrid{}
		grid.Resize(5, 2)
		grid.WriteString("hello you", tcell.StyleDefault)

		Expect(render(grid)).To(Equal("hello you "))
	})

	It("should scroll the top line off when full", func() {
		grid := &textGrid{}
		grid.Resize(5, 2)
		grid.WriteString("one\ntwo\nsix", tcell.StyleDefault)

		Expect(render(grid)).To(Equal("two  six  "))
	})

	It("should erase from the cursor down", func() {
		grid := &textGrid{}
		grid.Resize(5, 2)
		grid.WriteString("aaaaabbbbb", tcell.StyleDefault)
		grid.CursorGoTo(1, 2)
		grid.EraseDown()

		Expect(render(grid)).To(Equal("aaaaabb   "))
	})

	It("should clamp cursor movement at the edges", func() {
		grid := &textGrid{}
		grid.Resize(5, 2)
		grid.CursorForward(100)
		grid.CursorDown(100)
		col, row := grid.CursorPosition()
		Expect(col).To(Equal(4))
		Expect(row).To(Equal(1))

		grid.CursorBackward(100)
		grid.CursorUp(100)
		col, row = grid.CursorPosition()
		Expect(col).To(Equal(0))
		Expect(row).To(Equal(0))
	})
})
