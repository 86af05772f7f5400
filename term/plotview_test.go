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

package term_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gdamore/tcell"

	"sigs.k8s.io/runplot/plot"
	"sigs.k8s.io/runplot/term"
)

// fakeRec / fakeData are just enough data-layer to drive an engine.
type fakeRec struct {
	uid  string
	x, y float64
}

func (r *fakeRec) UID() string { return r.uid }
func (r *fakeRec) Value(axis string) (plot.Value, bool) {
	switch axis {
	case "x":
		return plot.Number(r.x), true
	case "y":
		return plot.Number(r.y), true
	}
	return plot.Value{}, false
}
func (r *fakeRec) Parent() (string, bool) { return "", false }

type fakeData struct {
	recs []*fakeRec
}

func (d *fakeData) Selected() []plot.Record {
	out := make([]plot.Record, len(d.recs))
	for i, r := range d.recs {
		out[i] = r
	}
	return out
}
func (d *fakeData) Highlighted() []plot.Record { return nil }
func (d *fakeData) Lookup(uid string) (plot.Record, bool) {
	for _, r := range d.recs {
		if r.uid == uid {
			return r, true
		}
	}
	return nil, false
}

type fakeSettings map[string]string

func (s fakeSettings) Get(key, def string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return def
}
func (s fakeSettings) Set(key, value string) { s[key] = value }

func plotEngine(data *fakeData, onHover func(string, bool)) *plot.Engine {
	eng, err := plot.New(plot.Config{
		Data: data,
		Descriptor: func(axis string) (plot.AxisDescriptor, bool) {
			if axis == "x" || axis == "y" {
				return plot.AxisDescriptor{Kind: plot.NumericAxis, Min: 0, Max: 100}, true
			}
			return plot.AxisDescriptor{}, false
		},
		RowColor: func(rec plot.Record, opacity float64) plot.Color {
			return plot.Color{R: 255, G: 255, B: 255, A: opacity}
		},
		RowLabel: func(rec plot.Record) string { return rec.UID() },
		Settings: fakeSettings{"axis.x": "x", "axis.y": "y"},
		Width:    80,
		Height:   48,
		Margins:  term.PlotMargins(),
		OnHover:  onHover,
	})
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return eng
}

func isBraille(rn rune) bool {
	return rn >= '⠀' && rn <= '⣿'
}

var _ = Describe("The plot view", func() {
	var (
		data *fakeData
		view *term.PlotView
	)
	BeforeEach(func() {
		data = &fakeData{recs: []*fakeRec{
			{uid: "r1", x: 50, y: 50},
			{uid: "r2", x: 90, y: 10},
		}}
		view = &term.PlotView{Engine: plotEngine(data, nil)}
		view.SetBox(term.PositionBox{Cols: 40, Rows: 12})
	})

	It("should draw axis lines with the corner at the gutter edge", func() {
		screen := renderTo(40, 12, view)
		runes := screenRunes(screen)
		// corner at the left gutter edge, one row above the label row
		Expect(runes[10*40+7]).To(Equal('┗'))
		Expect(runes[10*40+20]).To(Equal('━'))
		Expect(runes[9*40+7]).To(Equal('┃'))
		// domain midpoint tick, with its counterpart on the y axis
		Expect(runes[10*40+23]).To(Equal('┯'))
		Expect(runes[5*40+7]).To(Equal('┨'))
	})

	It("should paint the data as braille cells inside the plot area", func() {
		screen := renderTo(40, 12, view)
		runes := screenRunes(screen)

		painted := 0
		for _, rn := range runes {
			if isBraille(rn) && rn != '⠀' {
				painted++
			}
		}
		Expect(painted).NotTo(BeZero())
	})

	It("should show a placeholder instead of a plot when the engine is disabled", func() {
		view.Engine.SetAxis(plot.AxisX, "")
		view.DisabledText = "pick axes first"

		screen := renderTo(40, 12, view)
		runes := screenRunes(screen)
		for _, rn := range runes {
			Expect(isBraille(rn)).To(BeFalse())
		}
		Expect(string(runes[6*40+1 : 6*40+16])).To(Equal("pick axes first"))
	})

	Context("with mouse input", func() {
		It("should zoom on a drag and reset on a click", func() {
			press := tcell.NewEventMouse(12, 3, tcell.Button1, 0)
			move := tcell.NewEventMouse(30, 8, tcell.Button1, 0)
			release := tcell.NewEventMouse(30, 8, tcell.ButtonNone, 0)

			view.HandleMouse(press)
			Expect(view.Dragging()).To(BeTrue())
			view.HandleMouse(move)
			view.HandleMouse(release)

			Expect(view.Dragging()).To(BeFalse())
			Expect(view.Engine.Zoomed()).To(BeTrue())

			view.HandleMouse(tcell.NewEventMouse(20, 5, tcell.Button1, 0))
			view.HandleMouse(tcell.NewEventMouse(20, 5, tcell.ButtonNone, 0))
			Expect(view.Engine.Zoomed()).To(BeFalse())
		})

		It("should ignore drags starting outside the view", func() {
			view.HandleMouse(tcell.NewEventMouse(50, 20, tcell.Button1, 0))
			Expect(view.Dragging()).To(BeFalse())
		})

		It("should forward plain movement as hover tracking", func() {
			var hovered string
			var found bool
			view.Engine = plotEngine(data, func(label string, ok bool) {
				hovered = label
				found = ok
			})
			view.SetBox(term.PositionBox{Cols: 40, Rows: 12})

			// r1 at (50, 50) maps to pixel (46, 22) -> cell (23, 5)
			view.HandleMouse(tcell.NewEventMouse(23, 5, tcell.ButtonNone, 0))
			Expect(found).To(BeTrue())
			Expect(hovered).To(Equal("r1"))

			view.HandleMouse(tcell.NewEventMouse(50, 20, tcell.ButtonNone, 0))
			Expect(found).To(BeFalse())
		})
	})
})
