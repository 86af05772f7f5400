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

package plot_test

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/runplot/plot"
)

var _ = Describe("The plot engine", func() {
	Context("when constructed", func() {
		It("should reject missing collaborators", func() {
			_, err := plot.New(plot.Config{})
			Expect(err).To(HaveOccurred())
		})

		It("should stay disabled without persisted axis choices", func() {
			eng, err := plot.New(testConfig(newTrivialData()))
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Enabled()).To(BeFalse())
		})

		It("should restore persisted axis choices and start enabled", func() {
			eng := enabledEngine(newTrivialData(numRec("r1", 50, 50)))
			Expect(eng.Axis(plot.AxisX)).To(Equal("a"))
			Expect(eng.Axis(plot.AxisY)).To(Equal("b"))
			Expect(eng.Points().Len()).To(Equal(1))
		})
	})

	Context("when axes change", func() {
		It("should persist the new choice", func() {
			store := memSettings{"axis.x": "a", "axis.y": "b"}
			cfg := testConfig(newTrivialData(numRec("r1", 50, 50)))
			cfg.Settings = store
			eng, err := plot.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			eng.SetAxis(plot.AxisY, "a")
			Expect(store["axis.y"]).To(Equal("a"))
		})

		It("should disable, clear surfaces, and notify when an axis unsets", func() {
			disabled := false
			cfg := testConfig(newTrivialData(numRec("r1", 50, 50)))
			cfg.Settings = memSettings{"axis.x": "a", "axis.y": "b"}
			cfg.OnDisabled = func() { disabled = true }
			eng, err := plot.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			eng.SetAxis(plot.AxisX, "")

			Expect(eng.Enabled()).To(BeFalse())
			Expect(disabled).To(BeTrue())
			Expect(eng.Points().Len()).To(BeZero())
			sink := &recordingSink{}
			eng.FlushTo(sink)
			Expect(sink.ops).To(BeEmpty())
		})

		It("should re-enable and fully redraw when both axes come back", func() {
			eng := enabledEngine(newTrivialData(numRec("r1", 50, 50)))
			eng.SetAxis(plot.AxisX, "")
			eng.SetAxis(plot.AxisX, "a")

			Expect(eng.Enabled()).To(BeTrue())
			sink := &recordingSink{}
			eng.FlushTo(sink)
			Expect(sink.dots()).To(HaveLen(1))
		})
	})

	Context("when brushing", func() {
		// the drawable area is x [60, 740] / y [20, 430] over a [0, 100]
		// domain on both axes
		It("should zoom to the selection's inverted domain", func() {
			eng := enabledEngine(newTrivialData(numRec("r1", 50, 50)))

			eng.BrushEnd(&plot.Brush{X0: 230, Y0: 130, X1: 570, Y1: 320})
			Expect(eng.Zoomed()).To(BeTrue())

			frame, ok := eng.Frame()
			Expect(ok).To(BeTrue())

			xLo, ok := frame.XScale.Invert(60)
			Expect(ok).To(BeTrue())
			Expect(xLo).To(BeNumerically("~", 25, 1e-9))
			xHi, _ := frame.XScale.Invert(740)
			Expect(xHi).To(BeNumerically("~", 75, 1e-9))

			yLo, ok := frame.YScale.Invert(430)
			Expect(ok).To(BeTrue())
			Expect(yLo).To(BeNumerically("~", 100*110.0/410.0, 1e-9))
			yHi, _ := frame.YScale.Invert(20)
			Expect(yHi).To(BeNumerically("~", 100*300.0/410.0, 1e-9))
		})

		It("should restore the full-extent domain exactly on an empty brush", func() {
			eng := enabledEngine(newTrivialData(numRec("r1", 50, 50)))

			eng.BrushEnd(&plot.Brush{X0: 230, Y0: 130, X1: 570, Y1: 320})
			eng.BrushEnd(nil)

			Expect(eng.Zoomed()).To(BeFalse())
			frame, _ := eng.Frame()
			xLo, _ := frame.XScale.Invert(60)
			Expect(xLo).To(BeNumerically("==", 0))
			xHi, _ := frame.XScale.Invert(740)
			Expect(xHi).To(BeNumerically("==", 100))
		})

		It("should treat a zero-area selection as a reset", func() {
			eng := enabledEngine(newTrivialData(numRec("r1", 50, 50)))
			eng.BrushEnd(&plot.Brush{X0: 230, Y0: 130, X1: 570, Y1: 320})
			eng.BrushEnd(&plot.Brush{X0: 100, Y0: 100, X1: 100, Y1: 300})
			Expect(eng.Zoomed()).To(BeFalse())
		})

		It("should leave a categorical axis untouched", func() {
			rec := &trivialRecord{uid: "r1", vals: map[string]plot.Value{
				"a":   plot.Number(50),
				"cat": plot.Label("green"),
			}}
			cfg := testConfig(newTrivialData(rec))
			cfg.Settings = memSettings{"axis.x": "a", "axis.y": "cat"}
			eng, err := plot.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			before, _ := eng.Frame()
			beforePx, _ := before.YScale.Map(plot.Label("green"))

			eng.BrushEnd(&plot.Brush{X0: 230, Y0: 130, X1: 570, Y1: 320})

			after, _ := eng.Frame()
			afterPx, _ := after.YScale.Map(plot.Label("green"))
			Expect(afterPx).To(BeNumerically("==", beforePx))

			// the numeric axis still zoomed
			xLo, _ := after.XScale.Invert(60)
			Expect(xLo).To(BeNumerically(">", 0))
		})

		It("should rebuild the displayed-point cache identically on replay", func() {
			eng := enabledEngine(newTrivialData(
				numRec("r1", 10, 10),
				numRec("r2", 50, 50),
				numRec("r3", 90, 90),
			))

			first := append([]plot.DisplayedPoint(nil), eng.Points().Entries()...)
			eng.BrushEnd(nil) // full clear + replay at the same scale
			second := append([]plot.DisplayedPoint(nil), eng.Points().Entries()...)
			Expect(second).To(Equal(first))
		})

		It("should repaint every selected record through the replay cache", func() {
			eng := enabledEngine(newTrivialData(
				numRec("r1", 10, 10),
				numRec("r2", 50, 50),
			))

			eng.BrushEnd(&plot.Brush{X0: 60, Y0: 20, X1: 740, Y1: 430})

			sink := &recordingSink{}
			eng.FlushTo(sink)
			Expect(sink.dots()).To(HaveLen(2))
		})
	})

	Context("when hovering", func() {
		It("should signal the nearest point as the sole highlight with its label", func() {
			var highlighted [][]string
			var labels []string
			cfg := testConfig(newTrivialData(
				numRec("r1", 0, 0),   // at (60, 430)
				numRec("r2", 100, 0), // at (740, 430)
			))
			cfg.Settings = memSettings{"axis.x": "a", "axis.y": "b"}
			cfg.OnHighlight = func(uids []string) { highlighted = append(highlighted, uids) }
			cfg.OnHover = func(label string, found bool) {
				if found {
					labels = append(labels, label)
				}
			}
			eng, err := plot.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			eng.PointerMove(100, 420)

			Expect(highlighted).To(HaveLen(1))
			Expect(highlighted[0]).To(Equal([]string{"r1"}))
			Expect(labels).To(Equal([]string{"run r1"}))
		})

		It("should signal an empty highlight set on pointer leave", func() {
			var last []string = []string{"sentinel"}
			cfg := testConfig(newTrivialData(numRec("r1", 0, 0)))
			cfg.Settings = memSettings{"axis.x": "a", "axis.y": "b"}
			cfg.OnHighlight = func(uids []string) { last = uids }
			eng, err := plot.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			eng.PointerLeave()
			Expect(last).To(BeEmpty())
		})

		It("should show the no-point indicator over an empty cache", func() {
			foundAnything := true
			cfg := testConfig(newTrivialData()) // nothing selected
			cfg.Settings = memSettings{"axis.x": "a", "axis.y": "b"}
			cfg.OnHover = func(label string, found bool) { foundAnything = found }
			cfg.OnHighlight = func(uids []string) { Fail("no highlight should be signalled") }
			eng, err := plot.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			eng.PointerMove(100, 100)
			Expect(foundAnything).To(BeFalse())
		})
	})

	Context("when highlighting chains", func() {
		chainData := func() *trivialData {
			r1 := numRec("r1", 10, 10)
			r2 := numRec("r2", 20, 20)
			r2.parent = "r1"
			r3 := numRec("r3", 30, 30)
			r3.parent = "r2"
			return newTrivialData(r1, r2, r3)
		}

		highlightDots := func(eng *plot.Engine) []recordedOp {
			sink := &recordingSink{}
			eng.FlushTo(sink)
			var emphasized []recordedOp
			for _, op := range sink.dots() {
				if op.radius == 4 {
					emphasized = append(emphasized, op)
				}
			}
			return emphasized
		}

		It("should render exactly the k records of a length-k chain onto the overlay", func() {
			data := chainData()
			eng := enabledEngine(data)

			data.highlighted = []plot.Record{data.byUID["r3"]}
			eng.HighlightsChanged()

			Expect(highlightDots(eng)).To(HaveLen(3))
		})

		It("should dim the base layer while anything is highlighted, and restore it after", func() {
			data := chainData()
			eng := enabledEngine(data)

			data.highlighted = []plot.Record{data.byUID["r3"]}
			eng.HighlightsChanged()

			sink := &recordingSink{}
			eng.FlushTo(sink)
			var baseAlphas, overlayAlphas []float64
			for _, op := range sink.dots() {
				if op.radius == 4 {
					overlayAlphas = append(overlayAlphas, op.color.A)
				} else {
					baseAlphas = append(baseAlphas, op.color.A)
				}
			}
			Expect(overlayAlphas).To(ContainElement(BeNumerically("==", 1)))
			for _, a := range baseAlphas {
				Expect(a).To(BeNumerically("<=", 0.5))
			}

			data.highlighted = nil
			eng.HighlightsChanged()
			Expect(highlightDots(eng)).To(BeEmpty())
		})

		It("should stop at the depth cap on cyclic parent references", func() {
			a := numRec("a", 10, 10)
			b := numRec("b", 20, 20)
			a.parent = "b"
			b.parent = "a"
			data := newTrivialData(a, b)

			logBuf := &bytes.Buffer{}
			cfg := testConfig(data)
			cfg.Settings = memSettings{"axis.x": "a", "axis.y": "b"}
			cfg.Logger = log.New(logBuf, "", 0)
			eng, err := plot.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			data.highlighted = []plot.Record{a}
			eng.HighlightsChanged() // must terminate
			Expect(logBuf.String()).To(ContainSubstring("cycle"))
		})
	})

	Context("when resizing", func() {
		It("should rebuild scales over the new geometry", func() {
			eng := enabledEngine(newTrivialData(numRec("r1", 50, 50)))

			eng.Resize(1000, 500)

			frame, ok := eng.Frame()
			Expect(ok).To(BeTrue())
			Expect(frame.Width).To(BeNumerically("==", 1000))
			px, _ := frame.XScale.Map(plot.Number(100))
			Expect(px).To(BeNumerically("==", 940))
		})

		It("should drop a second resize inside the throttle window", func() {
			eng := enabledEngine(newTrivialData(numRec("r1", 50, 50)))

			eng.Resize(1000, 500)
			eng.Resize(1200, 600)

			frame, _ := eng.Frame()
			Expect(frame.Width).To(BeNumerically("==", 1000))
			// but the size itself is remembered for the next rebuild
			Expect(eng.Height()).To(BeNumerically("==", 600))
		})

		It("should reset zoom to full extent", func() {
			eng := enabledEngine(newTrivialData(numRec("r1", 50, 50)))
			eng.BrushEnd(&plot.Brush{X0: 230, Y0: 130, X1: 570, Y1: 320})
			Expect(eng.Zoomed()).To(BeTrue())

			eng.Resize(1000, 500)
			Expect(eng.Zoomed()).To(BeFalse())
		})
	})

	Context("when disposed", func() {
		It("should flush nothing and ignore further events", func() {
			eng := enabledEngine(newTrivialData(numRec("r1", 50, 50)))
			eng.Dispose()

			sink := &recordingSink{}
			eng.FlushTo(sink)
			Expect(sink.ops).To(BeEmpty())

			eng.SetAxis(plot.AxisX, "b") // must not panic or revive
			Expect(eng.Enabled()).To(BeFalse())
		})
	})
})
