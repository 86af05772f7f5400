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
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/runplot/plot"
)

var _ = Describe("Scale building", func() {
	Context("for numeric descriptors", func() {
		scale := plot.BuildScale(plot.AxisDescriptor{Kind: plot.NumericAxis, Min: 0, Max: 100}, 60, 740)

		It("should map domain endpoints onto range endpoints", func() {
			px, ok := scale.Map(plot.Number(0))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 60))
			px, ok = scale.Map(plot.Number(100))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 740))
			px, ok = scale.Map(plot.Number(50))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 400))
		})

		It("should round-trip every in-domain value through the inverse", func() {
			for v := 0.0; v <= 100; v += 2.5 {
				px, ok := scale.Map(plot.Number(v))
				Expect(ok).To(BeTrue())
				back, ok := scale.Invert(px)
				Expect(ok).To(BeTrue())
				Expect(back).To(BeNumerically("~", v, 1e-9))
			}
		})

		It("should work with reversed pixel ranges", func() {
			rev := plot.BuildScale(plot.AxisDescriptor{Kind: plot.NumericAxis, Min: 0, Max: 100}, 430, 20)
			px, ok := rev.Map(plot.Number(0))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 430))
			px, ok = rev.Map(plot.Number(100))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 20))
			back, ok := rev.Invert(225)
			Expect(ok).To(BeTrue())
			Expect(back).To(BeNumerically("~", 50, 1e-9))
		})

		It("should refuse labels and the inf sentinels", func() {
			_, ok := scale.Map(plot.Label("oops"))
			Expect(ok).To(BeFalse())
			_, ok = scale.Map(plot.Label("inf"))
			Expect(ok).To(BeFalse())
			_, ok = scale.Map(plot.Label("-inf"))
			Expect(ok).To(BeFalse())
		})

		It("should park flat domains mid-range", func() {
			flat := plot.BuildScale(plot.AxisDescriptor{Kind: plot.NumericAxis, Min: 5, Max: 5}, 0, 100)
			px, ok := flat.Map(plot.Number(5))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 50))
		})
	})

	Context("for log descriptors", func() {
		scale := plot.BuildScale(plot.AxisDescriptor{Kind: plot.LogAxis, Min: 1, Max: 10000}, 0, 400)

		It("should space decades evenly", func() {
			px, ok := scale.Map(plot.Number(1))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("~", 0, 1e-9))
			px, ok = scale.Map(plot.Number(100))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("~", 200, 1e-9))
			px, ok = scale.Map(plot.Number(10000))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("~", 400, 1e-9))
		})

		It("should round-trip in-domain values", func() {
			for _, v := range []float64{1, 3, 42, 999, 10000} {
				px, ok := scale.Map(plot.Number(v))
				Expect(ok).To(BeTrue())
				back, ok := scale.Invert(px)
				Expect(ok).To(BeTrue())
				Expect(back).To(BeNumerically("~", v, v*1e-9))
			}
		})

		It("should refuse non-positive values", func() {
			_, ok := scale.Map(plot.Number(0))
			Expect(ok).To(BeFalse())
			_, ok = scale.Map(plot.Number(-3))
			Expect(ok).To(BeFalse())
		})

		It("should clamp domains that cross zero", func() {
			crossing := plot.BuildScale(plot.AxisDescriptor{Kind: plot.LogAxis, Min: -5, Max: 100}, 0, 100)
			px, ok := crossing.Map(plot.Number(100))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 100))
		})
	})

	Context("for categorical descriptors", func() {
		scale := plot.BuildScale(plot.AxisDescriptor{
			Kind:       plot.CategoricalAxis,
			Categories: []string{"red", "green", "blue"},
		}, 0, 300)

		It("should place categories at band centers, in order", func() {
			px, ok := scale.Map(plot.Label("red"))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 50))
			px, ok = scale.Map(plot.Label("green"))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 150))
			px, ok = scale.Map(plot.Label("blue"))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 250))
		})

		It("should refuse unknown categories", func() {
			_, ok := scale.Map(plot.Label("mauve"))
			Expect(ok).To(BeFalse())
		})

		It("should have no inverse", func() {
			_, ok := scale.Invert(150)
			Expect(ok).To(BeFalse())
		})

		It("should match numeric values by their canonical text", func() {
			numeric := plot.BuildScale(plot.AxisDescriptor{
				Kind:       plot.CategoricalAxis,
				Categories: []string{"1", "2"},
			}, 0, 100)
			px, ok := numeric.Map(plot.Number(2))
			Expect(ok).To(BeTrue())
			Expect(px).To(BeNumerically("==", 75))
		})
	})

	Context("when producing ticks", func() {
		It("should always include both endpoints", func() {
			scale := plot.BuildScale(plot.AxisDescriptor{Kind: plot.NumericAxis, Min: 0, Max: 100}, 0, 680)
			ticks := scale.Ticks(5)
			Expect(ticks).NotTo(BeEmpty())
			Expect(ticks[0].Px).To(BeNumerically("==", 0))
			Expect(ticks[len(ticks)-1].Px).To(BeNumerically("==", 680))
		})

		It("should label every category", func() {
			scale := plot.BuildScale(plot.AxisDescriptor{
				Kind:       plot.CategoricalAxis,
				Categories: []string{"red", "green", "blue"},
			}, 0, 300)
			ticks := scale.Ticks(10)
			Expect(ticks).To(HaveLen(3))
			Expect(ticks[0].Label).To(Equal("red"))
		})
	})
})
