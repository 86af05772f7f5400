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
	"fmt"
	"math"
)

// AxisKind describes how values on an axis should be scaled.
type AxisKind int

const (
	// NumericAxis values scale linearly.
	NumericAxis AxisKind = iota
	// LogAxis values scale logarithmically (base 10).
	LogAxis
	// CategoricalAxis values are discrete labels placed at evenly spaced
	// band centers.
	CategoricalAxis
)

// AxisDescriptor declares the value domain of one axis.  Descriptors are
// owned by the surrounding application (typically inferred from the *full*
// data extent, not just the selected subset) and are read-only here.
type AxisDescriptor struct {
	Kind AxisKind

	// Min and Max bound the domain for numeric/log axes.
	Min, Max float64

	// Categories lists the ordered domain for categorical axes.
	Categories []string
}

// withDomain returns a copy of the descriptor with the numeric bounds
// replaced.  Used when zooming; the original descriptor is never mutated.
func (d AxisDescriptor) withDomain(min, max float64) AxisDescriptor {
	d.Min = min
	d.Max = max
	return d
}

// Tick is one labeled position along a built scale, in pixel coordinates.
type Tick struct {
	Px    float64
	Label string
}

// Scale maps domain values to pixel coordinates within the range it was
// built over.  A Scale is immutable: rebuilding (axis change, zoom, resize)
// always produces a fresh Scale, so references held by in-flight renders
// stay valid until the engine swaps them out as a unit.
type Scale interface {
	// Map converts a value to a pixel coordinate.  It returns false for
	// values outside the scale's value shape (e.g. a label on a numeric
	// axis), for the inf sentinels, and for unknown categories.  Callers
	// must still check the result for finiteness.
	Map(v Value) (float64, bool)

	// Invert converts a pixel coordinate back into a domain value.
	// Categorical scales have no inverse and always return false.
	Invert(px float64) (float64, bool)

	// Ticks returns up to max labeled positions for axis drawing.
	Ticks(max int) []Tick
}

// BuildScale constructs a Scale for the given descriptor over the pixel
// range [lo, hi].  Reversed ranges (hi < lo) are valid and are the normal
// case for vertical axes.
func BuildScale(desc AxisDescriptor, lo, hi float64) Scale {
	switch desc.Kind {
	case LogAxis:
		dlo, dhi := clampLogDomain(desc.Min, desc.Max)
		return &logScale{pxLo: lo, pxHi: hi, domLo: dlo, domHi: dhi}
	case CategoricalAxis:
		index := make(map[string]int, len(desc.Categories))
		for i, cat := range desc.Categories {
			index[cat] = i
		}
		return &ordinalScale{pxLo: lo, pxHi: hi, cats: desc.Categories, index: index}
	default:
		return &linearScale{pxLo: lo, pxHi: hi, domLo: desc.Min, domHi: desc.Max}
	}
}

// clampLogDomain forces a usable positive domain for log scaling.  Data
// that crosses or sits below zero can't be log-scaled; rather than failing
// the whole axis we clamp to a positive floor.
func clampLogDomain(lo, hi float64) (float64, float64) {
	if hi <= 0 {
		return 1, 10
	}
	if lo <= 0 {
		lo = hi / 1e6
	}
	return lo, hi
}

type linearScale struct {
	pxLo, pxHi   float64
	domLo, domHi float64
}

func (s *linearScale) Map(v Value) (float64, bool) {
	if v.Kind != NumberKind {
		return 0, false
	}
	span := s.domHi - s.domLo
	if span == 0 {
		// flat domain: park everything mid-range
		return (s.pxLo + s.pxHi) / 2, true
	}
	return s.pxLo + (v.Num-s.domLo)/span*(s.pxHi-s.pxLo), true
}

func (s *linearScale) Invert(px float64) (float64, bool) {
	pspan := s.pxHi - s.pxLo
	if pspan == 0 {
		return s.domLo, true
	}
	return s.domLo + (px-s.pxLo)/pspan*(s.domHi-s.domLo), true
}

func (s *linearScale) Ticks(max int) []Tick {
	return continuousTicks(max, s.domLo, s.domHi, func(v float64) float64 {
		px, _ := s.Map(Number(v))
		return px
	}, tickLabel)
}

type logScale struct {
	pxLo, pxHi   float64
	domLo, domHi float64 // always positive
}

func (s *logScale) Map(v Value) (float64, bool) {
	if v.Kind != NumberKind {
		return 0, false
	}
	if v.Num <= 0 {
		return 0, false
	}
	llo, lhi := math.Log10(s.domLo), math.Log10(s.domHi)
	span := lhi - llo
	if span == 0 {
		return (s.pxLo + s.pxHi) / 2, true
	}
	return s.pxLo + (math.Log10(v.Num)-llo)/span*(s.pxHi-s.pxLo), true
}

func (s *logScale) Invert(px float64) (float64, bool) {
	pspan := s.pxHi - s.pxLo
	if pspan == 0 {
		return s.domLo, true
	}
	llo, lhi := math.Log10(s.domLo), math.Log10(s.domHi)
	return math.Pow(10, llo+(px-s.pxLo)/pspan*(lhi-llo)), true
}

func (s *logScale) Ticks(max int) []Tick {
	llo, lhi := math.Log10(s.domLo), math.Log10(s.domHi)
	return continuousTicks(max, llo, lhi, func(l float64) float64 {
		px, _ := s.Map(Number(math.Pow(10, l)))
		return px
	}, func(l float64) string {
		return tickLabel(math.Pow(10, l))
	})
}

type ordinalScale struct {
	pxLo, pxHi float64
	cats       []string
	index      map[string]int
}

func (s *ordinalScale) Map(v Value) (float64, bool) {
	i, known := s.index[v.Text()]
	if !known {
		return 0, false
	}
	step := (s.pxHi - s.pxLo) / float64(len(s.cats))
	return s.pxLo + (float64(i)+0.5)*step, true
}

func (s *ordinalScale) Invert(px float64) (float64, bool) {
	// brushing a categorical axis is a no-op for that axis
	return 0, false
}

func (s *ordinalScale) Ticks(max int) []Tick {
	stride := 1
	if max > 0 && len(s.cats) > max {
		stride = (len(s.cats) + max - 1) / max
	}
	var ticks []Tick
	for i := 0; i < len(s.cats); i += stride {
		px, _ := s.Map(Label(s.cats[i]))
		ticks = append(ticks, Tick{Px: px, Label: s.cats[i]})
	}
	return ticks
}

// continuousTicks evenly spaces up to max ticks (always including both
// endpoints) over [lo, hi], projecting each through toPx and labeling each
// through label.
func continuousTicks(max int, lo, hi float64, toPx func(float64) float64, label func(float64) string) []Tick {
	if max < 2 {
		max = 2
	}
	span := hi - lo
	if span == 0 {
		return []Tick{{Px: toPx(lo), Label: label(lo)}}
	}
	inc := span / float64(max-1)
	ticks := make([]Tick, 0, max)
	for i := 0; i < max-1; i++ {
		v := lo + inc*float64(i)
		ticks = append(ticks, Tick{Px: toPx(v), Label: label(v)})
	}
	// always put a tick @ max
	ticks = append(ticks, Tick{Px: toPx(hi), Label: label(hi)})
	return ticks
}

func tickLabel(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
