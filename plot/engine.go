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
	"io/ioutil"
	"log"
	"time"
)

// AxisRole names one of the two plot axes.
type AxisRole int

const (
	// AxisX is the horizontal axis.
	AxisX AxisRole = iota
	// AxisY is the vertical axis.
	AxisY
)

func (r AxisRole) String() string {
	if r == AxisX {
		return "x"
	}
	return "y"
}

// Settings is the persisted key/value store axis choices are saved to.
// Persistence itself lives with the application; the engine only speaks
// this narrow get/set contract.
type Settings interface {
	Get(key, def string) string
	Set(key, value string)
}

const (
	settingXAxis = "axis.x"
	settingYAxis = "axis.y"

	defaultResizeThrottle = 75 * time.Millisecond

	defaultLineWidth = 1
	defaultDotRadius = 2

	dimmedBaseOpacity = 0.5
)

// Config wires an Engine to its collaborators.  Data, Descriptor,
// RowColor and RowLabel are required; everything else has a usable zero
// value.
type Config struct {
	// Data supplies the selected/highlighted record sets and uid lookup.
	Data DataView

	// Descriptor supplies the value-domain descriptor for an axis name.
	Descriptor func(axis string) (AxisDescriptor, bool)

	// RowColor returns a record's display color with the given opacity
	// embedded.
	RowColor func(rec Record, opacity float64) Color

	// RowLabel formats a record for the hover label.
	RowLabel func(rec Record) string

	// Settings persists axis choices across sessions.  Optional.
	Settings Settings

	// Width and Height are the initial canvas size in pixels; Margins are
	// the fixed gutters inside it.
	Width, Height float64
	Margins       Margins

	// LineOpacity and DotOpacity override the density-derived automatic
	// opacity when non-zero.
	LineOpacity, DotOpacity float64

	// OnHighlight is told when hovering should change the highlight set
	// (a single uid on hover, empty on leave).  Optional.
	OnHighlight func(uids []string)

	// OnHover is told the label of the hovered point, or found=false when
	// there is nothing to hover ("no point" indicator).  Optional.
	OnHover func(label string, found bool)

	// OnDisabled is told when the plot turns off because an axis became
	// unset.  Optional.
	OnDisabled func()

	// Logger receives recoverable-condition reports (dangling parents,
	// chain depth cap).  Nil discards them.
	Logger *log.Logger

	// ResizeThrottle caps how often resizes rebuild scales.  Zero means
	// the 75ms default.
	ResizeThrottle time.Duration
}

// Engine is the plotting core.  It is single-threaded and event-driven:
// every entry point runs to completion on the caller's loop, and every
// state change repaints via an atomic clear-then-full-replay -- there is
// no incremental patch path.
type Engine struct {
	cfg Config
	log *log.Logger

	base, overlay *Layer
	points        DisplayedPoints
	replay        ReplayList
	renderer      *Renderer

	width, height float64
	xAxis, yAxis  string

	// frame is only meaningful while enabled is true
	enabled      bool
	frame        Frame
	fullX, fullY Scale
	zoomed       bool

	resizeGate Throttle
	disposed   bool
}

// New builds an engine over the given collaborators, restoring persisted
// axis choices if a Settings store is configured.  If both axes come back
// set the plot starts enabled and fully rendered.
func New(cfg Config) (*Engine, error) {
	switch {
	case cfg.Data == nil:
		return nil, fmt.Errorf("engine needs a DataView")
	case cfg.Descriptor == nil:
		return nil, fmt.Errorf("engine needs a Descriptor source")
	case cfg.RowColor == nil:
		return nil, fmt.Errorf("engine needs a RowColor function")
	case cfg.RowLabel == nil:
		return nil, fmt.Errorf("engine needs a RowLabel function")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	throttle := cfg.ResizeThrottle
	if throttle == 0 {
		throttle = defaultResizeThrottle
	}

	e := &Engine{
		cfg:        cfg,
		log:        logger,
		base:       NewLayer(),
		overlay:    NewLayer(),
		width:      cfg.Width,
		height:     cfg.Height,
		resizeGate: Throttle{Interval: throttle},
	}
	e.overlay.Hidden = true
	e.renderer = NewRenderer(cfg.Data.Lookup, &e.points, logger)

	if cfg.Settings != nil {
		e.xAxis = cfg.Settings.Get(settingXAxis, "")
		e.yAxis = cfg.Settings.Get(settingYAxis, "")
	}
	if e.xAxis != "" && e.yAxis != "" {
		e.enable()
	}

	return e, nil
}

// Enabled reports whether both axes are set and the plot is live.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// Axis returns the current choice for the given role ("" when unset).
func (e *Engine) Axis(role AxisRole) string {
	if role == AxisX {
		return e.xAxis
	}
	return e.yAxis
}

// Frame returns the current view frame.  It is only valid while the
// engine is enabled.
func (e *Engine) Frame() (Frame, bool) {
	return e.frame, e.enabled
}

// Height reports the current pixel height, for upward layout reporting.
func (e *Engine) Height() float64 {
	return e.height
}

// Points exposes the displayed-point cache (hover candidates).
func (e *Engine) Points() *DisplayedPoints {
	return &e.points
}

// SetAxis chooses (or with name == "", unsets) the column plotted on the
// given axis.  The choice is persisted.  Unsetting either axis disables
// the plot and clears its surfaces; setting both re-enables it with fresh
// full-extent scales.
func (e *Engine) SetAxis(role AxisRole, name string) {
	if e.disposed {
		return
	}
	current := &e.xAxis
	key := settingXAxis
	if role == AxisY {
		current = &e.yAxis
		key = settingYAxis
	}
	if *current == name {
		return
	}
	*current = name
	if e.cfg.Settings != nil {
		e.cfg.Settings.Set(key, name)
	}

	if e.xAxis == "" || e.yAxis == "" {
		e.disable()
		return
	}
	e.enable()
}

// Resize updates the canvas size.  Scale rebuilds are throttled; a
// dropped resize is caught by the next trigger (callers debounce the
// trailing edge at the container boundary).  Any rebuild resets zoom to
// full extent.
func (e *Engine) Resize(width, height float64) {
	if e.disposed {
		return
	}
	e.width = width
	e.height = height
	if !e.enabled {
		return
	}
	if !e.resizeGate.Ready() {
		return
	}
	e.rebuildFullExtent()
	e.rebuildSelection()
	e.redraw()
}

// SelectionChanged re-pulls the selected record set, rebuilds the replay
// cache (including per-point styles) and fully redraws.
func (e *Engine) SelectionChanged() {
	if e.disposed || !e.enabled {
		return
	}
	e.rebuildSelection()
	e.redraw()
}

// HighlightsChanged re-pulls the highlighted record set and re-renders
// the overlay.
func (e *Engine) HighlightsChanged() {
	if e.disposed || !e.enabled {
		return
	}
	e.redrawHighlights()
}

// FlushTo composites the plot onto sink: base layer first, highlight
// overlay (if showing) on top.  A disabled engine flushes nothing.
func (e *Engine) FlushTo(sink PaintSink) {
	if e.disposed || !e.enabled {
		return
	}
	e.base.FlushTo(sink)
	e.overlay.FlushTo(sink)
}

// Dispose tears the engine down: surfaces cleared and released, all
// further calls ignored.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.clearView()
	e.enabled = false
	e.disposed = true
}

// enable (re)builds the full view from scratch: fresh full-extent scales,
// fresh replay cache, full redraw.
func (e *Engine) enable() {
	e.enabled = true
	e.rebuildFullExtent()
	e.rebuildSelection()
	e.redraw()
}

// disable tears the view state down without disposing the engine: scales
// dropped, surfaces and caches cleared, collaborators notified.
func (e *Engine) disable() {
	wasEnabled := e.enabled
	e.enabled = false
	e.clearView()
	e.fullX, e.fullY = nil, nil
	e.frame = Frame{}
	e.zoomed = false
	if wasEnabled && e.cfg.OnDisabled != nil {
		e.cfg.OnDisabled()
	}
}

func (e *Engine) clearView() {
	e.base.Clear()
	e.overlay.Clear()
	e.overlay.Hidden = true
	e.base.Opacity = 1
	e.points.Clear()
	e.replay.Reset()
}

// rebuildFullExtent builds fresh scales over the complete data extent and
// resets the zoom state machine to Full-Extent.
func (e *Engine) rebuildFullExtent() {
	xDesc := e.descriptor(e.xAxis)
	yDesc := e.descriptor(e.yAxis)
	xLo, xHi, yLo, yHi := frameScaleRanges(e.width, e.height, e.cfg.Margins)
	e.fullX = BuildScale(xDesc, xLo, xHi)
	e.fullY = BuildScale(yDesc, yLo, yHi)
	e.zoomed = false
	e.setScales(e.fullX, e.fullY)
}

func (e *Engine) descriptor(axis string) AxisDescriptor {
	desc, ok := e.cfg.Descriptor(axis)
	if !ok {
		e.log.Printf("no descriptor for axis %q, assuming unit numeric domain", axis)
		return AxisDescriptor{Kind: NumericAxis, Min: 0, Max: 1}
	}
	return desc
}

// setScales swaps in a new coordinated Frame.  Old scales are never
// mutated, so anything still holding the previous frame keeps working
// until the next render pass picks this one up.
func (e *Engine) setScales(x, y Scale) {
	e.frame = Frame{
		XAxis:   e.xAxis,
		YAxis:   e.yAxis,
		XScale:  x,
		YScale:  y,
		Margins: e.cfg.Margins,
		Width:   e.width,
		Height:  e.height,
	}
}

// rebuildSelection rebuilds the replay cache from the current selection,
// deriving each point's style exactly once.
func (e *Engine) rebuildSelection() {
	selected := e.cfg.Data.Selected()

	lineOp := e.cfg.LineOpacity
	dotOp := e.cfg.DotOpacity
	area := e.width * e.height
	if lineOp == 0 {
		lineOp = AutoOpacity(lineOpacityGain, area, len(selected))
	}
	if dotOp == 0 {
		dotOp = AutoOpacity(dotOpacityGain, area, len(selected))
	}

	e.replay.Reset()
	for _, rec := range selected {
		e.replay.Add(rec, PointStyle{
			LineColor:     e.cfg.RowColor(rec, lineOp),
			LineWidth:     defaultLineWidth,
			DotColor:      e.cfg.RowColor(rec, dotOp),
			DotRadius:     defaultDotRadius,
			TrackPosition: true,
		})
	}
}

// redraw is the single repaint path: clear everything, replay every
// cached instruction under the current frame, then re-render highlights.
func (e *Engine) redraw() {
	e.base.Clear()
	e.points.Clear()
	frame := e.frame
	e.replay.Replay(func(rec Record, sty PointStyle) {
		e.renderer.RenderPoint(frame, rec, e.base, sty)
	})
	e.redrawHighlights()
}
