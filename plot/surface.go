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

// PaintSink receives concrete draw calls in back-to-front order: a sink
// that simply paints each call over the previous ones produces the correct
// composition.  Colors arrive with their final alpha (style alpha times
// layer opacity) already applied.
type PaintSink interface {
	Line(from, to ScreenPoint, color Color, width float64)
	Dot(at ScreenPoint, color Color, radius float64)
}

// pointOp is the recorded rendering of a single record: an optional
// parent-linking segment plus an optional dot.  Keeping the pair as one op
// lets the layer reverse draw order *across* points while the dot still
// lands atop its own segment.
type pointOp struct {
	hasLine        bool
	lineFrom, lineTo ScreenPoint
	lineColor      Color
	lineWidth      float64

	hasDot    bool
	dotAt     ScreenPoint
	dotColor  Color
	dotRadius float64
}

// Layer is a drawing surface owned exclusively by the engine.  Draw calls
// are recorded, not painted: FlushTo replays them to a sink newest-first,
// which makes the *first* thing drawn in a pass end up visually on top.
// That keeps the earlier (usually more prominent) strokes of a pass
// visible when many translucent segments overlap.
type Layer struct {
	ops []pointOp

	// Opacity dims every op at flush time.  The engine uses it to fade the
	// base layer while a highlight overlay is showing.
	Opacity float64

	// Hidden suppresses flushing entirely without discarding content.
	Hidden bool
}

// NewLayer returns an empty, fully opaque layer.
func NewLayer() *Layer {
	return &Layer{Opacity: 1}
}

// Clear drops all recorded content.
func (l *Layer) Clear() {
	l.ops = nil
}

// Empty reports whether the layer has no recorded content.
func (l *Layer) Empty() bool {
	return len(l.ops) == 0
}

func (l *Layer) record(op pointOp) {
	l.ops = append(l.ops, op)
}

// FlushTo emits the layer's content to sink.  Ops are emitted in reverse
// recording order; within an op the segment is emitted before the dot.
func (l *Layer) FlushTo(sink PaintSink) {
	if l.Hidden {
		return
	}
	for i := len(l.ops) - 1; i >= 0; i-- {
		op := &l.ops[i]
		if op.hasLine {
			sink.Line(op.lineFrom, op.lineTo, op.lineColor.scaled(l.Opacity), op.lineWidth)
		}
		if op.hasDot {
			sink.Dot(op.dotAt, op.dotColor.scaled(l.Opacity), op.dotRadius)
		}
	}
}
