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

// PointerMove answers a pointer position with the nearest displayed
// point: it becomes the sole highlighted record (signalled outward) and
// its formatted label is emitted.  An empty cache is not an error -- the
// "no point" indicator is shown instead.  Moves are unthrottled; the scan
// is linear over the selected-record-sized cache.
func (e *Engine) PointerMove(x, y float64) {
	if e.disposed || !e.enabled {
		return
	}

	nearest, found := e.points.Nearest(ScreenPoint{X: x, Y: y})
	if !found {
		e.hoverSignal("", false)
		return
	}
	if e.cfg.OnHighlight != nil {
		e.cfg.OnHighlight([]string{nearest.Rec.UID()})
	}
	e.hoverSignal(e.cfg.RowLabel(nearest.Rec), true)
}

// PointerLeave clears the hover state, signalling an empty highlight set
// outward.
func (e *Engine) PointerLeave() {
	if e.disposed || !e.enabled {
		return
	}
	if e.cfg.OnHighlight != nil {
		e.cfg.OnHighlight(nil)
	}
	e.hoverSignal("", false)
}

func (e *Engine) hoverSignal(label string, found bool) {
	if e.cfg.OnHover != nil {
		e.cfg.OnHover(label, found)
	}
}
