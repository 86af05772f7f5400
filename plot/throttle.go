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
	"sync"
	"time"
)

// Throttle rate-limits an operation to at most once per interval.  Stale
// triggers are dropped, not queued -- a superseded redraw is simply never
// scheduled.
type Throttle struct {
	// Interval is the minimum spacing between allowed triggers.
	Interval time.Duration

	// Now can be overridden for tests.  Nil means time.Now.
	Now func() time.Time

	last time.Time
}

// Ready reports whether the operation may run now, and if so consumes the
// current window.
func (t *Throttle) Ready() bool {
	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}
	if !t.last.IsZero() && now.Sub(t.last) < t.Interval {
		return false
	}
	t.last = now
	return true
}

// Debouncer coalesces a burst of triggers into a single trailing call.
// The fired callback is handed to Post, which is expected to move it back
// onto the owner's event loop; the engine itself is single-threaded and
// must not be entered from the timer goroutine.
type Debouncer struct {
	// Delay is how long a burst has to stay quiet before the trailing call
	// fires.
	Delay time.Duration

	// Post delivers the fired callback.  Nil means call directly (only
	// suitable for tests).
	Post func(func())

	mu    sync.Mutex
	timer *time.Timer
}

// Trigger (re)schedules fn to run once the burst quiets down.  Each call
// replaces the previously pending fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.Delay, func() {
		if d.Post != nil {
			d.Post(fn)
			return
		}
		fn()
	})
}

// Stop cancels any pending trailing call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
