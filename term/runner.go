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
	"context"
	"sync"

	"github.com/gdamore/tcell"
)

// Runner owns the main event loop.  It sets up the screen and handles
// events (input, mouse, resizes), delegating out to the current view and
// the input handlers.
//
// Everything that mutates a view happens on the loop goroutine: input
// handlers run there, and outside work gets marshalled back in through
// Post.  Repaints are requested, never performed inline.
type Runner struct {
	screen   tcell.Screen
	screenMu sync.Mutex

	// KeyHandler receives key events produced during Run.  Required.
	KeyHandler func(*tcell.EventKey)

	// MouseHandler receives mouse events during Run.  Optional; when set
	// the screen's mouse reporting is enabled.
	MouseHandler func(*tcell.EventMouse)

	// MakeScreen allows custom screens to be used, mainly for testing
	// with tcell's simulation screen.  Nil means a real terminal screen.
	MakeScreen func() (tcell.Screen, error)

	// OnStart runs once the screen is initialized and the loop is about
	// to start, to avoid races against screen setup.
	OnStart func()
}

// funcEvent carries a posted callback through the tcell event queue.
type funcEvent struct {
	tcell.EventTime
	fn func()
}

// Run initializes the screen and runs the event loop until the context
// is cancelled, then tears the screen down.
func (r *Runner) Run(ctx context.Context, initialView View) error {
	makeScreen := r.MakeScreen
	if makeScreen == nil {
		makeScreen = tcell.NewScreen
	}
	screen, err := makeScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	if r.MouseHandler != nil {
		screen.EnableMouse()
	}

	r.screenMu.Lock()
	r.screen = screen
	r.screenMu.Unlock()

	mainView := initialView

	// paint once up front in case the immediate resize event never comes
	if mainView != nil {
		mainView.FlushTo(screen)
		screen.Show()
	}

	evtLoopDone := make(chan struct{})
	go func() {
		defer close(evtLoopDone)
		if r.OnStart != nil {
			r.OnStart()
		}
		for evt := screen.PollEvent(); evt != nil; evt = screen.PollEvent() {
			switch evt := evt.(type) {
			case *tcell.EventKey:
				r.KeyHandler(evt)
				continue
			case *tcell.EventMouse:
				if r.MouseHandler != nil {
					r.MouseHandler(evt)
				}
				continue
			case *funcEvent:
				// posted work usually dirties the view, repaint after
				evt.fn()
			case *tcell.EventInterrupt:
				if newView, hasNewView := evt.Data().(View); hasNewView {
					// clearing on a swap is less efficient but avoids
					// artifacts when pane sizes change
					screen.Clear()
					mainView = newView
					cols, rows := screen.Size()
					mainView.SetBox(PositionBox{Cols: cols, Rows: rows})
				}
			case *tcell.EventResize:
				cols, rows := evt.Size()
				if mainView != nil {
					mainView.SetBox(PositionBox{Cols: cols, Rows: rows})
				}
				screen.Clear()
			default:
				return
			}

			if mainView == nil {
				continue
			}
			mainView.FlushTo(screen)
			screen.Show()
		}
	}()

	<-ctx.Done()
	screen.Fini()

	// wait for the loop to wind down so tests don't leak goroutines and
	// callers can restart runners back to back
	<-evtLoopDone

	return nil
}

// RequestRepaint asks the loop to repaint the current view.  Safe from
// any goroutine; does not block on the paint itself.
func (r *Runner) RequestRepaint() {
	r.screenMu.Lock()
	defer r.screenMu.Unlock()

	if r.screen != nil {
		r.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// RequestUpdate swaps in a new view and repaints.
func (r *Runner) RequestUpdate(newView View) {
	r.screenMu.Lock()
	defer r.screenMu.Unlock()

	if r.screen != nil {
		r.screen.PostEvent(tcell.NewEventInterrupt(newView))
	}
}

// Post schedules fn to run on the event loop goroutine.  This is the
// delivery mechanism for debounced work that must touch view state.
func (r *Runner) Post(fn func()) {
	r.screenMu.Lock()
	defer r.screenMu.Unlock()

	if r.screen == nil {
		return
	}
	evt := &funcEvent{fn: fn}
	evt.SetEventNow()
	r.screen.PostEvent(evt)
}

// ShowCursor shows the cursor at the given location.
func (r *Runner) ShowCursor(col, row int) {
	r.screenMu.Lock()
	defer r.screenMu.Unlock()

	r.screen.ShowCursor(col, row)
}

// HideCursor hides the cursor.
func (r *Runner) HideCursor() {
	r.screenMu.Lock()
	defer r.screenMu.Unlock()

	r.screen.HideCursor()
}
