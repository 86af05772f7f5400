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
	"errors"
	"fmt"
	"sync"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/gdamore/tcell"
)

// screenIsh is the slice of runner functionality the prompt widget
// needs: cursor control and repaint requests.
type screenIsh interface {
	ShowCursor(int, int)
	HideCursor()
	RequestRepaint()
}

// cellWriter adapts go-prompt's console writer onto a cell buffer that
// gets flushed to a tcell screen region, instead of a raw terminal.
type cellWriter struct {
	screen             screenIsh
	startRow, startCol int

	textGrid

	currentStyle tcell.Style
}

func (w *cellWriter) SetBox(box PositionBox) {
	w.startCol = box.StartCol
	w.startRow = box.StartRow
	w.Resize(box.Cols, box.Rows)
}

func (w *cellWriter) WriteRaw(data []byte) {
	// the only raw write go-prompt does during normal operation is '\n'
	if len(data) == 1 && data[0] == '\n' {
		w.Newline()
		return
	}
	panic(fmt.Sprintf("non-newline raw write not implemented: %v", data))
}
func (w *cellWriter) Write(data []byte) {
	panic("not used")
}
func (w *cellWriter) WriteRawStr(data string) {
	panic("not used")
}
func (w *cellWriter) WriteStr(data string) {
	w.WriteString(data, w.currentStyle)
}
func (w *cellWriter) Flush() error {
	w.screen.RequestRepaint()
	return nil
}
func (w *cellWriter) EraseScreen() {
	w.Erase()
}
func (w *cellWriter) ShowCursor() {
	cursorCol, cursorRow := w.CursorPosition()
	w.screen.ShowCursor(w.startCol+cursorCol, w.startRow+cursorRow)
}
func (w *cellWriter) HideCursor() {
	w.screen.HideCursor()
}
func (w *cellWriter) AskForCPR() {
	panic("not used")
}
func (w *cellWriter) SaveCursor() {
	panic("not used")
}
func (w *cellWriter) UnSaveCursor() {
	panic("not used")
}
func (w *cellWriter) SetTitle(title string) {
	// no terminal title to set
}
func (w *cellWriter) ClearTitle() {
}
func (w *cellWriter) SetColor(fg, bg prompt.Color, bold bool) {
	// prompt colors cast almost directly to tcell colors ("default" is
	// iota in prompt, black is iota in tcell)
	w.currentStyle = tcell.StyleDefault.Bold(bold)
	if fg != prompt.DefaultColor {
		w.currentStyle = w.currentStyle.Foreground(tcell.Color(fg - 1))
	}
	if bg != prompt.DefaultColor {
		w.currentStyle = w.currentStyle.Background(tcell.Color(bg - 1))
	}
}

// screenParser adapts tcell key events into go-prompt's non-blocking
// reader.  go-prompt expects shortcut keys (enter, tab, ...) to arrive
// on their own read, so runs of plain runes are collapsed but a special
// key always terminates the batch.
type screenParser struct {
	size      *prompt.WinSize
	evts      chan *tcell.EventKey
	leftOvers []byte
	mu        sync.Mutex
}

func (*screenParser) Setup() error {
	return nil
}
func (*screenParser) TearDown() error {
	return nil
}
func (p *screenParser) GetWinSize() *prompt.WinSize {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.size
}
func (p *screenParser) Resize(size *prompt.WinSize) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.size = size
}

func (p *screenParser) Read() ([]byte, error) {
	// a special key from the previous read may still be pending
	if p.leftOvers != nil {
		res := p.leftOvers
		p.leftOvers = nil
		return res, nil
	}

	var res []byte
collect:
	for {
		// go-prompt normally reads with O_NONBLOCK; emulate that
		select {
		case evt := <-p.evts:
			if evt.Key() != tcell.KeyRune {
				if seq := keyToSequence(evt); seq != nil {
					p.leftOvers = seq
				}
				break collect
			}
			res = append(res, keyToSequence(evt)...)
		default:
			break collect
		}
	}
	if len(res) == 0 && len(p.leftOvers) > 0 {
		res = p.leftOvers
		p.leftOvers = nil
	}

	if len(res) > 0 {
		return res, nil
	}
	return nil, syscall.EWOULDBLOCK
}

func (p *screenParser) AddKey(evt *tcell.EventKey) {
	p.evts <- evt
}

func (p *screenParser) AddString(str string) {
	for _, rn := range str {
		p.evts <- tcell.NewEventKey(tcell.KeyRune, rn, 0)
	}
}

// PromptView hosts a go-prompt line editor inside a screen region, with
// input coming from the runner's key handler rather than a tty.
type PromptView struct {
	writer *cellWriter
	reader *screenParser

	// Screen provides cursor control and repaints.  Required.
	Screen screenIsh

	// SetupPrompt builds the prompt with the app's completer and options;
	// the required parser/writer options are appended by the view.
	SetupPrompt func(requiredOpts ...prompt.Option) *prompt.Prompt

	// HandleInput processes one submitted line, optionally returning text
	// to print, and whether the application should stop.
	HandleInput func(input string) (output *string, stop bool)

	// OnSetup runs once the prompt machinery is wired up.
	OnSetup func()

	start chan struct{}
	pos   PositionBox
}

func (v *PromptView) SetBox(box PositionBox) {
	v.pos = box
	if v.reader != nil && v.writer != nil {
		v.writer.SetBox(box)
		v.reader.Resize(&prompt.WinSize{Row: uint16(box.Rows), Col: uint16(box.Cols)})
	}

	if v.start != nil {
		close(v.start)
		v.start = nil
	}
}

func (v *PromptView) FlushTo(screen tcell.Screen) {
	v.writer.FlushTo(screen, v.pos.StartCol, v.pos.StartRow)
}

func (v *PromptView) HandleKey(evt *tcell.EventKey) {
	v.reader.AddKey(evt)
}

// Run wires up the prompt and processes submitted lines until the
// context is cancelled or HandleInput asks to stop (in which case
// shutdownScreen is invoked).  initialInput, when set, is typed in and
// submitted automatically.
func (v *PromptView) Run(ctx context.Context, initialInput *string, shutdownScreen func()) error {
	v.writer = &cellWriter{
		screen: v.Screen,
	}
	v.reader = &screenParser{
		evts: make(chan *tcell.EventKey, 30),
	}
	viewPrompt := v.SetupPrompt(prompt.OptionParser(v.reader), prompt.OptionWriter(v.writer))
	start := make(chan struct{})
	v.start = start

	// we may already have been given a box before Run was called
	if v.pos != (PositionBox{}) {
		v.SetBox(v.pos)
	}

	if v.OnSetup != nil {
		v.OnSetup()
	}

	go func() {
		<-start
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			input := viewPrompt.Input()
			output, stop := v.HandleInput(input)
			if output != nil {
				v.writer.WriteStr(*output)
				v.writer.Flush()
			}
			if stop {
				shutdownScreen()
				return
			}
		}
	}()

	// after starting the input loop, so the channel capacity can't block us
	if initialInput != nil {
		v.reader.AddString(*initialInput + "\r")
	}

	<-ctx.Done()

	if err := ctx.Err(); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
