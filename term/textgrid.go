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
	"unicode"

	"github.com/gdamore/tcell"
	"github.com/mattn/go-runewidth"
)

// textGrid is a wrapped text area with a zero-indexed cursor.  It backs
// the prompt's cell writer: text written through it wraps at the region
// width, scrolls off the top when full, and supports the cursor and
// erase operations a line editor needs.
type textGrid struct {
	rows, cols           int
	buf                  tcell.CellBuffer
	cursorRow, cursorCol int
}

func (t *textGrid) Resize(cols, rows int) {
	t.cols = cols
	t.rows = rows
	t.buf.Resize(cols, rows)
}

// Reset clears the contents and homes the cursor.
func (t *textGrid) Reset() {
	t.buf.Fill(' ', tcell.StyleDefault)
	t.cursorRow = 0
	t.cursorCol = 0
}

// Newline clears the rest of the line and does carriage-return plus
// line-feed, scrolling when at the bottom.
func (t *textGrid) Newline() {
	t.clearSpan(t.cursorRow, t.cursorCol, t.cols)
	t.cursorCol = 0
	if t.cursorRow == t.rows-1 {
		t.scrollContentsUp()
		return
	}
	t.cursorRow++
}

// WriteString writes str at the cursor in the given style, wrapping as
// needed.  Combining characters attach to the preceding base rune;
// control characters other than newline are dropped.
func (t *textGrid) WriteString(str string, sty tcell.Style) {
	var pending []rune
	pendingWidth := 0
	flush := func() {
		if len(pending) == 0 {
			return
		}
		t.putCell(pendingWidth, pending, sty)
		pending = pending[:0]
		pendingWidth = 0
	}

	for _, rn := range str {
		if rn == '\n' {
			flush()
			t.Newline()
			continue
		}
		if unicode.IsControl(rn) {
			continue
		}
		width := runewidth.RuneWidth(rn)
		if width == 0 {
			// combining rune; synthesize a space base if there is none
			if len(pending) == 0 {
				pending = append(pending, ' ')
				pendingWidth = 1
			}
			pending = append(pending, rn)
			continue
		}
		flush()
		pending = append(pending, rn)
		pendingWidth = width
	}
	flush()
}

// putCell stores a base rune plus its combining runes at the cursor and
// advances by the logical width, wrapping first if it would not fit.
func (t *textGrid) putCell(width int, runes []rune, sty tcell.Style) {
	if t.cols-t.cursorCol < width {
		t.Newline()
	}
	t.buf.SetContent(t.cursorCol, t.cursorRow, runes[0], runes[1:], sty)
	t.cursorCol += width
}

// FlushTo copies dirty cells onto screen at the given offset.
func (t *textGrid) FlushTo(screen tcell.Screen, startCol, startRow int) {
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			if !t.buf.Dirty(col, row) {
				continue
			}
			mainRune, combRunes, style, _ := t.buf.GetContent(col, row)
			screen.SetContent(startCol+col, startRow+row, mainRune, combRunes, style)
		}
	}
}

// clearSpan blanks [startCol, endCol) on the given row.
func (t *textGrid) clearSpan(row, startCol, endCol int) {
	for c := startCol; c < endCol; c++ {
		t.buf.SetContent(c, row, ' ', nil, tcell.StyleDefault)
	}
}

// scrollContentsUp shifts every line up by one, clearing the last.
func (t *textGrid) scrollContentsUp() {
	for r := 1; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			mainRune, combRunes, style, _ := t.buf.GetContent(c, r)
			t.buf.SetContent(c, r-1, mainRune, combRunes, style)
		}
	}
	t.clearSpan(t.rows-1, 0, t.cols)
}

// ScrollDown is a line-feed without carriage return, scrolling at the
// bottom edge.
func (t *textGrid) ScrollDown() {
	if t.cursorRow < t.rows-1 {
		t.cursorRow++
		return
	}
	t.scrollContentsUp()
}

// ScrollUp is a reverse line-feed; at the top edge it shifts content
// down instead.
func (t *textGrid) ScrollUp() {
	if t.cursorRow > 0 {
		t.cursorRow--
		return
	}
	for r := t.rows - 2; r >= 0; r-- {
		for c := 0; c < t.cols; c++ {
			mainRune, combRunes, style, _ := t.buf.GetContent(c, r)
			t.buf.SetContent(c, r+1, mainRune, combRunes, style)
		}
	}
	t.clearSpan(0, 0, t.cols)
}

// Erase clears the whole area.
func (t *textGrid) Erase() {
	for r := 0; r < t.rows; r++ {
		t.clearSpan(r, 0, t.cols)
	}
}

// EraseUp clears from the cursor to the top, inclusive of the part of
// the current line before the cursor.
func (t *textGrid) EraseUp() {
	t.clearSpan(t.cursorRow, 0, t.cursorCol+1)
	for r := t.cursorRow - 1; r >= 0; r-- {
		t.clearSpan(r, 0, t.cols)
	}
}

// EraseDown clears from the cursor to the bottom, inclusive of the part
// of the current line after the cursor.
func (t *textGrid) EraseDown() {
	t.clearSpan(t.cursorRow, t.cursorCol, t.cols)
	for r := t.cursorRow + 1; r < t.rows; r++ {
		t.clearSpan(r, 0, t.cols)
	}
}

func (t *textGrid) EraseStartOfLine() {
	t.clearSpan(t.cursorRow, 0, t.cursorCol+1)
}

func (t *textGrid) EraseEndOfLine() {
	t.clearSpan(t.cursorRow, t.cursorCol, t.cols)
}

func (t *textGrid) EraseLine() {
	t.clearSpan(t.cursorRow, 0, t.cols)
}

func (t *textGrid) CursorForward(n int) {
	t.cursorCol += n
	if t.cursorCol >= t.cols {
		t.cursorCol = t.cols - 1
	}
}

func (t *textGrid) CursorBackward(n int) {
	t.cursorCol -= n
	if t.cursorCol < 0 {
		t.cursorCol = 0
	}
}

func (t *textGrid) CursorDown(n int) {
	t.cursorRow += n
	if t.cursorRow >= t.rows {
		t.cursorRow = t.rows - 1
	}
}

func (t *textGrid) CursorUp(n int) {
	t.cursorRow -= n
	if t.cursorRow < 0 {
		t.cursorRow = 0
	}
}

func (t *textGrid) CursorGoTo(row, col int) {
	t.cursorRow = row
	t.cursorCol = col
}

func (t *textGrid) CursorPosition() (col, row int) {
	return t.cursorCol, t.cursorRow
}
