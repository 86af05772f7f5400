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
	"github.com/gdamore/tcell"
	"github.com/mattn/go-runewidth"
)

// StatusBar is a one-line text widget for transient messages (the hover
// label, mostly).  Text wider than the bar is truncated with an
// ellipsis; the rest of the line is blanked so stale text never shows
// through.
type StatusBar struct {
	pos  PositionBox
	text string

	// Style is applied to the whole line.
	Style tcell.Style
}

func (s *StatusBar) SetBox(box PositionBox) {
	s.pos = box
}

// SetText replaces the bar's contents.  The caller requests a repaint.
func (s *StatusBar) SetText(text string) {
	s.text = text
}

func (s *StatusBar) FlushTo(screen tcell.Screen) {
	if s.pos.Cols == 0 || s.pos.Rows == 0 {
		return
	}
	line := runewidth.Truncate(s.text, s.pos.Cols, "…")

	col := s.pos.StartCol
	for _, rn := range line {
		screen.SetContent(col, s.pos.StartRow, rn, nil, s.Style)
		col += runewidth.RuneWidth(rn)
	}
	for ; col < s.pos.StartCol+s.pos.Cols; col++ {
		screen.SetContent(col, s.pos.StartRow, ' ', nil, s.Style)
	}
}
