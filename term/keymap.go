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
	"sync"
	"unicode/utf8"

	"github.com/c-bata/go-prompt"
	"github.com/gdamore/tcell"
)

// specialKeys maps tcell special keys straight to go-prompt keys.
// Tab and escape must win over the CtrlA..CtrlZ range below (tcell
// aliases them onto control keys, go-prompt treats them differently).
var specialKeys = map[tcell.Key]prompt.Key{
	tcell.KeyTab:            prompt.Tab,
	tcell.KeyBacktab:        prompt.BackTab,
	tcell.KeyESC:            prompt.Escape,
	tcell.KeyCtrlSpace:      prompt.ControlSpace,
	tcell.KeyCtrlBackslash:  prompt.ControlBackslash,
	tcell.KeyCtrlRightSq:    prompt.ControlSquareClose,
	tcell.KeyCtrlCarat:      prompt.ControlCircumflex,
	tcell.KeyCtrlUnderscore: prompt.ControlUnderscore,
	tcell.KeyHome:           prompt.Home,
	tcell.KeyEnd:            prompt.End,
	tcell.KeyPgUp:           prompt.PageUp,
	tcell.KeyPgDn:           prompt.PageDown,
	tcell.KeyInsert:         prompt.Insert,
	tcell.KeyBackspace:      prompt.Backspace,
	tcell.KeyBackspace2:     prompt.Backspace,
}

// modifiedKeys maps keys whose go-prompt equivalent depends on the
// held modifier.
var modifiedKeys = map[tcell.Key]struct{ plain, ctrl, shift prompt.Key }{
	tcell.KeyLeft:   {prompt.Left, prompt.ControlLeft, prompt.ShiftLeft},
	tcell.KeyRight:  {prompt.Right, prompt.ControlRight, prompt.ShiftRight},
	tcell.KeyUp:     {prompt.Up, prompt.ControlUp, prompt.ShiftUp},
	tcell.KeyDown:   {prompt.Down, prompt.ControlDown, prompt.ShiftDown},
	tcell.KeyDelete: {prompt.Delete, prompt.ControlDelete, prompt.ShiftDelete},
}

var (
	sequenceForKey map[prompt.Key][]byte
	sequenceOnce   sync.Once
)

// keyToSequence translates a tcell key event into the raw byte sequence
// go-prompt's reader side expects, or nil when the key has no prompt
// equivalent.
func keyToSequence(evt *tcell.EventKey) []byte {
	if evt.Key() == tcell.KeyRune {
		rn := evt.Rune()
		if rn < utf8.RuneSelf {
			return []byte{byte(rn)}
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], rn)
		return buf[:n]
	}

	key := promptKeyFor(evt)
	if key == prompt.NotDefined {
		return nil
	}

	sequenceOnce.Do(func() {
		sequenceForKey = make(map[prompt.Key][]byte, len(prompt.ASCIISequences))
		for _, seq := range prompt.ASCIISequences {
			if _, taken := sequenceForKey[seq.Key]; !taken {
				sequenceForKey[seq.Key] = seq.ASCIICode
			}
		}
	})
	return sequenceForKey[key]
}

func promptKeyFor(evt *tcell.EventKey) prompt.Key {
	rawKey := evt.Key()

	if mod, found := modifiedKeys[rawKey]; found {
		switch {
		case evt.Modifiers()&tcell.ModCtrl != 0:
			return mod.ctrl
		case evt.Modifiers()&tcell.ModShift != 0:
			return mod.shift
		}
		return mod.plain
	}
	if key, found := specialKeys[rawKey]; found {
		return key
	}

	switch {
	case rawKey >= tcell.KeyCtrlA && rawKey <= tcell.KeyCtrlZ:
		// 0 is prompt.Escape, the control keys follow
		return prompt.Key(rawKey-tcell.KeyCtrlA) + prompt.ControlA
	case rawKey >= tcell.KeyF1 && rawKey <= tcell.KeyF24:
		return prompt.Key(rawKey-tcell.KeyF1) + prompt.F1
	}
	return prompt.NotDefined
}
