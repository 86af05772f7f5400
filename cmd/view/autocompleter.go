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

package view

import (
	"strings"

	"github.com/c-bata/go-prompt"
)

var commandSuggestions = []prompt.Suggest{
	{Text: "xaxis", Description: "set the column plotted on the x axis"},
	{Text: "yaxis", Description: "set the column plotted on the y axis"},
	{Text: "columns", Description: "list the plottable columns"},
	{Text: "quit", Description: "leave runplot"},
}

type Completer struct {
	columns []string
}

func NewCompleter(columns []string) *Completer {
	return &Completer{columns: columns}
}

func (c *Completer) Complete(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	if before == "" {
		return []prompt.Suggest{}
	}

	// past the first word, the only thing left to complete is a column
	// name for the axis commands
	if cmd, rest, ok := strings.Cut(before, " "); ok {
		if cmd != "xaxis" && cmd != "yaxis" {
			return []prompt.Suggest{}
		}
		cols := make([]prompt.Suggest, len(c.columns))
		for i, col := range c.columns {
			cols[i] = prompt.Suggest{Text: col}
		}
		return prompt.FilterHasPrefix(cols, rest, true)
	}

	return prompt.FilterHasPrefix(commandSuggestions, before, true)
}
