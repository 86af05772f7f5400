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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/fatih/color"
	"github.com/gdamore/tcell"

	"sigs.k8s.io/runplot/cmd/cli"
	"sigs.k8s.io/runplot/debug"
	"sigs.k8s.io/runplot/plot"
	"sigs.k8s.io/runplot/runs"
	"sigs.k8s.io/runplot/term"
)

var (
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// PlotCommand loads a run file and either dumps it (list/output modes)
// or opens the interactive plot over it.
type PlotCommand struct {
	Streams cli.IOStreams
	Flags   cli.RunPlotFlags

	// Path is the run file to load.
	Path string
}

func (c *PlotCommand) Fprintf(format string, args ...interface{}) {
	fmt.Fprintf(c.Streams.Out, format, args...)
}

func (c *PlotCommand) Run(ctx context.Context) error {
	table, err := runs.Load(c.Path)
	if err != nil {
		return err
	}
	for _, col := range c.Flags.LogScale {
		table.MarkLogScale(col)
	}

	if c.Flags.List {
		return c.outputColumnNames(table)
	}
	if c.Flags.Output != "" {
		o, err := ToPrettyFormat(table, c.Flags.Output, true)
		if err != nil {
			return err
		}
		c.Fprintf("%s\n", *o)
		return nil
	}

	return c.runInteractivePlot(ctx, table)
}

// outputColumnNames lists each plottable column with how its axis would
// be scaled, one flag-style line per column.
func (c *PlotCommand) outputColumnNames(table *runs.Table) error {
	for _, col := range table.Columns() {
		kind := "numeric"
		if desc, ok := table.Descriptor(col); ok {
			switch desc.Kind {
			case plot.CategoricalAxis:
				kind = "categorical"
			case plot.LogAxis:
				kind = "log"
			}
		}
		c.Fprintf("--%v { %v }\n", cyan(col), yellow(kind))
	}
	return nil
}

// statePath resolves where axis choices persist.  An explicit flag wins;
// otherwise a per-user location.  Failure to find one just means the
// choices don't survive the session.
func (c *PlotCommand) statePath() string {
	if c.Flags.StatePath != "" {
		return c.Flags.StatePath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "runplot", "state.yaml")
}

func (c *PlotCommand) runInteractivePlot(ctx context.Context, table *runs.Table) error {
	dbg := debug.NewDebugLogger("debug.log")
	defer debug.Teardown()

	store, err := runs.OpenStore(c.statePath(), dbg)
	if err != nil {
		return err
	}

	comp := NewCompleter(table.Columns()).Complete

	statusBar := &term.StatusBar{
		Style: tcell.StyleDefault.Reverse(true),
	}

	termRunner := &term.Runner{}

	var engine *plot.Engine
	engine, err = plot.New(plot.Config{
		Data:       table,
		Descriptor: table.Descriptor,
		RowColor:   table.RowColor,
		RowLabel:   table.RowLabel,
		Settings:   store,
		Margins:    term.PlotMargins(),
		OnHighlight: func(uids []string) {
			table.SetHighlighted(uids)
			engine.HighlightsChanged()
			termRunner.RequestRepaint()
		},
		OnHover: func(label string, found bool) {
			if found {
				statusBar.SetText(label)
			} else {
				statusBar.SetText("")
			}
			termRunner.RequestRepaint()
		},
		OnDisabled: func() {
			statusBar.SetText("")
			termRunner.RequestRepaint()
		},
		Logger: dbg,
	})
	if err != nil {
		return err
	}

	plotView := &term.PlotView{
		Engine:       engine,
		DisabledText: `choose axes to plot ("xaxis <column>", "yaxis <column>")`,
		ResizeDebounce: &plot.Debouncer{
			Delay: 100 * time.Millisecond,
			Post:  termRunner.Post,
		},
	}

	promptView := &term.PromptView{
		Screen: termRunner,
		SetupPrompt: func(requiredOpts ...prompt.Option) *prompt.Prompt {
			opts := []prompt.Option{
				prompt.OptionPrefix(">>> "),
				prompt.OptionPrefixTextColor(prompt.Cyan),
				prompt.OptionInputTextColor(prompt.Yellow),
			}
			opts = append(opts, requiredOpts...)

			return prompt.New(nil, comp, opts...)
		},
		HandleInput: func(input string) (*string, bool) {
			return c.handleCommand(engine, table, termRunner, input)
		},
	}

	plotArea := term.Resizable(&term.SplitView{
		DockSize: 1,
		Dock:     term.PosBelow,
		Docked:   statusBar,
		Flexed:   plotView,
	})
	if c.Flags.Height > 0 {
		// pin the plot (plus its status line) to the top at the requested
		// height; anything left over goes to the prompt
		plotArea = &term.SplitView{
			DockSize: c.Flags.Height + 1,
			Dock:     term.PosAbove,
			Docked:   plotArea,
			Flexed:   &term.StaticResizable{},
		}
	}
	mainView := &term.SplitView{
		DockSize: 6,
		Dock:     term.PosBelow,
		Docked:   promptView,
		Flexed:   plotArea,
	}

	termRunner.KeyHandler = promptView.HandleKey
	termRunner.MouseHandler = func(evt *tcell.EventMouse) {
		plotView.HandleMouse(evt)
		termRunner.RequestRepaint()
	}

	// apply axis flags up front, overriding remembered choices
	if c.Flags.XAxis != "" {
		engine.SetAxis(plot.AxisX, c.Flags.XAxis)
	}
	if c.Flags.YAxis != "" {
		engine.SetAxis(plot.AxisY, c.Flags.YAxis)
	}

	ctx, stopScreen := context.WithCancel(ctx)
	go promptView.Run(ctx, nil, stopScreen)

	if err := termRunner.Run(ctx, mainView); err != nil {
		return err
	}
	engine.Dispose()
	c.Fprintf("%s\n", cli.ExitQuote())
	return nil
}

// handleCommand processes one submitted prompt line.
func (c *PlotCommand) handleCommand(engine *plot.Engine, table *runs.Table, screen *term.Runner, input string) (*string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, false
	}
	if cli.IsExitWord(input) {
		return nil, true
	}

	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "xaxis", "yaxis":
		if arg == "" {
			msg := fmt.Sprintf("usage: %s <column>\n", cmd)
			return &msg, false
		}
		if _, ok := table.Descriptor(arg); !ok {
			msg := fmt.Sprintf("no column %q (hint: try %q)\n", arg, "columns")
			return &msg, false
		}
		role := plot.AxisX
		if cmd == "yaxis" {
			role = plot.AxisY
		}
		engine.SetAxis(role, arg)
		screen.RequestRepaint()
		return nil, false

	case "columns":
		msg := strings.Join(table.Columns(), ", ") + "\n"
		return &msg, false
	}

	msg := fmt.Sprintf("no known command %q (hint: try %q)\n", input, "quit")
	return &msg, false
}
