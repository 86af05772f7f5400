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

// Package runs holds the data side of runplot: loaded run records, the
// table they live in, and the inference that turns table columns into
// plottable axis descriptors.
package runs

import (
	"fmt"
	"sort"

	"sigs.k8s.io/runplot/plot"
)

// Run is one loaded record.  A run may name another run as its origin
// (a restart, a refinement, a child experiment); those links form the
// chains the plot traces on highlight.
type Run struct {
	ID   string
	From string
	Vals map[string]plot.Value
}

func (r *Run) UID() string {
	return r.ID
}

func (r *Run) Value(axis string) (plot.Value, bool) {
	v, ok := r.Vals[axis]
	return v, ok
}

func (r *Run) Parent() (string, bool) {
	return r.From, r.From != ""
}

// Table is an ordered collection of runs with keyed lookup.  It serves
// the plot engine as its DataView, and the column side of it (Columns,
// Descriptor, colors, labels) feeds the engine's configuration.
type Table struct {
	runs    []*Run
	byID    map[string]*Run
	pos     map[string]int
	columns []string
	colSeen map[string]bool

	logAxes     map[string]bool
	highlighted []plot.Record
}

func NewTable() *Table {
	return &Table{
		byID:    map[string]*Run{},
		pos:     map[string]int{},
		colSeen: map[string]bool{},
		logAxes: map[string]bool{},
	}
}

// Append adds a run.  IDs must be unique across the table.
func (t *Table) Append(r *Run) error {
	if _, dup := t.byID[r.ID]; dup {
		return fmt.Errorf("duplicate run id %q", r.ID)
	}
	t.pos[r.ID] = len(t.runs)
	t.runs = append(t.runs, r)
	t.byID[r.ID] = r
	var added []string
	for col := range r.Vals {
		if !t.colSeen[col] {
			t.colSeen[col] = true
			added = append(added, col)
		}
	}
	// columns discovered in the same run land in a stable order
	sort.Strings(added)
	t.columns = append(t.columns, added...)
	return nil
}

func (t *Table) Len() int {
	return len(t.runs)
}

// Runs returns the runs in load order.
func (t *Table) Runs() []*Run {
	return t.runs
}

// Columns lists the value columns in first-appearance order.
func (t *Table) Columns() []string {
	return t.columns
}

// MarkLogScale opts a numeric column into log10 plotting.
func (t *Table) MarkLogScale(column string) {
	t.logAxes[column] = true
}

// Selected returns the records currently plotted.  The whole table is
// always in view; zoom narrows the window, not the set.
func (t *Table) Selected() []plot.Record {
	recs := make([]plot.Record, len(t.runs))
	for i, r := range t.runs {
		recs[i] = r
	}
	return recs
}

func (t *Table) Highlighted() []plot.Record {
	return t.highlighted
}

// SetHighlighted replaces the highlighted set by id.  Unknown ids are
// dropped silently.
func (t *Table) SetHighlighted(uids []string) {
	t.highlighted = t.highlighted[:0]
	for _, uid := range uids {
		if r, ok := t.byID[uid]; ok {
			t.highlighted = append(t.highlighted, r)
		}
	}
}

func (t *Table) Lookup(uid string) (plot.Record, bool) {
	r, ok := t.byID[uid]
	return r, ok
}

// Descriptor infers the axis descriptor for a column over the *full*
// table, never just the zoomed window, so zooming cannot shift the
// full-extent domain it returns to.  A column is numeric when every
// value it has is a number or an infinity marker; any other text value
// makes it categorical, with categories in first-appearance order.
func (t *Table) Descriptor(column string) (plot.AxisDescriptor, bool) {
	if !t.colSeen[column] {
		return plot.AxisDescriptor{}, false
	}

	var (
		lo, hi   float64
		anyNum   bool
		cats     []string
		catSeen  = map[string]bool{}
		anyLabel bool
	)
	for _, r := range t.runs {
		v, ok := r.Vals[column]
		if !ok {
			continue
		}
		switch {
		case v.Kind == plot.NumberKind:
			if !anyNum || v.Num < lo {
				lo = v.Num
			}
			if !anyNum || v.Num > hi {
				hi = v.Num
			}
			anyNum = true
		case v.IsInfSentinel():
			// unplottable but not categorical
		default:
			anyLabel = true
			if !catSeen[v.Str] {
				catSeen[v.Str] = true
				cats = append(cats, v.Str)
			}
		}
	}

	if anyLabel {
		return plot.AxisDescriptor{Kind: plot.CategoricalAxis, Categories: cats}, true
	}
	kind := plot.NumericAxis
	if t.logAxes[column] {
		kind = plot.LogAxis
	}
	return plot.AxisDescriptor{Kind: kind, Min: lo, Max: hi}, true
}

// palette cycles per-run colors in table order.  Entries are spaced for
// contrast on a dark background.
var palette = []plot.Color{
	{R: 0x4c, G: 0xa0, B: 0xe0},
	{R: 0xe0, G: 0x7a, B: 0x4c},
	{R: 0x5f, G: 0xc8, B: 0x8a},
	{R: 0xd4, G: 0x6a, B: 0xc8},
	{R: 0xe0, G: 0xc8, B: 0x4c},
	{R: 0x6a, G: 0x6a, B: 0xe0},
	{R: 0xe0, G: 0x4c, B: 0x6a},
	{R: 0x4c, G: 0xd4, B: 0xd4},
}

// RowColor assigns a stable palette color by table position, carrying
// the requested opacity through to the renderer.
func (t *Table) RowColor(rec plot.Record, opacity float64) plot.Color {
	c := palette[t.pos[rec.UID()]%len(palette)]
	c.A = opacity
	return c
}

// RowLabel formats the hover label for a record.
func (t *Table) RowLabel(rec plot.Record) string {
	if from, ok := rec.Parent(); ok {
		return fmt.Sprintf("%s (from %s)", rec.UID(), from)
	}
	return rec.UID()
}
