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
	"strconv"
)

// ValueKind discriminates the two shapes a record cell can take.
type ValueKind int

const (
	// NumberKind marks a plain numeric value.
	NumberKind ValueKind = iota
	// LabelKind marks a textual/categorical value.  This includes the
	// "inf"/"-inf" sentinel strings some producers emit for unbounded
	// numeric results.
	LabelKind
)

// Value is a single cell of a record: either a number or a label.  The zero
// value is the number 0.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Number makes a numeric Value.
func Number(v float64) Value {
	return Value{Kind: NumberKind, Num: v}
}

// Label makes a textual Value.
func Label(s string) Value {
	return Value{Kind: LabelKind, Str: s}
}

// IsInfSentinel reports whether this value is one of the string stand-ins
// for an infinite numeric result.  These are never plottable on a numeric
// axis.
func (v Value) IsInfSentinel() bool {
	return v.Kind == LabelKind && (v.Str == "inf" || v.Str == "-inf")
}

// Text returns the canonical textual form of the value, used to match
// against categorical axis domains.
func (v Value) Text() string {
	if v.Kind == NumberKind {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return v.Str
}

// Record is one data point in a run chain.  Records are supplied by the
// surrounding application and are read-only to the engine.
type Record interface {
	// UID uniquely identifies this record within its table.
	UID() string

	// Value looks up the record's value on the named axis.  It returns
	// false if the record carries no value for that axis.
	Value(axis string) (Value, bool)

	// Parent returns the uid of the record this one descends from, if any.
	// The reference is weak: resolving it may fail, and the engine must
	// treat that as a recoverable condition.
	Parent() (string, bool)
}

// DataView is how the engine sees the application's record state.  The
// engine never mutates it; highlight changes are signalled outward through
// Config.OnHighlight instead.
type DataView interface {
	// Selected returns the ordered set of records currently chosen for
	// display.
	Selected() []Record

	// Highlighted returns the ordered set of records whose ancestry chains
	// should be emphasized.
	Highlighted() []Record

	// Lookup resolves a uid to its record.
	Lookup(uid string) (Record, bool)
}
