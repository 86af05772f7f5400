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

package cli

import (
	"io"
)

// IOStreams carries the process's standard streams so commands stay
// testable without touching os.Stdout directly.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// RunPlotFlags are the user-settable knobs of the runplot command.
type RunPlotFlags struct {
	// XAxis and YAxis choose the initial axis columns, overriding
	// whatever the state file remembers.
	XAxis string
	YAxis string

	// List, when set, prints the plottable columns and exits.
	List bool

	// Output, when non-empty, dumps the loaded runs in the given format
	// (json or yaml) instead of opening the interactive view.
	Output string

	// StatePath overrides where axis choices are persisted.  Empty means
	// the per-user default location.
	StatePath string

	// LogScale names columns that should be plotted on a log10 axis.
	LogScale []string

	// Height caps the plot area at this many terminal rows.  Zero means
	// fill whatever the prompt doesn't use.
	Height int
}
