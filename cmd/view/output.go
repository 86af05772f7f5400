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
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"gopkg.in/yaml.v2"

	"sigs.k8s.io/runplot/plot"
	"sigs.k8s.io/runplot/runs"
)

// runRows flattens the table back into the row shape the loaders read,
// so a dump round-trips through the same format.
func runRows(table *runs.Table) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, table.Len())
	for _, r := range table.Runs() {
		row := map[string]interface{}{"uid": r.ID}
		if r.From != "" {
			row["from_uid"] = r.From
		}
		for col, v := range r.Vals {
			if v.Kind == plot.NumberKind {
				row[col] = v.Num
			} else {
				row[col] = v.Str
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func ToPrettyJson(table *runs.Table) (*string, error) {
	s, err := json.MarshalIndent(runRows(table), "", "  ")
	if err != nil {
		return nil, err
	}
	out := string(s)
	return &out, nil
}

func ToPrettyColoredJson(table *runs.Table) (*string, error) {
	f := prettyjson.NewFormatter()
	f.Indent = 4
	f.KeyColor = color.New(color.FgGreen)
	f.NullColor = color.New(color.Underline)
	f.NumberColor = color.New(color.FgYellow)
	f.StringColor = color.New(color.FgHiCyan)
	f.BoolColor = nil

	s, err := f.Marshal(runRows(table))
	if err != nil {
		return nil, err
	}
	out := string(s)
	return &out, nil
}

func ToYaml(table *runs.Table) (*string, error) {
	o, err := yaml.Marshal(runRows(table))
	if err != nil {
		return nil, err
	}
	out := string(o)
	return &out, nil
}

func ToPrettyFormat(table *runs.Table, outputType string, colorized bool) (*string, error) {
	switch outputType {
	case "json":
		var o *string
		var err error
		if colorized {
			o, err = ToPrettyColoredJson(table)
		} else {
			o, err = ToPrettyJson(table)
		}
		if err != nil {
			return nil, err
		}
		return o, nil

	case "yaml":
		o, err := ToYaml(table)
		if err != nil {
			return nil, err
		}
		return o, nil
	}
	return nil, fmt.Errorf("unsupported formatting option (%s)", outputType)
}
