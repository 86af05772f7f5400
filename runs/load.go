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

package runs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"sigs.k8s.io/runplot/plot"
)

// Reserved column names in run files.  "uid" keys a run, "from_uid"
// links it to its origin; neither is a plottable value column.
const (
	uidColumn  = "uid"
	fromColumn = "from_uid"
)

// Load reads a run file, picking the format from the file extension
// (.csv, .json, .yaml/.yml).
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open run file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f)
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	}
	return nil, fmt.Errorf("unsupported run file extension %q (want .csv, .json or .yaml)", filepath.Ext(path))
}

// LoadCSV reads runs from a CSV stream.  The first row names the
// columns; a missing uid column gets positional ids.
func LoadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty run file")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read header row: %w", err)
	}

	table := NewTable()
	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read row %d: %w", i+1, err)
		}

		run := &Run{Vals: map[string]plot.Value{}}
		for col, cell := range row {
			if col >= len(header) {
				break
			}
			switch header[col] {
			case uidColumn:
				run.ID = cell
			case fromColumn:
				run.From = cell
			default:
				if cell != "" {
					run.Vals[header[col]] = parseValue(cell)
				}
			}
		}
		if run.ID == "" {
			run.ID = strconv.Itoa(i)
		}
		if err := table.Append(run); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return table, nil
}

// LoadJSON reads runs from a JSON array of flat objects.
func LoadJSON(r io.Reader) (*Table, error) {
	var rows []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("unable to decode run file: %w", err)
	}
	return fromRows(rows)
}

// LoadYAML reads runs from a YAML list of flat mappings.
func LoadYAML(r io.Reader) (*Table, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read run file: %w", err)
	}
	var rows []map[string]interface{}
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("unable to decode run file: %w", err)
	}
	return fromRows(rows)
}

func fromRows(rows []map[string]interface{}) (*Table, error) {
	table := NewTable()
	for i, row := range rows {
		run := &Run{Vals: map[string]plot.Value{}}
		for key, cell := range row {
			switch key {
			case uidColumn:
				run.ID = asText(cell)
			case fromColumn:
				run.From = asText(cell)
			default:
				if v, ok := asValue(cell); ok {
					run.Vals[key] = v
				}
			}
		}
		if run.ID == "" {
			run.ID = strconv.Itoa(i)
		}
		if err := table.Append(run); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return table, nil
}

// parseValue classifies a textual cell: finite numbers plot, "inf" and
// "-inf" are kept as unplottable markers, anything else is a category
// label.
func parseValue(cell string) plot.Value {
	if n, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return plot.Number(n)
	}
	return plot.Label(cell)
}

func asValue(cell interface{}) (plot.Value, bool) {
	switch v := cell.(type) {
	case nil:
		return plot.Value{}, false
	case float64:
		if math.IsInf(v, 1) {
			return plot.Label("inf"), true
		}
		if math.IsInf(v, -1) {
			return plot.Label("-inf"), true
		}
		if math.IsNaN(v) {
			return plot.Value{}, false
		}
		return plot.Number(v), true
	case int:
		return plot.Number(float64(v)), true
	case bool:
		return plot.Label(strconv.FormatBool(v)), true
	case string:
		return parseValue(v), true
	}
	return plot.Label(fmt.Sprintf("%v", cell)), true
}

func asText(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", cell)
}
