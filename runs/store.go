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
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Store persists view preferences (axis choices and the like) as a flat
// YAML map, so a reopened run file comes back with the same plot.  Set
// writes through immediately; a failed write is logged and otherwise
// ignored, since losing a preference must never take the UI down.
type Store struct {
	path string
	vals map[string]string
	log  *log.Logger
}

// OpenStore loads the store at path, starting empty when the file does
// not exist yet.  With an empty path the store is purely in-memory.
func OpenStore(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	s := &Store{path: path, vals: map[string]string{}, log: logger}
	if path == "" {
		return s, nil
	}

	raw, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read state file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s.vals); err != nil {
		return nil, fmt.Errorf("unable to parse state file %q: %w", path, err)
	}
	return s, nil
}

func (s *Store) Get(key, def string) string {
	if v, ok := s.vals[key]; ok {
		return v
	}
	return def
}

func (s *Store) Set(key, value string) {
	if value == "" {
		delete(s.vals, key)
	} else {
		s.vals[key] = value
	}
	if err := s.save(); err != nil {
		s.log.Printf("unable to persist state: %v", err)
	}
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	raw, err := yaml.Marshal(s.vals)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return ioutil.WriteFile(s.path, raw, 0644)
}
