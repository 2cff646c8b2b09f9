// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package host

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadItems reads input items from a JSON or YAML file holding a list.
// Elements shaped {json: {...}} are used as-is; any other object becomes the
// item's json. An empty path yields a single empty item.
func LoadItems(path string) ([]InputItem, error) {
	if path == "" {
		return []InputItem{{JSON: map[string]any{}}}, nil
	}

	var raw []any
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}

	items := make([]InputItem, 0, len(raw))
	for i, r := range raw {
		obj, ok := r.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: item %d is not an object", path, i)
		}
		if inner, ok := obj["json"].(map[string]any); ok && len(obj) <= 2 {
			items = append(items, InputItem{JSON: inner})
			continue
		}
		items = append(items, InputItem{JSON: obj})
	}
	if len(items) == 0 {
		items = append(items, InputItem{JSON: map[string]any{}})
	}
	return items, nil
}

// LoadParams reads a parameter map from a JSON or YAML file.
func LoadParams(path string) (map[string]any, error) {
	params := map[string]any{}
	if path == "" {
		return params, nil
	}
	if err := decodeFile(path, &params); err != nil {
		return nil, err
	}
	return params, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
