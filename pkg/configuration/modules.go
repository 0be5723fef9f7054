/*
 * Copyright 2025 InfAI (CC SES)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package configuration

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	models_error "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/error"
	models_module "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/module"
	"gopkg.in/yaml.v3"
)

// LoadModules reads one module document per file from dirPath. Documents are ordered by
// their order field and name.
func LoadModules(dirPath string) ([]models_module.Module, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w", models_error.NoLocalConfigErr, err)
		}
		return nil, err
	}
	var modules []models_module.Module
	names := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var decode func([]byte, any) error
		switch strings.ToLower(path.Ext(entry.Name())) {
		case ".json":
			decode = json.Unmarshal
		case ".yaml", ".yml":
			decode = yaml.Unmarshal
		default:
			continue
		}
		p := path.Join(dirPath, entry.Name())
		mod, err := readModule(p, decode)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", models_error.NoLocalConfigErr, p, err)
		}
		if other, ok := names[mod.Name]; ok {
			return nil, fmt.Errorf("%w: %s: duplicate module name '%s' (%s)", models_error.NoLocalConfigErr, p, mod.Name, other)
		}
		names[mod.Name] = entry.Name()
		modules = append(modules, mod)
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("%w: no module documents in '%s'", models_error.NoLocalConfigErr, dirPath)
	}
	slices.SortStableFunc(modules, func(a, b models_module.Module) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return strings.Compare(a.Name, b.Name)
	})
	return modules, nil
}

func readModule(p string, decode func([]byte, any) error) (models_module.Module, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return models_module.Module{}, err
	}
	var mod models_module.Module
	if err = decode(b, &mod); err != nil {
		return models_module.Module{}, err
	}
	if mod.RepositoryURL == "" {
		return models_module.Module{}, errors.New("missing repository url")
	}
	if mod.Name == "" {
		mod.Name = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if !models_module.ValidName(mod.Name) {
		return models_module.Module{}, fmt.Errorf("invalid module name '%s'", mod.Name)
	}
	return mod, nil
}
