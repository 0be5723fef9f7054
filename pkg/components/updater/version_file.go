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

package updater

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	helper_file_sys "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/file_sys"
	helper_manifest "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/manifest"
	models_error "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/error"
)

func readVersion(dir string) (string, error) {
	p := path.Join(dir, helper_manifest.VersionFileName)
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", models_error.NewFileSystemError(p, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func writeVersion(dir, ver string) error {
	p := path.Join(dir, helper_manifest.VersionFileName)
	if err := helper_file_sys.WriteFile(p, []byte(ver)); err != nil {
		return models_error.NewFileSystemError(p, err)
	}
	return nil
}

// verifyStaging returns the version of a staged tree if its version marker and manifest
// are present and every file matches the manifest.
func verifyStaging(dir string) (string, error) {
	ok, err := helper_file_sys.IsDir(dir)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("no staged tree")
	}
	ver, err := readVersion(dir)
	if err != nil {
		return "", err
	}
	if ver == "" {
		return "", errors.New("missing version marker")
	}
	m, err := helper_manifest.Read(dir)
	if err != nil {
		return "", fmt.Errorf("reading manifest failed: %w", err)
	}
	if m.Version != ver {
		return "", fmt.Errorf("version mismatch: marker '%s', manifest '%s'", ver, m.Version)
	}
	if err = helper_manifest.Verify(os.DirFS(dir), m); err != nil {
		return "", err
	}
	return ver, nil
}
