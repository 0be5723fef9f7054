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

package manifest

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
	"time"

	helper_file_sys "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/file_sys"
)

const (
	FileName        = ".manifest.json"
	VersionFileName = ".version"
)

type File struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

type Manifest struct {
	Version string    `json:"version"`
	Created time.Time `json:"created"`
	Files   []File    `json:"files"`
}

// Build lists every regular file of fSys with size and SHA-256, skipping the manifest and
// version marker at the tree root.
func Build(fSys fs.FS, version string) (Manifest, error) {
	m := Manifest{
		Version: version,
		Created: time.Now().UTC(),
	}
	err := walkFiles(fSys, func(p string) error {
		sum, size, err := HashFile(fSys, p)
		if err != nil {
			return err
		}
		m.Files = append(m.Files, File{Path: p, Size: size, SHA256: sum})
		return nil
	})
	if err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func Write(dir string, m Manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return helper_file_sys.WriteFile(path.Join(dir, FileName), b)
}

func Read(dir string) (Manifest, error) {
	file, err := os.Open(path.Join(dir, FileName))
	if err != nil {
		return Manifest{}, err
	}
	defer file.Close()
	var m Manifest
	if err = json.NewDecoder(file).Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Verify checks that fSys holds exactly the files listed in m with matching size and hash.
func Verify(fSys fs.FS, m Manifest) error {
	listed := make(map[string]File, len(m.Files))
	for _, f := range m.Files {
		listed[f.Path] = f
	}
	var errs []error
	seen := make(map[string]struct{}, len(m.Files))
	err := walkFiles(fSys, func(p string) error {
		f, ok := listed[p]
		if !ok {
			errs = append(errs, fmt.Errorf("unlisted file '%s'", p))
			return nil
		}
		seen[p] = struct{}{}
		sum, size, err := HashFile(fSys, p)
		if err != nil {
			return err
		}
		if size != f.Size {
			errs = append(errs, fmt.Errorf("size mismatch '%s': expected %d, got %d", p, f.Size, size))
		} else if sum != f.SHA256 {
			errs = append(errs, fmt.Errorf("checksum mismatch '%s'", p))
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, f := range m.Files {
		if _, ok := seen[f.Path]; !ok {
			errs = append(errs, fmt.Errorf("missing file '%s'", f.Path))
		}
	}
	return errors.Join(errs...)
}

func HashFile(fSys fs.FS, p string) (string, int64, error) {
	file, err := fSys.Open(p)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()
	h := sha256.New()
	n, err := io.Copy(h, file)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// NewGitBlobHash returns a hash that yields the git object id of a blob with the given
// size once the blob content has been written to it.
func NewGitBlobHash(size int64) hash.Hash {
	h := sha1.New()
	_, _ = io.WriteString(h, "blob "+strconv.FormatInt(size, 10)+"\x00")
	return h
}

func walkFiles(fSys fs.FS, fn func(p string) error) error {
	return fs.WalkDir(fSys, ".", func(p string, dirEntry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !dirEntry.Type().IsRegular() {
			return nil
		}
		if p == FileName || p == VersionFileName {
			return nil
		}
		return fn(p)
	})
}
