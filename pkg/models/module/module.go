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

package module

import "strings"

const (
	ContentsTransfer = "contents"
	TarballTransfer  = "tarball"
	DefaultMainDir   = "main"
)

type Module struct {
	Name          string `json:"name" yaml:"name"`
	RepositoryURL string `json:"repository_url" yaml:"repository_url"`
	MainDir       string `json:"main_dir" yaml:"main_dir"`
	Token         string `json:"token" yaml:"token"`
	Transfer      string `json:"transfer" yaml:"transfer"`
	Order         int    `json:"order" yaml:"order"`
}

// ValidName reports whether name can be used as the directory name of a module root.
func ValidName(name string) bool {
	switch name {
	case "", ".", "..":
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

type State int

const (
	UpToDate State = iota
	UpdateStaged
)

func (s State) String() string {
	switch s {
	case UpdateStaged:
		return "update_staged"
	default:
		return "up_to_date"
	}
}
