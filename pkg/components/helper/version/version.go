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

package version

import (
	"strings"

	go_version "github.com/hashicorp/go-version"
	"golang.org/x/mod/semver"
)

// Compare returns -1, 0 or +1 depending on whether a is older, equal or newer than b.
// Semantic versions are compared first, then numeric dotted versions of any length and
// finally plain strings.
func Compare(a, b string) int {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if sa, sb := toSemVer(a), toSemVer(b); semver.IsValid(sa) && semver.IsValid(sb) {
		return semver.Compare(sa, sb)
	}
	if va, err := go_version.NewVersion(a); err == nil {
		if vb, err := go_version.NewVersion(b); err == nil {
			return va.Compare(vb)
		}
	}
	return strings.Compare(a, b)
}

// Newer reports whether candidate is strictly newer than current. Any candidate is newer
// than an empty current version.
func Newer(candidate, current string) bool {
	if strings.TrimSpace(candidate) == "" {
		return false
	}
	if strings.TrimSpace(current) == "" {
		return true
	}
	return Compare(candidate, current) > 0
}

func IsValid(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, "\r\n/\\")
}

func toSemVer(s string) string {
	if strings.HasPrefix(s, "v") {
		return s
	}
	return "v" + s
}
