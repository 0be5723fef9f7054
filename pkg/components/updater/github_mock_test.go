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
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/github_clt"
	helper_manifest "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/manifest"
	"github.com/gin-gonic/gin"
)

// gitHubMock serves releases of a single repository. Release files are keyed by their
// repository path, e.g. "main/app.py".
type gitHubMock struct {
	Latest          string
	Releases        map[string]map[string]string
	Truncate        map[string]bool
	Malformed       bool
	ContentRequests int
	FileRequests    int
}

func newGitHubServer(t *testing.T, mock *gitHubMock) *httptest.Server {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/repos/:owner/:repo/releases/latest", func(gc *gin.Context) {
		if mock.Malformed {
			gc.String(http.StatusOK, `{"name": "no tag"}`)
			return
		}
		if mock.Latest == "" {
			gc.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		gc.JSON(http.StatusOK, gin.H{"tag_name": mock.Latest})
	})
	engine.GET("/repos/:owner/:repo/contents/*path", func(gc *gin.Context) {
		mock.ContentRequests++
		tag := strings.TrimPrefix(gc.Query("ref"), "refs/tags/")
		files, ok := mock.Releases[tag]
		if !ok {
			gc.JSON(http.StatusNotFound, gin.H{"message": "No commit found for the ref " + tag})
			return
		}
		items := listDir(files, strings.Trim(gc.Param("path"), "/"), "http://"+gc.Request.Host, tag)
		if len(items) == 0 {
			gc.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		gc.JSON(http.StatusOK, items)
	})
	engine.GET("/raw/:owner/:repo/*path", func(gc *gin.Context) {
		mock.FileRequests++
		tag, filePath, _ := strings.Cut(strings.TrimPrefix(gc.Param("path"), "/"), "/")
		content, ok := mock.Releases[tag][filePath]
		if !ok {
			gc.String(http.StatusNotFound, "404: Not Found")
			return
		}
		if mock.Truncate[filePath] {
			content = content[:len(content)/2]
		}
		gc.String(http.StatusOK, content)
	})
	engine.GET("/repos/:owner/:repo/tarball/:ref", func(gc *gin.Context) {
		files, ok := mock.Releases[gc.Param("ref")]
		if !ok {
			gc.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		gc.Data(http.StatusOK, "application/x-gzip", newTarGz(t, gc.Param("owner")+"-"+gc.Param("repo")+"-0a1b2c3", files))
	})
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func listDir(files map[string]string, dir, baseURL, tag string) []github_clt.ContentItem {
	var items []github_clt.ContentItem
	dirs := make(map[string]struct{})
	for p, content := range files {
		rest, ok := strings.CutPrefix(p, dir+"/")
		if !ok {
			continue
		}
		if name, _, isDir := strings.Cut(rest, "/"); isDir {
			if _, ok := dirs[name]; !ok {
				dirs[name] = struct{}{}
				items = append(items, github_clt.ContentItem{Type: github_clt.DirType, Name: name, Path: dir + "/" + name})
			}
			continue
		}
		items = append(items, github_clt.ContentItem{
			Type:        github_clt.FileType,
			Name:        rest,
			Path:        p,
			Sha:         gitBlobSha(content),
			Size:        int64(len(content)),
			DownloadURL: baseURL + "/raw/org/repo/refs/tags/" + tag + "/" + p,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items
}

func gitBlobSha(content string) string {
	h := helper_manifest.NewGitBlobHash(int64(len(content)))
	_, _ = io.WriteString(h, content)
	return hex.EncodeToString(h.Sum(nil))
}

func newTarGz(t *testing.T, rootDir string, files map[string]string) []byte {
	buf := &bytes.Buffer{}
	gw := gzip.NewWriter(buf)
	tw := tar.NewWriter(gw)
	if err := tw.WriteHeader(&tar.Header{Name: "pax_global_header", Typeflag: tar.TypeXGlobalHeader, PAXRecords: map[string]string{"comment": "0a1b2c3"}}); err != nil {
		t.Fatal(err)
	}
	if err := tw.WriteHeader(&tar.Header{Name: rootDir + "/", Typeflag: tar.TypeDir, Mode: 0755}); err != nil {
		t.Fatal(err)
	}
	for p, content := range files {
		if err := tw.WriteHeader(&tar.Header{Name: rootDir + "/" + p, Typeflag: tar.TypeReg, Mode: 0644, Size: int64(len(content))}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
