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
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/github_clt"
	helper_archive "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/archive"
	helper_file_sys "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/file_sys"
	helper_manifest "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/manifest"
	helper_version "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/version"
	models_error "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/error"
	models_module "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/module"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/slog_attr"
	"github.com/google/uuid"
)

// DownloadUpdate fetches the release files of ver into a temporary directory and swaps it
// into the staging directory once the manifest and version marker are written. The active
// tree is never touched.
func (h *Handler) DownloadUpdate(ctx context.Context, ver string) (err error) {
	if !helper_version.IsValid(ver) {
		return models_error.NewMetadataError(fmt.Errorf("invalid version '%s'", ver))
	}
	if err = os.MkdirAll(h.rootPath, 0775); err != nil {
		return models_error.NewFileSystemError(h.rootPath, err)
	}
	h.removeTmpDirs()
	tmpPath := path.Join(h.rootPath, tmpDirPrefix+uuid.NewString())
	if err = os.Mkdir(tmpPath, 0775); err != nil {
		return models_error.NewFileSystemError(tmpPath, err)
	}
	defer func() {
		if err != nil {
			if e := os.RemoveAll(tmpPath); e != nil {
				logger.Error("removing dir failed", slog_attr.ModuleKey, h.module.Name, slog_attr.DirNameKey, path.Base(tmpPath), slog_attr.ErrorKey, e)
			}
		}
	}()
	switch h.module.Transfer {
	case models_module.TarballTransfer:
		err = h.downloadTarball(ctx, ver, tmpPath)
	default:
		err = h.downloadContents(ctx, h.mainDir, ver, tmpPath)
	}
	if err != nil {
		return err
	}
	m, err := helper_manifest.Build(os.DirFS(tmpPath), ver)
	if err != nil {
		return models_error.NewFileSystemError(tmpPath, err)
	}
	if err = helper_manifest.Write(tmpPath, m); err != nil {
		return models_error.NewFileSystemError(tmpPath, err)
	}
	if err = writeVersion(tmpPath, ver); err != nil {
		return err
	}
	logger.Debug("release downloaded", slog_attr.ModuleKey, h.module.Name, slog_attr.VersionKey, ver, slog_attr.FileCountKey, len(m.Files))
	return h.stage(tmpPath)
}

func (h *Handler) stage(tmpPath string) error {
	nextPath := path.Join(h.rootPath, nextDirName)
	if err := os.RemoveAll(nextPath); err != nil {
		return models_error.NewFileSystemError(nextPath, err)
	}
	if err := os.Rename(tmpPath, nextPath); err != nil {
		return models_error.NewFileSystemError(nextPath, err)
	}
	if err := helper_file_sys.SyncDir(h.rootPath); err != nil {
		logger.Warn("syncing dir failed", slog_attr.ModuleKey, h.module.Name, slog_attr.PathKey, h.rootPath, slog_attr.ErrorKey, err)
	}
	return nil
}

func (h *Handler) downloadContents(ctx context.Context, remotePath, ver, dstPath string) error {
	items, err := h.gitHubClt.GetContents(ctx, h.owner, h.repo, remotePath, ver, h.module.Token)
	if err != nil {
		return models_error.NewDownloadError(remotePath, remoteErr(err, models_error.NewMetadataError(fmt.Errorf("'%s' not found for '%s'", remotePath, ver))))
	}
	for _, item := range items {
		if ctx.Err() != nil {
			return models_error.NewDownloadError(remotePath, ctx.Err())
		}
		relPath, err := h.relPath(item.Path)
		if err != nil {
			return err
		}
		switch item.Type {
		case github_clt.FileType:
			if err = h.downloadFile(ctx, item, path.Join(dstPath, relPath)); err != nil {
				return err
			}
		case github_clt.DirType:
			p := path.Join(dstPath, relPath)
			if err = os.Mkdir(p, 0775); err != nil && !os.IsExist(err) {
				return models_error.NewFileSystemError(p, err)
			}
			if err = h.downloadContents(ctx, item.Path, ver, dstPath); err != nil {
				return err
			}
		default:
			logger.Warn("skipping unsupported content type", slog_attr.ModuleKey, h.module.Name, slog_attr.PathKey, item.Path, "type", item.Type)
		}
	}
	return nil
}

func (h *Handler) downloadFile(ctx context.Context, item github_clt.ContentItem, dstPath string) error {
	logger.Debug("downloading", slog_attr.ModuleKey, h.module.Name, slog_attr.PathKey, item.Path)
	if item.DownloadURL == "" {
		return models_error.NewDownloadError(item.Path, models_error.NewMetadataError(errors.New("missing download url")))
	}
	rc, err := h.gitHubClt.GetFile(ctx, item.DownloadURL, h.module.Token)
	if err != nil {
		return models_error.NewDownloadError(item.Path, remoteErr(err, nil))
	}
	defer rc.Close()
	file, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0664)
	if err != nil {
		return models_error.NewFileSystemError(dstPath, err)
	}
	defer file.Close()
	blobHash := helper_manifest.NewGitBlobHash(item.Size)
	n, err := io.Copy(io.MultiWriter(file, blobHash), rc)
	if err != nil {
		return models_error.NewDownloadError(item.Path, err)
	}
	if n != item.Size {
		return models_error.NewDownloadError(item.Path, fmt.Errorf("size mismatch: expected %d, got %d", item.Size, n))
	}
	if item.Sha != "" && hex.EncodeToString(blobHash.Sum(nil)) != item.Sha {
		return models_error.NewDownloadError(item.Path, errors.New("checksum mismatch"))
	}
	if err = file.Sync(); err != nil {
		return models_error.NewFileSystemError(dstPath, err)
	}
	return nil
}

func (h *Handler) downloadTarball(ctx context.Context, ver, dstPath string) error {
	rc, err := h.gitHubClt.GetRepoTarGzArchive(ctx, h.owner, h.repo, ver, h.module.Token)
	if err != nil {
		return models_error.NewDownloadError("", remoteErr(err, models_error.NewMetadataError(fmt.Errorf("no archive for '%s'", ver))))
	}
	defer rc.Close()
	extractPath := path.Join(h.rootPath, tmpDirPrefix+uuid.NewString())
	if err = os.Mkdir(extractPath, 0775); err != nil {
		return models_error.NewFileSystemError(extractPath, err)
	}
	defer func() {
		if e := os.RemoveAll(extractPath); e != nil {
			logger.Error("removing dir failed", slog_attr.ModuleKey, h.module.Name, slog_attr.DirNameKey, path.Base(extractPath), slog_attr.ErrorKey, e)
		}
	}()
	rootDir, err := helper_archive.ExtractTarGz(rc, extractPath)
	if err != nil {
		_, _ = io.Copy(io.Discard, rc)
		return models_error.NewDownloadError("", err)
	}
	srcPath := path.Join(extractPath, rootDir, h.mainDir)
	ok, err := helper_file_sys.IsDir(srcPath)
	if err != nil {
		return models_error.NewFileSystemError(srcPath, err)
	}
	if !ok {
		return models_error.NewDownloadError(h.mainDir, models_error.NewMetadataError(fmt.Errorf("'%s' missing in archive", h.mainDir)))
	}
	if err = helper_file_sys.CopyAll(os.DirFS(srcPath), dstPath); err != nil {
		return models_error.NewFileSystemError(dstPath, err)
	}
	return nil
}

// relPath maps a repository path below the main dir to a path inside the staged tree.
func (h *Handler) relPath(p string) (string, error) {
	relPath, ok := strings.CutPrefix(p, h.mainDir+"/")
	if !ok || !fs.ValidPath(relPath) || relPath == "." {
		return "", models_error.NewMetadataError(fmt.Errorf("invalid content path '%s'", p))
	}
	if relPath == helper_manifest.FileName || relPath == helper_manifest.VersionFileName {
		return "", models_error.NewMetadataError(fmt.Errorf("reserved content path '%s'", p))
	}
	return relPath, nil
}

func (h *Handler) removeTmpDirs() {
	entries, err := os.ReadDir(h.rootPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("reading dir failed", slog_attr.ModuleKey, h.module.Name, slog_attr.PathKey, h.rootPath, slog_attr.ErrorKey, err)
		}
		return
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), tmpDirPrefix) {
			logger.Warn("removing incomplete download", slog_attr.ModuleKey, h.module.Name, slog_attr.DirNameKey, entry.Name())
			if err = os.RemoveAll(path.Join(h.rootPath, entry.Name())); err != nil {
				logger.Error("removing dir failed", slog_attr.ModuleKey, h.module.Name, slog_attr.DirNameKey, entry.Name(), slog_attr.ErrorKey, err)
			}
		}
	}
}
