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
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/github_clt"
	helper_version "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/version"
	models_error "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/error"
	models_module "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/module"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/slog_attr"
)

const (
	nextDirName  = "next"
	prevDirName  = ".prev"
	tmpDirPrefix = ".next-"
)

// Handler checks, stages and applies releases of a single module. The module root holds
// the active tree (main dir) and the staged tree (next).
type Handler struct {
	gitHubClt gitHubClient
	module    models_module.Module
	owner     string
	repo      string
	mainDir   string
	rootPath  string
}

func New(gitHubClt gitHubClient, workDirPath string, module models_module.Module) *Handler {
	mainDir := module.MainDir
	if mainDir == "" {
		mainDir = models_module.DefaultMainDir
	}
	if module.Transfer == "" {
		module.Transfer = models_module.ContentsTransfer
	}
	return &Handler{
		gitHubClt: gitHubClt,
		module:    module,
		mainDir:   strings.Trim(mainDir, "/"),
		rootPath:  path.Join(workDirPath, module.Name),
	}
}

func (h *Handler) Init() error {
	if !models_module.ValidName(h.module.Name) {
		return fmt.Errorf("%w: invalid module name '%s'", models_error.NoLocalConfigErr, h.module.Name)
	}
	owner, repo, err := parseRepositoryURL(h.module.RepositoryURL)
	if err != nil {
		return fmt.Errorf("%w: module '%s': %w", models_error.NoLocalConfigErr, h.module.Name, err)
	}
	switch h.mainDir {
	case "", ".", nextDirName, prevDirName:
		return fmt.Errorf("%w: module '%s': invalid main dir '%s'", models_error.NoLocalConfigErr, h.module.Name, h.mainDir)
	}
	if strings.Contains(h.mainDir, "/") || strings.HasPrefix(h.mainDir, tmpDirPrefix) {
		return fmt.Errorf("%w: module '%s': invalid main dir '%s'", models_error.NoLocalConfigErr, h.module.Name, h.mainDir)
	}
	switch h.module.Transfer {
	case models_module.ContentsTransfer, models_module.TarballTransfer:
	default:
		return fmt.Errorf("%w: module '%s': unknown transfer '%s'", models_error.NoLocalConfigErr, h.module.Name, h.module.Transfer)
	}
	h.owner = owner
	h.repo = repo
	if err = os.MkdirAll(h.rootPath, 0775); err != nil {
		return models_error.NewFileSystemError(h.rootPath, err)
	}
	return nil
}

func (h *Handler) Name() string {
	return h.module.Name
}

func (h *Handler) Repository() string {
	return path.Join(h.owner, h.repo)
}

// MainPath returns the path of the active tree.
func (h *Handler) MainPath() string {
	return path.Join(h.rootPath, h.mainDir)
}

// CurrentVersion returns the installed version or an empty string if none is installed.
func (h *Handler) CurrentVersion() (string, error) {
	return readVersion(h.MainPath())
}

// PendingVersion returns the staged version or an empty string if nothing is staged.
func (h *Handler) PendingVersion() (string, error) {
	return readVersion(path.Join(h.rootPath, nextDirName))
}

// LatestVersion returns the tag of the latest release.
func (h *Handler) LatestVersion(ctx context.Context) (string, error) {
	release, err := h.gitHubClt.GetLatestRelease(ctx, h.owner, h.repo, h.module.Token)
	if err != nil {
		return "", remoteErr(err, models_error.NoReleaseErr)
	}
	if !helper_version.IsValid(release.TagName) {
		return "", models_error.NewMetadataError(fmt.Errorf("invalid tag name '%s'", release.TagName))
	}
	return strings.TrimSpace(release.TagName), nil
}

// CheckForUpdateAvailable returns the latest version if it is strictly newer than the
// installed version. A repository without releases yields no update.
func (h *Handler) CheckForUpdateAvailable(ctx context.Context) (string, bool, error) {
	current, err := h.CurrentVersion()
	if err != nil {
		return "", false, err
	}
	latest, err := h.LatestVersion(ctx)
	if err != nil {
		if errors.Is(err, models_error.NoReleaseErr) {
			logger.Warn("no release found", slog_attr.ModuleKey, h.module.Name, slog_attr.RepositoryKey, h.Repository())
			return "", false, nil
		}
		return "", false, err
	}
	logger.Info("checking version", slog_attr.ModuleKey, h.module.Name, slog_attr.CurrentVersionKey, current, slog_attr.LatestVersionKey, latest)
	if !helper_version.Newer(latest, current) {
		return "", false, nil
	}
	return latest, true, nil
}

func (h *Handler) State() models_module.State {
	if _, err := verifyStaging(path.Join(h.rootPath, nextDirName)); err != nil {
		return models_module.UpToDate
	}
	return models_module.UpdateStaged
}

// DownloadUpdatesIfAvailable stages the latest release if it is newer than the installed
// version and reports whether an update is staged afterwards.
func (h *Handler) DownloadUpdatesIfAvailable(ctx context.Context) bool {
	ver, ok, err := h.CheckForUpdateAvailable(ctx)
	if err != nil {
		logger.Error("checking for update failed", slog_attr.ModuleKey, h.module.Name, slog_attr.ErrorKey, err)
		return false
	}
	if !ok {
		return false
	}
	if pending, err := verifyStaging(path.Join(h.rootPath, nextDirName)); err == nil && pending == ver {
		logger.Info("update already staged", slog_attr.ModuleKey, h.module.Name, slog_attr.PendingVersionKey, pending)
		return true
	}
	logger.Info("updating", slog_attr.ModuleKey, h.module.Name, slog_attr.VersionKey, ver, slog_attr.TransferKey, h.module.Transfer)
	if err = h.DownloadUpdate(ctx, ver); err != nil {
		logger.Error("downloading update failed", slog_attr.ModuleKey, h.module.Name, slog_attr.VersionKey, ver, slog_attr.ErrorKey, err)
		return false
	}
	logger.Info("update staged", slog_attr.ModuleKey, h.module.Name, slog_attr.VersionKey, ver)
	return true
}

// ApplyPendingUpdatesIfAvailable promotes a staged update and reports whether one was applied.
func (h *Handler) ApplyPendingUpdatesIfAvailable() bool {
	ver, ok, err := h.ApplyPendingUpdate()
	if err != nil {
		logger.Error("applying update failed", slog_attr.ModuleKey, h.module.Name, slog_attr.ErrorKey, err)
		return false
	}
	if !ok {
		logger.Debug("no pending update found", slog_attr.ModuleKey, h.module.Name)
		return false
	}
	logger.Info("update applied", slog_attr.ModuleKey, h.module.Name, slog_attr.VersionKey, ver)
	return true
}

func parseRepositoryURL(s string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", "", err
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("invalid repository url '%s'", s)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 3 && parts[0] == "repos" {
		parts = parts[1:]
	}
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository url '%s'", s)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

func remoteErr(err error, notFoundErr error) error {
	var resErr *github_clt.ResponseError
	if errors.As(err, &resErr) {
		if resErr.Code == http.StatusNotFound && notFoundErr != nil {
			return notFoundErr
		}
		return models_error.NewNetworkError(err)
	}
	var decErr *github_clt.DecodeError
	if errors.As(err, &decErr) {
		return models_error.NewMetadataError(err)
	}
	return models_error.NewNetworkError(err)
}
