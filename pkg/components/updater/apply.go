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

	helper_file_sys "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/file_sys"
	models_error "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/error"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/slog_attr"
)

// ApplyPendingUpdate promotes the staged tree to the active tree by directory renames and
// returns the applied version. A corrupt staged tree is discarded and the active tree is
// left as is. Without a staged tree nothing happens.
func (h *Handler) ApplyPendingUpdate() (string, bool, error) {
	if err := h.repair(); err != nil {
		return "", false, err
	}
	nextPath := path.Join(h.rootPath, nextDirName)
	ok, err := helper_file_sys.IsDir(nextPath)
	if err != nil {
		return "", false, models_error.NewFileSystemError(nextPath, err)
	}
	if !ok {
		return "", false, nil
	}
	pending, err := verifyStaging(nextPath)
	if err != nil {
		logger.Warn("corrupt pending update found, discarding", slog_attr.ModuleKey, h.module.Name, slog_attr.ErrorKey, err)
		err = fmt.Errorf("%w: %w", models_error.CorruptStagingErr, err)
		if e := os.RemoveAll(nextPath); e != nil {
			err = errors.Join(err, models_error.NewFileSystemError(nextPath, e))
		}
		return "", false, err
	}
	logger.Info("pending update found", slog_attr.ModuleKey, h.module.Name, slog_attr.PendingVersionKey, pending)
	mainPath := h.MainPath()
	prevPath := path.Join(h.rootPath, prevDirName)
	hasMain, err := helper_file_sys.IsDir(mainPath)
	if err != nil {
		return "", false, models_error.NewFileSystemError(mainPath, err)
	}
	if hasMain {
		if err = os.Rename(mainPath, prevPath); err != nil {
			return "", false, models_error.NewFileSystemError(mainPath, err)
		}
	}
	if err = os.Rename(nextPath, mainPath); err != nil {
		err = models_error.NewFileSystemError(mainPath, err)
		if hasMain {
			if e := os.Rename(prevPath, mainPath); e != nil {
				err = errors.Join(err, models_error.NewFileSystemError(prevPath, e))
			}
		}
		return "", false, err
	}
	if e := helper_file_sys.SyncDir(h.rootPath); e != nil {
		logger.Warn("syncing dir failed", slog_attr.ModuleKey, h.module.Name, slog_attr.PathKey, h.rootPath, slog_attr.ErrorKey, e)
	}
	if hasMain {
		if e := os.RemoveAll(prevPath); e != nil {
			logger.Error("removing dir failed", slog_attr.ModuleKey, h.module.Name, slog_attr.DirNameKey, prevDirName, slog_attr.ErrorKey, e)
		}
	}
	return pending, true, nil
}

// repair completes or rolls back a promotion that was interrupted and removes leftovers
// of incomplete downloads.
func (h *Handler) repair() error {
	h.removeTmpDirs()
	prevPath := path.Join(h.rootPath, prevDirName)
	hasPrev, err := helper_file_sys.IsDir(prevPath)
	if err != nil {
		return models_error.NewFileSystemError(prevPath, err)
	}
	if !hasPrev {
		return nil
	}
	mainPath := h.MainPath()
	hasMain, err := helper_file_sys.IsDir(mainPath)
	if err != nil {
		return models_error.NewFileSystemError(mainPath, err)
	}
	if hasMain {
		logger.Warn("removing previous version left by interrupted update", slog_attr.ModuleKey, h.module.Name)
		if err = os.RemoveAll(prevPath); err != nil {
			return models_error.NewFileSystemError(prevPath, err)
		}
		return nil
	}
	logger.Warn("rolling back interrupted update", slog_attr.ModuleKey, h.module.Name)
	if err = os.Rename(prevPath, mainPath); err != nil {
		return models_error.NewFileSystemError(mainPath, err)
	}
	return nil
}
