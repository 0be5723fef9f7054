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

package error

import "errors"

var (
	NoLocalConfigErr  = errors.New("no local config")
	NoReleaseErr      = errors.New("no release available")
	CorruptStagingErr = errors.New("corrupt pending update")
	UnknownAppErr     = errors.New("unknown app")
)

// NetworkError is returned when the remote could not be reached or answered with an error.
type NetworkError struct {
	err error
}

func NewNetworkError(err error) *NetworkError {
	return &NetworkError{err: err}
}

func (e *NetworkError) Error() string {
	return "network unreachable: " + e.err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.err
}

// MetadataError is returned when release or content metadata is missing or malformed.
type MetadataError struct {
	err error
}

func NewMetadataError(err error) *MetadataError {
	return &MetadataError{err: err}
}

func (e *MetadataError) Error() string {
	return "remote metadata malformed: " + e.err.Error()
}

func (e *MetadataError) Unwrap() error {
	return e.err
}

type DownloadError struct {
	Path string
	err  error
}

func NewDownloadError(path string, err error) *DownloadError {
	return &DownloadError{Path: path, err: err}
}

func (e *DownloadError) Error() string {
	if e.Path == "" {
		return "download incomplete: " + e.err.Error()
	}
	return "download incomplete '" + e.Path + "': " + e.err.Error()
}

func (e *DownloadError) Unwrap() error {
	return e.err
}

type FileSystemError struct {
	Path string
	err  error
}

func NewFileSystemError(path string, err error) *FileSystemError {
	return &FileSystemError{Path: path, err: err}
}

func (e *FileSystemError) Error() string {
	return "file system write failed '" + e.Path + "': " + e.err.Error()
}

func (e *FileSystemError) Unwrap() error {
	return e.err
}
