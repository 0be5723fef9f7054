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
	"io"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/github_clt"
)

type gitHubClient interface {
	GetLatestRelease(ctx context.Context, owner, repo, token string) (github_clt.Release, error)
	GetContents(ctx context.Context, owner, repo, pth, tag, token string) ([]github_clt.ContentItem, error)
	GetFile(ctx context.Context, downloadURL, token string) (io.ReadCloser, error)
	GetRepoTarGzArchive(ctx context.Context, owner, repo, ref, token string) (io.ReadCloser, error)
}
