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

package github_clt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	acceptHeaderKey        = "Accept"
	authorizationHeaderKey = "Authorization"
	userAgentHeaderKey     = "User-Agent"
	gitHubApiVerHeaderKey  = "X-GitHub-Api-Version"
	gitHubApiVer           = "2022-11-28"
	gitHubJsonMediaType    = "application/vnd.github+json"
	userAgent              = "mgw-ota-updater"
	tagRefPrefix           = "refs/tags/"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient HTTPClient
	baseURL    string
}

func New(httpClient HTTPClient, baseUrl string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseUrl,
	}
}

func (c *Client) GetLatestRelease(ctx context.Context, owner, repo, token string) (Release, error) {
	u, err := url.JoinPath(c.baseURL, "repos", owner, repo, "releases", "latest")
	if err != nil {
		return Release{}, err
	}
	var release Release
	if err = c.getJSON(ctx, u, token, &release); err != nil {
		return Release{}, err
	}
	return release, nil
}

// GetContents lists the directory at pth for the given tag.
func (c *Client) GetContents(ctx context.Context, owner, repo, pth, tag, token string) ([]ContentItem, error) {
	u, err := url.JoinPath(c.baseURL, "repos", owner, repo, "contents", pth)
	if err != nil {
		return nil, err
	}
	u += "?" + url.Values{"ref": {tagRefPrefix + tag}}.Encode()
	var items []ContentItem
	if err = c.getJSON(ctx, u, token, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetFile downloads the raw content behind a content item's download url.
func (c *Client) GetFile(ctx context.Context, downloadURL, token string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.Replace(downloadURL, tagRefPrefix, "", 1), nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req, token)
	return c.doStream(req)
}

func (c *Client) GetRepoTarGzArchive(ctx context.Context, owner, repo, ref, token string) (io.ReadCloser, error) {
	u, err := url.JoinPath(c.baseURL, "repos", owner, repo, "tarball", ref)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req, token)
	req.Header.Set(acceptHeaderKey, gitHubJsonMediaType)
	return c.doStream(req)
}

func (c *Client) getJSON(ctx context.Context, u, token string, v any) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	setHeaders(req, token)
	req.Header.Set(acceptHeaderKey, gitHubJsonMediaType)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_, _ = io.Copy(io.Discard, res.Body)
		}
		res.Body.Close()
	}()
	if res.StatusCode >= 400 {
		return newResponseError(res)
	}
	if err = json.NewDecoder(res.Body).Decode(v); err != nil {
		return NewDecodeError(err)
	}
	return nil
}

func (c *Client) doStream(req *http.Request) (io.ReadCloser, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		defer res.Body.Close()
		return nil, newResponseError(res)
	}
	return res.Body, nil
}

func setHeaders(req *http.Request, token string) {
	req.Header.Set(gitHubApiVerHeaderKey, gitHubApiVer)
	req.Header.Set(userAgentHeaderKey, userAgent)
	if token != "" {
		req.Header.Set(authorizationHeaderKey, "token "+token)
	}
}

func newResponseError(res *http.Response) error {
	b, err := io.ReadAll(res.Body)
	if err != nil || len(b) == 0 {
		return NewResponseError(res.StatusCode, res.Status)
	}
	return NewResponseError(res.StatusCode, string(b))
}
