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


package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/network"
	models_error "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/error"
	models_service "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/service"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/slog_attr"
)

type Service struct {
	updaters []Updater
	station  network.Station
	config   Config
	apps     map[string]App
}

func New(updaters []Updater, station network.Station, config Config, apps map[string]App) *Service {
	if config.CheckOnReasons == nil {
		config.CheckOnReasons = DefaultCheckOnReasons
	}
	return &Service{
		updaters: updaters,
		station:  station,
		config:   config,
		apps:     apps,
	}
}

// Run executes one boot cycle. Staged updates are applied first, then new releases are
// downloaded if the restart reason calls for a check. The configured app is started
// unless a restart is required to apply what was downloaded.
func (s *Service) Run(ctx context.Context, reason models_service.RestartReason) (models_service.Result, error) {
	var result models_service.Result
	logger.Info("boot cycle started", slog_attr.RestartReasonKey, reason)
	for _, u := range s.updaters {
		if u.ApplyPendingUpdatesIfAvailable() {
			result.Applied = append(result.Applied, u.Name())
		}
	}
	if slices.Contains(s.config.CheckOnReasons, reason) {
		result.Checked = true
		result.Staged, result.NetworkConnected = s.downloadUpdates(ctx)
	} else {
		logger.Info("skipping update check", slog_attr.RestartReasonKey, reason)
	}
	if len(result.Staged) > 0 && s.config.RestartAfterDownload {
		result.RestartRequired = true
		logger.Info("restart required", slog_attr.UpdatesStagedKey, result.Staged)
		return result, nil
	}
	if s.config.App == "" {
		return result, nil
	}
	app, ok := s.apps[s.config.App]
	if !ok {
		return result, fmt.Errorf("%w '%s'", models_error.UnknownAppErr, s.config.App)
	}
	logger.Info("starting app", slog_attr.AppKey, s.config.App)
	if err := app.Start(ctx); err != nil {
		return result, fmt.Errorf("app '%s': %w", s.config.App, err)
	}
	result.App = s.config.App
	return result, nil
}

func (s *Service) downloadUpdates(ctx context.Context) ([]string, bool) {
	if !network.UsingNetwork(ctx, s.station, s.config.Network, s.config.NetworkPollInterval) {
		logger.Warn("no network, skipping update check")
		return nil, false
	}
	var staged []string
	for _, u := range s.updaters {
		if ctx.Err() != nil {
			logger.Warn("update check aborted", slog_attr.ErrorKey, ctx.Err())
			break
		}
		if u.DownloadUpdatesIfAvailable(ctx) {
			staged = append(staged, u.Name())
		}
	}
	return staged, true
}
