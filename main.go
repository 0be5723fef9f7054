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


package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	sb_config_hdl "github.com/SENERGY-Platform/go-service-base/config-hdl"
	"github.com/SENERGY-Platform/go-service-base/srv-info-hdl"
	struct_logger "github.com/SENERGY-Platform/go-service-base/struct-logger"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/app"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/github_clt"
	helper_http "github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/helper/http"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/network"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/updater"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/configuration"
	models_service "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/service"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/slog_attr"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/service"
)

const (
	noopApp    = "none"
	commandApp = "command"
)

const restartRequiredExitCode = 3

var version string

func main() {
	ec := 0
	defer func() {
		os.Exit(ec)
	}()

	srvInfoHdl := srv_info_hdl.New("ota-updater", version)

	configuration.ParseFlags()

	config, err := configuration.New(configuration.ConfPath)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		ec = 1
		return
	}

	logger := struct_logger.New(config.Logger, os.Stderr, "", srvInfoHdl.Name())

	redactedConfig := config.Redacted()
	logger.Info("starting service", slog_attr.VersionKey, srvInfoHdl.Version(), slog_attr.ConfigValuesKey, sb_config_hdl.StructToMap(&redactedConfig, true))

	restartReason, err := models_service.ParseRestartReason(configuration.RestartReason)
	if err != nil {
		logger.Error("parsing restart reason failed", slog_attr.ErrorKey, err)
		ec = 1
		return
	}

	modules, err := configuration.LoadModules(config.ModulesPath)
	if err != nil {
		logger.Error("loading module documents failed", slog_attr.ErrorKey, err)
		ec = 1
		return
	}
	logger.Info("module documents loaded", slog_attr.ModuleDocumentsKey, len(modules))

	if err = config.CheckAppModule(modules); err != nil {
		logger.Error("invalid app config", slog_attr.ErrorKey, err)
		ec = 1
		return
	}

	ctx, cf := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cf()

	gitHubClt := github_clt.New(helper_http.NewClient(config.GitHub.Timeout), config.GitHub.BaseUrl)

	updater.InitLogger(logger)
	var updaters []service.Updater
	appDir := config.WorkDirPath
	for _, mod := range modules {
		updaterHdl := updater.New(gitHubClt, config.WorkDirPath, mod)
		if err = updaterHdl.Init(); err != nil {
			logger.Error("initializing updater failed", slog_attr.ModuleKey, mod.Name, slog_attr.ErrorKey, err)
			ec = 1
			return
		}
		if mod.Name == config.App.Module {
			appDir = updaterHdl.MainPath()
		}
		updaters = append(updaters, updaterHdl)
	}

	network.InitLogger(logger)
	station := network.NewProbeStation(config.Probe.Address, config.Probe.Timeout)

	app.InitLogger(logger)
	apps := map[string]service.App{
		noopApp:    app.Noop{},
		commandApp: app.NewCommand(strings.Fields(config.App.Command), appDir),
	}

	service.InitLogger(logger)
	srv := service.New(updaters, station, config.Service, apps)

	result, err := srv.Run(ctx, restartReason)
	if err != nil {
		logger.Error("boot cycle failed", slog_attr.ErrorKey, err)
		ec = 1
		return
	}
	logger.Info("boot cycle finished", slog_attr.UpdatesAppliedKey, result.Applied, slog_attr.UpdatesStagedKey, result.Staged, slog_attr.RestartRequiredKey, result.RestartRequired)

	if result.RestartRequired {
		args := strings.Fields(config.RebootCommand)
		if len(args) == 0 {
			ec = restartRequiredExitCode
			return
		}
		logger.Info("rebooting", slog_attr.RebootCommandKey, args)
		if err = exec.CommandContext(ctx, args[0], args[1:]...).Run(); err != nil {
			logger.Error("executing reboot command failed", slog_attr.ErrorKey, err)
			ec = restartRequiredExitCode
		}
	}
}
