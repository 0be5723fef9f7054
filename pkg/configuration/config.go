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


package configuration

import (
	"fmt"
	"slices"
	"time"

	sb_config_hdl "github.com/SENERGY-Platform/go-service-base/config-hdl"
	struct_logger "github.com/SENERGY-Platform/go-service-base/struct-logger"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/network"
	models_error "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/error"
	models_module "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/module"
	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/service"
)

const redactedValue = "***"

type GitHubConfig struct {
	BaseUrl string        `json:"base_url" env_var:"GITHUB_BASE_URL"`
	Timeout time.Duration `json:"timeout" env_var:"GITHUB_TIMEOUT"`
}

type ProbeConfig struct {
	Address string        `json:"address" env_var:"PROBE_ADDRESS"`
	Timeout time.Duration `json:"timeout" env_var:"PROBE_TIMEOUT"`
}

type AppConfig struct {
	Command string `json:"command" env_var:"APP_COMMAND"`
	Module  string `json:"module" env_var:"APP_MODULE"`
}

type Config struct {
	WorkDirPath   string               `json:"work_dir_path" env_var:"WORK_DIR_PATH"`
	ModulesPath   string               `json:"modules_path" env_var:"MODULES_PATH"`
	GitHub        GitHubConfig         `json:"github"`
	Probe         ProbeConfig          `json:"probe"`
	Service       service.Config       `json:"service"`
	App           AppConfig            `json:"app"`
	RebootCommand string               `json:"reboot_command" env_var:"REBOOT_COMMAND"`
	Logger        struct_logger.Config `json:"logger"`
}

func New(path string) (*Config, error) {
	cfg := Config{
		WorkDirPath: "/opt/ota-updater/modules",
		ModulesPath: "/opt/ota-updater/config/modules",
		GitHub: GitHubConfig{
			BaseUrl: "https://api.github.com",
			Timeout: time.Minute,
		},
		Probe: ProbeConfig{
			Address: "api.github.com:443",
			Timeout: time.Second * 30,
		},
		Service: service.Config{
			CheckOnReasons:      slices.Clone(service.DefaultCheckOnReasons),
			Network:             network.Credentials{Antenna: network.ChipAntenna},
			NetworkPollInterval: time.Millisecond * 100,
		},
		Logger: struct_logger.Config{
			Handler:    struct_logger.TextHandlerSelector,
			Level:      struct_logger.LevelInfo,
			TimeFormat: time.RFC3339Nano,
			TimeUtc:    true,
			AddMeta:    false,
		},
	}
	err := sb_config_hdl.Load(&cfg, nil, nil, nil, path)
	return &cfg, err
}

// Redacted returns a copy of the config with credentials masked.
func (c Config) Redacted() Config {
	if c.Service.Network.Password != "" {
		c.Service.Network.Password = redactedValue
	}
	return c
}

// CheckAppModule ensures the module the app runs in is configured.
func (c Config) CheckAppModule(modules []models_module.Module) error {
	if c.App.Module == "" {
		return nil
	}
	for _, mod := range modules {
		if mod.Name == c.App.Module {
			return nil
		}
	}
	return fmt.Errorf("%w: app module '%s' not configured", models_error.NoLocalConfigErr, c.App.Module)
}
