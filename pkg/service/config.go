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
	"time"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/network"
	models_service "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/service"
)

type Config struct {
	CheckOnReasons       []models_service.RestartReason `json:"check_on_reasons"`
	RestartAfterDownload bool                           `json:"restart_after_download" env_var:"RESTART_AFTER_DOWNLOAD"`
	App                  string                         `json:"app" env_var:"APP"`
	Network              network.Credentials            `json:"network"`
	NetworkPollInterval  time.Duration                  `json:"network_poll_interval" env_var:"NETWORK_POLL_INTERVAL"`
}

var DefaultCheckOnReasons = []models_service.RestartReason{
	models_service.PowerOnReset,
	models_service.HardReset,
	models_service.SoftReset,
}
