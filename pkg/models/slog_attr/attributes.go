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

package slog_attr

import "github.com/SENERGY-Platform/go-service-base/struct-logger/attributes"

const (
	ErrorKey           = attributes.ErrorKey
	ModuleKey          = "module"
	RepositoryKey      = "repository"
	PathKey            = attributes.PathKey
	DirNameKey         = "dir_name"
	VersionKey         = "version"
	CurrentVersionKey  = "current_version"
	LatestVersionKey   = "latest_version"
	PendingVersionKey  = "pending_version"
	RestartReasonKey   = "restart_reason"
	AppKey             = "app"
	SSIDKey            = "ssid"
	StatusKey          = "status"
	NetworkConfigKey   = "network_config"
	ConfigValuesKey    = "config_values"
	ComponentKey       = "component"
	FileCountKey       = "file_count"
	TransferKey        = "transfer"
	RestartRequiredKey = "restart_required"
	RebootCommandKey   = "reboot_command"
	ModuleDocumentsKey = "module_documents"
	UpdatesStagedKey   = "updates_staged"
	UpdatesAppliedKey  = "updates_applied"
	AddressKey         = "address"
	CommandKey         = "command"
)
