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


package network

import (
	"context"
	"time"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/slog_attr"
)

const defaultPollInterval = 100 * time.Millisecond

type Antenna int

const (
	ChipAntenna Antenna = iota
	ExternalAntenna
)

// Station status values. Values below or equal to StatusIdle indicate a failed
// connection attempt.
const (
	StatusConnectFail  = -1
	StatusIdle         = 0
	StatusConnecting   = 1
	StatusGotIPPending = 2
	StatusConnected    = 3
)

type Station interface {
	IsConnected() bool
	Activate() error
	Configure(antenna Antenna) error
	Connect(ssid, password string) error
	Status() int
	Config() string
}

type Credentials struct {
	SSID     string  `json:"ssid" env_var:"NETWORK_SSID"`
	Password string  `json:"password" env_var:"NETWORK_PASSWORD"`
	Antenna  Antenna `json:"antenna" env_var:"NETWORK_ANTENNA"`
}

// UsingNetwork connects the station if it is not connected yet and polls until the
// connection is established. It returns false if the station reports a failure status or
// the context is done.
func UsingNetwork(ctx context.Context, station Station, credentials Credentials, pollInterval time.Duration) bool {
	if station.IsConnected() {
		logger.Debug("already connected", slog_attr.NetworkConfigKey, station.Config())
		return true
	}
	logger.Info("connecting to network", slog_attr.SSIDKey, credentials.SSID)
	if err := station.Activate(); err != nil {
		logger.Error("activating station failed", slog_attr.ErrorKey, err)
		return false
	}
	if err := station.Configure(credentials.Antenna); err != nil {
		logger.Error("configuring station failed", slog_attr.ErrorKey, err)
		return false
	}
	if err := station.Connect(credentials.SSID, credentials.Password); err != nil {
		logger.Error("connecting station failed", slog_attr.SSIDKey, credentials.SSID, slog_attr.ErrorKey, err)
		return false
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for !station.IsConnected() {
		select {
		case <-ctx.Done():
			logger.Error("connecting to network aborted", slog_attr.SSIDKey, credentials.SSID, slog_attr.ErrorKey, ctx.Err())
			return false
		case <-ticker.C:
		}
		if status := station.Status(); status <= StatusIdle {
			logger.Error("connecting to network failed", slog_attr.SSIDKey, credentials.SSID, slog_attr.StatusKey, status)
			return false
		}
	}
	logger.Info("connected to network", slog_attr.NetworkConfigKey, station.Config())
	return true
}
