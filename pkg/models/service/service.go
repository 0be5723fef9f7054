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
	"fmt"
	"strings"
)

type RestartReason string

const (
	PowerOnReset   RestartReason = "power_on"
	HardReset      RestartReason = "hard_reset"
	WatchdogReset  RestartReason = "watchdog"
	DeepSleepReset RestartReason = "deep_sleep"
	SoftReset      RestartReason = "soft_reset"
)

var restartReasons = map[RestartReason]struct{}{
	PowerOnReset:   {},
	HardReset:      {},
	WatchdogReset:  {},
	DeepSleepReset: {},
	SoftReset:      {},
}

func ParseRestartReason(s string) (RestartReason, error) {
	r := RestartReason(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := restartReasons[r]; !ok {
		return "", fmt.Errorf("unknown restart reason '%s'", s)
	}
	return r, nil
}

// Result summarizes a boot cycle.
type Result struct {
	Applied          []string `json:"applied"`
	Staged           []string `json:"staged"`
	Checked          bool     `json:"checked"`
	NetworkConnected bool     `json:"network_connected"`
	RestartRequired  bool     `json:"restart_required"`
	App              string   `json:"app"`
}
