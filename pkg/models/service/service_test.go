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

import "testing"

func TestParseRestartReason(t *testing.T) {
	for _, s := range []string{"power_on", " Hard_Reset ", "watchdog", "deep_sleep", "soft_reset"} {
		if _, err := ParseRestartReason(s); err != nil {
			t.Error(err)
		}
	}
	if r, _ := ParseRestartReason("HARD_RESET"); r != HardReset {
		t.Errorf("expected %s, got %s", HardReset, r)
	}
	for _, s := range []string{"", "reboot"} {
		if _, err := ParseRestartReason(s); err == nil {
			t.Errorf("'%s': expected error", s)
		}
	}
}
