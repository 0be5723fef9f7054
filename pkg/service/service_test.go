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
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/components/network"
	models_error "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/error"
	models_service "github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/service"
)

type updaterMock struct {
	name     string
	Pending  bool
	Update   bool
	calls    *[]string
	Applied  int
	Download int
}

func (m *updaterMock) Name() string {
	return m.name
}

func (m *updaterMock) ApplyPendingUpdatesIfAvailable() bool {
	*m.calls = append(*m.calls, "apply "+m.name)
	m.Applied++
	ok := m.Pending
	m.Pending = false
	return ok
}

func (m *updaterMock) DownloadUpdatesIfAvailable(_ context.Context) bool {
	*m.calls = append(*m.calls, "download "+m.name)
	m.Download++
	if m.Update {
		m.Pending = true
	}
	return m.Update
}

type stationMock struct {
	Connected bool
}

func (m *stationMock) IsConnected() bool {
	return m.Connected
}

func (m *stationMock) Activate() error {
	return nil
}

func (m *stationMock) Configure(_ network.Antenna) error {
	return nil
}

func (m *stationMock) Connect(_, _ string) error {
	return nil
}

func (m *stationMock) Status() int {
	return network.StatusConnectFail
}

func (m *stationMock) Config() string {
	return ""
}

type appMock struct {
	Started int
	Err     error
}

func (m *appMock) Start(_ context.Context) error {
	m.Started++
	return m.Err
}

func newUpdaters(calls *[]string, mocks ...*updaterMock) []Updater {
	var updaters []Updater
	for _, m := range mocks {
		m.calls = calls
		updaters = append(updaters, m)
	}
	return updaters
}

func TestService_Run(t *testing.T) {
	t.Run("apply then download in order", func(t *testing.T) {
		var calls []string
		a := &updaterMock{name: "a", Pending: true}
		b := &updaterMock{name: "b", Update: true}
		app := &appMock{}
		srv := New(newUpdaters(&calls, a, b), &stationMock{Connected: true}, Config{App: "main", NetworkPollInterval: time.Millisecond}, map[string]App{"main": app})
		result, err := srv.Run(context.Background(), models_service.PowerOnReset)
		if err != nil {
			t.Fatal(err)
		}
		expCalls := []string{"apply a", "apply b", "download a", "download b"}
		if !reflect.DeepEqual(expCalls, calls) {
			t.Errorf("expected %v, got %v", expCalls, calls)
		}
		expResult := models_service.Result{
			Applied:          []string{"a"},
			Staged:           []string{"b"},
			Checked:          true,
			NetworkConnected: true,
			App:              "main",
		}
		if !reflect.DeepEqual(expResult, result) {
			t.Errorf("expected %+v, got %+v", expResult, result)
		}
		if app.Started != 1 {
			t.Errorf("expected app started once, got %d", app.Started)
		}
	})
	t.Run("restart after download", func(t *testing.T) {
		var calls []string
		a := &updaterMock{name: "a", Update: true}
		app := &appMock{}
		srv := New(newUpdaters(&calls, a), &stationMock{Connected: true}, Config{App: "main", RestartAfterDownload: true}, map[string]App{"main": app})
		result, err := srv.Run(context.Background(), models_service.HardReset)
		if err != nil {
			t.Fatal(err)
		}
		if !result.RestartRequired {
			t.Error("expected restart required")
		}
		if app.Started != 0 {
			t.Error("app should not be started")
		}
		result, err = srv.Run(context.Background(), models_service.WatchdogReset)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual([]string{"a"}, result.Applied) {
			t.Errorf("expected [a], got %v", result.Applied)
		}
		if result.RestartRequired || result.Checked {
			t.Errorf("unexpected result %+v", result)
		}
		if app.Started != 1 {
			t.Errorf("expected app started once, got %d", app.Started)
		}
	})
	t.Run("reason without check", func(t *testing.T) {
		var calls []string
		a := &updaterMock{name: "a", Update: true}
		srv := New(newUpdaters(&calls, a), &stationMock{Connected: true}, Config{}, nil)
		result, err := srv.Run(context.Background(), models_service.DeepSleepReset)
		if err != nil {
			t.Fatal(err)
		}
		if result.Checked || a.Download != 0 {
			t.Error("expected no update check")
		}
	})
	t.Run("custom check reasons", func(t *testing.T) {
		var calls []string
		a := &updaterMock{name: "a"}
		srv := New(newUpdaters(&calls, a), &stationMock{Connected: true}, Config{CheckOnReasons: []models_service.RestartReason{models_service.WatchdogReset}}, nil)
		if _, err := srv.Run(context.Background(), models_service.PowerOnReset); err != nil {
			t.Fatal(err)
		}
		if a.Download != 0 {
			t.Error("expected no update check")
		}
		if _, err := srv.Run(context.Background(), models_service.WatchdogReset); err != nil {
			t.Fatal(err)
		}
		if a.Download != 1 {
			t.Error("expected update check")
		}
	})
	t.Run("no network", func(t *testing.T) {
		var calls []string
		a := &updaterMock{name: "a", Update: true}
		app := &appMock{}
		srv := New(newUpdaters(&calls, a), &stationMock{}, Config{App: "main", RestartAfterDownload: true, NetworkPollInterval: time.Millisecond}, map[string]App{"main": app})
		result, err := srv.Run(context.Background(), models_service.PowerOnReset)
		if err != nil {
			t.Fatal(err)
		}
		if !result.Checked || result.NetworkConnected || a.Download != 0 {
			t.Errorf("unexpected result %+v", result)
		}
		if app.Started != 1 {
			t.Error("expected app started")
		}
	})
	t.Run("unknown app", func(t *testing.T) {
		var calls []string
		srv := New(newUpdaters(&calls, &updaterMock{name: "a"}), &stationMock{Connected: true}, Config{App: "missing"}, map[string]App{"main": &appMock{}})
		if _, err := srv.Run(context.Background(), models_service.PowerOnReset); !errors.Is(err, models_error.UnknownAppErr) {
			t.Errorf("expected UnknownAppErr, got %v", err)
		}
	})
	t.Run("app error", func(t *testing.T) {
		var calls []string
		testErr := errors.New("test")
		srv := New(newUpdaters(&calls, &updaterMock{name: "a"}), &stationMock{Connected: true}, Config{App: "main"}, map[string]App{"main": &appMock{Err: testErr}})
		result, err := srv.Run(context.Background(), models_service.SoftReset)
		if !errors.Is(err, testErr) {
			t.Errorf("expected %v, got %v", testErr, err)
		}
		if result.App != "" {
			t.Errorf("expected no app, got %s", result.App)
		}
	})
}
