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
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/slog_attr"
)

// ProbeStation is a Station for hosts whose network interfaces are managed by the
// operating system. It is connected when a TCP connection to the probe address can be
// established. Connect starts a connection window of the configured timeout; once the
// window is over without a successful probe the status reports a failure.
type ProbeStation struct {
	address  string
	timeout  time.Duration
	dialer   *net.Dialer
	antenna  Antenna
	deadline time.Time
	localIP  string
	mu       sync.Mutex
}

func NewProbeStation(address string, timeout time.Duration) *ProbeStation {
	return &ProbeStation{
		address: address,
		timeout: timeout,
		dialer:  &net.Dialer{Timeout: timeout},
	}
}

func (s *ProbeStation) IsConnected() bool {
	conn, err := s.dialer.Dial("tcp", s.address)
	if err != nil {
		logger.Debug("probe failed", slog_attr.AddressKey, s.address, slog_attr.ErrorKey, err)
		return false
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.TCPAddr); ok {
		s.mu.Lock()
		s.localIP = addr.IP.String()
		s.mu.Unlock()
	}
	return true
}

func (s *ProbeStation) Activate() error {
	return nil
}

func (s *ProbeStation) Configure(antenna Antenna) error {
	switch antenna {
	case ChipAntenna, ExternalAntenna:
	default:
		return fmt.Errorf("unknown antenna %d", antenna)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.antenna = antenna
	return nil
}

func (s *ProbeStation) Connect(_, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadline = time.Now().Add(s.timeout)
	return nil
}

func (s *ProbeStation) Status() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deadline.IsZero() {
		return StatusIdle
	}
	if time.Now().After(s.deadline) {
		return StatusConnectFail
	}
	return StatusConnecting
}

func (s *ProbeStation) Config() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("probe=%s local_ip=%s antenna=%d", s.address, s.localIP, s.antenna)
}
