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


package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommand_Start(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "app.txt"), []byte("running"), 0664); err != nil {
			t.Fatal(err)
		}
		buf := &bytes.Buffer{}
		cmd := NewCommand([]string{"cat", "app.txt"}, dir)
		cmd.stdout = buf
		if err := cmd.Start(context.Background()); err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(buf.String()) != "running" {
			t.Errorf("expected 'running', got '%s'", buf.String())
		}
	})
	t.Run("exit code", func(t *testing.T) {
		cmd := NewCommand([]string{"sh", "-c", "exit 2"}, t.TempDir())
		if err := cmd.Start(context.Background()); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("missing command", func(t *testing.T) {
		cmd := NewCommand(nil, t.TempDir())
		if err := cmd.Start(context.Background()); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("noop", func(t *testing.T) {
		if err := (Noop{}).Start(context.Background()); err != nil {
			t.Error(err)
		}
	})
}
