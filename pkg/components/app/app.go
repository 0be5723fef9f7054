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
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/SENERGY-Platform/mgw-ota-updater/pkg/models/slog_attr"
)

// Command starts the application code of a module as a child process and waits for it
// to exit.
type Command struct {
	args   []string
	dir    string
	stdout io.Writer
	stderr io.Writer
}

func NewCommand(args []string, dir string) *Command {
	return &Command{
		args:   args,
		dir:    dir,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func (c *Command) Start(ctx context.Context) error {
	if len(c.args) == 0 {
		return errors.New("missing command")
	}
	cmd := exec.CommandContext(ctx, c.args[0], c.args[1:]...)
	cmd.Dir = c.dir
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	logger.Debug("executing", slog_attr.PathKey, c.dir, slog_attr.CommandKey, c.args)
	return cmd.Run()
}

// Noop is used when the application code is started by other means.
type Noop struct{}

func (Noop) Start(_ context.Context) error {
	return nil
}
