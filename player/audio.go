// Copyright (c) 2025 The go-clim Authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-clim.
//
// go-clim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-clim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-clim.  If not, see <https://www.gnu.org/licenses/>.

package player

import (
	"fmt"
	"os/exec"
	"syscall"

	"github.com/sirupsen/logrus"
)

// defaultAudioCommand plays the sidecar without a video window and exits
// when the track ends.
var defaultAudioCommand = []string{"ffplay", "-nodisp", "-loglevel", "quiet", "-autoexit"}

// Audio owns the external playback subprocess for an extracted sidecar.
// Exactly one owner controls the subprocess; Audio values must not be copied.
type Audio struct {
	path    string
	command []string
	cmd     *exec.Cmd
	log     *logrus.Entry
}

// NewAudio creates an audio controller for the sidecar at path. An empty
// command selects the default player; an empty path disables audio entirely.
func NewAudio(path string, command []string, log *logrus.Entry) *Audio {
	if len(command) == 0 {
		command = defaultAudioCommand
	}
	return &Audio{path: path, command: command, log: log}
}

// Start launches the playback subprocess, stopping any previous one first.
// A missing player binary surfaces here, before any frames are shown.
func (a *Audio) Start() error {
	if a.path == "" {
		return nil
	}
	a.Stop()

	args := append(append([]string{}, a.command[1:]...), a.path)
	cmd := exec.Command(a.command[0], args...) //nolint:gosec // Command comes from the user's own config

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start audio player %q: %w", a.command[0], err)
	}
	a.cmd = cmd
	a.log.WithFields(logrus.Fields{"player": a.command[0], "sidecar": a.path}).
		Debug("audio playback started")
	return nil
}

// Stop terminates the playback subprocess if one is running and reaps it.
func (a *Audio) Stop() {
	if a.cmd == nil || a.cmd.Process == nil {
		a.cmd = nil
		return
	}

	if err := a.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// SIGTERM is unsupported on some platforms; fall back to a hard kill.
		_ = a.cmd.Process.Kill()
	}
	_ = a.cmd.Wait()
	a.cmd = nil
}
