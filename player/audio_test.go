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
	"os"
	"path/filepath"
	"testing"
)

func TestAudioNoSidecar(t *testing.T) {
	t.Parallel()

	a := NewAudio("", nil, quietLogger().WithField("component", "test"))
	if err := a.Start(); err != nil {
		t.Fatalf("Start with no sidecar failed: %v", err)
	}
	a.Stop() // must be a no-op, not a panic
	a.Stop()
}

func TestAudioMissingPlayerBinary(t *testing.T) {
	t.Parallel()

	sidecar := filepath.Join(t.TempDir(), "0--audio.mp3")
	if err := os.WriteFile(sidecar, []byte("mp3"), 0o600); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}

	a := NewAudio(sidecar, []string{"go-clim-test-no-such-player"},
		quietLogger().WithField("component", "test"))
	if err := a.Start(); err == nil {
		a.Stop()
		t.Fatal("Start with missing binary succeeded, want error")
	}
}

func TestAudioStartStop(t *testing.T) {
	t.Parallel()

	sidecar := filepath.Join(t.TempDir(), "0--audio.mp3")
	if err := os.WriteFile(sidecar, []byte("mp3"), 0o600); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}

	// "sleep 30 <sidecar>" exits on the extra argument on some systems and
	// keeps running on others; Stop must handle both without hanging.
	a := NewAudio(sidecar, []string{"sleep", "30"},
		quietLogger().WithField("component", "test"))
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	a.Stop()
	if a.cmd != nil {
		t.Fatal("Stop left a process handle behind")
	}
}
