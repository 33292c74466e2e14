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
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/mewkiz/flac"
)

// flacMagic is the FLAC stream marker.
var flacMagic = []byte("fLaC")

// SidecarInfo describes a FLAC audio sidecar.
type SidecarInfo struct {
	SampleRate uint32
	Duration   time.Duration
}

// ProbeSidecar inspects an extracted audio sidecar. The converter pipeline
// sometimes stores a FLAC blob in the audio slot; when the file carries the
// FLAC marker, its stream info is returned so the player can sanity-check
// audio length against the video. Any other payload returns (nil, nil): the
// bytes stay opaque.
func ProbeSidecar(path string) (*SidecarInfo, error) {
	file, err := os.Open(path) //nolint:gosec // Path is the decoder's own sidecar
	if err != nil {
		return nil, fmt.Errorf("open audio sidecar: %w", err)
	}
	defer func() { _ = file.Close() }()

	magic := make([]byte, len(flacMagic))
	if _, err := file.ReadAt(magic, 0); err != nil {
		// Shorter than the marker: opaque payload.
		return nil, nil //nolint:nilerr,nilnil // Non-FLAC sidecars are not an error
	}
	if !bytes.Equal(magic, flacMagic) {
		return nil, nil //nolint:nilnil // Non-FLAC sidecars are not an error
	}

	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("rewind audio sidecar: %w", err)
	}
	stream, err := flac.New(file)
	if err != nil {
		return nil, fmt.Errorf("parse FLAC sidecar: %w", err)
	}
	defer func() { _ = stream.Close() }()

	info := &SidecarInfo{SampleRate: stream.Info.SampleRate}
	if stream.Info.SampleRate > 0 {
		seconds := float64(stream.Info.NSamples) / float64(stream.Info.SampleRate)
		info.Duration = time.Duration(seconds * float64(time.Second))
	}
	return info, nil
}
