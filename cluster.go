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

package clim

import (
	"fmt"

	"github.com/climformat/go-clim/internal/bits"
)

// decodeCluster decodes one cluster starting at a byte-aligned offset: the
// palette, then numFrames frames, each converted to a 2D grid. Returns the
// frames and the byte offset of the next cluster.
func decodeCluster(src bits.ByteSource, offset int64, numFrames, width, height int,
) ([]Frame, int64, error) {
	palette, offset, err := decodePalette(src, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("decode palette: %w", err)
	}

	frames := make([]Frame, 0, numFrames)
	for i := range numFrames {
		flat, next, err := decodeFrame(src, offset, palette, width, height)
		if err != nil {
			return nil, 0, fmt.Errorf("decode frame %d: %w", i, err)
		}
		frame, err := flat.ToFrame(width, height)
		if err != nil {
			return nil, 0, err
		}
		frames = append(frames, frame)
		offset = next
	}

	return frames, offset, nil
}

// skipCluster consumes a cluster exactly as decodeCluster does, discarding
// the frames. Returns the byte offset of the next cluster.
func skipCluster(src bits.ByteSource, offset int64, numFrames, width, height int,
) (int64, error) {
	palette, offset, err := decodePalette(src, offset)
	if err != nil {
		return 0, fmt.Errorf("decode palette: %w", err)
	}

	for i := range numFrames {
		_, next, err := decodeFrame(src, offset, palette, width, height)
		if err != nil {
			return 0, fmt.Errorf("decode frame %d: %w", i, err)
		}
		offset = next
	}

	return offset, nil
}
