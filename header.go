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

// StandardFormatInfo holds the fixed-width fields of the standard format
// header.
type StandardFormatInfo struct {
	Width                     uint16
	Height                    uint16
	MillisecondsBetweenFrames uint16
	AudioStartOffset          uint64 // 40-bit byte offset of the audio payload
}

// FPS returns the frame rate derived from the inter-frame interval.
func (i StandardFormatInfo) FPS() float64 {
	return 1000.0 / float64(i.MillisecondsBetweenFrames)
}

// clusterManifest is the decoded clustering header: how many frames each
// cluster holds and where cluster 0 starts.
type clusterManifest struct {
	sizes              []int
	totalFrames        int
	firstClusterOffset int64
}

// parseModeByte consumes the leading mode byte M (bits m7..m0, m7 MSB).
// m0 must be set; m1 selects the encoding family, of which only the standard
// family (0) is implemented; m2..m7 are reserved and ignored.
func parseModeByte(r *bits.Reader) error {
	if _, err := r.ReadBits(6); err != nil { // m7..m2
		return truncated(err)
	}
	m1, err := r.ReadBool()
	if err != nil {
		return truncated(err)
	}
	m0, err := r.ReadBool()
	if err != nil {
		return truncated(err)
	}

	if !m0 {
		return fmt.Errorf("%w: mode bit m0 is clear", ErrInvalidFormat)
	}
	if m1 {
		return fmt.Errorf("%w: reserved encoding family", ErrUnsupportedFormat)
	}

	r.AlignToByte()
	return nil
}

// parseStandardHeader consumes the standard format header fields. The reader
// must be byte-aligned on entry and is left byte-aligned.
func parseStandardHeader(r *bits.Reader) (StandardFormatInfo, error) {
	var info StandardFormatInfo

	width, err := r.ReadBits(16)
	if err != nil {
		return info, truncated(err)
	}
	height, err := r.ReadBits(16)
	if err != nil {
		return info, truncated(err)
	}
	msbf, err := r.ReadBits(16)
	if err != nil {
		return info, truncated(err)
	}
	audioStart, err := r.ReadBits(40)
	if err != nil {
		return info, truncated(err)
	}

	info.Width = uint16(width)
	info.Height = uint16(height)
	info.MillisecondsBetweenFrames = uint16(msbf)
	info.AudioStartOffset = audioStart

	r.AlignToByte()
	return info, nil
}

// parseClusterManifest consumes the bit-packed clustering header. Every field
// is +1 encoded: the wire value 0 means 1.
func parseClusterManifest(r *bits.Reader) (*clusterManifest, error) {
	cnBits, err := r.ReadBits(5)
	if err != nil {
		return nil, truncated(err)
	}
	totalClusters, err := r.ReadBits(uint(cnBits) + 1)
	if err != nil {
		return nil, truncated(err)
	}
	totalClusters++

	cdBits, err := r.ReadBits(5)
	if err != nil {
		return nil, truncated(err)
	}

	m := &clusterManifest{sizes: make([]int, totalClusters)}
	for i := range m.sizes {
		size, err := r.ReadBits(uint(cdBits) + 1)
		if err != nil {
			return nil, truncated(err)
		}
		m.sizes[i] = int(size) + 1
		m.totalFrames += m.sizes[i]
	}

	m.firstClusterOffset = r.AlignToByte()
	return m, nil
}

// truncated maps an end-of-stream hit inside the header onto the format
// error contract, keeping the underlying cause in the chain.
func truncated(err error) error {
	return fmt.Errorf("%w: truncated header: %w", ErrInvalidFormat, err)
}
