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
	"testing"
)

// writeMixedCluster emits a two-frame cluster exercising two frame modes
// against one palette.
func writeMixedCluster(w *bitWriter) {
	writePalette(w, []paletteEntry{{red, "0"}, {green, "1"}})

	// Frame 0: Huffman only, RGRG.
	writeHuffmanFrame(w, []string{"0", "1", "0", "1"})

	// Frame 1: RLE fixed, GGGG.
	w.writeBits(0b10, 2)
	w.writeBits(0b00001, 5)
	w.writeBitString("1")
	w.writeBits(0b11, 2)
	w.align()
}

func TestDecodeCluster(t *testing.T) {
	t.Parallel()

	w := &bitWriter{}
	writeMixedCluster(w)
	src := newByteSource(w.data)

	frames, next, err := decodeCluster(src, 0, 2, 4, 1)
	if err != nil {
		t.Fatalf("decodeCluster failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("decoded %d frames, want 2", len(frames))
	}
	if next != int64(len(w.data)) {
		t.Fatalf("next offset = %d, want %d", next, len(w.data))
	}

	wantFirst := []Color{red, green, red, green}
	for i, c := range wantFirst {
		if frames[0][0][i] != c {
			t.Fatalf("frame 0 pixel %d = %v, want %v", i, frames[0][0][i], c)
		}
	}
	for i, c := range frames[1][0] {
		if c != green {
			t.Fatalf("frame 1 pixel %d = %v, want green", i, c)
		}
	}
}

// TestSkipMatchesDecode checks the seek invariant: skipping a cluster lands
// on the same byte offset as decoding it.
func TestSkipMatchesDecode(t *testing.T) {
	t.Parallel()

	w := &bitWriter{}
	writeMixedCluster(w)
	w.writeByte(0xEE) // trailing byte the cluster must not consume

	src := newByteSource(w.data)
	_, decoded, err := decodeCluster(src, 0, 2, 4, 1)
	if err != nil {
		t.Fatalf("decodeCluster failed: %v", err)
	}

	skipped, err := skipCluster(newByteSource(w.data), 0, 2, 4, 1)
	if err != nil {
		t.Fatalf("skipCluster failed: %v", err)
	}
	if skipped != decoded {
		t.Fatalf("skip offset %d != decode offset %d", skipped, decoded)
	}
}

func TestDecodeClusterSingleFrame(t *testing.T) {
	t.Parallel()

	w := &bitWriter{}
	writePalette(w, []paletteEntry{{blue, "1"}})
	writeHuffmanFrame(w, []string{"1", "1"})

	frames, _, err := decodeCluster(newByteSource(w.data), 0, 1, 2, 1)
	if err != nil {
		t.Fatalf("decodeCluster failed: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("decoded %d frames, want 1", len(frames))
	}
	if frames[0][0][0] != blue || frames[0][0][1] != blue {
		t.Fatalf("frame = %v, want two blues", frames[0])
	}
}
