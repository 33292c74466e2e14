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
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/climformat/go-clim/internal/bytesource"
)

// bitWriter packs an MSB-first bit stream for test inputs.
type bitWriter struct {
	data []byte
	used uint // bits used in the last byte
}

func (w *bitWriter) writeBits(value uint64, n uint) {
	for i := n; i > 0; i-- {
		bit := byte(value>>(i-1)) & 1
		if w.used == 0 {
			w.data = append(w.data, 0)
		}
		w.data[len(w.data)-1] |= bit << (7 - w.used)
		w.used = (w.used + 1) % 8
	}
}

func (w *bitWriter) writeBitString(code string) {
	for _, c := range code {
		if c == '1' {
			w.writeBits(1, 1)
		} else {
			w.writeBits(0, 1)
		}
	}
}

func (w *bitWriter) writeByte(b byte) {
	w.writeBits(uint64(b), 8)
}

func (w *bitWriter) align() {
	w.used = 0
}

// paletteEntry pairs a color with its Huffman code for test palettes.
type paletteEntry struct {
	color Color
	code  string
}

// writePalette emits a cluster palette header for the given entries.
func writePalette(w *bitWriter, entries []paletteEntry) {
	w.writeByte(byte(len(entries) - 1))
	for _, e := range entries {
		w.writeByte(e.color.R)
		w.writeByte(e.color.G)
		w.writeByte(e.color.B)
	}
	for _, e := range entries {
		w.writeBits(uint64(len(e.code)-1), 3)
	}
	w.align()
	for _, e := range entries {
		w.writeBitString(e.code)
	}
	w.align()
}

// writeHuffmanFrame emits a Huffman-only (mode A) frame from pixel codes.
func writeHuffmanFrame(w *bitWriter, pixelCodes []string) {
	w.writeBits(0, 1)
	for _, code := range pixelCodes {
		w.writeBitString(code)
	}
	w.align()
}

// buildFile assembles a complete CLIM file. writeClusters emits every cluster
// body; the audio payload is appended and the header's audio offset patched
// to point at it.
func buildFile(t *testing.T, width, height, msbf int, clusterSizes []int,
	writeClusters func(w *bitWriter), audio []byte,
) []byte {
	t.Helper()

	w := &bitWriter{}
	w.writeByte(0x01)
	w.writeBits(uint64(width), 16)
	w.writeBits(uint64(height), 16)
	w.writeBits(uint64(msbf), 16)
	w.writeBits(0, 40) // audio offset, patched below

	// Clustering header with 8-bit count fields.
	w.writeBits(7, 5)
	w.writeBits(uint64(len(clusterSizes)-1), 8)
	w.writeBits(7, 5)
	for _, size := range clusterSizes {
		w.writeBits(uint64(size-1), 8)
	}
	w.align()

	writeClusters(w)

	data := w.data
	audioStart := uint64(len(data))
	var offsetField [8]byte
	binary.BigEndian.PutUint64(offsetField[:], audioStart)
	copy(data[7:12], offsetField[3:8])

	return append(data, audio...)
}

// writeTempFile writes data into a file under the test's temp dir.
func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.clim")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

// newByteSource wraps raw bytes in the decoder's byte source.
func newByteSource(data []byte) *bytesource.Reader {
	return bytesource.New(bytes.NewReader(data), int64(len(data)))
}

// solidRow builds one frame row filled with a single color.
func solidRow(color Color, width int) []Color {
	row := make([]Color, width)
	for i := range row {
		row[i] = color
	}
	return row
}
