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
	"errors"
	"testing"

	"github.com/climformat/go-clim/internal/bits"
)

func TestDecodePalette(t *testing.T) {
	t.Parallel()

	entries := []paletteEntry{
		{Color{R: 0x11, G: 0x22, B: 0x33}, "00"},
		{Color{R: 0x44, G: 0x55, B: 0x66}, "01"},
		{Color{R: 0x77, G: 0x88, B: 0x99}, "1"},
	}
	w := &bitWriter{}
	writePalette(w, entries)

	src := newByteSource(w.data)
	book, next, err := decodePalette(src, 0)
	if err != nil {
		t.Fatalf("decodePalette failed: %v", err)
	}

	if len(book.codes) != 3 {
		t.Fatalf("codebook has %d codes, want 3", len(book.codes))
	}
	for _, e := range entries {
		got, ok := book.codes[e.code]
		if !ok {
			t.Fatalf("code %q missing from codebook", e.code)
		}
		if got != e.color {
			t.Fatalf("code %q = %v, want %v", e.code, got, e.color)
		}
	}
	if next != int64(len(w.data)) {
		t.Fatalf("next offset = %d, want %d", next, len(w.data))
	}
}

func TestDecodePaletteSingleColor(t *testing.T) {
	t.Parallel()

	w := &bitWriter{}
	writePalette(w, []paletteEntry{{Color{R: 0xAB}, "0"}})

	book, _, err := decodePalette(newByteSource(w.data), 0)
	if err != nil {
		t.Fatalf("decodePalette failed: %v", err)
	}
	if got := book.codes["0"]; got != (Color{R: 0xAB}) {
		t.Fatalf(`codes["0"] = %v, want {AB 0 0}`, got)
	}
}

func TestDecodePaletteAtOffset(t *testing.T) {
	t.Parallel()

	w := &bitWriter{}
	w.writeByte(0xEE) // leading junk the palette must not touch
	writePalette(w, []paletteEntry{{Color{G: 0xCD}, "10"}})

	book, _, err := decodePalette(newByteSource(w.data), 1)
	if err != nil {
		t.Fatalf("decodePalette failed: %v", err)
	}
	if got := book.codes["10"]; got != (Color{G: 0xCD}) {
		t.Fatalf(`codes["10"] = %v, want {0 CD 0}`, got)
	}
}

func TestPaletteWalker(t *testing.T) {
	t.Parallel()

	book := &paletteCodebook{codes: map[string]Color{
		"0":  {R: 1},
		"10": {R: 2},
		"11": {R: 3},
	}}

	w := &bitWriter{}
	w.writeBitString("10" + "0" + "11")
	w.align()

	r := bits.NewReader(newByteSource(w.data), 0)
	want := []Color{{R: 2}, {R: 1}, {R: 3}}
	for i, wc := range want {
		got, err := book.next(r)
		if err != nil {
			t.Fatalf("walk #%d failed: %v", i, err)
		}
		if got != wc {
			t.Fatalf("walk #%d = %v, want %v", i, got, wc)
		}
	}
}

func TestPaletteWalkerRunaway(t *testing.T) {
	t.Parallel()

	book := &paletteCodebook{codes: map[string]Color{"0": {}}}

	r := bits.NewReader(newByteSource([]byte{0xFF, 0xFF}), 0)
	if _, err := book.next(r); !errors.Is(err, ErrCorruptStream) {
		t.Fatalf("walker = %v, want ErrCorruptStream", err)
	}
}

func TestPaletteWalkerEightBitCode(t *testing.T) {
	t.Parallel()

	// The longest legal code must still match.
	book := &paletteCodebook{codes: map[string]Color{"11111111": {B: 9}}}

	r := bits.NewReader(newByteSource([]byte{0xFF}), 0)
	got, err := book.next(r)
	if err != nil {
		t.Fatalf("walker failed: %v", err)
	}
	if got != (Color{B: 9}) {
		t.Fatalf("walker = %v, want {0 0 9}", got)
	}
}
