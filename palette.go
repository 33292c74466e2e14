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

// paletteCodebook maps variable-length bit-string codes to colors. Codes are
// prefix-free by construction of the encoder; the decoder does not verify
// this, it relies on the producer.
type paletteCodebook struct {
	codes map[string]Color
}

// decodePalette reads a cluster's palette starting at the given byte offset:
// a color count byte, the RGB table, the per-color code lengths (3 bits each,
// +1 encoded), then the codes themselves. Returns the codebook and the byte
// offset of the first frame.
func decodePalette(src bits.ByteSource, offset int64) (*paletteCodebook, int64, error) {
	countByte, err := src.ByteAt(offset)
	if err != nil {
		return nil, 0, fmt.Errorf("read palette size: %w", err)
	}
	offset++
	numColors := int(countByte) + 1

	colors := make([]Color, numColors)
	for i := range colors {
		var rgb [3]byte
		for c := range rgb {
			rgb[c], err = src.ByteAt(offset)
			if err != nil {
				return nil, 0, fmt.Errorf("read palette color %d: %w", i, err)
			}
			offset++
		}
		colors[i] = Color{R: rgb[0], G: rgb[1], B: rgb[2]}
	}

	reader := bits.NewReader(src, offset*8)

	codeLengths := make([]uint, numColors)
	for i := range codeLengths {
		length, err := reader.ReadBits(3)
		if err != nil {
			return nil, 0, fmt.Errorf("read palette code length %d: %w", i, err)
		}
		codeLengths[i] = uint(length) + 1
	}
	reader.AlignToByte()

	book := &paletteCodebook{codes: make(map[string]Color, numColors)}
	for i, length := range codeLengths {
		code, err := reader.ReadBitString(length)
		if err != nil {
			return nil, 0, fmt.Errorf("read palette code %d: %w", i, err)
		}
		book.codes[code] = colors[i]
	}

	return book, reader.AlignToByte(), nil
}

// next walks the bit stream one bit at a time until a palette code matches.
// Codes longer than MaxPaletteCodeBits cannot exist, so exceeding that bound
// means the stream is corrupt.
func (p *paletteCodebook) next(r *bits.Reader) (Color, error) {
	code := make([]byte, 0, MaxPaletteCodeBits)
	for {
		if color, ok := p.codes[string(code)]; ok {
			return color, nil
		}

		bit, err := r.ReadBool()
		if err != nil {
			return Color{}, fmt.Errorf("read palette code bit: %w", err)
		}
		if bit {
			code = append(code, '1')
		} else {
			code = append(code, '0')
		}

		if len(code) > MaxPaletteCodeBits {
			return Color{}, fmt.Errorf("%w: no palette code within %d bits",
				ErrCorruptStream, MaxPaletteCodeBits)
		}
	}
}
