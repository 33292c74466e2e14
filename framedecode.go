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

// countCodebook maps variable-length bit-string codes to run-length counts.
// Used only by frames encoded with Huffman-coded RLE counts.
type countCodebook struct {
	codes map[string]int
}

// next walks the bit stream until a count code matches, with the 16-bit cap
// the wire format guarantees.
func (cb *countCodebook) next(r *bits.Reader) (int, error) {
	code := make([]byte, 0, MaxCountCodeBits)
	for {
		if count, ok := cb.codes[string(code)]; ok {
			return count, nil
		}

		bit, err := r.ReadBool()
		if err != nil {
			return 0, fmt.Errorf("read count code bit: %w", err)
		}
		if bit {
			code = append(code, '1')
		} else {
			code = append(code, '0')
		}

		if len(code) > MaxCountCodeBits {
			return 0, fmt.Errorf("%w: no count code within %d bits",
				ErrCorruptStream, MaxCountCodeBits)
		}
	}
}

// decodeCountCodebook reads the RLE count codebook from a frame header:
// a 4-bit width for the code-count field, the code count, a 4-bit width for
// the count values, then one (count, code length, code) entry per code.
func decodeCountCodebook(r *bits.Reader) (*countCodebook, error) {
	mncBits, err := r.ReadBits(4)
	if err != nil {
		return nil, fmt.Errorf("read count codebook size width: %w", err)
	}
	numCodes, err := r.ReadBits(uint(mncBits))
	if err != nil {
		return nil, fmt.Errorf("read count codebook size: %w", err)
	}
	mvBits, err := r.ReadBits(4)
	if err != nil {
		return nil, fmt.Errorf("read count value width: %w", err)
	}

	book := &countCodebook{codes: make(map[string]int, numCodes)}
	for i := uint64(0); i < numCodes; i++ {
		value, err := r.ReadBits(uint(mvBits))
		if err != nil {
			return nil, fmt.Errorf("read count value %d: %w", i, err)
		}
		codeLength, err := r.ReadBits(4)
		if err != nil {
			return nil, fmt.Errorf("read count code length %d: %w", i, err)
		}
		code, err := r.ReadBitString(uint(codeLength) + 1)
		if err != nil {
			return nil, fmt.Errorf("read count code %d: %w", i, err)
		}
		book.codes[code] = int(value) + 1
	}
	return book, nil
}

// decodeFrame decodes one frame's pixels starting at a byte-aligned offset.
// The frame header selects one of three encodings: Huffman-only, RLE with
// fixed-width counts, or RLE with Huffman-coded counts. Decoding stops once
// exactly width*height pixels have been emitted; a run that would push past
// that is rejected. Returns the flat pixels and the next byte-aligned offset.
func decodeFrame(src bits.ByteSource, offset int64, palette *paletteCodebook,
	width, height int,
) (FlatFrame, int64, error) {
	r := bits.NewReader(src, offset*8)

	isRLE, err := r.ReadBool()
	if err != nil {
		return nil, 0, fmt.Errorf("read frame mode: %w", err)
	}
	usesHuffmanCounts := false
	if isRLE {
		usesHuffmanCounts, err = r.ReadBool()
		if err != nil {
			return nil, 0, fmt.Errorf("read frame mode: %w", err)
		}
	}

	dimension := width * height
	pixels := make(FlatFrame, 0, dimension)

	switch {
	case !isRLE:
		pixels, err = decodeHuffmanOnly(r, palette, pixels, dimension)
	case usesHuffmanCounts:
		pixels, err = decodeRLEHuffman(r, palette, pixels, dimension)
	default:
		pixels, err = decodeRLEFixed(r, palette, pixels, dimension)
	}
	if err != nil {
		return nil, 0, err
	}

	return pixels, r.AlignToByte(), nil
}

// decodeHuffmanOnly emits one palette-coded pixel at a time.
func decodeHuffmanOnly(r *bits.Reader, palette *paletteCodebook,
	pixels FlatFrame, dimension int,
) (FlatFrame, error) {
	for len(pixels) < dimension {
		color, err := palette.next(r)
		if err != nil {
			return nil, err
		}
		pixels = append(pixels, color)
	}
	return pixels, nil
}

// decodeRLEFixed emits (palette code, fixed-width count) runs. The count
// width comes from the frame header and is +1 encoded, as is each count.
func decodeRLEFixed(r *bits.Reader, palette *paletteCodebook,
	pixels FlatFrame, dimension int,
) (FlatFrame, error) {
	rleBits, err := r.ReadBits(5)
	if err != nil {
		return nil, fmt.Errorf("read RLE count width: %w", err)
	}

	for len(pixels) < dimension {
		color, err := palette.next(r)
		if err != nil {
			return nil, err
		}
		raw, err := r.ReadBits(uint(rleBits) + 1)
		if err != nil {
			return nil, fmt.Errorf("read RLE count: %w", err)
		}
		pixels, err = appendRun(pixels, color, int(raw)+1, dimension)
		if err != nil {
			return nil, err
		}
	}
	return pixels, nil
}

// decodeRLEHuffman emits (palette code, count code) runs against the frame's
// own count codebook.
func decodeRLEHuffman(r *bits.Reader, palette *paletteCodebook,
	pixels FlatFrame, dimension int,
) (FlatFrame, error) {
	counts, err := decodeCountCodebook(r)
	if err != nil {
		return nil, err
	}

	for len(pixels) < dimension {
		color, err := palette.next(r)
		if err != nil {
			return nil, err
		}
		count, err := counts.next(r)
		if err != nil {
			return nil, err
		}
		pixels, err = appendRun(pixels, color, count, dimension)
		if err != nil {
			return nil, err
		}
	}
	return pixels, nil
}

// appendRun appends count copies of color, rejecting runs that would overrun
// the frame.
func appendRun(pixels FlatFrame, color Color, count, dimension int) (FlatFrame, error) {
	if len(pixels)+count > dimension {
		return nil, fmt.Errorf("%w: run of %d overruns frame of %d pixels",
			ErrCorruptStream, count, dimension)
	}
	for range count {
		pixels = append(pixels, color)
	}
	return pixels, nil
}
