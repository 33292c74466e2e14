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

import "errors"

// Code-length caps fixed by the wire format.
const (
	// MaxPaletteCodeBits is the longest legal palette Huffman code.
	MaxPaletteCodeBits = 8

	// MaxCountCodeBits is the longest legal run-length Huffman code.
	MaxCountCodeBits = 16

	// MaxPaletteColors is the largest palette a cluster can carry.
	MaxPaletteColors = 256
)

// Common errors for CLIM parsing.
var (
	// ErrInvalidFormat indicates the file is not a CLIM file, or its header
	// is structurally broken.
	ErrInvalidFormat = errors.New("invalid CLIM format")

	// ErrUnsupportedFormat indicates a CLIM encoding family this decoder
	// does not implement.
	ErrUnsupportedFormat = errors.New("unsupported CLIM format")

	// ErrCorruptStream indicates the encoded pixel stream cannot be decoded
	// against its own codebooks.
	ErrCorruptStream = errors.New("corrupt CLIM stream")

	// ErrDimensionMismatch indicates a flat pixel sequence whose length does
	// not match the declared frame geometry.
	ErrDimensionMismatch = errors.New("pixel count does not match frame dimensions")
)
