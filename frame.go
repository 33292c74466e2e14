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

import "fmt"

// Color is a 24-bit RGB pixel value. Colors compare equal by component.
type Color struct {
	R, G, B uint8
}

// FlatFrame is one frame's pixels in row-major order, before geometry is
// applied.
type FlatFrame []Color

// Frame is a decoded frame as height rows of width colors.
type Frame [][]Color

// ToFrame slices a flat pixel sequence into a 2D grid of height rows by
// width columns. The rows share the flat frame's backing array.
func (f FlatFrame) ToFrame(width, height int) (Frame, error) {
	if len(f) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d",
			ErrDimensionMismatch, len(f), width, height)
	}

	frame := make(Frame, height)
	for row := range height {
		frame[row] = f[row*width : (row+1)*width : (row+1)*width]
	}
	return frame, nil
}
