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
	"strconv"
	"strings"

	"github.com/climformat/go-clim"
)

// Terminal escape sequences the renderer emits.
const (
	cursorHome = "\x1b[H"
	resetStyle = "\x1b[0m"
)

// Renderer turns decoded frames into 24-bit ANSI color terminal output. Each
// pixel becomes one space cell with its background set to the pixel color.
type Renderer struct {
	width, height int
}

// NewRenderer creates a renderer for the video's geometry.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// RenderFrame renders a 2D frame as one string, one terminal row per pixel
// row, with styling reset at each row's end.
func (r *Renderer) RenderFrame(frame clim.Frame) string {
	var b strings.Builder
	// Worst case per pixel: escape prefix + three 3-digit channels + "m ".
	b.Grow(len(frame) * (r.width*20 + len(resetStyle) + 1))

	for _, row := range frame {
		for _, px := range row {
			b.WriteString("\x1b[48;2;")
			b.WriteString(strconv.Itoa(int(px.R)))
			b.WriteByte(';')
			b.WriteString(strconv.Itoa(int(px.G)))
			b.WriteByte(';')
			b.WriteString(strconv.Itoa(int(px.B)))
			b.WriteString("m ")
		}
		b.WriteString(resetStyle)
		b.WriteByte('\n')
	}

	return b.String()
}

// RenderFlatFrame applies the renderer's geometry to a flat pixel sequence
// and renders the result.
func (r *Renderer) RenderFlatFrame(flat clim.FlatFrame) (string, error) {
	frame, err := flat.ToFrame(r.width, r.height)
	if err != nil {
		return "", err
	}
	return r.RenderFrame(frame), nil
}
