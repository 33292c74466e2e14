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
	"errors"
	"strings"
	"testing"

	"github.com/climformat/go-clim"
)

func TestRenderFrame(t *testing.T) {
	t.Parallel()

	frame := clim.Frame{
		{{R: 255}, {G: 255}},
		{{B: 255}, {R: 1, G: 2, B: 3}},
	}

	got := NewRenderer(2, 2).RenderFrame(frame)
	want := "\x1b[48;2;255;0;0m \x1b[48;2;0;255;0m \x1b[0m\n" +
		"\x1b[48;2;0;0;255m \x1b[48;2;1;2;3m \x1b[0m\n"
	if got != want {
		t.Fatalf("RenderFrame = %q, want %q", got, want)
	}
}

func TestRenderFrameRowCount(t *testing.T) {
	t.Parallel()

	frame := clim.Frame{
		{{}, {}, {}},
		{{}, {}, {}},
	}
	got := NewRenderer(3, 2).RenderFrame(frame)
	if n := strings.Count(got, "\n"); n != 2 {
		t.Fatalf("rendered %d rows, want 2", n)
	}
	if n := strings.Count(got, resetStyle); n != 2 {
		t.Fatalf("rendered %d style resets, want 2", n)
	}
}

func TestRenderFlatFrame(t *testing.T) {
	t.Parallel()

	r := NewRenderer(2, 1)
	got, err := r.RenderFlatFrame(clim.FlatFrame{{R: 9}, {G: 9}})
	if err != nil {
		t.Fatalf("RenderFlatFrame failed: %v", err)
	}
	if !strings.Contains(got, "48;2;9;0;0") || !strings.Contains(got, "48;2;0;9;0") {
		t.Fatalf("RenderFlatFrame = %q, missing pixel colors", got)
	}
}

func TestRenderFlatFrameDimensionMismatch(t *testing.T) {
	t.Parallel()

	r := NewRenderer(2, 2)
	if _, err := r.RenderFlatFrame(make(clim.FlatFrame, 3)); !errors.Is(err, clim.ErrDimensionMismatch) {
		t.Fatalf("RenderFlatFrame = %v, want ErrDimensionMismatch", err)
	}
}
