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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// audioSuffix is appended to the sidecar's sequence number. The payload is
// opaque to the decoder; the extension only reflects what the encoder ships.
const audioSuffix = "--audio.mp3"

// extractAudio copies the byte range [start, size) verbatim into the first
// unused numbered sidecar file in dir, creating dir if needed. Several
// decoders may share dir; the O_EXCL create keeps their sidecars distinct.
func extractAudio(src io.ReaderAt, start, size int64, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create audio extraction folder: %w", err)
	}

	var out *os.File
	var path string
	for n := 0; ; n++ {
		path = filepath.Join(dir, strconv.Itoa(n)+audioSuffix)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:gosec // Path is derived from the caller's folder
		if err == nil {
			out = f
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("create audio sidecar: %w", err)
		}
	}

	if start < size {
		if _, err := io.Copy(out, io.NewSectionReader(src, start, size-start)); err != nil {
			_ = out.Close()
			_ = os.Remove(path)
			return "", fmt.Errorf("write audio sidecar: %w", err)
		}
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close audio sidecar: %w", err)
	}
	return path, nil
}
