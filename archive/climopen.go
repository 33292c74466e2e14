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

package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OpenCLIM gives random access to the CLIM video named by path, whatever the
// packaging: a bare .clim file, a .zip/.7z/.rar holding one (the first .clim
// entry is picked), or a .clim.gz/.clim.xz/.clim.zst. The returned Closer
// releases whatever was opened along the way.
//
//nolint:revive // 4 return values: reader, size, closer, error
func OpenCLIM(path string) (io.ReaderAt, int64, io.Closer, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case IsArchiveExtension(ext):
		return openFromArchive(path)
	case IsCompressedExtension(ext):
		return OpenCompressed(path)
	default:
		file, err := os.Open(path) //nolint:gosec // User-provided path is expected
		if err != nil {
			return nil, 0, nil, fmt.Errorf("open CLIM file: %w", err)
		}
		stat, err := file.Stat()
		if err != nil {
			_ = file.Close()
			return nil, 0, nil, fmt.Errorf("stat CLIM file: %w", err)
		}
		return file, stat.Size(), file, nil
	}
}

// openFromArchive buffers the container's first CLIM entry into memory. The
// buffered bytes outlive the container, so the container doubles as the
// closer.
//
//nolint:revive // 4 return values: reader, size, closer, error
func openFromArchive(path string) (io.ReaderAt, int64, io.Closer, error) {
	arc, err := Open(path)
	if err != nil {
		return nil, 0, nil, err
	}

	reader, size, err := arc.OpenCLIMEntry()
	if err != nil {
		_ = arc.Close()
		return nil, 0, nil, err
	}
	return reader, size, arc, nil
}
