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
	"archive/zip"
	"fmt"
)

// openZIP reads a ZIP container's directory into an Archive. Entries
// decompress on demand straight from the central directory.
func openZIP(path string) (*Archive, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open ZIP archive: %w", err)
	}

	arc := &Archive{path: path, closer: reader}
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		arc.entries = append(arc.entries, entry{
			FileInfo: FileInfo{
				Name: file.Name,
				Size: int64(file.UncompressedSize64), //nolint:gosec // Safe: file sizes don't exceed int64
			},
			open: file.Open,
		})
	}
	return arc, nil
}
