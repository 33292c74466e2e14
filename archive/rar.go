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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nwaples/rardecode/v2"
)

// openRAR scans a RAR container once to build the entry list. RAR permits
// only sequential reads, so each entry's open rescans from the start.
func openRAR(path string) (*Archive, error) {
	file, err := os.Open(path) //nolint:gosec // User-provided path is expected
	if err != nil {
		return nil, fmt.Errorf("open RAR archive: %w", err)
	}

	arc := &Archive{path: path, closer: file}
	err = scanRAR(file, func(header *rardecode.FileHeader, _ *rardecode.Reader) (bool, error) {
		name := header.Name
		arc.entries = append(arc.entries, entry{
			FileInfo: FileInfo{Name: name, Size: header.UnPackedSize},
			open: func() (io.ReadCloser, error) {
				return openRAREntry(file, name)
			},
		})
		return false, nil
	})
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return arc, nil
}

// openRAREntry rescans the archive until the named entry is reached and
// leaves the decoder positioned on its data. The reader stays valid until
// the next rescan.
func openRAREntry(file *os.File, name string) (io.ReadCloser, error) {
	var found io.ReadCloser
	err := scanRAR(file, func(header *rardecode.FileHeader, reader *rardecode.Reader) (bool, error) {
		if strings.EqualFold(filepath.ToSlash(header.Name), filepath.ToSlash(name)) {
			found = io.NopCloser(reader)
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, FileNotFoundError{Archive: file.Name(), InternalPath: name}
	}
	return found, nil
}

// scanRAR walks the archive's file headers from the start, calling visit for
// every regular file until it reports done.
func scanRAR(file *os.File, visit func(*rardecode.FileHeader, *rardecode.Reader) (bool, error)) error {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek RAR archive: %w", err)
	}
	reader, err := rardecode.NewReader(file)
	if err != nil {
		return fmt.Errorf("create RAR reader: %w", err)
	}

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read RAR header: %w", err)
		}
		if header.IsDir {
			continue
		}

		done, err := visit(header, reader)
		if err != nil || done {
			return err
		}
	}
}
