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

// Package archive lets the player read CLIM videos without unpacking them
// first: out of ZIP, 7z, and RAR containers, and out of single-file gzip,
// xz, and zstd compression.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// climExtension marks CLIM video files inside containers.
const climExtension = ".clim"

// FileInfo describes one file in a container.
type FileInfo struct {
	Name string // Full path within the container
	Size int64  // Uncompressed size
}

// entry is a container file plus the way to read it. ZIP and 7z entries
// decompress on demand; RAR entries rescan the archive up to their position.
type entry struct {
	FileInfo
	open func() (io.ReadCloser, error)
}

// Archive is a read-only view over a container's files. Every supported
// format is served by this one type; only the constructors differ.
type Archive struct {
	path    string
	entries []entry
	closer  io.Closer
}

// Open opens a container file based on its extension.
// Supported formats: .zip, .7z, .rar
func Open(path string) (*Archive, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".zip":
		return openZIP(path)
	case ".7z":
		return openSevenZip(path)
	case ".rar":
		return openRAR(path)
	default:
		return nil, FormatError{Format: ext}
	}
}

// IsArchiveExtension checks if an extension is a supported container format.
func IsArchiveExtension(ext string) bool {
	ext = strings.ToLower(ext)
	switch ext {
	case ".zip", ".7z", ".rar":
		return true
	default:
		return false
	}
}

// IsCLIMFile checks if a filename has the CLIM extension.
func IsCLIMFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), climExtension)
}

// List returns the container's files in archive order.
func (a *Archive) List() []FileInfo {
	files := make([]FileInfo, len(a.entries))
	for i, e := range a.entries {
		files[i] = e.FileInfo
	}
	return files
}

// Open opens one file within the container for sequential reading and
// returns its uncompressed size alongside.
func (a *Archive) Open(internalPath string) (io.ReadCloser, int64, error) {
	e, ok := a.find(internalPath)
	if !ok {
		return nil, 0, FileNotFoundError{Archive: a.path, InternalPath: internalPath}
	}

	reader, err := e.open()
	if err != nil {
		return nil, 0, fmt.Errorf("open %q in archive: %w", e.Name, err)
	}
	return reader, e.Size, nil
}

// OpenCLIMEntry locates the container's first CLIM video, buffers it into
// memory, and returns random access over the plain bytes, which is what the
// decoder needs. Fails with NoCLIMFileError when the container holds none.
func (a *Archive) OpenCLIMEntry() (io.ReaderAt, int64, error) {
	for i := range a.entries {
		if IsCLIMFile(a.entries[i].Name) {
			return a.buffer(&a.entries[i])
		}
	}
	return nil, 0, NoCLIMFileError{Archive: a.path}
}

// Close releases the underlying container. Buffered entry bytes stay valid.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close() //nolint:wrapcheck // Close error passthrough is intentional
}

// find locates an entry by case-insensitive, slash-normalized name.
func (a *Archive) find(internalPath string) (*entry, bool) {
	internalPath = filepath.ToSlash(internalPath)
	for i := range a.entries {
		if strings.EqualFold(filepath.ToSlash(a.entries[i].Name), internalPath) {
			return &a.entries[i], true
		}
	}
	return nil, false
}

// buffer reads a whole entry into memory.
func (a *Archive) buffer(e *entry) (io.ReaderAt, int64, error) {
	reader, err := e.open()
	if err != nil {
		return nil, 0, fmt.Errorf("open %q in archive: %w", e.Name, err)
	}
	defer func() { _ = reader.Close() }()

	data := make([]byte, e.Size)
	n, err := io.ReadFull(reader, data)
	if err != nil {
		return nil, 0, fmt.Errorf("read %q from archive: %w", e.Name, err)
	}
	return bytes.NewReader(data[:n]), int64(n), nil
}
