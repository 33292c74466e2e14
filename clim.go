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

// Package clim decodes CLIM video containers: a clustered, palette-and-Huffman
// encoded pixel stream with an appended opaque audio payload, meant for
// playback in terminals that speak 24-bit ANSI color.
package clim

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/climformat/go-clim/internal/bits"
	"github.com/climformat/go-clim/internal/bytesource"
)

// Decoder reads a CLIM file cluster by cluster. A Decoder is single-threaded:
// operations must be serialized by the caller.
type Decoder struct {
	file *os.File // owned when opened via Open; nil for OpenReaderAt
	ra   io.ReaderAt
	size int64
	src  *bytesource.Reader

	info     StandardFormatInfo
	manifest *clusterManifest

	audioDir  string
	audioPath string

	nextByteIndex        int64
	clusterIndex         int
	clusterStartingFrame int
}

// Open opens a CLIM file, parses its headers, and extracts the audio payload
// into audioDir. The decoder owns the file handle until Close.
func Open(path, audioDir string) (*Decoder, error) {
	file, err := os.Open(path) //nolint:gosec // Path from user input is expected
	if err != nil {
		return nil, fmt.Errorf("open CLIM file: %w", err)
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat CLIM file: %w", err)
	}

	dec, err := OpenReaderAt(file, stat.Size(), audioDir)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	dec.file = file
	return dec, nil
}

// OpenReaderAt builds a decoder over an already-open byte source of known
// size, such as a file buffered out of an archive. The caller keeps ownership
// of the source.
func OpenReaderAt(src io.ReaderAt, size int64, audioDir string) (*Decoder, error) {
	dec := &Decoder{
		ra:       src,
		size:     size,
		src:      bytesource.New(src, size),
		audioDir: audioDir,
	}
	if err := dec.init(); err != nil {
		if dec.audioPath != "" {
			_ = os.Remove(dec.audioPath)
		}
		return nil, err
	}
	return dec, nil
}

// init parses the mode byte, the standard header, and the clustering
// manifest, extracting the audio payload in between, as the wire format
// orders them.
func (d *Decoder) init() error {
	r := bits.NewReader(d.src, 0)

	if err := parseModeByte(r); err != nil {
		return err
	}

	info, err := parseStandardHeader(r)
	if err != nil {
		return err
	}
	d.info = info

	path, err := extractAudio(d.ra, int64(info.AudioStartOffset), d.size, d.audioDir) //nolint:gosec // 40-bit offset fits in int64
	if err != nil {
		return err
	}
	d.audioPath = path

	manifest, err := parseClusterManifest(r)
	if err != nil {
		return err
	}
	d.manifest = manifest
	d.nextByteIndex = manifest.firstClusterOffset

	return nil
}

// Info returns the standard format header fields.
func (d *Decoder) Info() StandardFormatInfo {
	return d.info
}

// TotalFrames returns the number of frames in the file.
func (d *Decoder) TotalFrames() int {
	return d.manifest.totalFrames
}

// TotalClusters returns the number of clusters in the file.
func (d *Decoder) TotalClusters() int {
	return len(d.manifest.sizes)
}

// ClusterStartingFrame returns the frame-of-file index at which the next
// cluster begins.
func (d *Decoder) ClusterStartingFrame() int {
	return d.clusterStartingFrame
}

// AudioSidecarPath returns the path of the extracted audio sidecar file.
func (d *Decoder) AudioSidecarPath() string {
	return d.audioPath
}

// NextClusterFrames decodes and returns the next cluster's frames, advancing
// the decoder past it. Returns io.EOF once every cluster has been served.
func (d *Decoder) NextClusterFrames() ([]Frame, error) {
	if d.clusterIndex >= len(d.manifest.sizes) {
		return nil, io.EOF
	}

	size := d.manifest.sizes[d.clusterIndex]
	frames, next, err := decodeCluster(d.src, d.nextByteIndex, size,
		int(d.info.Width), int(d.info.Height))
	if err != nil {
		return nil, fmt.Errorf("decode cluster %d: %w", d.clusterIndex, err)
	}

	d.nextByteIndex = next
	d.clusterStartingFrame += size
	d.clusterIndex++
	return frames, nil
}

// SeekToFrame positions the decoder so that the next NextClusterFrames call
// returns the cluster containing the target frame. Seeking is cluster
// aligned: frames before the target within that cluster are returned too.
// Returns false without moving when the target is out of range.
func (d *Decoder) SeekToFrame(target int) (bool, error) {
	if target < 0 || target >= d.manifest.totalFrames {
		return false, nil
	}

	offset := d.manifest.firstClusterOffset
	d.clusterStartingFrame = 0
	d.clusterIndex = 0

	for d.clusterStartingFrame+d.manifest.sizes[d.clusterIndex] <= target {
		size := d.manifest.sizes[d.clusterIndex]
		next, err := skipCluster(d.src, offset, size,
			int(d.info.Width), int(d.info.Height))
		if err != nil {
			return false, fmt.Errorf("skip cluster %d: %w", d.clusterIndex, err)
		}
		offset = next
		d.clusterStartingFrame += size
		d.clusterIndex++
	}

	d.nextByteIndex = offset
	return true, nil
}

// Close releases the decoder's resources: the sidecar it extracted, the
// extraction folder if that leaves it empty, and the file handle when the
// decoder opened it. Safe to call once; the decoder is unusable afterwards.
func (d *Decoder) Close() error {
	var firstErr error

	if d.audioPath != "" {
		if err := os.Remove(d.audioPath); err != nil && !os.IsNotExist(err) {
			firstErr = fmt.Errorf("remove audio sidecar: %w", err)
		}
		d.audioPath = ""

		// Other decoder instances may share the folder; only remove it
		// once the last sidecar is gone.
		if entries, err := os.ReadDir(d.audioDir); err == nil && len(entries) == 0 {
			_ = os.Remove(filepath.Clean(d.audioDir))
		}
	}

	if d.file != nil {
		if err := d.file.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close CLIM file: %w", err)
		}
		d.file = nil
	}

	return firstErr
}
