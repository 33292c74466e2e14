// Package bytesource provides windowed random access to a bounded byte stream.
//
// A Reader holds one chunk of the underlying stream in memory and reloads it
// when an access falls outside the current window. Reloads start a small
// overlap before the requested index so that the bit-level reader above can
// re-read the byte it is in the middle of without thrashing the window.
package bytesource

import (
	"errors"
	"fmt"
	"io"
)

// Default window configuration.
const (
	DefaultChunkSize = 1 << 16
	DefaultOverlap   = 1 << 8
)

// ErrOutOfRange indicates an index at or past the end of the stream.
var ErrOutOfRange = errors.New("byte index out of range")

// Reader serves single-byte reads from an io.ReaderAt through a sliding window.
// It is not safe for concurrent use; the window is mutated on reload.
type Reader struct {
	src       io.ReaderAt
	size      int64
	chunkSize int
	overlap   int64

	window      []byte
	windowStart int64
}

// New creates a Reader with the default window configuration.
func New(src io.ReaderAt, size int64) *Reader {
	return NewWithConfig(src, size, DefaultChunkSize, DefaultOverlap)
}

// NewWithConfig creates a Reader with an explicit chunk size and overlap.
func NewWithConfig(src io.ReaderAt, size int64, chunkSize, overlap int) *Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultOverlap
	}
	return &Reader{
		src:       src,
		size:      size,
		chunkSize: chunkSize,
		overlap:   int64(overlap),
	}
}

// ByteAt returns the byte at the given stream offset.
func (r *Reader) ByteAt(index int64) (byte, error) {
	if index < 0 || index >= r.size {
		return 0, fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, index, r.size)
	}

	if index < r.windowStart || index >= r.windowStart+int64(len(r.window)) {
		start := index - r.overlap
		if start < 0 {
			start = 0
		}
		if err := r.load(start); err != nil {
			return 0, err
		}
	}

	return r.window[index-r.windowStart], nil
}

// load replaces the window with the chunk starting at the given offset.
func (r *Reader) load(start int64) error {
	n := int64(r.chunkSize)
	if start+n > r.size {
		n = r.size - start
	}

	if int64(cap(r.window)) < n {
		r.window = make([]byte, n)
	}
	r.window = r.window[:n]

	if _, err := r.src.ReadAt(r.window, start); err != nil {
		r.window = r.window[:0]
		return fmt.Errorf("read chunk at %d: %w", start, err)
	}
	r.windowStart = start
	return nil
}

// Size returns the total size of the underlying stream in bytes.
func (r *Reader) Size() int64 {
	return r.size
}
