// Package blockio reads byte streams in fixed-size blocks.
package blockio

import (
	"errors"
	"io"
)

// DefaultBlockSize is the block size used for file content, 64 KiB
const DefaultBlockSize = 64 * 1024

// ErrInvalidBlockSize is returned when a block size cannot be used
var ErrInvalidBlockSize = errors.New("invalid block size")

// ReadBlock reads up to blockSize bytes from r, accumulating short reads until the block is full
// or the stream ends. A shorter slice means the stream is exhausted; an empty slice means nothing
// was left to read. Only read errors other than io.EOF are returned.
func ReadBlock(r io.Reader, blockSize int) ([]byte, error) {
	if blockSize < 0 {
		return nil, ErrInvalidBlockSize
	}

	buffer := make([]byte, blockSize)
	blockBytes := 0

	for blockBytes < blockSize {
		n, err := r.Read(buffer[blockBytes:])
		blockBytes += n

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return buffer[:blockBytes], err
		}
		// A reader with nothing to give is treated as exhausted
		if n == 0 {
			break
		}
	}

	return buffer[:blockBytes], nil
}

// ForEach calls fn with every block read from r until the stream is exhausted
func ForEach(r io.Reader, blockSize int, fn func(block []byte) error) error {
	if blockSize <= 0 {
		return ErrInvalidBlockSize
	}

	for {
		block, err := ReadBlock(r, blockSize)
		if len(block) > 0 {
			if fnErr := fn(block); fnErr != nil {
				return fnErr
			}
		}
		if err != nil {
			return err
		}
		if len(block) < blockSize {
			return nil
		}
	}
}

// Copy writes r to dst block by block and returns the number of bytes written
func Copy(dst io.Writer, r io.Reader, blockSize int) (int64, error) {
	var written int64

	err := ForEach(r, blockSize, func(block []byte) error {
		n, err := dst.Write(block)
		written += int64(n)
		if err != nil {
			return err
		}
		if n != len(block) {
			return io.ErrShortWrite
		}
		return nil
	})

	return written, err
}
