// Package codec compresses and decompresses serialized snapshot payloads.
package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Compress gzips a serialized snapshot payload. The level favors ratio over
// speed since snapshots are written once and read rarely.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("cannot create gzip writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("cannot compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("cannot finish compression: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress restores a payload produced by Compress. The round trip is
// lossless.
func Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot read compressed snapshot: %w", err)
	}
	defer func() { _ = zr.Close() }()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("cannot decompress snapshot: %w", err)
	}
	return out, nil
}
