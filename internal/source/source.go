// Package source loads stats files from disk. Servers and demo archives
// ship ktxstats documents plain, gzipped or zstd compressed; the format is
// detected from the leading magic bytes, not the file name.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression names reported for a loaded file.
const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

// MaxDocumentSize bounds the decompressed size of a document. Real stats
// files are a few hundred kilobytes.
const MaxDocumentSize = 64 << 20

var (
	ErrTooLarge = errors.New("source: document exceeds size limit")
	ErrEmpty    = errors.New("source: empty file")
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// File is a stats document read from disk.
type File struct {
	Path        string
	Compression string
	Data        []byte
}

// ReadFile reads path and decompresses it when needed.
func ReadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	compression, data, err := Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Debug("Read stats file", "path", path, "compression", compression, "bytes", len(data))
	return &File{Path: path, Compression: compression, Data: data}, nil
}

// Decompress detects the compression of raw and returns the plain document.
func Decompress(raw []byte) (string, []byte, error) {
	if len(raw) == 0 {
		return "", nil, ErrEmpty
	}
	switch {
	case bytes.HasPrefix(raw, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return "", nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		data, err := readLimited(zr)
		if err != nil {
			return "", nil, fmt.Errorf("decompressing gzip stream: %w", err)
		}
		return CompressionGzip, data, nil
	case bytes.HasPrefix(raw, zstdMagic):
		zr, err := zstd.NewReader(bytes.NewReader(raw), zstd.WithDecoderMaxMemory(MaxDocumentSize))
		if err != nil {
			return "", nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer zr.Close()
		data, err := readLimited(zr)
		if err != nil {
			return "", nil, fmt.Errorf("decompressing zstd stream: %w", err)
		}
		return CompressionZstd, data, nil
	}
	if len(raw) > MaxDocumentSize {
		return "", nil, ErrTooLarge
	}
	return CompressionNone, raw, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDocumentSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
