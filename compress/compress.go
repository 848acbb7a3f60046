// Package compress provides one-shot gzip, zstd and brotli helpers over
// byte slices.
//
// Each algorithm has a default-level form and a WithLevel form. The
// defaults match common HTTP body compression practice: gzip at the
// codec's default level, zstd at level 3, brotli at quality 5.
package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// DefaultZstdLevel is the zstd compression level used by Zstd.
const DefaultZstdLevel = 3

// DefaultBrotliLevel is the brotli quality used by Brotli.
const DefaultBrotliLevel = 5

// Gzip compresses data at the codec's default level.
func Gzip(data []byte) ([]byte, error) {
	return GzipLevel(data, gzip.DefaultCompression)
}

// GzipLevel compresses data at the given gzip level (1 fastest, 9 best,
// or gzip.DefaultCompression).
func GzipLevel(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("compress: gzip level: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress: gzip: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: gzip: %w", err)
	}
	return buf.Bytes(), nil
}

// Gunzip decompresses gzip data.
func Gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compress: gunzip: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compress: gunzip: %w", err)
	}
	return out, nil
}

// Zstd compresses data at DefaultZstdLevel.
func Zstd(data []byte) ([]byte, error) {
	return ZstdLevel(data, DefaultZstdLevel)
}

// ZstdLevel compresses data at the given zstd level (1-22 in reference
// zstd terms; mapped onto the encoder's nearest supported speed class).
func ZstdLevel(data []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("compress: zstd level: %w", err)
	}
	out := enc.EncodeAll(data, nil)
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("compress: zstd: %w", err)
	}
	return out, nil
}

// Unzstd decompresses zstd data.
func Unzstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("compress: unzstd: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("compress: unzstd: %w", err)
	}
	return out, nil
}

// Brotli compresses data at DefaultBrotliLevel.
func Brotli(data []byte) ([]byte, error) {
	return BrotliLevel(data, DefaultBrotliLevel)
}

// BrotliLevel compresses data at the given brotli quality (0-11).
func BrotliLevel(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, level)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress: brotli: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: brotli: %w", err)
	}
	return buf.Bytes(), nil
}

// Unbrotli decompresses brotli data.
func Unbrotli(data []byte) ([]byte, error) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("compress: unbrotli: %w", err)
	}
	return out, nil
}
