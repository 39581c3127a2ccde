// Package compressio opens compressed corpus dumps as line streams.
//
// The raw archives arrive in whichever format the collector used that year:
// Zstandard (.zst/.zstd), LZMA (.xz), or bzip2 (.bz2). The dispatcher picks a
// decoder by filename suffix only; there is no content sniffing.
package compressio

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// UnsupportedFormatError reports a filename whose extension matches none of
// the supported codecs. Unknown formats are a hard error: silently producing
// an empty stream would make a misnamed multi-gigabyte dump vanish without a
// trace.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported compression format: %s (expected .zst, .zstd, .xz or .bz2)", e.Filename)
}

// LineReader is a forward-only, single-pass reader over the decoded lines of
// a compressed file. It is not restartable; callers must Close it on every
// exit path, including early termination.
type LineReader struct {
	scanner *bufio.Scanner
	closers []io.Closer
	err     error
}

// maxLineBytes bounds a single decoded line. Reddit comments max out around
// 40k characters; 8 MiB leaves generous headroom for pathological dumps.
const maxLineBytes = 8 * 1024 * 1024

// Open opens filename and returns a LineReader over its decompressed text.
// The file handle and the decompression stream stay open until Close.
func Open(filename string) (*LineReader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}

	r, closers, err := newDecoder(filename, f)
	if err != nil {
		f.Close()
		return nil, err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &LineReader{scanner: sc, closers: closers}, nil
}

// newDecoder selects the codec by suffix. Exactly one decoder is chosen; the
// returned closers release decoder resources before the file handle.
func newDecoder(filename string, f *os.File) (io.Reader, []io.Closer, error) {
	switch {
	case strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init zstd decoder for %s: %w", filename, err)
		}
		return dec, []io.Closer{closerFunc(func() error { dec.Close(); return nil }), f}, nil

	case strings.HasSuffix(filename, ".xz"):
		dec, err := xz.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init xz decoder for %s: %w", filename, err)
		}
		return dec, []io.Closer{f}, nil

	case strings.HasSuffix(filename, ".bz2"):
		return bzip2.NewReader(f), []io.Closer{f}, nil

	default:
		return nil, nil, &UnsupportedFormatError{Filename: filename}
	}
}

// Scan advances to the next line. It returns false at end of archive or on
// error; check Err afterwards.
func (lr *LineReader) Scan() bool {
	if lr.err != nil {
		return false
	}
	ok := lr.scanner.Scan()
	if !ok {
		lr.err = lr.scanner.Err()
	}
	return ok
}

// Text returns the current line without its trailing newline.
func (lr *LineReader) Text() string {
	return lr.scanner.Text()
}

// Err returns the first error encountered while streaming, if any.
func (lr *LineReader) Err() error {
	return lr.err
}

// Close releases the decoder and the underlying file handle. Safe to call
// more than once.
func (lr *LineReader) Close() error {
	var firstErr error
	for _, c := range lr.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	lr.closers = nil
	return firstErr
}

type closerFunc func() error

func (fn closerFunc) Close() error { return fn() }

// IsSupported reports whether filename carries one of the recognized
// compressed-dump extensions.
func IsSupported(filename string) bool {
	for _, ext := range []string{".zst", ".zstd", ".xz", ".bz2"} {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
