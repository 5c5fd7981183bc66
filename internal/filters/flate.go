package filters

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// ErrCorrupt is returned when data decodes neither as a zlib stream nor as
// raw deflate.
var ErrCorrupt = errors.New("filters: corrupt deflate data")

// FlateDecode decompresses Flate (zlib/deflate) compressed data.
// It first tries a zlib-wrapped stream and, if that fails, retries the same
// bytes as raw (headerless) deflate, which some producers write despite the
// PDF specification.
//
// At most limit bytes of output are produced; the rest is silently
// dropped. A limit <= 0 means no limit. Empty input decodes to empty output.
func FlateDecode(data []byte, limit int64) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	decompressed, zerr := zlibDecompress(data, limit)
	if zerr == nil {
		return decompressed, nil
	}

	decompressed, rerr := rawInflate(data, limit)
	if rerr == nil {
		return decompressed, nil
	}

	return nil, fmt.Errorf("%w (zlib: %v; raw deflate: %v)", ErrCorrupt, zerr, rerr)
}

// zlibDecompress decompresses zlib-compressed data.
func zlibDecompress(data []byte, limit int64) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer reader.Close()

	return drain(reader, limit)
}

// rawInflate decompresses deflate data without a zlib header.
func rawInflate(data []byte, limit int64) ([]byte, error) {
	reader := flate.NewReader(bytes.NewReader(data))
	defer reader.Close()

	return drain(reader, limit)
}

// drain copies r into memory, stopping after limit bytes when limit > 0.
func drain(r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return buf.Bytes(), nil
}
