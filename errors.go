package pdfsniff

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdfsniff/internal/scanner"
)

// Sentinel errors for fatal detection failures. Input that is not a PDF is
// not an error.
var (
	// ErrTruncated reports that the input ended while skipping the bytes
	// in front of the PDF signature.
	ErrTruncated = errors.New("pdfsniff: input truncated before signature")

	// ErrStreamDecode reports a stream that failed both zlib and raw
	// deflate decoding.
	ErrStreamDecode = scanner.ErrStreamDecode

	// ErrMetadata reports an XMP metadata stream with malformed XML.
	ErrMetadata = scanner.ErrMetadata
)

// DetectError represents a fatal failure during detection. It wraps the
// underlying error with the operation that failed and the input offset
// reached at that point.
type DetectError struct {
	Op     string // operation name, e.g. "skip preamble", "scan"
	Offset int64  // bytes consumed from the source
	Err    error  // underlying error
}

func (e *DetectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdfsniff: %s at offset %d: %v", e.Op, e.Offset, e.Err)
	}
	return fmt.Sprintf("pdfsniff: %s at offset %d: unknown error", e.Op, e.Offset)
}

func (e *DetectError) Unwrap() error {
	return e.Err
}
