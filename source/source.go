// Package source provides the byte source capability consumed by pdfsniff.
//
// A Source is read strictly forward. It supports bounded lookahead (Peek),
// consuming reads (Next) and reports the absolute number of bytes consumed
// (Position). Sources are owned by the caller and are not safe for
// concurrent use.
package source

import (
	"bufio"
	"errors"
	"io"
)

// ErrNegativeCount is returned when a negative byte count is requested.
var ErrNegativeCount = errors.New("source: negative count")

// Source is a forward-only byte source with lookahead.
type Source interface {
	// Peek returns at most n bytes without advancing the position. A short
	// result with io.EOF means the input ended. A short result with a nil
	// error means n exceeds the source's lookahead window. The returned
	// slice is only valid until the next call.
	Peek(n int) ([]byte, error)

	// Next consumes and returns at most n bytes. A short result is only
	// returned at end of input, together with io.EOF. The returned slice
	// may be retained by the caller.
	Next(n int) ([]byte, error)

	// Position returns the number of bytes consumed so far.
	Position() int64
}

// Bytes is a Source over an in-memory byte slice.
type Bytes struct {
	data []byte
	pos  int
}

// NewBytes creates a Source reading from data. The slice is not copied and
// must not be modified while the Source is in use.
func NewBytes(data []byte) *Bytes {
	return &Bytes{data: data}
}

// Peek returns up to n bytes from the current position.
func (s *Bytes) Peek(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	rest := s.data[s.pos:]
	if len(rest) < n {
		return rest, io.EOF
	}
	return rest[:n], nil
}

// Next consumes up to n bytes.
func (s *Bytes) Next(n int) ([]byte, error) {
	b, err := s.Peek(n)
	if err != nil && err != io.EOF {
		return nil, err
	}
	s.pos += len(b)
	return b, err
}

// Position returns the number of bytes consumed.
func (s *Bytes) Position() int64 {
	return int64(s.pos)
}

// Len returns the number of unconsumed bytes.
func (s *Bytes) Len() int {
	return len(s.data) - s.pos
}

// MaxPeek is the lookahead window of a Reader.
const MaxPeek = 64 << 10

// Reader is a Source backed by an io.Reader such as a file or a network
// stream. Lookahead is limited to MaxPeek bytes.
type Reader struct {
	br  *bufio.Reader
	pos int64
}

// NewReader creates a Source reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, MaxPeek)}
}

// Peek returns up to n bytes without consuming them. Requests larger than
// MaxPeek are clamped to MaxPeek.
func (s *Reader) Peek(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if n > MaxPeek {
		n = MaxPeek
	}
	b, err := s.br.Peek(n)
	if err == bufio.ErrBufferFull {
		err = nil
	}
	return b, err
}

// Next consumes up to n bytes.
func (s *Reader) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(s.br, buf)
	s.pos += int64(read)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return buf[:read], err
}

// Position returns the number of bytes consumed.
func (s *Reader) Position() int64 {
	return s.pos
}
