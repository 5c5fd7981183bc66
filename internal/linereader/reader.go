// Package linereader provides line-oriented and fixed-length reads over a
// source.Source with exact end-of-input semantics.
//
// Lines are returned as raw byte strings: every byte is one character and
// nothing is decoded. The reader can un-read the most recently returned
// line (or a tail of it) exactly once, which is how callers peek one line
// ahead without losing it.
package linereader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/pdfsniff/source"
)

const (
	// fillSize is the minimum number of bytes requested per fill.
	fillSize = 4096

	// discardChunk bounds the allocation used when skipping bytes.
	discardChunk = 64 << 10

	// MaxLineLength is the longest line returned in one piece. Longer runs
	// without a line feed are split so binary data cannot grow the buffer
	// without bound.
	MaxLineLength = 1 << 20
)

var (
	// ErrInsufficientData is returned when the source ends before the
	// requested number of bytes could be read.
	ErrInsufficientData = errors.New("linereader: insufficient data")

	// ErrNoUnread is returned when there is no line available to un-read.
	ErrNoUnread = errors.New("linereader: no line to unread")
)

// Reader is a buffered line and byte reader.
type Reader struct {
	src  source.Source
	buf  []byte
	off  int // next unconsumed byte in buf
	last int // start of the last line returned by ReadLine, or -1
	eof  bool
}

// New creates a Reader consuming src. The Reader takes over reading from
// src; the caller must not read from it directly afterwards.
func New(src source.Source) *Reader {
	return &Reader{src: src, last: -1}
}

// Position returns the logical offset of the next unconsumed byte: the
// source position minus the bytes buffered but not yet consumed.
func (r *Reader) Position() int64 {
	return r.src.Position() - int64(r.Buffered())
}

// Buffered returns the number of bytes held in the buffer and not yet
// consumed.
func (r *Reader) Buffered() int {
	return len(r.buf) - r.off
}

// ReadLine returns the next line without its terminator. Both "\n" and
// "\r\n" terminate a line. Unterminated trailing bytes are returned once as
// a final line; after that ReadLine returns io.EOF.
func (r *Reader) ReadLine() (string, error) {
	r.last = -1
	scanned := 0
	for {
		if i := bytes.IndexByte(r.buf[r.off+scanned:], '\n'); i >= 0 {
			end := r.off + scanned + i
			return r.takeLine(end, end+1), nil
		}
		scanned = r.Buffered()
		if scanned >= MaxLineLength {
			end := r.off + MaxLineLength
			return r.takeLine(end, end), nil
		}
		n, err := r.fill(fillSize)
		if err != nil {
			return "", err
		}
		if n == 0 {
			if r.Buffered() > 0 {
				end := len(r.buf)
				return r.takeLine(end, end), nil
			}
			return "", io.EOF
		}
	}
}

// takeLine consumes buf[off:next] and returns buf[off:end] with a trailing
// carriage return removed when the line was terminated by a line feed.
func (r *Reader) takeLine(end, next int) string {
	start := r.off
	if next > end && end > start && r.buf[end-1] == '\r' {
		end--
	}
	r.last = start
	r.off = next
	return string(r.buf[start:end])
}

// UnreadLine pushes the last line returned by ReadLine back, terminator
// included, so the next ReadLine returns it again. Only one line can be
// un-read, and only before any other read.
func (r *Reader) UnreadLine() error {
	return r.UnreadTail(0)
}

// UnreadTail pushes back everything of the last line returned by ReadLine
// after its first keep bytes, terminator included. UnreadTail(0) is
// UnreadLine.
func (r *Reader) UnreadTail(keep int) error {
	if r.last < 0 {
		return ErrNoUnread
	}
	if keep < 0 || r.last+keep > r.off {
		return fmt.Errorf("linereader: unread offset %d out of range", keep)
	}
	r.off = r.last + keep
	r.last = -1
	return nil
}

// ReadBytes returns exactly n bytes, or ErrInsufficientData if the source
// is exhausted first. On ErrInsufficientData nothing is consumed.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	r.last = -1
	if n < 0 {
		return nil, fmt.Errorf("linereader: negative length %d", n)
	}
	if err := r.ensure(n); err != nil {
		return nil, err
	}
	if r.Buffered() < n {
		return nil, ErrInsufficientData
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

// Discard skips exactly n bytes without retaining them. If the source ends
// first, everything up to the end is consumed and ErrInsufficientData is
// returned.
func (r *Reader) Discard(n int) error {
	r.last = -1
	if n < 0 {
		return fmt.Errorf("linereader: negative length %d", n)
	}
	buffered := r.Buffered()
	if buffered >= n {
		r.off += n
		return nil
	}
	r.off = len(r.buf)
	n -= buffered
	for n > 0 {
		got, err := r.src.Next(min(n, discardChunk))
		n -= len(got)
		if err == io.EOF {
			r.eof = true
			if n > 0 {
				return ErrInsufficientData
			}
			break
		}
		if err != nil {
			return fmt.Errorf("linereader: read: %w", err)
		}
	}
	return nil
}

// ConsumeStreamEOL consumes exactly one end-of-line sequence ("\r\n", "\r"
// or "\n") at the current position and reports whether one was present.
// No other bytes are skipped.
func (r *Reader) ConsumeStreamEOL() (bool, error) {
	r.last = -1
	if err := r.ensure(2); err != nil {
		return false, err
	}
	avail := r.buf[r.off:]
	switch {
	case len(avail) >= 2 && avail[0] == '\r' && avail[1] == '\n':
		r.off += 2
	case len(avail) >= 1 && (avail[0] == '\r' || avail[0] == '\n'):
		r.off++
	default:
		return false, nil
	}
	return true, nil
}

// ensure fills the buffer until at least n bytes are buffered or the
// source is exhausted.
func (r *Reader) ensure(n int) error {
	for r.Buffered() < n {
		got, err := r.fill(n - r.Buffered())
		if err != nil {
			return err
		}
		if got == 0 {
			return nil
		}
	}
	return nil
}

// fill appends more bytes from the source to the buffer and returns how
// many were added. It peeks first and then reads exactly the peeked count,
// so a failing read never loses bytes that were already seen. End of input
// yields zero bytes and no error.
func (r *Reader) fill(want int) (int, error) {
	if r.eof {
		return 0, nil
	}
	if r.off > 0 {
		n := copy(r.buf, r.buf[r.off:])
		r.buf = r.buf[:n]
		r.off = 0
	}

	want = min(max(want, fillSize), source.MaxPeek)
	peeked, err := r.src.Peek(want)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("linereader: peek: %w", err)
	}
	if len(peeked) == 0 {
		r.eof = true
		return 0, nil
	}

	got, err := r.src.Next(len(peeked))
	r.buf = append(r.buf, got...)
	if err != nil && err != io.EOF {
		return len(got), fmt.Errorf("linereader: read: %w", err)
	}
	return len(got), nil
}
