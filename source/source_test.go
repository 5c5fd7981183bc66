package source

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

// sources returns one of each Source implementation over the same content.
func sources(data string) map[string]Source {
	return map[string]Source{
		"bytes":   NewBytes([]byte(data)),
		"reader":  NewReader(strings.NewReader(data)),
		"onebyte": NewReader(iotest.OneByteReader(strings.NewReader(data))),
	}
}

// TestPeekDoesNotAdvance tests that Peek leaves the position untouched
func TestPeekDoesNotAdvance(t *testing.T) {
	for name, src := range sources("%PDF-1.7\n") {
		t.Run(name, func(t *testing.T) {
			b, err := src.Peek(4)
			if err != nil {
				t.Fatalf("Peek failed: %v", err)
			}
			if string(b) != "%PDF" {
				t.Errorf("Peek = %q, want %%PDF", b)
			}
			if src.Position() != 0 {
				t.Errorf("Position after Peek = %d, want 0", src.Position())
			}
		})
	}
}

// TestPeekShort tests peeking past the end of input
func TestPeekShort(t *testing.T) {
	for name, src := range sources("abc") {
		t.Run(name, func(t *testing.T) {
			b, err := src.Peek(10)
			if err != io.EOF {
				t.Errorf("expected io.EOF, got %v", err)
			}
			if string(b) != "abc" {
				t.Errorf("Peek = %q, want abc", b)
			}
			if src.Position() != 0 {
				t.Errorf("Position = %d, want 0", src.Position())
			}
		})
	}
}

// TestNext tests consuming reads and position tracking
func TestNext(t *testing.T) {
	for name, src := range sources("hello world") {
		t.Run(name, func(t *testing.T) {
			b, err := src.Next(5)
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if string(b) != "hello" {
				t.Errorf("Next = %q, want hello", b)
			}
			if src.Position() != 5 {
				t.Errorf("Position = %d, want 5", src.Position())
			}

			b, err = src.Next(100)
			if err != io.EOF {
				t.Errorf("expected io.EOF on short read, got %v", err)
			}
			if string(b) != " world" {
				t.Errorf("Next = %q, want \" world\"", b)
			}
			if src.Position() != 11 {
				t.Errorf("Position = %d, want 11", src.Position())
			}

			b, err = src.Next(1)
			if err != io.EOF || len(b) != 0 {
				t.Errorf("Next at EOF = %q, %v", b, err)
			}
		})
	}
}

// TestNegativeCount tests rejection of negative counts
func TestNegativeCount(t *testing.T) {
	for name, src := range sources("data") {
		t.Run(name, func(t *testing.T) {
			if _, err := src.Peek(-1); !errors.Is(err, ErrNegativeCount) {
				t.Errorf("Peek(-1) error = %v", err)
			}
			if _, err := src.Next(-1); !errors.Is(err, ErrNegativeCount) {
				t.Errorf("Next(-1) error = %v", err)
			}
		})
	}
}

// TestReaderPeekClamped tests that oversized peeks are clamped without error
func TestReaderPeekClamped(t *testing.T) {
	data := bytes.Repeat([]byte{'x'}, MaxPeek*2)
	src := NewReader(bytes.NewReader(data))

	b, err := src.Peek(MaxPeek + 10)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if len(b) != MaxPeek {
		t.Errorf("Peek returned %d bytes, want %d", len(b), MaxPeek)
	}
}

// TestBytesLen tests the remaining byte count
func TestBytesLen(t *testing.T) {
	src := NewBytes([]byte("abcdef"))
	src.Next(2)
	if src.Len() != 4 {
		t.Errorf("Len = %d, want 4", src.Len())
	}
}
