package filters

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// zlibCompress compresses data for testing
func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// rawDeflate compresses data without a zlib header
func rawDeflate(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// TestFlateDecodeZlib tests basic zlib decompression
func TestFlateDecodeZlib(t *testing.T) {
	original := []byte("Hello, World! This is test data for FlateDecode.")

	decoded, err := FlateDecode(zlibCompress(original), 0)
	if err != nil {
		t.Fatalf("FlateDecode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match original\ngot:  %s\nwant: %s", decoded, original)
	}
}

// TestFlateDecodeRawFallback tests the retry as headerless deflate
func TestFlateDecodeRawFallback(t *testing.T) {
	original := []byte("<x:xmpmeta xmlns:x='adobe:ns:meta/'></x:xmpmeta>")

	decoded, err := FlateDecode(rawDeflate(original), 0)
	if err != nil {
		t.Fatalf("FlateDecode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match original\ngot:  %s\nwant: %s", decoded, original)
	}
}

// TestFlateDecodeCorrupt tests that failure of both attempts is reported
func TestFlateDecodeCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("this is definitely not deflate data")},
		{"truncated zlib", zlibCompress(bytes.Repeat([]byte("abc"), 500))[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FlateDecode(tt.data, 0)
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

// TestFlateDecodeEmpty tests that empty input is not an error
func TestFlateDecodeEmpty(t *testing.T) {
	decoded, err := FlateDecode(nil, 0)
	if err != nil {
		t.Fatalf("FlateDecode failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(decoded))
	}
}

// TestFlateDecodeLimit tests that output is capped at the limit
func TestFlateDecodeLimit(t *testing.T) {
	original := bytes.Repeat([]byte("0123456789"), 1000)

	decoded, err := FlateDecode(zlibCompress(original), 25)
	if err != nil {
		t.Fatalf("FlateDecode failed: %v", err)
	}
	if !bytes.Equal(decoded, original[:25]) {
		t.Errorf("decoded = %q, want first 25 bytes", decoded)
	}

	decoded, err = FlateDecode(rawDeflate(original), 25)
	if err != nil {
		t.Fatalf("FlateDecode (raw) failed: %v", err)
	}
	if len(decoded) != 25 {
		t.Errorf("raw decoded length = %d, want 25", len(decoded))
	}
}
