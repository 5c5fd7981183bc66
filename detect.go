package pdfsniff

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/pdfsniff/format"
	"github.com/tsawler/pdfsniff/internal/linereader"
	"github.com/tsawler/pdfsniff/internal/scanner"
	"github.com/tsawler/pdfsniff/source"
)

// Report describes the outcome of a detection in more detail than Detect
// returns.
type Report struct {
	// Type is the classification, zero when the input is not a PDF.
	Type format.Type
	// IsPDF reports whether the signature was found.
	IsPDF bool
	// Probe names the probe that decided the subtype, empty for a
	// generic PDF.
	Probe string
	// SignatureOffset is the offset of "%PDF-" from the starting position.
	SignatureOffset int
	// Lines, Objects and Streams count what the body scan examined.
	Lines   int
	Objects int
	Streams int
	// Exhausted is set when the line budget ended the scan.
	Exhausted bool
}

// Detect classifies the PDF read from src. It returns false, and leaves
// src exactly where it was, when the first 1024 bytes hold no "%PDF-"
// signature. A recognised document that no probe claims is format.PDF.
//
// Errors are returned only for input that is a PDF but cannot be scanned;
// they are *DetectError values wrapping ErrTruncated, ErrStreamDecode,
// ErrMetadata or a source error.
func Detect(src source.Source, opts ...Option) (format.Type, bool, error) {
	r, err := Analyze(src, opts...)
	if err != nil {
		return format.Type{}, false, err
	}
	return r.Type, r.IsPDF, nil
}

// DetectBytes classifies an in-memory document.
func DetectBytes(data []byte, opts ...Option) (format.Type, bool, error) {
	return Detect(source.NewBytes(data), opts...)
}

// DetectReader classifies the document read from r. Bytes buffered ahead
// of the scan are consumed from r even when the result is false; use
// Detect with a source.Reader to keep them.
func DetectReader(r io.Reader, opts ...Option) (format.Type, bool, error) {
	return Detect(source.NewReader(r), opts...)
}

// DetectFile classifies the named file.
func DetectFile(name string, opts ...Option) (format.Type, bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return format.Type{}, false, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return DetectReader(f, opts...)
}

// Analyze is Detect returning a Report.
func Analyze(src source.Source, opts ...Option) (Report, error) {
	c := newConfig(opts)
	log := c.logger

	window, err := src.Peek(format.SignatureWindow)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Debug("peek failed", "error", err)
		return Report{}, nil
	}
	offset, ok := format.FindSignature(window)
	if !ok {
		log.Debug("signature not found", "window", len(window))
		return Report{}, nil
	}
	log.Debug("signature found", "offset", offset)

	if offset > 0 {
		skipped, err := src.Next(offset)
		if len(skipped) < offset {
			if err == nil || errors.Is(err, io.EOF) {
				err = ErrTruncated
			} else {
				err = fmt.Errorf("%w: %w", ErrTruncated, err)
			}
			return Report{}, &DetectError{Op: "skip preamble", Offset: src.Position(), Err: err}
		}
	}

	lines := linereader.New(src)
	res, err := scanner.New(lines, scanner.Config{
		Probes:           c.probes,
		MaxLines:         c.maxScanLines,
		MaxStreamLength:  c.maxStreamLength,
		MaxDecodedLength: c.maxDecodedLength,
		Logger:           log,
	}).Run()
	if err != nil {
		return Report{}, &DetectError{Op: "scan", Offset: lines.Position(), Err: err}
	}

	report := Report{
		Type:            format.PDF,
		IsPDF:           true,
		SignatureOffset: offset,
		Lines:           res.Lines,
		Objects:         res.Objects,
		Streams:         res.Streams,
		Exhausted:       res.Exhausted,
	}
	if res.Matched {
		report.Type = res.Match.Type
		report.Probe = res.Match.Probe
	}
	log.Debug("detected", "extension", report.Type.Extension, "mime", report.Type.MIME,
		"probe", report.Probe, "lines", report.Lines)
	return report, nil
}
