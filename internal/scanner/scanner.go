// Package scanner walks the body of a PDF line by line, extracting object
// dictionaries and stream payloads and handing them to a probe.Set until a
// probe claims the document or the input or line budget runs out.
package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tsawler/pdfsniff/core"
	"github.com/tsawler/pdfsniff/internal/linereader"
	"github.com/tsawler/pdfsniff/internal/xmp"
	"github.com/tsawler/pdfsniff/probe"
)

// DefaultMaxLines is the line budget used when Config.MaxLines is not
// positive.
const DefaultMaxLines = 50000

// maxDictLength bounds the text accumulated for one dictionary. A "<<"
// that never closes is abandoned once it is reached.
const maxDictLength = 4 << 20

var (
	// ErrStreamDecode wraps failures decoding a stream payload.
	ErrStreamDecode = errors.New("stream decode failed")

	// ErrMetadata wraps XML syntax errors in an XMP metadata stream.
	ErrMetadata = errors.New("malformed metadata")
)

// State is the position of the scanner relative to indirect objects.
type State int

const (
	// StateRoot is outside any object.
	StateRoot State = iota
	// StateInObject is after an "N G obj" header and before its endobj.
	StateInObject
)

func (s State) String() string {
	if s == StateInObject {
		return "in-object"
	}
	return "root"
}

// Config controls a scan.
type Config struct {
	// Probes are consulted in order at every checkpoint.
	Probes probe.Set
	// MaxLines limits the number of lines read. Zero or negative selects
	// DefaultMaxLines.
	MaxLines int
	// MaxStreamLength skips streams whose Length exceeds it. Zero or
	// negative means no limit.
	MaxStreamLength int64
	// MaxDecodedLength truncates decoded stream output. Zero or negative
	// means no limit.
	MaxDecodedLength int64
	// Logger receives debug diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Result summarises a finished scan.
type Result struct {
	Match   probe.Match
	Matched bool
	// Lines is the number of distinct lines read.
	Lines int
	// Objects counts object headers seen.
	Objects int
	// Streams counts stream payloads read and decoded.
	Streams int
	// Exhausted is set when the line budget stopped the scan.
	Exhausted bool
}

// Scanner is the object-level state machine. A Scanner is used for a
// single scan and is not safe for concurrent use.
type Scanner struct {
	r      *linereader.Reader
	cfg    Config
	log    *slog.Logger
	state  State
	num    int
	gen    int
	done   bool
	result Result
}

// New returns a Scanner reading from r.
func New(r *linereader.Reader, cfg Config) *Scanner {
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = DefaultMaxLines
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{r: r, cfg: cfg, log: logger}
}

// State returns the current state.
func (s *Scanner) State() State { return s.state }

// Run scans until a probe matches, the input ends or the line budget is
// spent. Only decode and metadata failures, and errors from the underlying
// source, are returned as errors; everything else ends the scan without a
// match.
func (s *Scanner) Run() (Result, error) {
	for !s.done && s.result.Lines < s.cfg.MaxLines {
		line, err := s.next()
		if err == io.EOF {
			s.log.Debug("end of input", "lines", s.result.Lines)
			return s.result, nil
		}
		if err != nil {
			return s.result, err
		}

		m, ok, err := s.step(line)
		if err != nil {
			return s.result, err
		}
		if ok {
			s.log.Debug("probe matched", "probe", m.Probe, "type", m.Type.Extension,
				"object", s.num, "generation", s.gen)
			s.result.Match = m
			s.result.Matched = true
			return s.result, nil
		}
	}
	if !s.done {
		s.result.Exhausted = true
		s.log.Debug("line budget exhausted", "max_lines", s.cfg.MaxLines)
	}
	return s.result, nil
}

func (s *Scanner) next() (string, error) {
	line, err := s.r.ReadLine()
	if err != nil {
		return "", err
	}
	s.result.Lines++
	return line, nil
}

func (s *Scanner) unread() error {
	if err := s.r.UnreadLine(); err != nil {
		return err
	}
	s.result.Lines--
	return nil
}

func (s *Scanner) budgetLeft() bool {
	return s.result.Lines < s.cfg.MaxLines
}

// step processes one line according to the current state.
func (s *Scanner) step(line string) (probe.Match, bool, error) {
	if num, gen, rest, ok := core.ParseObjectHeader(line); ok {
		if s.state == StateInObject {
			s.log.Debug("object header before endobj", "object", s.num, "next", num)
		}
		s.state = StateInObject
		s.num, s.gen = num, gen
		s.result.Objects++
		return s.object(rest, len(line)-len(rest))
	}
	if s.state == StateRoot {
		return probe.Match{}, false, nil
	}
	return s.object(line, 0)
}

// object handles text inside an object. base is the offset of text within
// the line last returned by the reader.
func (s *Scanner) object(text string, base int) (probe.Match, bool, error) {
	if core.IsEndObject(text) {
		s.state = StateRoot
		return probe.Match{}, false, nil
	}
	start := strings.Index(text, "<<")
	if start < 0 {
		return probe.Match{}, false, nil
	}

	dict, after, afterBase, ok, err := s.readDict(text[start:], base+start)
	if err != nil || !ok {
		return probe.Match{}, false, err
	}

	obj := &core.ObjectInfo{
		Number:     s.num,
		Generation: s.gen,
		Dict:       core.ParseDict(dict),
		Text:       dict,
	}
	s.log.Debug("dictionary", "object", obj.Number, "generation", obj.Generation,
		"keys", obj.Dict.Keys())

	if m, ok := s.cfg.Probes.MatchDictionary(obj); ok {
		return m, true, nil
	}

	trimmed := strings.TrimLeft(after, " \t\r\f\x00")
	switch {
	case streamKeyword(trimmed) > 0:
		return s.stream(obj, afterBase+len(after)-len(trimmed)+streamKeyword(trimmed))
	case core.IsEndObject(after):
		s.state = StateRoot
		return probe.Match{}, false, nil
	case trimmed != "":
		return probe.Match{}, false, nil
	}

	// The stream keyword may start the following line.
	if !s.budgetLeft() {
		return probe.Match{}, false, nil
	}
	line, err := s.next()
	if err == io.EOF {
		return probe.Match{}, false, nil
	}
	if err != nil {
		return probe.Match{}, false, err
	}
	trimmed = strings.TrimLeft(line, " \t\r\f\x00")
	if n := streamKeyword(trimmed); n > 0 {
		return s.stream(obj, len(line)-len(trimmed)+n)
	}
	return probe.Match{}, false, s.unread()
}

// readDict accumulates dictionary text starting at text, which begins with
// "<<", reading further lines until the outer dictionary closes. It returns
// the dictionary text, the remainder of the closing line and that
// remainder's offset within the line.
func (s *Scanner) readDict(text string, base int) (dict, after string, afterBase int, ok bool, err error) {
	var span core.DictSpan
	var b strings.Builder
	for {
		if end := span.Feed(text); end >= 0 {
			b.WriteString(text[:end])
			return b.String(), text[end:], base + end, true, nil
		}
		b.WriteString(text)
		b.WriteByte('\n')
		if b.Len() > maxDictLength {
			s.log.Debug("dictionary abandoned", "object", s.num, "length", b.Len())
			return "", "", 0, false, nil
		}
		if !s.budgetLeft() {
			return "", "", 0, false, nil
		}

		text, err = s.next()
		if err == io.EOF {
			return "", "", 0, false, nil
		}
		if err != nil {
			return "", "", 0, false, err
		}
		base = 0
	}
}

// stream reads, decodes and probes the payload of obj. keep is the offset
// just past the stream keyword in the line last returned by the reader.
func (s *Scanner) stream(obj *core.ObjectInfo, keep int) (probe.Match, bool, error) {
	if err := s.r.UnreadTail(keep); err != nil {
		return probe.Match{}, false, err
	}
	if _, err := s.r.ConsumeStreamEOL(); err != nil {
		return probe.Match{}, false, err
	}

	length, ok := obj.Dict.Int("Length")
	if !ok {
		s.log.Debug("stream skipped", "object", obj.Number, "reason", "missing or indirect Length")
		return probe.Match{}, false, nil
	}
	if s.cfg.MaxStreamLength > 0 && length > s.cfg.MaxStreamLength {
		s.log.Debug("stream skipped", "object", obj.Number, "reason", "too long", "length", length)
		if err := s.r.Discard(int(length)); err != nil {
			return probe.Match{}, false, s.insufficient(err)
		}
		return probe.Match{}, false, nil
	}

	data, err := s.r.ReadBytes(int(length))
	if err != nil {
		return probe.Match{}, false, s.insufficient(err)
	}
	s.result.Streams++

	decoded, err := core.DecodeStream(obj.Dict, data, s.cfg.MaxDecodedLength)
	if err != nil {
		return probe.Match{}, false, fmt.Errorf("object %d %d: %w: %w", obj.Number, obj.Generation, ErrStreamDecode, err)
	}
	s.log.Debug("stream", "object", obj.Number, "length", length, "decoded", len(decoded))

	if s.cfg.Probes.WantsStreamText() {
		if m, ok := s.cfg.Probes.MatchStreamText(linereader.Text(decoded)); ok {
			return m, true, nil
		}
	}

	typ, _ := obj.Dict.Get("Type")
	subtype, _ := obj.Dict.Get("Subtype")
	if !xmp.IsMetadata(typ, subtype, obj.Dict.Has("XML")) || !s.cfg.Probes.WantsCreatorTool() {
		return probe.Match{}, false, nil
	}

	var m probe.Match
	stopped, err := xmp.Scan(bytes.NewReader(decoded), func(tool string) bool {
		s.log.Debug("creator tool", "object", obj.Number, "value", tool)
		var hit bool
		m, hit = s.cfg.Probes.MatchCreatorTool(tool)
		return hit
	})
	if err != nil {
		return probe.Match{}, false, fmt.Errorf("object %d %d: %w: %w", obj.Number, obj.Generation, ErrMetadata, err)
	}
	return m, stopped, nil
}

// insufficient ends the scan quietly when the input runs out inside a
// stream payload.
func (s *Scanner) insufficient(err error) error {
	if errors.Is(err, linereader.ErrInsufficientData) {
		s.log.Debug("input ended inside stream", "object", s.num)
		s.done = true
		return nil
	}
	return err
}

// streamKeyword returns the length of a leading stream keyword and any
// spaces after it, or 0 if text does not start with the keyword followed
// by an end of line.
func streamKeyword(text string) int {
	if !strings.HasPrefix(text, "stream") {
		return 0
	}
	n := len("stream")
	for n < len(text) && (text[n] == ' ' || text[n] == '\t') {
		n++
	}
	if n < len(text) && text[n] != '\r' && text[n] != '\n' {
		return 0
	}
	return n
}
