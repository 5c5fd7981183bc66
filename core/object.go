package core

import (
	"regexp"
	"strconv"
	"strings"
)

// ObjectInfo is the dictionary of one indirect object together with the raw
// dictionary text it was parsed from.
type ObjectInfo struct {
	Number     int
	Generation int
	Dict       Dict
	Text       string
}

var objectHeader = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+obj\b`)

// ParseObjectHeader recognises an indirect object header "N G obj" at the
// start of line. It returns the object and generation numbers and whatever
// follows the obj keyword on the same line.
func ParseObjectHeader(line string) (num, gen int, rest string, ok bool) {
	m := objectHeader.FindStringSubmatchIndex(line)
	if m == nil {
		return 0, 0, "", false
	}
	num, err := strconv.Atoi(line[m[2]:m[3]])
	if err != nil {
		return 0, 0, "", false
	}
	gen, err = strconv.Atoi(line[m[4]:m[5]])
	if err != nil {
		return 0, 0, "", false
	}
	return num, gen, line[m[1]:], true
}

// IsEndObject reports whether line is the endobj keyword.
func IsEndObject(line string) bool {
	return strings.TrimSpace(line) == "endobj"
}

// DictSpan locates the closing ">>" of a dictionary whose text arrives in
// pieces, typically one line at a time. Nested dictionaries, hex strings
// and literal strings are tracked so that delimiters inside them do not
// end the span early.
type DictSpan struct {
	depth  int
	parens int
	hex    bool
	escape bool
}

// Feed scans the next piece of dictionary text. The first piece must start
// with "<<". Feed returns the index in text just past the closing ">>" of
// the outermost dictionary, or -1 if it has not been closed yet.
func (s *DictSpan) Feed(text string) int {
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case s.parens > 0:
			switch {
			case s.escape:
				s.escape = false
			case c == '\\':
				s.escape = true
			case c == '(':
				s.parens++
			case c == ')':
				s.parens--
			}
		case s.hex:
			if c == '>' {
				s.hex = false
			}
		case c == '(':
			s.parens = 1
		case c == '<':
			if i+1 < len(text) && text[i+1] == '<' {
				s.depth++
				i++
			} else {
				s.hex = true
			}
		case c == '>':
			if i+1 < len(text) && text[i+1] == '>' {
				s.depth--
				i++
				if s.depth <= 0 {
					return i + 1
				}
			}
		}
	}
	return -1
}
