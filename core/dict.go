package core

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Value is a dictionary entry. Bare keys such as /Illustrator carry no text.
type Value struct {
	Text string
	Bare bool
}

// Dict maps dictionary keys (without the leading slash) to values.
type Dict map[string]Value

// Has reports whether key is present, with or without a value.
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Get returns the text value of key. It returns false for missing and bare
// keys.
func (d Dict) Get(key string) (string, bool) {
	v, ok := d[key]
	if !ok || v.Bare {
		return "", false
	}
	return v.Text, true
}

// Int returns the value of key as a non-negative integer literal.
func (d Dict) Int(key string) (int64, bool) {
	s, ok := d.Get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

var referencePattern = regexp.MustCompile(`^\d+\s+\d+\s+R$`)

// IsReference reports whether the value of key is an indirect reference
// such as "12 0 R".
func (d Dict) IsReference(key string) bool {
	s, ok := d.Get(key)
	return ok && referencePattern.MatchString(s)
}

// Keys returns the keys in sorted order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// set records a key with a text value, replacing any earlier entry.
func (d Dict) set(key, text string) {
	d[key] = Value{Text: text}
}

// setBare records a bare key unless the key already has an entry.
func (d Dict) setBare(key string) {
	if _, ok := d[key]; !ok {
		d[key] = Value{Bare: true}
	}
}

// ParseDict extracts key/value pairs from raw dictionary text. See the
// package documentation for the accepted syntax and its limitations.
func ParseDict(text string) Dict {
	d := make(Dict)
	for i := 0; i < len(text); {
		if text[i] != '/' {
			i++
			continue
		}
		key, next := readName(text, i+1)
		if key == "" {
			i = next
			continue
		}
		i = d.parseValue(key, text, next)
	}
	return d
}

// parseValue records key using the text starting at i and returns the
// position after the consumed value.
func (d Dict) parseValue(key, text string, i int) int {
	i = skipSpace(text, i)
	if i >= len(text) {
		d.setBare(key)
		return i
	}

	switch c := text[i]; {
	case c == '/':
		name, next := readName(text, i+1)
		if name == "" {
			d.setBare(key)
			return i + 1
		}
		d.set(key, name)
		d.setBare(name)
		return next

	case c == '[':
		end := strings.IndexByte(text[i:], ']')
		if end < 0 {
			end = len(text)
		} else {
			end += i + 1
		}
		array := text[i:end]
		d.set(key, strings.TrimSpace(array))
		for _, name := range names(array) {
			d.setBare(name)
		}
		return end

	case c == '<' && i+1 < len(text) && text[i+1] == '<':
		// Nested dictionary: its keys are scanned as part of this one.
		d.setBare(key)
		return i + 2

	case c == '>':
		d.setBare(key)
		return i
	}

	end := strings.IndexAny(text[i:], "/>")
	if end < 0 {
		end = len(text)
	} else {
		end += i
	}
	if value := strings.TrimSpace(text[i:end]); value != "" {
		d.set(key, value)
	} else {
		d.setBare(key)
	}
	return end
}

// names returns every /Name token in text.
func names(text string) []string {
	var out []string
	for i := 0; i < len(text); i++ {
		if text[i] != '/' {
			continue
		}
		name, next := readName(text, i+1)
		if name != "" {
			out = append(out, name)
		}
		i = next - 1
	}
	return out
}

// readName reads name characters starting at i and returns the name and
// the index after it.
func readName(text string, i int) (string, int) {
	start := i
	for i < len(text) && isRegular(text[i]) {
		i++
	}
	return text[start:i], i
}

// skipSpace returns the index of the first non-whitespace byte at or after i.
func skipSpace(text string, i int) int {
	for i < len(text) && isWhitespace(text[i]) {
		i++
	}
	return i
}

// isWhitespace reports whether b is a PDF whitespace character.
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

// isDelimiter reports whether b is a PDF delimiter character.
func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// isRegular reports whether b may appear in a name or keyword.
func isRegular(b byte) bool {
	return !isWhitespace(b) && !isDelimiter(b)
}
