// Package probe defines the pluggable subtype matchers consulted while a PDF
// is scanned.
//
// A probe implements any subset of three hooks: [DictionaryMatcher],
// [CreatorToolMatcher] and [StreamTextMatcher]. A [Set] calls the hooks of
// its probes in declaration order and stops at the first definitive match.
package probe

import (
	"github.com/tsawler/pdfsniff/core"
	"github.com/tsawler/pdfsniff/format"
)

// Probe is a named subtype matcher. The name is used for logging only.
type Probe interface {
	Name() string
}

// DictionaryMatcher is implemented by probes that inspect every parsed
// object dictionary, whether or not a stream follows it.
type DictionaryMatcher interface {
	Probe
	MatchDictionary(obj *core.ObjectInfo) (format.Type, bool)
}

// CreatorToolMatcher is implemented by probes that inspect the CreatorTool
// value of embedded XMP metadata.
type CreatorToolMatcher interface {
	Probe
	MatchCreatorTool(text string) (format.Type, bool)
}

// StreamTextMatcher is implemented by probes that inspect decoded stream
// contents. Each byte of the stream is one character of text.
type StreamTextMatcher interface {
	Probe
	MatchStreamText(text string) (format.Type, bool)
}

// Match is a definitive classification and the probe that produced it.
type Match struct {
	Type  format.Type
	Probe string
}

// Set is an ordered list of probes.
type Set []Probe

// Default returns the built-in probes.
func Default() Set {
	return Set{Illustrator{}}
}

// MatchDictionary offers obj to every DictionaryMatcher in order.
func (s Set) MatchDictionary(obj *core.ObjectInfo) (Match, bool) {
	for _, p := range s {
		if m, ok := p.(DictionaryMatcher); ok {
			if t, hit := m.MatchDictionary(obj); hit {
				return Match{Type: t, Probe: p.Name()}, true
			}
		}
	}
	return Match{}, false
}

// MatchCreatorTool offers text to every CreatorToolMatcher in order.
func (s Set) MatchCreatorTool(text string) (Match, bool) {
	for _, p := range s {
		if m, ok := p.(CreatorToolMatcher); ok {
			if t, hit := m.MatchCreatorTool(text); hit {
				return Match{Type: t, Probe: p.Name()}, true
			}
		}
	}
	return Match{}, false
}

// MatchStreamText offers text to every StreamTextMatcher in order.
func (s Set) MatchStreamText(text string) (Match, bool) {
	for _, p := range s {
		if m, ok := p.(StreamTextMatcher); ok {
			if t, hit := m.MatchStreamText(text); hit {
				return Match{Type: t, Probe: p.Name()}, true
			}
		}
	}
	return Match{}, false
}

// WantsCreatorTool reports whether any probe inspects CreatorTool values.
func (s Set) WantsCreatorTool() bool {
	for _, p := range s {
		if _, ok := p.(CreatorToolMatcher); ok {
			return true
		}
	}
	return false
}

// WantsStreamText reports whether any probe inspects stream contents.
func (s Set) WantsStreamText() bool {
	for _, p := range s {
		if _, ok := p.(StreamTextMatcher); ok {
			return true
		}
	}
	return false
}
