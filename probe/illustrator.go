package probe

import (
	"strings"

	"github.com/tsawler/pdfsniff/core"
	"github.com/tsawler/pdfsniff/format"
)

// Illustrator recognises Adobe Illustrator documents saved as PDF.
type Illustrator struct{}

// Name returns "illustrator".
func (Illustrator) Name() string { return "illustrator" }

// MatchDictionary matches an /Illustrator key, or "Illustrator" in the
// Creator or Producer value, or "Adobe Illustrator" anywhere in the text.
func (Illustrator) MatchDictionary(obj *core.ObjectInfo) (format.Type, bool) {
	if obj.Dict.Has("Illustrator") || strings.Contains(obj.Text, "/Illustrator") {
		return format.Illustrator, true
	}
	for _, key := range []string{"Creator", "Producer"} {
		if v, ok := obj.Dict.Get(key); ok && strings.Contains(v, "Illustrator") {
			return format.Illustrator, true
		}
	}
	if strings.Contains(obj.Text, "Adobe Illustrator") {
		return format.Illustrator, true
	}
	return format.Type{}, false
}

// MatchCreatorTool matches "illustrator" in any letter case.
func (Illustrator) MatchCreatorTool(text string) (format.Type, bool) {
	if strings.Contains(strings.ToLower(text), "illustrator") {
		return format.Illustrator, true
	}
	return format.Type{}, false
}

// MatchStreamText matches "Adobe Illustrator".
func (Illustrator) MatchStreamText(text string) (format.Type, bool) {
	if strings.Contains(text, "Adobe Illustrator") {
		return format.Illustrator, true
	}
	return format.Type{}, false
}
