// Package format defines the classification values produced by pdfsniff and
// the magic signature used to recognise PDF content.
package format

import (
	"path/filepath"
	"strings"
)

// Type is a detected file type: the usual file extension (without the dot)
// and its MIME type. The zero Type means "not recognised".
type Type struct {
	Extension string
	MIME      string
}

var (
	// PDF is a generic Portable Document Format file.
	PDF = Type{Extension: "pdf", MIME: "application/pdf"}
	// Illustrator is an Adobe Illustrator document saved in PDF form.
	Illustrator = Type{Extension: "ai", MIME: "application/illustrator"}
)

// known lists every Type the module can produce, used for extension lookups.
var known = []Type{PDF, Illustrator}

// IsZero reports whether t is the "not recognised" value.
func (t Type) IsZero() bool {
	return t.Extension == "" && t.MIME == ""
}

// String returns the MIME type, or "unknown" for the zero Type.
func (t Type) String() string {
	if t.IsZero() {
		return "unknown"
	}
	return t.MIME
}

// FromFilename determines the expected type from a filename extension.
// The match is case-insensitive.
func FromFilename(filename string) (Type, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return Type{}, false
	}
	for _, t := range known {
		if t.Extension == ext {
			return t, true
		}
	}
	return Type{}, false
}
