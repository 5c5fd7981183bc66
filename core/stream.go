package core

import (
	"fmt"
	"strings"

	"github.com/tsawler/pdfsniff/internal/filters"
)

// Filter names recognised in a stream dictionary's Filter entry.
const (
	FilterFlate    = "FlateDecode"
	FilterASCIIHex = "ASCIIHexDecode"
	FilterASCII85  = "ASCII85Decode"
	FilterLZW      = "LZWDecode"
)

// filterNames maps full and abbreviated filter names to their canonical
// form.
var filterNames = map[string]string{
	"FlateDecode":    FilterFlate,
	"Fl":             FilterFlate,
	"ASCIIHexDecode": FilterASCIIHex,
	"AHx":            FilterASCIIHex,
	"ASCII85Decode":  FilterASCII85,
	"A85":            FilterASCII85,
	"LZWDecode":      FilterLZW,
	"LZW":            FilterLZW,
}

// Filters returns the recognised filters declared by the dictionary, in
// order, and whether a Filter entry is present at all. Names outside the
// known vocabulary are left out.
func (d Dict) Filters() ([]string, bool) {
	value, ok := d.Get("Filter")
	if !ok {
		return nil, d.Has("Filter")
	}

	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == '/' || r == '[' || r == ']' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	var chain []string
	for _, f := range fields {
		if name, known := filterNames[f]; known {
			chain = append(chain, name)
		}
	}
	return chain, true
}

// DecodeStream decodes stream data according to the dictionary's Filter
// entry. Without a Filter entry the data is returned unchanged. When every
// recognised filter is FlateDecode the data is inflated once per filter,
// producing at most limit bytes (limit <= 0 means unlimited). Any other
// chain, including one with no recognised filter, is passed through
// undecoded.
func DecodeStream(d Dict, data []byte, limit int64) ([]byte, error) {
	chain, declared := d.Filters()
	if !declared || len(chain) == 0 {
		return data, nil
	}
	for _, name := range chain {
		if name != FilterFlate {
			return data, nil
		}
	}

	for i := range chain {
		var err error
		data, err = filters.FlateDecode(data, limit)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s) failed: %w", i, FilterFlate, err)
		}
	}
	return data, nil
}
