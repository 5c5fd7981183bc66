package linereader

import "golang.org/x/text/encoding/charmap"

// Text decodes raw bytes as ISO 8859-1, mapping every byte to exactly one
// character. Probes use the result for substring tests on binary content.
func Text(b []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}
