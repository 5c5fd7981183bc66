package format

import "bytes"

// Signature is the PDF magic byte sequence.
var Signature = []byte("%PDF-")

// SignatureWindow is the number of leading bytes searched for the signature.
// Real files occasionally carry a short preamble before "%PDF-".
const SignatureWindow = 1024

// FindSignature searches window for the PDF signature and returns the offset
// of the first match. Only the first SignatureWindow bytes are considered.
func FindSignature(window []byte) (int, bool) {
	if len(window) < len(Signature) {
		return 0, false
	}
	if len(window) > SignatureWindow {
		window = window[:SignatureWindow]
	}
	idx := bytes.Index(window, Signature)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}
