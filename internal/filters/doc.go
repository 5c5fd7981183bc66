// Package filters provides PDF stream decompression filters.
//
// Only the Flate family is implemented:
//
//	decoded, err := filters.FlateDecode(data, limit)
//
// FlateDecode accepts both zlib-wrapped streams (the form the PDF
// specification requires) and raw deflate streams. The limit argument caps
// the decompressed size so that a small, highly compressed stream cannot
// exhaust memory.
package filters
