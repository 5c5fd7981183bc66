// Package core provides the low-level PDF primitives used while sniffing:
// object header recognition, a permissive dictionary parser and stream
// filter decoding.
//
// # Dictionaries
//
// [ParseDict] extracts "/Key Value" pairs from raw dictionary text. It is a
// restricted pattern scan, not a PDF object grammar. Every /identifier is
// recorded as a key. A key followed by plain text takes that text, trimmed,
// up to the next "/" or ">" as its value:
//
//	/Length 42            Length = "42"
//	/Parent 3 0 R         Parent = "3 0 R"
//	/Creator (Adobe)      Creator = "(Adobe)"
//
// A key followed by a name takes the name as its value and the name itself
// is recorded as a bare key:
//
//	/Type /Metadata       Type = "Metadata", Metadata bare
//
// Arrays are captured as raw substrings. Nested dictionaries are flattened
// into the outer one and string or hex literals are not decoded; a "/"
// inside a literal string starts a new key. Consumers only rely on a few
// well-known scalar keys, so these limitations are accepted.
//
// # Streams
//
// [DecodeStream] applies the declared Filter chain. Only FlateDecode is
// implemented; any chain containing another recognised filter is passed
// through undecoded.
package core
