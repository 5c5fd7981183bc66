// Package pdftest builds small synthetic PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"
)

// Builder assembles a PDF body one indirect object at a time. Object
// numbers are assigned from 1 in the order objects are added.
type Builder struct {
	buf  bytes.Buffer
	next int
}

// New starts a file with the header "%PDF-" version and the customary
// binary comment line.
func New(version string) *Builder {
	b := &Builder{next: 1}
	fmt.Fprintf(&b.buf, "%%PDF-%s\n%%\xe2\xe3\xcf\xd3\n", version)
	return b
}

// Raw appends text verbatim.
func (b *Builder) Raw(text string) *Builder {
	b.buf.WriteString(text)
	return b
}

// Object appends "N 0 obj << dict >> endobj" over three lines.
func (b *Builder) Object(dict string) *Builder {
	fmt.Fprintf(&b.buf, "%d 0 obj\n<< %s >>\nendobj\n", b.next, dict)
	b.next++
	return b
}

// Stream appends a stream object with payload stored as is. A Length
// entry is added to dict.
func (b *Builder) Stream(dict string, payload []byte) *Builder {
	fmt.Fprintf(&b.buf, "%d 0 obj\n<< %s /Length %d >>\nstream\n", b.next, dict, len(payload))
	b.buf.Write(payload)
	b.buf.WriteString("\nendstream\nendobj\n")
	b.next++
	return b
}

// FlateStream appends a stream object with payload zlib compressed and a
// FlateDecode filter entry.
func (b *Builder) FlateStream(dict string, payload []byte) *Builder {
	return b.Stream(dict+" /Filter /FlateDecode", Deflate(payload))
}

// Bytes returns the file with a trailer and end-of-file marker appended.
// The builder must not be used afterwards.
func (b *Builder) Bytes() []byte {
	b.buf.WriteString("trailer\n<< /Root 1 0 R >>\n%%EOF\n")
	return b.buf.Bytes()
}

// Deflate compresses p in zlib format.
func Deflate(p []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	// Writes to a bytes.Buffer cannot fail.
	_, _ = w.Write(p)
	_ = w.Close()
	return buf.Bytes()
}

// XMP returns a minimal XMP packet whose xmp:CreatorTool element holds
// tool.
func XMP(tool string) []byte {
	return []byte(`<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="" xmlns:xmp="http://ns.adobe.com/xap/1.0/">
   <xmp:CreatorTool>` + tool + `</xmp:CreatorTool>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`)
}
