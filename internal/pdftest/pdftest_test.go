package pdftest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// TestBuilder tests the layout of generated files
func TestBuilder(t *testing.T) {
	data := New("1.4").
		Object("/Type /Catalog").
		Stream("/Type /XObject", []byte("abc")).
		Bytes()

	text := string(data)
	for _, want := range []string{
		"%PDF-1.4\n",
		"1 0 obj\n<< /Type /Catalog >>\nendobj\n",
		"2 0 obj\n<< /Type /XObject /Length 3 >>\nstream\nabc\nendstream\nendobj\n",
		"%%EOF\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if !strings.HasPrefix(text, "%PDF-1.4") {
		t.Errorf("output does not start with the header: %q", text[:16])
	}
}

// TestDeflate tests that Deflate output inflates back to its input
func TestDeflate(t *testing.T) {
	input := []byte("BT /F1 12 Tf (Hello) Tj ET")
	r, err := zlib.NewReader(bytes.NewReader(Deflate(input)))
	if err != nil {
		t.Fatalf("zlib.NewReader() error = %v", err)
	}
	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	if !bytes.Equal(out.Bytes(), input) {
		t.Errorf("round trip = %q, want %q", out.Bytes(), input)
	}
}

// TestXMP tests the generated packet
func TestXMP(t *testing.T) {
	packet := string(XMP("Adobe Illustrator 27.0"))
	if !strings.Contains(packet, "<xmp:CreatorTool>Adobe Illustrator 27.0</xmp:CreatorTool>") {
		t.Errorf("packet missing CreatorTool element:\n%s", packet)
	}
}
