package xmp

import (
	"reflect"
	"strings"
	"testing"
)

const packet = `<?xpacket begin="` + "\ufeff" + `" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
  <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
    <rdf:Description rdf:about="" xmlns:xmp="http://ns.adobe.com/xap/1.0/">
      <xmp:CreatorTool>Adobe Illustrator 27.0 (Macintosh)</xmp:CreatorTool>
    </rdf:Description>
  </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`

// collect scans input and returns every CreatorTool value
func collect(t *testing.T, input string) []string {
	t.Helper()
	var got []string
	stopped, err := Scan(strings.NewReader(input), func(v string) bool {
		got = append(got, v)
		return false
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if stopped {
		t.Fatal("Scan reported a stop without the visitor asking")
	}
	return got
}

// TestScanForms tests the accepted CreatorTool spellings
func TestScanForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"element in namespace", packet, []string{"Adobe Illustrator 27.0 (Macintosh)"}},
		{
			"attribute",
			`<rdf:Description xmlns:rdf="r" xmlns:xmp="http://ns.adobe.com/xap/1.0/" xmp:CreatorTool="Adobe InDesign 18.0"/>`,
			[]string{"Adobe InDesign 18.0"},
		},
		{"undeclared prefix", `<xmp:CreatorTool>Tool A</xmp:CreatorTool>`, []string{"Tool A"}},
		{"no prefix", `<meta><CreatorTool> Tool B </CreatorTool></meta>`, []string{"Tool B"}},
		{"nested alternative", `<xmp:CreatorTool><rdf:Alt><rdf:li>Tool C</rdf:li></rdf:Alt></xmp:CreatorTool>`, []string{"Tool C"}},
		{"other elements ignored", `<dc:title>Adobe Illustrator</dc:title><xmp:CreatorTool>Tool D</xmp:CreatorTool>`, []string{"Tool D"}},
		{"text after close ignored", `<xmp:CreatorTool>Tool E</xmp:CreatorTool>trailing text`, []string{"Tool E"}},
		{"none", `<x:xmpmeta xmlns:x="adobe:ns:meta/"></x:xmpmeta>`, nil},
		{"empty input", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(t, tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestScanStops tests that a visitor can end the scan early
func TestScanStops(t *testing.T) {
	input := `<r><xmp:CreatorTool>first</xmp:CreatorTool><xmp:CreatorTool>second</xmp:CreatorTool><broken`
	var seen []string
	stopped, err := Scan(strings.NewReader(input), func(v string) bool {
		seen = append(seen, v)
		return v == "first"
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !stopped {
		t.Error("expected the scan to stop")
	}
	if !reflect.DeepEqual(seen, []string{"first"}) {
		t.Errorf("seen = %q, want only first", seen)
	}
}

// TestScanInvalidEntity tests that malformed entities do not abort the scan
func TestScanInvalidEntity(t *testing.T) {
	input := `<r><dc:title>Fish &chips; &#xZZ;</dc:title><xmp:CreatorTool>Tool &bogus; F</xmp:CreatorTool></r>`
	got := collect(t, input)
	if len(got) != 1 || !strings.Contains(got[0], "Tool") {
		t.Errorf("values = %q, want one value after the bad entities", got)
	}
}

// TestScanSyntaxError tests that other XML errors are returned
func TestScanSyntaxError(t *testing.T) {
	input := `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF`
	_, err := Scan(strings.NewReader(input), func(string) bool { return false })
	if err == nil {
		t.Fatal("expected an error for a truncated packet")
	}
	if isEntityError(err) {
		t.Errorf("truncation should not be reported as an entity error: %v", err)
	}
}

// TestScanDeclaredCharset tests packets declaring a non-UTF-8 encoding
func TestScanDeclaredCharset(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><xmp:CreatorTool>Caf\xe9 Illustrator</xmp:CreatorTool>"
	got := collect(t, input)
	if len(got) != 1 || got[0] != "Café Illustrator" {
		t.Errorf("values = %q, want [Café Illustrator]", got)
	}
}

// TestIsMetadata tests metadata stream recognition
func TestIsMetadata(t *testing.T) {
	tests := []struct {
		typ, subtype string
		hasXML       bool
		want         bool
	}{
		{"Metadata", "", false, true},
		{"", "XML", false, true},
		{"", "", true, true},
		{"XObject", "Image", false, false},
		{"", "", false, false},
	}

	for _, tt := range tests {
		if got := IsMetadata(tt.typ, tt.subtype, tt.hasXML); got != tt.want {
			t.Errorf("IsMetadata(%q, %q, %v) = %v, want %v", tt.typ, tt.subtype, tt.hasXML, got, tt.want)
		}
	}
}
