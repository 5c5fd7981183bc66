// Package xmp extracts CreatorTool values from embedded XMP metadata packets.
package xmp

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespace is the XMP basic schema namespace, which defines CreatorTool.
const Namespace = "http://ns.adobe.com/xap/1.0/"

const creatorTool = "CreatorTool"

// IsMetadata reports whether a stream dictionary describes an XML metadata
// stream: Type is Metadata, Subtype is XML, or an XML key is present.
func IsMetadata(typ, subtype string, hasXML bool) bool {
	return typ == "Metadata" || subtype == "XML" || hasXML
}

// Visitor receives each CreatorTool value in document order. Returning true
// stops the scan.
type Visitor func(creatorTool string) (stop bool)

// Scan parses an XMP packet from r and passes every CreatorTool value to
// visit, either element text (<xmp:CreatorTool>...</xmp:CreatorTool>) or an
// attribute (xmp:CreatorTool="..."). It reports whether visit stopped the
// scan. Invalid character entities are tolerated; any other XML syntax
// error is returned.
func Scan(r io.Reader, visit Visitor) (bool, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.CharsetReader = charset.NewReaderLabel

	var inCreatorTool bool
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			if isEntityError(err) {
				return false, nil
			}
			return false, fmt.Errorf("xmp: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if isCreatorTool(t.Name) {
				inCreatorTool = true
				continue
			}
			for _, attr := range t.Attr {
				if isCreatorTool(attr.Name) {
					if value := strings.TrimSpace(attr.Value); value != "" && visit(value) {
						return true, nil
					}
				}
			}

		case xml.CharData:
			if !inCreatorTool {
				continue
			}
			if value := strings.TrimSpace(string(t)); value != "" && visit(value) {
				return true, nil
			}

		case xml.EndElement:
			inCreatorTool = false
		}
	}
}

// isCreatorTool matches the CreatorTool name in the XMP namespace. An
// unresolved prefix leaves the prefix in Space, so the local name alone is
// also accepted.
func isCreatorTool(name xml.Name) bool {
	if name.Space == Namespace && name.Local == creatorTool {
		return true
	}
	return name.Local == creatorTool || strings.HasSuffix(name.Local, ":"+creatorTool)
}

// isEntityError reports whether err is a malformed character entity error.
func isEntityError(err error) bool {
	return strings.Contains(err.Error(), "invalid character entity")
}
