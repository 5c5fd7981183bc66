// Package pdfsniff tells generic PDF documents apart from PDF-based
// subtypes such as Adobe Illustrator artwork by looking at their content,
// not their file name.
//
// Basic usage:
//
//	t, ok, err := pdfsniff.DetectFile("artwork.pdf")
//	if err != nil {
//	    // handle error
//	}
//	if !ok {
//	    // not a PDF
//	}
//	fmt.Println(t.Extension, t.MIME) // ai application/illustrator
//
// Detection first looks for the "%PDF-" signature in the first 1024 bytes.
// Input without it is reported as not recognised and is left unconsumed.
// Otherwise the object bodies are scanned line by line and every
// dictionary, decoded stream and XMP CreatorTool value is offered to the
// configured probes. The first probe to claim the document decides its
// type; if none does, the document is a generic PDF.
//
// With options:
//
//	t, ok, err := pdfsniff.Detect(src,
//	    pdfsniff.WithMaxScanLines(10000),
//	    pdfsniff.WithDebug(true),
//	)
package pdfsniff
