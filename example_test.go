package pdfsniff_test

import (
	"fmt"
	"log"

	"github.com/tsawler/pdfsniff"
	"github.com/tsawler/pdfsniff/source"
)

func ExampleDetectBytes() {
	t, ok, err := pdfsniff.DetectBytes([]byte("%PDF-1.1"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(t.Extension, t.MIME, ok)
	// Output: pdf application/pdf true
}

func ExampleDetect() {
	doc := "%PDF-1.5\n" +
		"1 0 obj\n<< /Type /Catalog >>\nendobj\n" +
		"2 0 obj\n<< /Creator (Adobe Illustrator 26.0) >>\nendobj\n" +
		"%%EOF\n"

	t, ok, err := pdfsniff.Detect(source.NewBytes([]byte(doc)))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(t, ok)
	// Output: application/illustrator true
}

func ExampleDetect_notPDF() {
	src := source.NewBytes([]byte("GIF89a"))

	_, ok, err := pdfsniff.Detect(src)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ok, src.Position())
	// Output: false 0
}
