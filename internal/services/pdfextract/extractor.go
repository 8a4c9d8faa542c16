// Package pdfextract provides PDF text extraction.
//
// We use the ledongthuc/pdf library — a pure Go implementation, no CGO or
// external dependencies required. This keeps deployment to a single binary.
package pdfextract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Result holds the output from a PDF text extraction.
type Result struct {
	Text      string // Extracted text content
	PageCount int    // Number of pages
	WordCount int    // Word count
}

// Extract reads a PDF from the given bytes and extracts all text content.
//
// Go Pattern: We accept a byte slice rather than a filename because the data
// comes from an HTTP upload (in memory). The pdf library needs io.ReaderAt
// for random access to the PDF structure, which bytes.Reader provides.
//
// A scanned or image-only PDF yields an empty Text with no error — the
// caller decides whether that is acceptable.
func Extract(data []byte) (*Result, error) {
	reader := bytes.NewReader(data)
	size := int64(len(data))

	pdfReader, err := pdf.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := pdfReader.NumPage()
	if pageCount == 0 {
		return &Result{}, nil
	}

	var allText strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Some pages are images only — skip, don't fail the document.
			continue
		}

		allText.WriteString(strings.TrimSpace(text))
		allText.WriteString("\n")
	}

	extractedText := strings.TrimSpace(allText.String())

	return &Result{
		Text:      extractedText,
		PageCount: pageCount,
		WordCount: countWords(extractedText),
	}, nil
}

// countWords counts the number of words in a text string.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// ValidatePDF checks if the data looks like a valid PDF by checking the magic bytes.
func ValidatePDF(data []byte) bool {
	// PDF files start with "%PDF-"
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
