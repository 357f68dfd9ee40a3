package pdfextract

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// ExtractPages reads the entire content of r and extracts plain text from the
// PDF, one string per page, in page order. A page with no extractable text
// (blank, image-only, or with a broken content stream) yields an empty string
// instead of failing the whole document.
func ExtractPages(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	readerAt := bytes.NewReader(b)
	pdfReader, err := pdf.NewReader(readerAt, int64(len(b)))
	if err != nil {
		return nil, err
	}

	total := pdfReader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := extractPageText(page)
		if err != nil {
			text = ""
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// extractPageText isolates panics from the underlying parser so a single
// malformed page cannot take down the request.
func extractPageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = nil
		}
	}()
	return page.GetPlainText(nil)
}
