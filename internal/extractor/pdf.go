package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfStrategy extracts the text layer of a PDF with ledongthuc/pdf, a pure Go
// reader that works directly off the in-memory upload. A document without an
// extractable text layer yields an empty string, not an error.
type pdfStrategy struct{}

func newPDFStrategy() *pdfStrategy { return &pdfStrategy{} }

func (s *pdfStrategy) extract(ctx context.Context, data []byte) (text string, err error) {
	if cerr := ctx.Err(); cerr != nil {
		return "", cerr
	}

	// ledongthuc/pdf panics while lazily parsing malformed cross-reference
	// data (e.g. an xref entry pointing past EOF) instead of returning an
	// error. Turn that into a regular extraction failure so one corrupt
	// upload cannot take the process down.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or malformed pages are skipped; the remaining
			// pages still contribute their text.
			continue
		}
		if b.Len() > 0 && pageText != "" {
			b.WriteString("\n")
		}
		b.WriteString(pageText)
	}
	return strings.TrimSpace(b.String()), nil
}
