// Package extractor derives text content from an uploaded PDF or image.
// A dispatch table keyed on the normalized MIME type selects the extraction
// strategy; every strategy failure is wrapped as *ExtractionError so callers
// never depend on the underlying library's error types.
package extractor

import (
	"context"
	"errors"

	"docintake/internal/validation"
)

// ErrUnsupportedType is returned for a MIME type with no registered strategy.
// Upstream validation makes this unreachable in practice; the arm exists as a
// guard against validation gaps.
var ErrUnsupportedType = errors.New("no extraction strategy for file type")

// ExtractionError wraps any failure of an underlying extraction capability.
// The original error stays reachable through Unwrap for diagnostics.
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return "text extraction failed: " + e.Cause.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// TextExtractor turns file bytes into text. An empty string with a nil error
// is a legitimate outcome: not every document carries visible text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

// strategy is one extraction capability over a single file family.
type strategy interface {
	extract(ctx context.Context, data []byte) (string, error)
}

// Extractor dispatches on MIME type to a PDF or image strategy.
type Extractor struct {
	strategies map[string]strategy
}

// New builds an Extractor covering the validated MIME set. language is the
// Tesseract language code used for image OCR; empty means "eng".
func New(language string) *Extractor {
	img := newImageStrategy(language)
	return &Extractor{
		strategies: map[string]strategy{
			"application/pdf": newPDFStrategy(),
			"image/jpeg":      img,
			"image/jpg":       img,
			"image/png":       img,
		},
	}
}

// Extract runs the strategy registered for mimeType. Extraction is attempted
// exactly once; there are no retries.
func (e *Extractor) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	s, ok := e.strategies[validation.NormalizeContentType(mimeType)]
	if !ok {
		return "", ErrUnsupportedType
	}
	text, err := s.extract(ctx, data)
	if err != nil {
		return "", &ExtractionError{Cause: err}
	}
	return text, nil
}
