package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// imageStrategy runs Tesseract OCR over an uploaded image via gosseract.
// A fresh client is created per extraction; gosseract clients are not safe
// for concurrent use. Blank or illegible images legitimately produce an
// empty string.
type imageStrategy struct {
	language string
}

func newImageStrategy(language string) *imageStrategy {
	if language == "" {
		language = "eng"
	}
	return &imageStrategy{language: language}
}

func (s *imageStrategy) extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(s.language); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
