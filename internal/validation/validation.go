// Package validation checks an upload before any extraction work is spent on
// it: the file's MIME type and size against the accepted set, and the three
// required form fields. Validation failures are reported with sentinel errors
// (file checks) or a FormError listing every violated field (form checks).
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the accepted dateOfBirth format.
const DateLayout = "2006-01-02"

// DefaultMaxFileBytes is the upload size cap: 10 MiB.
const DefaultMaxFileBytes int64 = 10 * 1024 * 1024

var (
	ErrMissingFile         = errors.New("no file uploaded")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// allowedTypes is the closed set of accepted MIME types. image/jpg is not a
// registered type but browsers still send it.
var allowedTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
}

// FileMeta describes the uploaded file as seen in the multipart header.
type FileMeta struct {
	Filename    string
	ContentType string
	Size        int64
}

// UploadForm holds the raw form fields accompanying the file.
type UploadForm struct {
	FirstName   string
	LastName    string
	DateOfBirth string
}

// FieldError names one violated form constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormError aggregates every field violation found in a single pass.
type FormError struct {
	Fields []FieldError
}

func (e *FormError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid form data: " + strings.Join(msgs, "; ")
}

// NormalizeContentType lowercases a MIME type and strips any parameters
// (e.g. "image/PNG; charset=binary" -> "image/png").
func NormalizeContentType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// ValidateFile checks the MIME type against the accepted set and the size
// against maxBytes. maxBytes <= 0 falls back to DefaultMaxFileBytes.
func ValidateFile(meta FileMeta, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	if _, ok := allowedTypes[NormalizeContentType(meta.ContentType)]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, meta.ContentType)
	}
	if meta.Size > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, meta.Size, maxBytes)
	}
	return nil
}

// ValidateForm checks that all three fields are present and that dateOfBirth
// is an ISO date no later than now. All violations are collected so the
// client can fix the whole form in one resubmission.
func ValidateForm(form UploadForm, now time.Time) error {
	var fields []FieldError

	if strings.TrimSpace(form.FirstName) == "" {
		fields = append(fields, FieldError{Field: "firstName", Message: "is required"})
	}
	if strings.TrimSpace(form.LastName) == "" {
		fields = append(fields, FieldError{Field: "lastName", Message: "is required"})
	}

	dob := strings.TrimSpace(form.DateOfBirth)
	switch {
	case dob == "":
		fields = append(fields, FieldError{Field: "dateOfBirth", Message: "is required"})
	default:
		parsed, err := time.Parse(DateLayout, dob)
		if err != nil {
			fields = append(fields, FieldError{Field: "dateOfBirth", Message: "must be a valid date in YYYY-MM-DD format"})
		} else if parsed.After(now) {
			fields = append(fields, FieldError{Field: "dateOfBirth", Message: "must not be in the future"})
		}
	}

	if len(fields) > 0 {
		return &FormError{Fields: fields}
	}
	return nil
}
