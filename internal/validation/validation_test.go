package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name    string
		meta    FileMeta
		max     int64
		wantErr error
	}{
		{
			name: "pdf accepted",
			meta: FileMeta{Filename: "doc.pdf", ContentType: "application/pdf", Size: 1024},
		},
		{
			name: "jpeg accepted",
			meta: FileMeta{Filename: "scan.jpg", ContentType: "image/jpeg", Size: 1024},
		},
		{
			name: "content type with parameters accepted",
			meta: FileMeta{Filename: "scan.png", ContentType: "image/PNG; charset=binary", Size: 1024},
		},
		{
			name:    "text/plain rejected",
			meta:    FileMeta{Filename: "notes.txt", ContentType: "text/plain", Size: 10},
			wantErr: ErrUnsupportedFileType,
		},
		{
			name:    "15 MiB rejected regardless of type",
			meta:    FileMeta{Filename: "big.pdf", ContentType: "application/pdf", Size: 15 * 1024 * 1024},
			wantErr: ErrFileTooLarge,
		},
		{
			name: "exactly at the limit accepted",
			meta: FileMeta{Filename: "edge.pdf", ContentType: "application/pdf", Size: DefaultMaxFileBytes},
		},
		{
			name:    "custom limit honored",
			meta:    FileMeta{Filename: "doc.pdf", ContentType: "application/pdf", Size: 2048},
			max:     1024,
			wantErr: ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.meta, tt.max)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateForm(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

	t.Run("valid form", func(t *testing.T) {
		err := ValidateForm(UploadForm{FirstName: "John", LastName: "Doe", DateOfBirth: "1994-01-01"}, now)
		assert.NoError(t, err)
	})

	t.Run("empty first name names the field", func(t *testing.T) {
		err := ValidateForm(UploadForm{FirstName: "  ", LastName: "Doe", DateOfBirth: "1994-01-01"}, now)
		var fe *FormError
		require.True(t, errors.As(err, &fe))
		require.Len(t, fe.Fields, 1)
		assert.Equal(t, "firstName", fe.Fields[0].Field)
	})

	t.Run("all violations collected", func(t *testing.T) {
		err := ValidateForm(UploadForm{}, now)
		var fe *FormError
		require.True(t, errors.As(err, &fe))
		assert.Len(t, fe.Fields, 3)
	})

	t.Run("malformed date", func(t *testing.T) {
		err := ValidateForm(UploadForm{FirstName: "John", LastName: "Doe", DateOfBirth: "01/02/1994"}, now)
		var fe *FormError
		require.True(t, errors.As(err, &fe))
		require.Len(t, fe.Fields, 1)
		assert.Equal(t, "dateOfBirth", fe.Fields[0].Field)
	})

	t.Run("future date rejected", func(t *testing.T) {
		err := ValidateForm(UploadForm{FirstName: "John", LastName: "Doe", DateOfBirth: "2030-01-01"}, now)
		var fe *FormError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "dateOfBirth", fe.Fields[0].Field)
	})

	t.Run("error message lists fields", func(t *testing.T) {
		err := ValidateForm(UploadForm{LastName: "Doe", DateOfBirth: "1994-01-01"}, now)
		assert.Contains(t, err.Error(), "firstName")
	})
}

func TestNormalizeContentType(t *testing.T) {
	assert.Equal(t, "image/png", NormalizeContentType(" image/PNG; charset=binary"))
	assert.Equal(t, "application/pdf", NormalizeContentType("application/pdf"))
}
