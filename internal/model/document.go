package model

import "time"

// Document represents one processed upload: the submitted personal fields,
// the fields derived from them, the text extracted from the file, and the
// file metadata. This is a pure domain model with no persistence-specific
// dependencies or tags. A Document is immutable once created; the repository
// hands out copies only.
type Document struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	DateOfBirth   string    `json:"dateOfBirth"`
	FullName      string    `json:"fullName"`
	Age           int       `json:"age"`
	ExtractedText string    `json:"extractedText"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	CreatedAt     time.Time `json:"createdAt"`
}
