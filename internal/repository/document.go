// Package repository contains the data access abstraction for documents.
// Implementations live in subpackages (memory for the in-process store).
package repository

import (
	"context"
	"errors"

	"docintake/internal/model"
)

// ErrNotFound is returned by FindByID for any id that was never assigned.
var ErrNotFound = errors.New("document not found")

// CreateDocument carries the caller-supplied and derived fields of a new
// document. The repository assigns ID and CreatedAt.
type CreateDocument struct {
	FirstName     string
	LastName      string
	DateOfBirth   string
	FullName      string
	Age           int
	ExtractedText string
	FileName      string
	FileType      string
}

// DocumentRepository owns the document lifecycle. Documents are created
// exactly once, never updated and never deleted; ids are unique, assigned
// sequentially starting at 1 and never reused.
type DocumentRepository interface {
	// Create stores a new document under the next id and returns it with ID
	// and CreatedAt populated. It never fails on the in-memory backend but
	// keeps the error return so durable backends can slot in.
	Create(ctx context.Context, fields CreateDocument) (*model.Document, error)

	// FindByID returns the document stored under id, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Document, error)
}
