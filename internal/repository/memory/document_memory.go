// Package memory provides the in-process DocumentRepository. All state lives
// for the lifetime of the process; nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"docintake/internal/model"
	"docintake/internal/repository"
)

// documentMemory is a mutex-guarded map keyed by the assigned id. The id
// counter is read and advanced under the same lock, which keeps assignment
// exactly-once and gap-free under concurrent Create calls.
type documentMemory struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[int64]model.Document
	now    func() time.Time
}

// NewDocumentMemory creates an empty in-memory repository. Ids start at 1.
func NewDocumentMemory() repository.DocumentRepository {
	return &documentMemory{
		nextID: 1,
		docs:   make(map[int64]model.Document),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *documentMemory) Create(ctx context.Context, fields repository.CreateDocument) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc := model.Document{
		ID:            m.nextID,
		FirstName:     fields.FirstName,
		LastName:      fields.LastName,
		DateOfBirth:   fields.DateOfBirth,
		FullName:      fields.FullName,
		Age:           fields.Age,
		ExtractedText: fields.ExtractedText,
		FileName:      fields.FileName,
		FileType:      fields.FileType,
		CreatedAt:     m.now(),
	}
	m.docs[doc.ID] = doc
	m.nextID++

	cp := doc
	return &cp, nil
}

func (m *documentMemory) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := doc
	return &cp, nil
}
