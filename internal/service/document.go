package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"docintake/internal/extractor"
	"docintake/internal/model"
	"docintake/internal/person"
	"docintake/internal/repository"
	"docintake/internal/storage"
	"docintake/internal/validation"
)

// UploadRequest carries one upload through the pipeline: the file content and
// metadata plus the three form fields.
type UploadRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	FirstName   string
	LastName    string
	DateOfBirth string
}

// DocumentService defines the use cases for processing uploads.
type DocumentService interface {
	// ProcessUpload validates the upload, extracts its text, derives full
	// name and age, and persists the resulting document. The document is
	// created only after extraction and derivation succeed; there is no
	// partially written state.
	ProcessUpload(ctx context.Context, req UploadRequest) (*model.Document, error)

	// Get returns a stored document by id, or repository.ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Document, error)
}

// Config tunes the pipeline. Zero values fall back to sane defaults.
type Config struct {
	MaxFileBytes             int64
	ExtractTimeout           time.Duration
	MaxConcurrentExtractions int
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	extractor      extractor.TextExtractor
	repo           repository.DocumentRepository
	archive        storage.Storage // nil disables original-upload archiving
	log            *zap.Logger
	maxFileBytes   int64
	extractTimeout time.Duration
	sem            *semaphore.Weighted
	now            func() time.Time
}

// NewDocumentService constructs a new DocumentService. archive may be nil.
func NewDocumentService(ext extractor.TextExtractor, repo repository.DocumentRepository, archive storage.Storage, log *zap.Logger, cfg Config) DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = validation.DefaultMaxFileBytes
	}
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 60 * time.Second
	}
	if cfg.MaxConcurrentExtractions <= 0 {
		cfg.MaxConcurrentExtractions = 4
	}
	return &documentService{
		extractor:      ext,
		repo:           repo,
		archive:        archive,
		log:            log,
		maxFileBytes:   cfg.MaxFileBytes,
		extractTimeout: cfg.ExtractTimeout,
		sem:            semaphore.NewWeighted(int64(cfg.MaxConcurrentExtractions)),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) ProcessUpload(ctx context.Context, req UploadRequest) (*model.Document, error) {
	if len(req.Data) == 0 {
		return nil, validation.ErrMissingFile
	}

	meta := validation.FileMeta{
		Filename:    req.FileName,
		ContentType: req.ContentType,
		Size:        int64(len(req.Data)),
	}
	if err := validation.ValidateFile(meta, s.maxFileBytes); err != nil {
		return nil, err
	}

	now := s.now()
	form := validation.UploadForm{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
	}
	if err := validation.ValidateForm(form, now); err != nil {
		return nil, err
	}
	dob, err := time.Parse(validation.DateLayout, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("parse date of birth: %w", err)
	}

	text, err := s.extractText(ctx, req.Data, req.ContentType)
	if err != nil {
		return nil, err
	}

	s.archiveOriginal(ctx, req)

	doc, err := s.repo.Create(ctx, repository.CreateDocument{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		FullName:      person.FullName(req.FirstName, req.LastName),
		Age:           person.Age(dob, now),
		ExtractedText: text,
		FileName:      req.FileName,
		FileType:      validation.NormalizeContentType(req.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	return doc, nil
}

// extractText runs the extractor under the concurrency bound and the
// per-request timeout. The call itself happens on a separate goroutine so a
// stuck OCR run cannot hold the request past its deadline; extraction is
// attempted exactly once either way.
func (s *documentService) extractText(ctx context.Context, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.extractTimeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", &extractor.ExtractionError{Cause: err}
	}

	type extracted struct {
		text string
		err  error
	}
	ch := make(chan extracted, 1)
	go func() {
		defer s.sem.Release(1)
		text, err := s.extractor.Extract(ctx, data, contentType)
		ch <- extracted{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", &extractor.ExtractionError{Cause: ctx.Err()}
	case res := <-ch:
		return res.text, res.err
	}
}

// archiveOriginal stores the raw upload in object storage when an archive is
// configured. Failures are logged and swallowed: the archive is a side
// channel, not part of the document's all-or-nothing write.
func (s *documentService) archiveOriginal(ctx context.Context, req UploadRequest) {
	if s.archive == nil {
		return
	}
	ext := filepath.Ext(req.FileName)
	key := filepath.ToSlash(filepath.Join("uploads", uuid.New().String()+ext))

	_, err := s.archive.Put(ctx, key, bytes.NewReader(req.Data), storage.PutObjectOptions{
		Size:        int64(len(req.Data)),
		ContentType: req.ContentType,
		Metadata: map[string]string{
			"original-filename": req.FileName,
		},
	})
	if err != nil {
		s.log.Warn("failed to archive original upload",
			zap.String("key", key),
			zap.String("filename", req.FileName),
			zap.Error(err))
		return
	}
	s.log.Debug("archived original upload", zap.String("key", key))
}

func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	return s.repo.FindByID(ctx, id)
}
