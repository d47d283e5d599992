package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docanalyze/internal/extract"
	"docanalyze/internal/llm"
	"docanalyze/internal/model"
	"docanalyze/internal/repository"
	"docanalyze/internal/storage"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrNotFound            = errors.New("document not found")
	ErrFileRequired        = errors.New("file content is required")
	ErrUnsupportedFileType = errors.New("only PDF and DOCX files are supported")
	ErrFileTooLarge        = errors.New("file size exceeds the configured limit")
	ErrNoExtractedText     = errors.New("document has no extracted text")
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload validates the declared type and size, stores the blob, extracts
	// text, and inserts the record. The blob is deleted again if extraction
	// or persistence fails, so a row exists if and only if its blob exists
	// and extraction succeeded.
	Upload(ctx context.Context, content []byte, originalFilename string, contentType string) (*model.Document, error)

	// Analyze runs the document's extracted text through the analyzer and
	// persists the result, overwriting any prior analysis.
	Analyze(ctx context.Context, id string) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store          storage.Storage
	repo           repository.DocumentRepository
	extractor      extract.TextExtractor
	analyzer       llm.Analyzer
	maxUploadBytes int64
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	store storage.Storage,
	repo repository.DocumentRepository,
	extractor extract.TextExtractor,
	analyzer llm.Analyzer,
	maxUploadBytes int64,
) DocumentService {
	return &documentService{
		store:          store,
		repo:           repo,
		extractor:      extractor,
		analyzer:       analyzer,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *documentService) Upload(ctx context.Context, content []byte, originalFilename string, contentType string) (*model.Document, error) {
	if len(content) == 0 {
		return nil, ErrFileRequired
	}
	if !extract.AllowedType(contentType) {
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedFileType, contentType)
	}
	if s.maxUploadBytes > 0 && int64(len(content)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(content))
	}

	// Generate object key using UUIDv7 + original extension.
	id := uuid.Must(uuid.NewV7()).String()
	key := filepath.ToSlash(filepath.Join("documents", id+filepath.Ext(originalFilename)))

	// Blob storage happens before extraction; record insertion after.
	if _, err := s.store.Put(ctx, key, bytes.NewReader(content), storage.PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	text, err := s.extractor.ExtractTextFromBytes(ctx, content, contentType)
	if err != nil {
		// Compensate: no blob may outlive a failed extraction.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("extract text failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("extract text: %w", err)
	}

	doc := &model.Document{
		ID:            id,
		Filename:      originalFilename,
		FilePath:      key,
		FileSize:      int64(len(content)),
		FileType:      contentType,
		ExtractedText: text,
		CreatedAt:     time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Compensate: delete the object from storage.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// Analyze loads the record, rejects documents without extracted text before
// any upstream call, and persists the normalized result. Concurrent analyze
// calls on the same id are not mutually excluded; the last commit wins.
func (s *documentService) Analyze(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.ExtractedText == "" {
		return nil, ErrNoExtractedText
	}

	analysis, err := s.analyzer.Analyze(ctx, doc.ExtractedText)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateAnalysis(ctx, id, repository.AnalysisUpdate{
		Summary:      analysis.Summary,
		DocumentType: analysis.DocumentType,
		Metadata:     analysis.Metadata,
		AnalyzedAt:   time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save analysis: %w", err)
	}
	return updated, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}
