package repository

import (
	"context"
	"time"

	"docanalyze/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record with its extracted text and
	// returns the stored row. Analysis columns start out NULL.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a paginated list of documents and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// UpdateAnalysis overwrites the analysis columns of an existing row and
	// returns the updated record. Prior analysis results are replaced, no
	// history is kept.
	UpdateAnalysis(ctx context.Context, id string, upd AnalysisUpdate) (*model.Document, error)
}

// AnalysisUpdate carries the result of a successful analysis.
type AnalysisUpdate struct {
	Summary      string
	DocumentType string
	Metadata     map[string]any
	AnalyzedAt   time.Time
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
