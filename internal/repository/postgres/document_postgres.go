package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"docanalyze/internal/model"
	"docanalyze/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, filename, file_path, file_size, file_type, extracted_text, summary, document_type, extracted_metadata, created_at, analyzed_at`

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, filename, file_path, file_size, file_type, extracted_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Filename,
		doc.FilePath,
		doc.FileSize,
		doc.FileType,
		doc.ExtractedText,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// UpdateAnalysis overwrites the analysis columns and returns the updated row.
// Returns sql.ErrNoRows if the document does not exist.
func (r *DocumentPostgres) UpdateAnalysis(ctx context.Context, id string, upd repository.AnalysisUpdate) (*model.Document, error) {
	metadata := upd.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	const q = `
		UPDATE documents
		SET summary = $2, document_type = $3, extracted_metadata = $4, analyzed_at = $5
		WHERE id = $1
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q, id, upd.Summary, upd.DocumentType, metaJSON, upd.AnalyzedAt)
	return scanDocument(row)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d            model.Document
		extracted    sql.NullString
		summary      sql.NullString
		documentType sql.NullString
		metaJSON     []byte
		analyzedAt   sql.NullTime
	)
	if err := row.Scan(
		&d.ID,
		&d.Filename,
		&d.FilePath,
		&d.FileSize,
		&d.FileType,
		&extracted,
		&summary,
		&documentType,
		&metaJSON,
		&d.CreatedAt,
		&analyzedAt,
	); err != nil {
		return nil, err
	}
	d.ExtractedText = extracted.String
	if summary.Valid {
		d.Summary = &summary.String
	}
	if documentType.Valid {
		d.DocumentType = &documentType.String
	}
	if analyzedAt.Valid {
		d.AnalyzedAt = &analyzedAt.Time
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &d.ExtractedMetadata); err != nil {
			return nil, fmt.Errorf("unmarshal extracted_metadata: %w", err)
		}
	}
	return &d, nil
}
