package handler

import (
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docanalyze/internal/service"
)

// uploadResponse is the body returned after a successful upload.
type uploadResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	FileSize  int64     `json:"file_size"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
}

// analyzeResponse is the body returned after a successful analysis.
type analyzeResponse struct {
	ID           string         `json:"id"`
	Summary      *string        `json:"summary"`
	DocumentType *string        `json:"document_type"`
	Metadata     map[string]any `json:"metadata"`
	AnalyzedAt   *time.Time     `json:"analyzed_at"`
}

// UploadDocument handles multipart uploads (field name: file).
//
// @Summary Upload a document
// @Description Accepts a PDF or DOCX file, stores it and extracts its text.
// @Tags documents
// @Accept multipart/form-data
// @Param file formData file true "PDF or DOCX file"
// @Success 201 {object} uploadResponse
// @Failure 400 {object} errorPayload
// @Router /documents/upload [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := docSvc.Upload(c.UserContext(), content, fh.Filename, ct)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			ID:        doc.ID,
			Filename:  doc.Filename,
			FileSize:  doc.FileSize,
			FileType:  doc.FileType,
			CreatedAt: doc.CreatedAt,
			Message:   "File uploaded and text extracted successfully",
		})
	}
}

// AnalyzeDocument runs summarization and classification on a stored document.
//
// @Summary Analyze a document
// @Description Summarizes and classifies a previously uploaded document.
// @Tags documents
// @Param id path string true "Document ID"
// @Success 200 {object} analyzeResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/analyze [post]
func AnalyzeDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		doc, err := docSvc.Analyze(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(analyzeResponse{
			ID:           doc.ID,
			Summary:      doc.Summary,
			DocumentType: doc.DocumentType,
			Metadata:     doc.ExtractedMetadata,
			AnalyzedAt:   doc.AnalyzedAt,
		})
	}
}

// GetDocument returns a single document record by ID.
//
// @Summary Get a document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 200 {object} model.Document
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// ListDocuments returns documents with limit and offset paging.
//
// @Summary List documents
// @Tags documents
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.DocumentListResult
// @Router /documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := docSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
