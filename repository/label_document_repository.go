package repository

import (
	"context"
	"database/sql"
	"fmt"

	"flip-order-labels/models"
)

// LabelDocumentRepository stores metadata about generated label PDFs
type LabelDocumentRepository struct {
	db *sql.DB
}

// NewLabelDocumentRepository creates a new LabelDocumentRepository
func NewLabelDocumentRepository(conn *sql.DB) *LabelDocumentRepository {
	return &LabelDocumentRepository{db: conn}
}

// Ensure LabelDocumentRepository implements LabelDocumentRepositoryInterface
var _ LabelDocumentRepositoryInterface = (*LabelDocumentRepository)(nil)

// Insert records a generated document and fills in its ID and CreatedAt
func (r *LabelDocumentRepository) Insert(ctx context.Context, doc *models.LabelDocument) error {
	query := `
		INSERT INTO label_documents (file_name, label_size, label_count, order_count, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		doc.FileName,
		doc.LabelSize,
		doc.LabelCount,
		doc.OrderCount,
		doc.SizeBytes,
		doc.CreatedAt,
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert label document %s: %w", doc.FileName, err)
	}
	return nil
}

// ListRecent returns the newest documents first
func (r *LabelDocumentRepository) ListRecent(ctx context.Context, limit int) ([]models.LabelDocument, error) {
	query := `
		SELECT id, file_name, label_size, label_count, order_count, size_bytes, created_at
		FROM label_documents
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query label documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.LabelDocument, 0, limit)
	for rows.Next() {
		var doc models.LabelDocument
		if err := rows.Scan(
			&doc.ID,
			&doc.FileName,
			&doc.LabelSize,
			&doc.LabelCount,
			&doc.OrderCount,
			&doc.SizeBytes,
			&doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan label document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating label documents: %w", err)
	}
	return docs, nil
}
