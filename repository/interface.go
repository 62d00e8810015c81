package repository

import (
	"context"

	"flip-order-labels/models"
)

// LabelDocumentRepositoryInterface defines the contract for the label document ledger
type LabelDocumentRepositoryInterface interface {
	Insert(ctx context.Context, doc *models.LabelDocument) error
	ListRecent(ctx context.Context, limit int) ([]models.LabelDocument, error)
}
