package service

import (
	"context"

	"flip-order-labels/models"
)

// LabelServiceInterface defines the contract for label document generation
type LabelServiceInterface interface {
	Print(ctx context.Context, orders []models.RawOrder, labelSize string) (*models.LabelDocument, error)
	Recent(ctx context.Context, limit int) ([]models.LabelDocument, error)
}
