package service

import (
	"context"

	"flip-order-labels/report"
)

// ReferenceServiceInterface loads the supplier reference table
type ReferenceServiceInterface interface {
	Load(ctx context.Context) (report.ReferenceTable, error)
}
