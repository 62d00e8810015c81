package service

import (
	"context"

	"flip-order-labels/report"
)

// ReportPublisherInterface replays a report model onto the target sheet
type ReportPublisherInterface interface {
	Publish(ctx context.Context, model report.Model) error
}
