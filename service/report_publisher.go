package service

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"flip-order-labels/logger"
	"flip-order-labels/report"
)

// PublishError reports the stage that failed and the stages already applied to the sheet.
// Stages are not rolled back, so Applied describes what the sheet now reflects.
type PublishError struct {
	Stage   report.Stage
	Applied []report.Stage
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish stage %s failed after %v: %v", e.Stage, e.Applied, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// ReportPublisher replays report operations against the report sheet, stage by stage
type ReportPublisher struct {
	sheets            SheetsServiceInterface
	sheetName         string
	requests          sheetsRequestBuilder
	hyperlinkFunction string
	formulaSeparator  string
	logger            *logger.Logger
}

// Ensure ReportPublisher implements ReportPublisherInterface
var _ ReportPublisherInterface = (*ReportPublisher)(nil)

// ReportPublisherOptions configures the target sheet and formula dialect
type ReportPublisherOptions struct {
	SheetName         string
	SheetID           int64
	HyperlinkFunction string
	FormulaSeparator  string
}

// NewReportPublisher creates a new ReportPublisher instance
func NewReportPublisher(client SheetsServiceInterface, opts ReportPublisherOptions, log *logger.Logger) *ReportPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportPublisher{
		sheets:            client,
		sheetName:         opts.SheetName,
		requests:          sheetsRequestBuilder{sheetID: opts.SheetID},
		hyperlinkFunction: opts.HyperlinkFunction,
		formulaSeparator:  opts.FormulaSeparator,
		logger:            log,
	}
}

// Publish applies the model's operations in stage order. A stage starts only after
// the previous one completed; the first failure aborts the remaining stages.
func (p *ReportPublisher) Publish(ctx context.Context, model report.Model) error {
	byStage := make(map[report.Stage][]report.Operation, len(report.Stages))
	last := report.StageClear
	for i, op := range model.Operations {
		if op.Stage < last {
			return fmt.Errorf("operation %d (%s) in stage %s follows stage %s", i, op.Kind, op.Stage, last)
		}
		last = op.Stage
		byStage[op.Stage] = append(byStage[op.Stage], op)
	}

	var applied []report.Stage
	for _, stage := range report.Stages {
		ops := byStage[stage]
		if len(ops) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return &PublishError{Stage: stage, Applied: applied, Err: err}
		}
		if err := p.applyStage(ctx, ops); err != nil {
			return &PublishError{Stage: stage, Applied: applied, Err: err}
		}
		applied = append(applied, stage)
		p.logger.Debug(p.logger.WithField(ctx, "stage", stage.String()), "report stage applied")
	}
	return nil
}

// applyStage runs value operations immediately and batches formatting requests.
// Pending requests are flushed before the next value operation and at the end of
// the stage so operation order is kept.
func (p *ReportPublisher) applyStage(ctx context.Context, ops []report.Operation) error {
	var pending []*sheets.Request
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		err := p.sheets.BatchUpdate(ctx, pending)
		pending = nil
		return err
	}

	for _, op := range ops {
		switch op.Kind {
		case report.OpClearValues:
			if err := flush(); err != nil {
				return err
			}
			if err := p.sheets.ClearValues(ctx, sheetRange(p.sheetName, op.A1)); err != nil {
				return err
			}
		case report.OpWriteValues:
			if err := flush(); err != nil {
				return err
			}
			input := op.Input
			if input == "" {
				input = report.InputRaw
			}
			values := cellValues(op.Values, p.hyperlinkFunction, p.formulaSeparator)
			if err := p.sheets.UpdateValues(ctx, sheetRange(p.sheetName, op.A1), values, string(input)); err != nil {
				return err
			}
		case report.OpResetFormat, report.OpFormatCells:
			req, err := p.requests.format(op)
			if err != nil {
				return err
			}
			pending = append(pending, req)
		case report.OpDeleteConditionalRules:
			count, err := p.sheets.ConditionalFormatRuleCount(ctx, p.requests.sheetID)
			if err != nil {
				return err
			}
			pending = append(pending, p.requests.deleteConditionalRules(count)...)
		case report.OpBorders:
			req, err := p.requests.borders(op)
			if err != nil {
				return err
			}
			pending = append(pending, req)
		case report.OpColumnWidth:
			pending = append(pending, p.requests.columnWidth(op))
		case report.OpAutoResizeColumns:
			pending = append(pending, p.requests.autoResize(op))
		case report.OpConditionalEquals:
			req, err := p.requests.conditionalEquals(op)
			if err != nil {
				return err
			}
			pending = append(pending, req)
		default:
			return fmt.Errorf("unsupported report operation %q", op.Kind)
		}
	}
	return flush()
}
