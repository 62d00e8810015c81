package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"flip-order-labels/apperrors"
	"flip-order-labels/metrics"
	"flip-order-labels/models"
	"flip-order-labels/report"
)

func newTestExport(refs ReferenceServiceInterface, pub ReportPublisherInterface) *ExportService {
	b := report.NewBuilder("ПОСТАВКА (К)", "https://www.flip.kz/catalog?prod=")
	b.Now = func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }
	return NewExportService(ExportServiceOptions{
		References:     refs,
		Builder:        b,
		Publisher:      pub,
		SpreadsheetURL: "https://docs.google.com/spreadsheets/d/sheet-id",
		Metrics:        metrics.NewPipelineMetrics(prometheus.NewRegistry()),
	})
}

func TestExportPublishesModel(t *testing.T) {
	pub := &fakePublisher{}
	refs := fakeReferences{table: report.BuildReferenceTable([][]string{
		{"code", "text", "exp"},
		{"A1", "Мыло «Люкс»", "06.2025"},
	})}

	url, err := newTestExport(refs, pub).Export(context.Background(), []models.RawOrder{
		{SupplierCode: "A1", FlipCode: "F1", ProductName: "Soap", Quantity: "3", Price: "1 200 ₸"},
		{SupplierCode: "Z9", FlipCode: "F9", ProductName: "Brush", Quantity: "abc", Price: ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-id", url)

	require.Len(t, pub.models, 1)
	m := pub.models[0]
	require.Len(t, m.Rows, 2)
	assert.Equal(t, "Мыло Люкс", m.Rows[0].Product.Text)
	assert.Equal(t, 3600, m.Rows[0].LineAmount)
	assert.Equal(t, "06.2025", m.Rows[0].Expiration)
	assert.Equal(t, "Brush", m.Rows[1].Product.Text)
	assert.Equal(t, 0, m.Rows[1].Quantity)
	assert.Equal(t, report.Totals{Quantity: 3, Amount: 3600}, m.Totals)
}

func TestExportEmptyOrdersStillPublishes(t *testing.T) {
	pub := &fakePublisher{}
	_, err := newTestExport(fakeReferences{}, pub).Export(context.Background(), []models.RawOrder{})
	require.NoError(t, err)
	require.Len(t, pub.models, 1)
	assert.Empty(t, pub.models[0].Rows)
	assert.Equal(t, report.FirstDataRow, pub.models[0].TotalsRowIndex())
}

func TestExportNilOrdersIsValidationError(t *testing.T) {
	pub := &fakePublisher{}
	_, err := newTestExport(fakeReferences{}, pub).Export(context.Background(), nil)

	status, msg := apperrors.PublicMessage(err, msgExportFailed)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid orders data", msg)
	assert.Empty(t, pub.models)
}

func TestExportReferenceFailure(t *testing.T) {
	pub := &fakePublisher{}
	_, err := newTestExport(fakeReferences{err: errors.New("quota")}, pub).Export(context.Background(), []models.RawOrder{})

	status, msg := apperrors.PublicMessage(err, msgExportFailed)
	assert.Equal(t, 500, status)
	assert.Equal(t, "Failed to export orders", msg)
	assert.Empty(t, pub.models)
}

func TestExportPublishFailure(t *testing.T) {
	pubErr := &PublishError{Stage: report.StageData, Applied: []report.Stage{report.StageClear}, Err: errors.New("boom")}
	_, err := newTestExport(fakeReferences{}, &fakePublisher{err: pubErr}).Export(context.Background(), []models.RawOrder{})

	var target *PublishError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, report.StageData, target.Stage)

	status, msg := apperrors.PublicMessage(err, msgExportFailed)
	assert.Equal(t, 500, status)
	assert.Equal(t, "Failed to export orders", msg)
}

func TestRenderXLSX(t *testing.T) {
	svc := newTestExport(nil, nil)

	var buf bytes.Buffer
	err := svc.RenderXLSX(context.Background(), []models.RawOrder{
		{SupplierCode: "A1", FlipCode: "F1", ProductName: "Soap", Quantity: "2", Price: "150"},
		{SupplierCode: "B2", FlipCode: "F2", ProductName: "Towel", Quantity: "0", Price: "90"},
	}, &buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := defaultXLSXSheet
	get := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "ПОСТАВКА (К)", get("C1"))
	assert.Equal(t, "Код поставщика", get("A3"))
	assert.Equal(t, "Soap", get("C4"))
	assert.Equal(t, "300", get("F4"))
	assert.Equal(t, "05.03.2024", get("H4"))
	assert.Equal(t, "ИТОГО:", get("C6"))
	assert.Equal(t, "2", get("D6"))
	assert.Equal(t, "300", get("F6"))

	ok, link, err := f.GetCellHyperLink(sheet, "C4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://www.flip.kz/catalog?prod=F1", link)

	width, err := f.GetColWidth(sheet, "A")
	require.NoError(t, err)
	assert.InDelta(t, 120.0/pixelsPerChar, width, 0.01)

	formats, err := f.GetConditionalFormats(sheet)
	require.NoError(t, err)
	assert.Contains(t, formats, "D4:H5")
}

func TestRenderXLSXNilOrders(t *testing.T) {
	var buf bytes.Buffer
	err := newTestExport(nil, nil).RenderXLSX(context.Background(), nil, &buf)
	assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())
	assert.Zero(t, buf.Len())
}
