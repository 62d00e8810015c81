package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"google.golang.org/api/sheets/v4"

	"flip-order-labels/labels"
	"flip-order-labels/models"
	"flip-order-labels/report"
)

type sheetsCall struct {
	method   string
	rng      string
	values   [][]interface{}
	input    string
	requests []*sheets.Request
}

type fakeSheets struct {
	mu        sync.Mutex
	calls     []sheetsCall
	reference [][]string
	ruleCount int
	failOn    string
	failErr   error
}

var _ SheetsServiceInterface = (*fakeSheets)(nil)

func (f *fakeSheets) record(call sheetsCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.failOn == call.method {
		if f.failErr != nil {
			return f.failErr
		}
		return errors.New("sheets unavailable")
	}
	return nil
}

func (f *fakeSheets) GetValues(_ context.Context, rng string) ([][]string, error) {
	if err := f.record(sheetsCall{method: "get", rng: rng}); err != nil {
		return nil, err
	}
	return f.reference, nil
}

func (f *fakeSheets) ClearValues(_ context.Context, rng string) error {
	return f.record(sheetsCall{method: "clear", rng: rng})
}

func (f *fakeSheets) UpdateValues(_ context.Context, rng string, values [][]interface{}, input string) error {
	return f.record(sheetsCall{method: "update", rng: rng, values: values, input: input})
}

func (f *fakeSheets) ConditionalFormatRuleCount(_ context.Context, _ int64) (int, error) {
	if err := f.record(sheetsCall{method: "rules"}); err != nil {
		return 0, err
	}
	return f.ruleCount, nil
}

func (f *fakeSheets) BatchUpdate(_ context.Context, requests []*sheets.Request) error {
	return f.record(sheetsCall{method: "batch", requests: requests})
}

func (f *fakeSheets) methods() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.method)
	}
	return out
}

type fakeReferences struct {
	table report.ReferenceTable
	err   error
}

func (f fakeReferences) Load(context.Context) (report.ReferenceTable, error) {
	return f.table, f.err
}

type fakePublisher struct {
	models []report.Model
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, m report.Model) error {
	f.models = append(f.models, m)
	return f.err
}

type fakeBarcoder struct {
	calls int
	err   error
}

func (f *fakeBarcoder) Encode(_ context.Context, spec labels.BarcodeSpec) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png:" + spec.Text), nil
}

// fakeDocument counts placements and writes a tiny payload on Finalize.
type fakeDocument struct {
	pages   int
	texts   []string
	payload []byte
	err     error
}

func (d *fakeDocument) AddPage(_, _ float64)                               { d.pages++ }
func (d *fakeDocument) Image(_ []byte, _, _, _, _ float64)                 {}
func (d *fakeDocument) Text(s string, _, _, _, _ float64, _ labels.Align) { d.texts = append(d.texts, s) }

func (d *fakeDocument) Finalize(_ context.Context, w io.Writer) error {
	if len(d.payload) > 0 {
		if _, err := w.Write(d.payload); err != nil {
			return err
		}
	}
	return d.err
}

type fakeLedger struct {
	inserted []models.LabelDocument
	recent   []models.LabelDocument
	err      error
}

func (l *fakeLedger) Insert(_ context.Context, doc *models.LabelDocument) error {
	if l.err != nil {
		return l.err
	}
	doc.ID = int64(len(l.inserted) + 1)
	l.inserted = append(l.inserted, *doc)
	return nil
}

func (l *fakeLedger) ListRecent(_ context.Context, limit int) ([]models.LabelDocument, error) {
	if l.err != nil {
		return nil, l.err
	}
	if limit < len(l.recent) {
		return l.recent[:limit], nil
	}
	return l.recent, nil
}
