package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReceiptLedger/internal/domain"
	"ReceiptLedger/internal/extractor"
	"ReceiptLedger/internal/summary"
)

type stubExtractor struct {
	records []domain.LineItemRecord
}

func (s *stubExtractor) Name() string { return domain.DefaultStore }

func (s *stubExtractor) Extract(extractor.Request) ([]domain.LineItemRecord, error) {
	return s.records, nil
}

func newTestSession(records []domain.LineItemRecord) *Session {
	registry := extractor.NewRegistry()
	registry.Register(&stubExtractor{records: records})
	return NewSession(Deps{Registry: registry})
}

const milkCSV = "Item,Date,Unit Price,Quantity,Total Price,Coupon Used,UPC\n" +
	"Milk,\"Aug. 1, 2025\",3.50,1,3.50,No,123"

func TestSessionEndToEnd(t *testing.T) {
	t.Parallel()

	s := newTestSession(nil)

	assert.Equal(t, "Imported 1 row(s); 1 new row(s) added.", s.ImportCSV(milkCSV))
	assert.Equal(t, "Imported 1 row(s); 0 new row(s) added.", s.ImportCSV(milkCSV))
	assert.Equal(t, 1, s.Len())

	result := s.Summarize()
	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, "UPC:123", row.Key())
	assert.Equal(t, 1, row.Purchases)
	assert.Equal(t, "1", row.TotalQty.String())
	assert.Equal(t, "3.50", row.TotalSpent.StringFixed(2))
	require.True(t, row.AvgUnitPrice.Valid)
	assert.Equal(t, "3.50", row.AvgUnitPrice.Decimal.StringFixed(2))
}

func TestSessionProcessMarkup(t *testing.T) {
	t.Parallel()

	records := []domain.LineItemRecord{{
		Item:       "Bread",
		Date:       "Aug. 2, 2025",
		Quantity:   "1",
		TotalPrice: domain.Money(decimal.RequireFromString("2.49")),
		Store:      domain.DefaultStore,
	}}
	s := newTestSession(records)

	assert.Equal(t, "Paste some HTML first.", s.ProcessMarkup("   "))
	assert.Equal(t, "Parsed 1 item block(s); 1 new row(s) added.", s.ProcessMarkup("<html>receipt</html>"))
	assert.Equal(t, "Parsed 1 item block(s); 0 new row(s) added.", s.ProcessMarkup("<html>receipt</html>"))
}

func TestSessionProcessMarkupNoItems(t *testing.T) {
	t.Parallel()

	s := newTestSession(nil)
	assert.Equal(t,
		"No items found — make sure you pasted the correct receipt HTML.",
		s.ProcessMarkup("<p>unrelated</p>"))
	assert.Equal(t, 0, s.Len())
}

func TestSessionImportFailuresLeaveStoreUntouched(t *testing.T) {
	t.Parallel()

	s := newTestSession(nil)
	s.ImportCSV(milkCSV)

	assert.Equal(t, "CSV appears empty.", s.ImportCSV(""))
	assert.Equal(t,
		"CSV missing headers: Total Price, UPC",
		s.ImportCSV("Item,Date,Unit Price,Quantity,Coupon Used\nMilk,Aug 1,3.50,1,No"))
	assert.Equal(t, 1, s.Len())
}

func TestSessionExportCSV(t *testing.T) {
	t.Parallel()

	s := newTestSession(nil)

	_, ok := s.ExportCSV()
	assert.False(t, ok)

	s.ImportCSV(milkCSV)
	text, ok := s.ExportCSV()
	require.True(t, ok)
	assert.Contains(t, text, "Item,Date,Unit Price,Quantity,Total Price,Coupon Used,UPC")
	assert.Contains(t, text, "Milk")
}

func TestSessionExportSummaryCSV(t *testing.T) {
	t.Parallel()

	s := newTestSession(nil)
	s.ImportCSV(milkCSV)

	text, ok := s.ExportSummaryCSV()
	require.True(t, ok)
	assert.Contains(t, text, "Est. Days / Unit")
	assert.Contains(t, text, "UPC:123")
}

func TestSessionClearAndCount(t *testing.T) {
	t.Parallel()

	s := newTestSession(nil)
	assert.Equal(t, "0 items", s.CountLabel())

	s.ImportCSV(milkCSV)
	assert.Equal(t, "1 item", s.CountLabel())

	assert.Equal(t, "Cleared.", s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "Imported 1 row(s); 1 new row(s) added.", s.ImportCSV(milkCSV))
}

func TestSessionRenderSummary(t *testing.T) {
	t.Parallel()

	s := newTestSession(nil)
	s.ImportCSV(milkCSV)

	var got summary.Result
	err := s.RenderSummary(summarySinkFunc(func(r summary.Result) error {
		got = r
		return nil
	}))
	require.NoError(t, err)
	assert.Len(t, got.Rows, 1)
}

type summarySinkFunc func(summary.Result) error

func (f summarySinkFunc) WriteSummary(r summary.Result) error { return f(r) }
