package summary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReceiptLedger/internal/domain"
)

func money(s string) decimal.NullDecimal {
	return domain.Money(decimal.RequireFromString(s))
}

func TestQuantityMagnitude(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2.31", QuantityMagnitude("2.31 lbs").String())
	assert.Equal(t, "2", QuantityMagnitude("2").String())
	assert.Equal(t, "1", QuantityMagnitude("each").String())
	assert.Equal(t, "1", QuantityMagnitude("").String())
	assert.Equal(t, "0.5", QuantityMagnitude(".5 lbs").String())
}

func TestSummarizeSingleGroup(t *testing.T) {
	t.Parallel()

	records := []domain.LineItemRecord{
		{Item: "Milk", Date: "Aug. 1, 2025", UPC: "123", Quantity: "1", TotalPrice: money("3.50")},
	}

	res := Summarize(records, domain.DefaultStore, Options{})
	require.Len(t, res.Rows, 1)

	row := res.Rows[0]
	assert.Equal(t, "UPC", row.KeyField)
	assert.Equal(t, "123", row.KeyValue)
	assert.Equal(t, "UPC:123", row.Key())
	assert.Equal(t, "Milk", row.Item)
	assert.Equal(t, 1, row.Purchases)
	assert.Equal(t, "1", row.TotalQty.String())
	assert.Equal(t, "3.5", row.TotalSpent.String())
	require.True(t, row.AvgUnitPrice.Valid)
	assert.Equal(t, "3.50", row.AvgUnitPrice.Decimal.StringFixed(2))

	assert.EqualValues(t, 1, res.DaySpan)
	assert.Equal(t, "3.50", res.Stats.TotalSpent.StringFixed(2))
	assert.Equal(t, 1, res.Stats.OrderCount)
}

func TestSummarizeGroupKeyFallback(t *testing.T) {
	t.Parallel()

	records := []domain.LineItemRecord{
		{Item: "Banana", Date: "Aug 1, 2025", Quantity: "1", TotalPrice: money("0.50")},
	}

	res := Summarize(records, domain.DefaultStore, Options{})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "NO-KEY:Banana", res.Rows[0].Key())
}

func TestSummarizeSpendFallback(t *testing.T) {
	t.Parallel()

	records := []domain.LineItemRecord{
		{Item: "Apples", Date: "Aug 1, 2025", UPC: "9", Quantity: "3", UnitPrice: money("2.00")},
	}

	res := Summarize(records, domain.DefaultStore, Options{})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "6.00", res.Rows[0].TotalSpent.StringFixed(2))
	// dataset total never falls back to unit price x quantity
	assert.Equal(t, "0.00", res.Stats.TotalSpent.StringFixed(2))
}

func TestSummarizeMissingSpendExcluded(t *testing.T) {
	t.Parallel()

	records := []domain.LineItemRecord{
		{Item: "Ghost", Date: "Aug 1, 2025", UPC: "7", Quantity: "2"},
		{Item: "Ghost", Date: "Aug 2, 2025", UPC: "7", Quantity: "1", TotalPrice: money("4.00")},
	}

	res := Summarize(records, domain.DefaultStore, Options{})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 2, res.Rows[0].Purchases)
	assert.Equal(t, "3", res.Rows[0].TotalQty.String())
	assert.Equal(t, "4.00", res.Rows[0].TotalSpent.StringFixed(2))
}

func TestSummarizeDaySpanFloor(t *testing.T) {
	t.Parallel()

	records := []domain.LineItemRecord{
		{Item: "A", Date: "Aug 1, 2025", UPC: "1", Quantity: "1", TotalPrice: money("1.00")},
		{Item: "B", Date: "Aug 1, 2025", UPC: "2", Quantity: "1", TotalPrice: money("1.00")},
	}

	res := Summarize(records, domain.DefaultStore, Options{})
	assert.EqualValues(t, 1, res.DaySpan)

	res = Summarize(nil, domain.DefaultStore, Options{})
	assert.EqualValues(t, 1, res.DaySpan)
	assert.False(t, res.HasDates)
}

func TestSummarizeCadence(t *testing.T) {
	t.Parallel()

	// 30 whole days between first and last purchase, 3 units bought.
	records := []domain.LineItemRecord{
		{Item: "Coffee", Date: "2025-07-01", UPC: "55", Quantity: "1", TotalPrice: money("10.00")},
		{Item: "Coffee", Date: "2025-07-31", UPC: "55", Quantity: "2", TotalPrice: money("20.00")},
		{Item: "Soap", Date: "2025-07-31", UPC: "66", Quantity: "1", TotalPrice: money("2.00")},
	}

	res := Summarize(records, domain.DefaultStore, Options{})
	require.Len(t, res.Rows, 2)
	assert.EqualValues(t, 30, res.DaySpan)

	coffee := res.Rows[0]
	require.True(t, coffee.EstDaysPerUnit.Valid)
	assert.Equal(t, "10", coffee.EstDaysPerUnit.Decimal.String())

	// the dataset-wide span leaks into single-date groups by default
	soap := res.Rows[1]
	assert.Equal(t, "30", soap.EstDaysPerUnit.Decimal.String())

	local := Summarize(records, domain.DefaultStore, Options{GroupLocalSpan: true})
	assert.Equal(t, "1", local.Rows[1].EstDaysPerUnit.Decimal.String())
}

func TestSummarizeSortAndStability(t *testing.T) {
	t.Parallel()

	records := []domain.LineItemRecord{
		{Item: "Zucchini", Date: "Aug 1, 2025", UPC: "3", Quantity: "1", TotalPrice: money("1.00")},
		{Item: "Apples", Date: "Aug 1, 2025", UPC: "1", Quantity: "1", TotalPrice: money("1.00")},
		{Item: "Apples", Date: "Aug 1, 2025", UPC: "2", Quantity: "1", TotalPrice: money("1.00")},
	}

	res := Summarize(records, domain.DefaultStore, Options{})
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "UPC:1", res.Rows[0].Key())
	assert.Equal(t, "UPC:2", res.Rows[1].Key())
	assert.Equal(t, "Zucchini", res.Rows[2].Item)
}

func TestSummarizeDatasetStats(t *testing.T) {
	t.Parallel()

	records := []domain.LineItemRecord{
		{Item: "A", Date: "2025-07-01", UPC: "1", Quantity: "1", TotalPrice: money("3.00")},
		{Item: "B", Date: "2025-07-01", UPC: "2", Quantity: "1", TotalPrice: money("2.00")},
		{Item: "C", Date: "2025-07-11", UPC: "3", Quantity: "1", TotalPrice: money("5.00")},
		{Item: "D", Date: "Unknown", UPC: "4", Quantity: "1", TotalPrice: money("1.00")},
	}

	res := Summarize(records, domain.DefaultStore, Options{})
	assert.Equal(t, 2, res.Stats.OrderCount)
	assert.Equal(t, "11.00", res.Stats.TotalSpent.StringFixed(2))
	assert.EqualValues(t, 10, res.DaySpan)
	assert.Equal(t, "1.10", res.Stats.SpendPerDay.StringFixed(2))
}

func TestSummarizeKeyFieldOverride(t *testing.T) {
	t.Parallel()

	records := []domain.LineItemRecord{
		{Item: "Same Thing", Date: "Aug 1, 2025", UPC: "1", Quantity: "1", TotalPrice: money("1.00")},
		{Item: "Same Thing", Date: "Aug 2, 2025", UPC: "2", Quantity: "1", TotalPrice: money("1.00")},
	}

	tables := map[string][]string{domain.DefaultStore: {"Item", "UPC"}}
	res := Summarize(records, domain.DefaultStore, Options{KeyFields: tables})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Item:Same Thing", res.Rows[0].Key())
	assert.Equal(t, 2, res.Rows[0].Purchases)
}
