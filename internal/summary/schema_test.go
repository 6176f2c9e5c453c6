package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ReceiptLedger/internal/domain"
)

func TestRowValues(t *testing.T) {
	t.Parallel()

	row := Row{
		KeyField:       "UPC",
		KeyValue:       "123",
		Item:           "Milk",
		Purchases:      2,
		TotalQty:       decimal.RequireFromString("2"),
		TotalSpent:     decimal.RequireFromString("7"),
		FirstDate:      time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		LastDate:       time.Date(2025, time.August, 23, 0, 0, 0, 0, time.UTC),
		HasDates:       true,
		AvgUnitPrice:   domain.Money(decimal.RequireFromString("3.5")),
		EstDaysPerUnit: domain.Money(decimal.RequireFromString("11")),
	}

	assert.Equal(t,
		[]string{"UPC:123", "Milk", "2025-08-01", "2025-08-23", "2", "2.00", "3.50", "7.00", "11.0"},
		RowValues(row))
}

func TestRowValuesMissingDerived(t *testing.T) {
	t.Parallel()

	values := RowValues(Row{KeyField: "NO-KEY", KeyValue: "Ghost", Item: "Ghost", Purchases: 1})
	assert.Equal(t, "NO-KEY:Ghost", values[0])
	assert.Equal(t, "", values[2])
	assert.Equal(t, "", values[3])
	assert.Equal(t, "", values[6])
	assert.Equal(t, "", values[8])
}
