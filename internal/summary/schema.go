package summary

import "fmt"

// Headers is the canonical summary export column order. Prices are bare
// decimals and the grouping key travels as one formatted column; the
// variant that dropped the date columns and prefixed a currency symbol is
// deliberately not reproduced.
var Headers = []string{
	"Key", "Item", "First Date", "Last Date", "Purchases",
	"Total Qty", "Avg Unit Price ($/unit)", "Total Spent", "Est. Days / Unit",
}

const dateLayout = "2006-01-02"

// RowValues flattens one roll-up row into the canonical column order,
// shared by the CSV and XLSX export surfaces. Quantities and prices carry
// two decimal places, the cadence estimate one; missing derived values
// render empty.
func RowValues(row Row) []string {
	first, last := "", ""
	if row.HasDates {
		first = row.FirstDate.Format(dateLayout)
		last = row.LastDate.Format(dateLayout)
	}

	avg, est := "", ""
	if row.AvgUnitPrice.Valid {
		avg = row.AvgUnitPrice.Decimal.StringFixed(2)
	}
	if row.EstDaysPerUnit.Valid {
		est = row.EstDaysPerUnit.Decimal.StringFixed(1)
	}

	return []string{
		row.Key(),
		row.Item,
		first,
		last,
		fmt.Sprintf("%d", row.Purchases),
		row.TotalQty.StringFixed(2),
		avg,
		row.TotalSpent.StringFixed(2),
		est,
	}
}

// DateLabel formats a dataset boundary date for export surfaces.
func DateLabel(result Result, last bool) string {
	if !result.HasDates {
		return ""
	}
	if last {
		return result.LastDate.Format(dateLayout)
	}
	return result.FirstDate.Format(dateLayout)
}
