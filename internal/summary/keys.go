package summary

import "ReceiptLedger/internal/domain"

// defaultKeyFields maps a vendor to its ordered grouping-key candidates;
// the first field with a value wins. Adding a vendor is one more entry
// here (or in config), no code-path branching elsewhere.
var defaultKeyFields = map[string][]string{
	domain.DefaultStore: {"UPC"},
}

const fallbackItemLen = 80

func fieldValue(r domain.LineItemRecord, field string) string {
	switch field {
	case "UPC":
		return r.UPC
	case "Item":
		return r.Item
	case "Date":
		return r.Date
	case "Quantity":
		return r.Quantity
	default:
		return ""
	}
}

// groupKey picks the first non-empty candidate field for the record's
// vendor and formats it as "<field>:<value>". Records with no candidate
// value fall back to a truncated item-name key.
func groupKey(r domain.LineItemRecord, store string, tables map[string][]string) (field, value string) {
	fields := tables[store]
	if fields == nil {
		fields = defaultKeyFields[store]
	}
	for _, f := range fields {
		if v := fieldValue(r, f); v != "" {
			return f, v
		}
	}

	item := r.Item
	if len(item) > fallbackItemLen {
		item = item[:fallbackItemLen]
	}
	return "NO-KEY", item
}
