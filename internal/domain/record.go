package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultStore is the single vendor supported today.
const DefaultStore = "kroger"

// RecordHeaders is the canonical column order for raw line-item exports.
var RecordHeaders = []string{"Item", "Date", "Unit Price", "Quantity", "Total Price", "Coupon Used", "UPC"}

// LineItemRecord is one purchased item line extracted from a receipt or
// imported from a previous export. Money fields use NullDecimal so a value
// that failed to parse stays "missing" instead of collapsing to zero.
type LineItemRecord struct {
	Item       string
	Date       string
	UnitPrice  decimal.NullDecimal
	Quantity   string
	TotalPrice decimal.NullDecimal
	CouponUsed bool
	UPC        string
	Store      string
}

// IdentityKey is the heuristic dedup identity: the source data carries no
// stable row ID, so two records agreeing on all five fields are the same
// record. Distinct purchases that collide on the tuple are merged by design.
func (r LineItemRecord) IdentityKey() string {
	return strings.Join([]string{r.Date, r.Item, r.UPC, r.Quantity, MoneyString(r.TotalPrice)}, "|")
}

// MoneyString renders an optional amount for keys and exports; missing
// values become the empty string.
func MoneyString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// FormatMoney renders an amount with two decimal places, or empty when the
// value is missing.
func FormatMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

// Money wraps a parsed amount into a present NullDecimal.
func Money(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// CouponLabel is the Yes/No form used in exports and imports.
func CouponLabel(used bool) string {
	if used {
		return "Yes"
	}
	return "No"
}
