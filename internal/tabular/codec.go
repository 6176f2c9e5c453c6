// Package tabular converts between ordered record sequences and the
// delimited text form used for exports and re-imports.
package tabular

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"ReceiptLedger/internal/domain"
)

// ErrEmpty reports an import source that yielded zero parsed rows. It is
// distinct from a schema failure so the caller can word the status message.
var ErrEmpty = errors.New("csv appears empty")

// MissingHeadersError enumerates required header names absent from the
// import header row. No rows are admitted when any are missing.
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return "csv missing headers: " + strings.Join(e.Missing, ", ")
}

// Parse scans delimited text into rows of fields. A double quote toggles
// quote mode, a doubled quote inside quotes is a literal quote, commas and
// newlines split only outside quotes, and carriage returns are dropped.
// Rows are not required to share a column count.
func Parse(text string) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			row = append(row, field.String())
			field.Reset()
		case c == '\n' && !inQuotes:
			row = append(row, field.String())
			rows = append(rows, row)
			row = nil
			field.Reset()
		case c != '\r':
			field.WriteRune(c)
		}
	}

	row = append(row, field.String())
	rows = append(rows, row)
	return rows
}

var needsQuoting = regexp.MustCompile(`[",\n]`)

func escape(v string) string {
	if needsQuoting.MatchString(v) {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// Serialize renders a header line plus one line per row, quoting fields
// that contain quotes, commas, or newlines. Parsing the result reproduces
// the same field values; quoting is canonicalized, not byte-preserved.
func Serialize(headers []string, rows [][]string) string {
	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(h))
	}
	for _, row := range rows {
		b.WriteByte('\n')
		for i, f := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escape(f))
		}
	}
	return b.String()
}

var (
	nonNumericExpr = regexp.MustCompile(`[^0-9.]`)
	couponYesExpr  = regexp.MustCompile(`(?i)^(yes|true|1)$`)
)

// CoerceMoney strips everything but digits and dots from a field and parses
// the remainder as a decimal. Values that still fail to parse come back as
// missing, never as zero.
func CoerceMoney(v string) decimal.NullDecimal {
	s := nonNumericExpr.ReplaceAllString(v, "")
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return domain.Money(d)
}

// ImportRecords reconciles previously exported (or externally authored)
// delimited text against the canonical header set by name, not position.
// The whole import is rejected when required headers are missing; blank
// rows are skipped.
func ImportRecords(text string) ([]domain.LineItemRecord, error) {
	matrix := Parse(text)
	if len(matrix) == 1 && len(matrix[0]) == 1 && strings.TrimSpace(matrix[0][0]) == "" {
		return nil, ErrEmpty
	}

	headers := make([]string, len(matrix[0]))
	for i, h := range matrix[0] {
		headers[i] = strings.TrimSpace(h)
	}

	index := map[string]int{}
	for i, h := range headers {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	var missing []string
	for _, need := range domain.RecordHeaders {
		if _, ok := index[need]; !ok {
			missing = append(missing, need)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingHeadersError{Missing: missing}
	}

	get := func(row []string, name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []domain.LineItemRecord
	for _, row := range matrix[1:] {
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}
		records = append(records, domain.LineItemRecord{
			Item:       get(row, "Item"),
			Date:       get(row, "Date"),
			UnitPrice:  CoerceMoney(get(row, "Unit Price")),
			Quantity:   get(row, "Quantity"),
			TotalPrice: CoerceMoney(get(row, "Total Price")),
			CouponUsed: couponYesExpr.MatchString(get(row, "Coupon Used")),
			UPC:        get(row, "UPC"),
			Store:      domain.DefaultStore,
		})
	}

	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return records, nil
}

// ExportRecords renders records under the canonical raw headers, money at
// two decimal places and the coupon flag as Yes/No.
func ExportRecords(records []domain.LineItemRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Item,
			r.Date,
			domain.FormatMoney(r.UnitPrice),
			r.Quantity,
			domain.FormatMoney(r.TotalPrice),
			domain.CouponLabel(r.CouponUsed),
			r.UPC,
		})
	}
	return Serialize(domain.RecordHeaders, rows)
}
