// Package summary recomputes the purchase-history roll-up from the
// accumulated records. Nothing here is incremental: every call rebuilds
// the whole result and the previous one is discarded.
package summary

import (
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"ReceiptLedger/internal/domain"
	"ReceiptLedger/internal/session"
)

// Options tune a summarization request.
type Options struct {
	// KeyFields overrides the built-in vendor grouping-key tables.
	KeyFields map[string][]string
	// GroupLocalSpan switches the cadence estimate to each group's own
	// first/last date span. The default uses the dataset-wide span for
	// every group, matching the documented behavior of the feature even
	// though it conflates a group's cadence with the dataset duration.
	GroupLocalSpan bool
}

// Row is one aggregated group of the roll-up.
type Row struct {
	KeyField       string
	KeyValue       string
	Item           string
	Purchases      int
	TotalQty       decimal.Decimal
	TotalSpent     decimal.Decimal
	FirstDate      time.Time
	LastDate       time.Time
	HasDates       bool
	AvgUnitPrice   decimal.NullDecimal
	EstDaysPerUnit decimal.NullDecimal
}

// Key renders the formatted grouping key.
func (r Row) Key() string {
	return r.KeyField + ":" + r.KeyValue
}

// Stats are dataset-wide figures, independent of grouping.
type Stats struct {
	// TotalSpent sums valid total prices only; there is no unit-price
	// fallback at the dataset level.
	TotalSpent decimal.Decimal
	// OrderCount counts distinct calendar dates, since one vendor order
	// may span many line items on one date.
	OrderCount  int
	SpendPerDay decimal.Decimal
}

// Result is the output of one summarization request.
type Result struct {
	Rows      []Row
	FirstDate time.Time
	LastDate  time.Time
	HasDates  bool
	DaySpan   int64
	Stats     Stats
}

var quantityExpr = regexp.MustCompile(`[0-9]*\.?[0-9]+`)

// QuantityMagnitude extracts the first decimal-number substring of a
// quantity text ("2.31 lbs" -> 2.31). Text with no number means at least
// one item was bought, so it defaults to 1.
func QuantityMagnitude(q string) decimal.Decimal {
	if m := quantityExpr.FindString(q); m != "" {
		if d, err := decimal.NewFromString(m); err == nil {
			return d
		}
	}
	return decimal.NewFromInt(1)
}

// resolveSpend prefers the explicit total; a valid unit price times the
// quantity magnitude is the fallback. An unknown price never becomes zero.
func resolveSpend(r domain.LineItemRecord, qty decimal.Decimal) decimal.NullDecimal {
	if r.TotalPrice.Valid {
		return r.TotalPrice
	}
	if r.UnitPrice.Valid {
		return domain.Money(r.UnitPrice.Decimal.Mul(qty))
	}
	return decimal.NullDecimal{}
}

func spanDays(first, last time.Time) int64 {
	days := int64(math.Round(last.Sub(first).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

type group struct {
	row      Row
	spentSum decimal.Decimal
	qtySum   decimal.Decimal
}

// Summarize groups records by their vendor grouping key and derives the
// per-group and dataset-wide statistics described by the output schema.
func Summarize(records []domain.LineItemRecord, store string, opts Options) Result {
	var (
		groups  = map[string]*group{}
		order   []string
		first   time.Time
		last    time.Time
		hasDate bool

		totalSpent decimal.Decimal
		orderDates = map[string]struct{}{}
	)

	type resolved struct {
		record domain.LineItemRecord
		date   time.Time
		dateOK bool
		qty    decimal.Decimal
		spend  decimal.NullDecimal
	}
	items := make([]resolved, 0, len(records))

	for _, r := range records {
		date, ok := session.ParseDate(r.Date)
		qty := QuantityMagnitude(r.Quantity)
		items = append(items, resolved{record: r, date: date, dateOK: ok, qty: qty, spend: resolveSpend(r, qty)})

		if ok {
			if !hasDate || date.Before(first) {
				first = date
			}
			if !hasDate || date.After(last) {
				last = date
			}
			hasDate = true
			orderDates[date.Format("2006-01-02")] = struct{}{}
		}
		if r.TotalPrice.Valid {
			totalSpent = totalSpent.Add(r.TotalPrice.Decimal)
		}
	}

	daySpan := int64(1)
	if hasDate {
		daySpan = spanDays(first, last)
	}

	for _, it := range items {
		field, value := groupKey(it.record, store, opts.KeyFields)
		key := field + ":" + value
		g, ok := groups[key]
		if !ok {
			g = &group{row: Row{KeyField: field, KeyValue: value, Item: it.record.Item}}
			groups[key] = g
			order = append(order, key)
		}

		g.row.Purchases++
		g.qtySum = g.qtySum.Add(it.qty)
		if it.spend.Valid {
			g.spentSum = g.spentSum.Add(it.spend.Decimal)
		}
		if it.dateOK {
			if !g.row.HasDates || it.date.Before(g.row.FirstDate) {
				g.row.FirstDate = it.date
			}
			if !g.row.HasDates || it.date.After(g.row.LastDate) {
				g.row.LastDate = it.date
			}
			g.row.HasDates = true
		}
	}

	rows := make([]Row, 0, len(order))
	for _, key := range order {
		g := groups[key]
		row := g.row
		row.TotalQty = g.qtySum.Round(2)
		row.TotalSpent = g.spentSum.Round(2)

		if g.qtySum.IsPositive() {
			row.AvgUnitPrice = domain.Money(g.spentSum.Div(g.qtySum).Round(2))

			span := daySpan
			if opts.GroupLocalSpan {
				span = 1
				if row.HasDates {
					span = spanDays(row.FirstDate, row.LastDate)
				}
			}
			row.EstDaysPerUnit = domain.Money(decimal.NewFromInt(span).Div(g.qtySum).Round(1))
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Item < rows[j].Item
	})

	return Result{
		Rows:      rows,
		FirstDate: first,
		LastDate:  last,
		HasDates:  hasDate,
		DaySpan:   daySpan,
		Stats: Stats{
			TotalSpent:  totalSpent.Round(2),
			OrderCount:  len(orderDates),
			SpendPerDay: totalSpent.Div(decimal.NewFromInt(daySpan)).Round(2),
		},
	}
}
