package markup

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"ReceiptLedger/internal/domain"
	"ReceiptLedger/internal/extractor"
)

var (
	orderDateExpr = regexp.MustCompile(`Order Date:\s*([A-Za-z]{3,9}\.?\s*\d{1,2},?\s*\d{4})`)
	amountExpr    = regexp.MustCompile(`\$([0-9]+(?:\.[0-9]{2})?)`)
	qtyExpr       = regexp.MustCompile(`(?i)([0-9.]+\s*(?:lbs|lb)?)\s*x\s*\$([0-9]+\.[0-9]{2})`)
	upcLineExpr   = regexp.MustCompile(`^UPC:\s*\d+`)
	upcExpr       = regexp.MustCompile(`UPC:\s*([0-9]+)`)
	couponExpr    = regexp.MustCompile(`(?i)Item\s+Coupon/Sale`)
	spaceExpr     = regexp.MustCompile(`\s+`)
	lbUnitExpr    = regexp.MustCompile(`(?i)\blb\b`)
)

// KrogerExtractor pulls line items out of a Kroger order-confirmation page.
type KrogerExtractor struct {
	logger *slog.Logger
}

var _ extractor.Extractor = (*KrogerExtractor)(nil)

// NewKrogerExtractor wires an optional logger for extraction diagnostics.
func NewKrogerExtractor(logger *slog.Logger) *KrogerExtractor {
	return &KrogerExtractor{logger: logger}
}

// Name identifies the strategy inside the registry.
func (k *KrogerExtractor) Name() string {
	return domain.DefaultStore
}

// Extract parses the pasted markup and returns line items in document
// order. Markup that matches nothing yields zero records, not an error.
func (k *KrogerExtractor) Extract(req extractor.Request) ([]domain.LineItemRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(req.Markup))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	orderDate := orderDateFrom(doc)
	records := make([]domain.LineItemRecord, 0)

	doc.Find("div.mt-8.mb-4").Each(func(_ int, block *goquery.Selection) {
		record, ok := parseBlock(block, orderDate)
		if !ok {
			return
		}
		records = append(records, record)
	})

	k.debug("extraction done", "blocks", len(records), "order_date", orderDate)
	return records, nil
}

// orderDateFrom scans normalized body text for the order-date label. The
// sentinel "Unknown" is shared by every record of the call when absent.
func orderDateFrom(doc *goquery.Document) string {
	allText := strings.TrimSpace(spaceExpr.ReplaceAllString(doc.Find("body").Text(), " "))
	if m := orderDateExpr.FindStringSubmatch(allText); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Unknown"
}

func parseBlock(block *goquery.Selection, orderDate string) (domain.LineItemRecord, bool) {
	nameEl := block.Find(".kds-Text--m.kds-Text--bold").First()
	if nameEl.Length() == 0 {
		return domain.LineItemRecord{}, false
	}
	itemName := strings.TrimSpace(nameEl.Text())

	totalPrice, ok := blockTotal(block)
	if !ok {
		return domain.LineItemRecord{}, false
	}

	quantity, unitPrice := blockQuantity(block, totalPrice)

	return domain.LineItemRecord{
		Item:       itemName,
		Date:       orderDate,
		UnitPrice:  domain.Money(unitPrice),
		Quantity:   quantity,
		TotalPrice: domain.Money(totalPrice),
		CouponUsed: couponExpr.MatchString(block.Text()),
		UPC:        blockUPC(block),
		Store:      domain.DefaultStore,
	}, true
}

// blockTotal prefers the rightmost amount in the header row (the line
// total); when the header row carries no amount it falls back to the first
// amount anywhere in the block. A block with no amount at all is dropped.
func blockTotal(block *goquery.Selection) (decimal.Decimal, bool) {
	headerRow := block.Find(".flex.justify-between.items-center, .flex.justify-between").First()
	if headerRow.Length() == 0 {
		headerRow = block
	}

	var spanTexts []string
	headerRow.Find("span").Each(func(_ int, s *goquery.Selection) {
		spanTexts = append(spanTexts, strings.TrimSpace(s.Text()))
	})
	for i := len(spanTexts) - 1; i >= 0; i-- {
		if m := amountExpr.FindStringSubmatch(spanTexts[i]); m != nil {
			if d, err := decimal.NewFromString(m[1]); err == nil {
				return d, true
			}
		}
	}

	if m := amountExpr.FindStringSubmatch(block.Text()); m != nil {
		if d, err := decimal.NewFromString(m[1]); err == nil {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}

// blockQuantity matches "<qty>[ lbs] x $<unit price>" in the detail
// elements. Without a match the line is assumed to be one unit priced at
// the line total.
func blockQuantity(block *goquery.Selection, totalPrice decimal.Decimal) (string, decimal.Decimal) {
	quantity := "1"
	unitPrice := totalPrice

	block.Find(".ml-12.mt-4, .ml-12.mt-4 span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		m := qtyExpr.FindStringSubmatch(strings.TrimSpace(s.Text()))
		if m == nil {
			return true
		}
		if d, err := decimal.NewFromString(m[2]); err == nil {
			quantity = strings.TrimSpace(lbUnitExpr.ReplaceAllString(m[1], "lbs"))
			unitPrice = d
			return false
		}
		return true
	})

	return quantity, unitPrice
}

func blockUPC(block *goquery.Selection) string {
	upc := ""
	block.Find(".ml-12.mt-4, *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if !upcLineExpr.MatchString(text) {
			return true
		}
		if m := upcExpr.FindStringSubmatch(text); m != nil {
			upc = m[1]
			return false
		}
		return true
	})
	return upc
}

func (k *KrogerExtractor) debug(msg string, args ...any) {
	if k.logger != nil {
		k.logger.Debug(msg, args...)
	}
}
