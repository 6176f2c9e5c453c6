package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ReceiptLedger/internal/domain"
	"ReceiptLedger/internal/extractor"
	"ReceiptLedger/internal/ports"
	"ReceiptLedger/internal/session"
	"ReceiptLedger/internal/summary"
	"ReceiptLedger/internal/tabular"
)

// Deps wires the extraction registry and store into one session.
type Deps struct {
	Registry       *extractor.Registry
	Store          *session.Store
	Logger         *slog.Logger
	StoreName      string
	KeyFields      map[string][]string
	GroupLocalSpan bool
}

// Session owns one in-memory accumulation store and exposes the paste,
// import, export, summarize, and clear operations of the host pages.
// Failed operations leave the store untouched and come back as status
// text; nothing here is fatal to the running session.
type Session struct {
	registry       *extractor.Registry
	store          *session.Store
	logger         *slog.Logger
	storeName      string
	keyFields      map[string][]string
	groupLocalSpan bool
}

// NewSession builds a session around an empty (or caller-provided) store.
func NewSession(deps Deps) *Session {
	store := deps.Store
	if store == nil {
		store = session.NewStore()
	}
	storeName := deps.StoreName
	if storeName == "" {
		storeName = domain.DefaultStore
	}
	return &Session{
		registry:       deps.Registry,
		store:          store,
		logger:         deps.Logger,
		storeName:      storeName,
		keyFields:      deps.KeyFields,
		groupLocalSpan: deps.GroupLocalSpan,
	}
}

// ProcessMarkup runs the vendor extractor over pasted markup and upserts
// whatever it finds. The returned status is user-visible text.
func (s *Session) ProcessMarkup(markupText string) string {
	markupText = strings.TrimSpace(markupText)
	if markupText == "" {
		return "Paste some HTML first."
	}

	if s.registry == nil {
		return "No items found — make sure you pasted the correct receipt HTML."
	}

	ext, err := s.registry.Resolve(s.storeName)
	if err != nil {
		s.warn("resolve extractor", "store", s.storeName, "error", err)
		return "No items found — make sure you pasted the correct receipt HTML."
	}

	records, err := ext.Extract(extractor.Request{Markup: markupText, Store: s.storeName})
	if err != nil {
		s.warn("extract markup", "store", s.storeName, "error", err)
		records = nil
	}
	if len(records) == 0 {
		return "No items found — make sure you pasted the correct receipt HTML."
	}

	added := s.store.Upsert(records)
	s.debug("markup processed", "parsed", len(records), "added", added)
	return fmt.Sprintf("Parsed %d item block(s); %d new row(s) added.", len(records), added)
}

// ImportCSV reconciles delimited text against the canonical header set and
// upserts the rows. Schema failures abort before the store is touched.
func (s *Session) ImportCSV(text string) string {
	records, err := tabular.ImportRecords(text)
	if err != nil {
		var missing *tabular.MissingHeadersError
		switch {
		case errors.Is(err, tabular.ErrEmpty):
			return "CSV appears empty."
		case errors.As(err, &missing):
			return "CSV missing headers: " + strings.Join(missing.Missing, ", ")
		}
		s.warn("import csv", "error", err)
		return "CSV import failed."
	}

	added := s.store.Upsert(records)
	s.debug("csv imported", "rows", len(records), "added", added)
	return fmt.Sprintf("Imported %d row(s); %d new row(s) added.", len(records), added)
}

// Records returns the accumulated records sorted by parsed date ascending,
// unparseable dates last.
func (s *Session) Records() []domain.LineItemRecord {
	return s.store.Sorted()
}

// Len reports the number of accumulated records.
func (s *Session) Len() int {
	return s.store.Len()
}

// CountLabel is the "N item(s)" row-count text shown next to the table.
func (s *Session) CountLabel() string {
	if s.store.Len() == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", s.store.Len())
}

// ExportCSV renders the raw records under the canonical headers. The
// second return is false when there is nothing to export.
func (s *Session) ExportCSV() (string, bool) {
	if s.store.Len() == 0 {
		return "", false
	}
	return tabular.ExportRecords(s.store.Sorted()), true
}

// Summarize recomputes the roll-up from the current store contents.
func (s *Session) Summarize() summary.Result {
	return summary.Summarize(s.store.Sorted(), s.storeName, summary.Options{
		KeyFields:      s.keyFields,
		GroupLocalSpan: s.groupLocalSpan,
	})
}

// ExportSummaryCSV renders the roll-up under the canonical summary schema.
func (s *Session) ExportSummaryCSV() (string, bool) {
	if s.store.Len() == 0 {
		return "", false
	}
	result := s.Summarize()
	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, summary.RowValues(row))
	}
	return tabular.Serialize(summary.Headers, rows), true
}

// RenderRecords hands the sorted records to a host display surface.
func (s *Session) RenderRecords(sink ports.RecordSink) error {
	return sink.WriteRecords(s.store.Sorted())
}

// RenderSummary hands the computed roll-up to a host display surface.
func (s *Session) RenderSummary(sink ports.SummarySink) error {
	return sink.WriteSummary(s.Summarize())
}

// Clear resets the session store. No partial clear exists.
func (s *Session) Clear() string {
	s.store.Clear()
	return "Cleared."
}

func (s *Session) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Session) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
