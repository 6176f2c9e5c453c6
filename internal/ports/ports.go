package ports

import (
	"ReceiptLedger/internal/domain"
	"ReceiptLedger/internal/summary"
)

// RecordSink receives the date-sorted accumulated records. Table rendering
// and raw-CSV download live behind this boundary; they add no logic of
// their own.
type RecordSink interface {
	WriteRecords(records []domain.LineItemRecord) error
}

// SummarySink receives one computed roll-up for display or export.
type SummarySink interface {
	WriteSummary(result summary.Result) error
}
