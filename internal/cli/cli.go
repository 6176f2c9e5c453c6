// Package cli is the host surface around the pipeline library: it reads
// pasted-markup and CSV files, feeds them to the session, and writes the
// table, CSV, and workbook outputs the original pages rendered in-browser.
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ReceiptLedger/internal/app"
	"ReceiptLedger/internal/domain"
	"ReceiptLedger/internal/infrastructure/export"
	"ReceiptLedger/internal/ports"
)

const version = "1.0.0"

// New assembles the root command for one application instance.
func New(application *app.Application) *cobra.Command {
	root := &cobra.Command{
		Use:           "receiptledger",
		Short:         "Extract, accumulate, and summarize grocery receipt line items",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newProcessCmd(application))
	root.AddCommand(newVersionCmd())
	return root
}

func newProcessCmd(application *app.Application) *cobra.Command {
	var (
		mergeCSV   string
		outCSV     string
		summaryCSV string
		outXLSX    string
	)

	cmd := &cobra.Command{
		Use:   "process [markup file...]",
		Short: "Run receipt markup and CSV imports through one session",
		Long: `Process feeds each markup file and the optional merge CSV through a
single in-memory session: records are extracted, deduplicated, and sorted
by purchase date, then written as a table, CSV, or summary workbook.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := application.Session()

			if mergeCSV != "" {
				text, err := os.ReadFile(mergeCSV)
				if err != nil {
					return fmt.Errorf("read %s: %w", mergeCSV, err)
				}
				cmd.Println(session.ImportCSV(string(text)))
			}

			for _, path := range args {
				text, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				cmd.Println(session.ProcessMarkup(string(text)))
			}

			if outCSV != "" {
				text, ok := session.ExportCSV()
				if !ok {
					cmd.Println("Nothing to export.")
				} else if err := os.WriteFile(outCSV, []byte(text+"\n"), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outCSV, err)
				}
			} else if err := session.RenderRecords(newTableWriter(cmd)); err != nil {
				return err
			}

			if summaryCSV != "" {
				text, ok := session.ExportSummaryCSV()
				if !ok {
					cmd.Println("Nothing to summarize.")
				} else if err := os.WriteFile(summaryCSV, []byte(text+"\n"), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", summaryCSV, err)
				}
			}

			if outXLSX != "" {
				if err := session.RenderSummary(export.NewXLSXWriter(outXLSX)); err != nil {
					return fmt.Errorf("write %s: %w", outXLSX, err)
				}
			}

			cmd.Println(session.CountLabel())
			return nil
		},
	}

	cmd.Flags().StringVar(&mergeCSV, "merge", "", "CSV export to merge into the session before processing")
	cmd.Flags().StringVar(&outCSV, "out", "", "write the accumulated records as CSV instead of printing a table")
	cmd.Flags().StringVar(&summaryCSV, "summary", "", "write the purchase-history roll-up as CSV")
	cmd.Flags().StringVar(&outXLSX, "xlsx", "", "write the purchase-history roll-up as an XLSX workbook")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the receiptledger version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("receiptledger " + version)
		},
	}
}

// tableWriter prints the accumulated records as an aligned text table, the
// CLI stand-in for the original HTML table.
type tableWriter struct {
	cmd *cobra.Command
}

var _ ports.RecordSink = (*tableWriter)(nil)

func newTableWriter(cmd *cobra.Command) *tableWriter {
	return &tableWriter{cmd: cmd}
}

func (w *tableWriter) WriteRecords(records []domain.LineItemRecord) error {
	if len(records) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w.cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Item\tDate\tUnit Price\tQuantity\tTotal Price\tCoupon Used\tUPC")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Item,
			r.Date,
			domain.FormatMoney(r.UnitPrice),
			r.Quantity,
			domain.FormatMoney(r.TotalPrice),
			domain.CouponLabel(r.CouponUsed),
			r.UPC,
		)
	}
	return tw.Flush()
}
