package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"finance-tracker/internal/service"

	"github.com/spf13/cobra"
)

var (
	reportOutput string
	reportMonth  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the spending summary as a PDF file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.store.Close()

		if dir := filepath.Dir(reportOutput); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", reportOutput, err)
		}

		reports := service.NewReportService(svc.summaries, appLogger)
		if err := reports.WriteSummaryPDF(cmd.Context(), f, reportMonth); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", reportOutput)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "finance-summary.pdf", "Output PDF path")
	reportCmd.Flags().StringVarP(&reportMonth, "month", "m", "", "Limit to one budget month, e.g. April'25")
}
