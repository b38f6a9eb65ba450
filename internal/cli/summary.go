package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"finance-tracker/internal/analytics"

	"github.com/spf13/cobra"
)

var summaryMonth string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print spending totals and budget status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.store.Close()

		summary, err := svc.summaries.Summarize(cmd.Context(), summaryMonth)
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), svc.summaries.CurrencySymbol(), summary)
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryMonth, "month", "m", "", "Limit to one budget month, e.g. April'25")
}

func printSummary(out io.Writer, symbol string, s analytics.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Total spend:\t%s%s\t(%d transactions)\n", symbol, s.Total.StringFixed(2), s.Count)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "MONTH\tTOTAL")
	for _, b := range s.ByMonth.Buckets {
		fmt.Fprintf(w, "%s\t%s\n", b.Key, b.Total.StringFixed(2))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CATEGORY\tTOTAL\tCOLOR")
	for _, c := range s.ByCategory {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Category, c.Total.StringFixed(2), c.Color)
	}

	if len(s.Budgets) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "BUDGET\tLIMIT\tSPENT\tSTATUS\tNOTE")
		for _, b := range s.Budgets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				b.Category, b.Budget.StringFixed(2), b.Spent.StringFixed(2), b.Status, b.Message)
		}
	}
	if s.SkippedDate > 0 {
		fmt.Fprintf(w, "\n%d transactions without a usable date were left out of the monthly totals\n", s.SkippedDate)
	}
	return w.Flush()
}
