// internal/commands/report.go
package featcmp

import (
	"github.com/mwiater/featcmp/internal/report"
	"github.com/spf13/cobra"
)

// reportCmd implements 'report', which prints the combined and grouped
// metric tables for a predictions file.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print combined and grouped metric tables for a predictions file",
	Long: `The 'report' command loads a predictions file (.csv, .tsv, .jsonl or .parquet),
computes every registered metric per feature set and prints a COMBINED table
(all runs pooled) and a GROUPED table (mean and std across runs). With
--to-latex each table is also emitted as a booktabs tabular, optionally with
the best and worst value of each column highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := report.OptionsFromConfig(*GetConfig())
		if err != nil {
			return err
		}
		return report.Generate(opts, cmd.OutOrStdout())
	},
}

func init() {
	reportCmd.Flags().StringP("file", "f", "", "predictions file (.csv, .tsv, .jsonl, .parquet)")
	reportCmd.Flags().BoolP("to-latex", "t", false, "also print each table as LaTeX")
	reportCmd.Flags().BoolP("highlight-min-max", "m", false, "tag the best and worst value of each LaTeX column")
	reportCmd.Flags().IntP("num-decimals", "n", 3, "decimals in LaTeX output")
	reportCmd.Flags().String("unknown-placement", "first", "where unlisted feature sets sort: first or last")
	reportCmd.Flags().String("export", "", "write all tables to .json, .yaml, .xlsx or .parquet")
	reportCmd.Flags().String("plot", "", "write a bar chart of grouped means to .png, .svg or .pdf")
	reportCmd.Flags().String("plot-metric", "AUROC", "metric charted by --plot")

	rootCmd.AddCommand(reportCmd)
}
