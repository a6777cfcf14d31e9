// internal/commands/view.go
package featcmp

import (
	"github.com/mwiater/featcmp/internal/report"
	"github.com/mwiater/featcmp/internal/tui"
	"github.com/spf13/cobra"
)

// viewCmd opens the interactive table viewer.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse combined, grouped and per-run tables interactively",
	Long:  `The 'view' command computes the same tables as 'report' and opens them in a terminal viewer. Tab switches between the combined, grouped and per-run tables; q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := report.OptionsFromConfig(*GetConfig())
		if err != nil {
			return err
		}
		comparison, err := report.Build(opts)
		if err != nil {
			return err
		}
		return tui.Run(opts.Input, comparison)
	},
}

func init() {
	viewCmd.Flags().StringP("file", "f", "", "predictions file (.csv, .tsv, .jsonl, .parquet)")
	viewCmd.Flags().String("unknown-placement", "first", "where unlisted feature sets sort: first or last")

	rootCmd.AddCommand(viewCmd)
}
