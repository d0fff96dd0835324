package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/matchstats/loader"
	"github.com/ridoystarlord/matchstats/report"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the first rows of the match table",
	Long: `Load the match table and print its first rows under the canonical column names.

Examples:
  matchstats preview --file matches.csv
  matchstats preview --file matches.csv -n 20
`,
	Run: func(cmd *cobra.Command, args []string) {
		rows := cfg.Analysis.PreviewRows
		if cmd.Flags().Changed("rows") {
			rows = previewRows
		}
		if err := runPreview(os.Stdout, rows); err != nil {
			fail("Preview failed: %v", err)
			return
		}
	},
}

var previewRows int

func init() {
	previewCmd.Flags().IntVarP(&previewRows, "rows", "n", 5, "Number of rows to show")
}

func runPreview(w io.Writer, rows int) error {
	records, file, err := loadMatches()
	if errors.Is(err, loader.ErrMissingInput) {
		promptForInput(w)
		return nil
	}
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintln(w, "✅", loadedMessage)
	fmt.Fprintf(w, "📄 %s (%d matches)\n\n", file, len(records))
	report.WriteTableText(w, report.PreviewTable(records, rows))
	return nil
}
