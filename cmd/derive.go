package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/matchstats/derive"
	"github.com/ridoystarlord/matchstats/loader"
	"github.com/ridoystarlord/matchstats/report"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Export the match table with derived columns",
	Long: `Write every match with its derived columns appended: batting_first,
winner_batted_first, toss_winner_won_match, toss_decision_norm, home_team
and away_team. Undefined values are written as empty cells (csv) or
empty strings (json, yaml).

Examples:
  matchstats derive --file matches.csv
  matchstats derive --file matches.csv --format json -o derived.json
`,
	Run: func(cmd *cobra.Command, args []string) {
		w, closeOut, err := openOutput(deriveOut)
		if err != nil {
			fail("%v", err)
			return
		}
		err = runDerive(w, deriveFormat)
		if cerr := closeOut(); err == nil {
			err = cerr
		}
		if err != nil {
			fail("Derive failed: %v", err)
			return
		}
		if deriveOut != "" {
			fmt.Printf("✅ Derived table written to %s\n", deriveOut)
		}
	},
}

var (
	deriveFormat string
	deriveOut    string
)

func init() {
	deriveCmd.Flags().StringVar(&deriveFormat, "format", "csv", "Output format (csv, json, yaml)")
	deriveCmd.Flags().StringVarP(&deriveOut, "out", "o", "", "Write to a file instead of stdout")
}

func runDerive(w io.Writer, format string) error {
	records, _, err := loadMatches()
	if errors.Is(err, loader.ErrMissingInput) {
		promptForInput(w)
		return nil
	}
	if err != nil {
		return err
	}
	matches := derive.All(records)

	switch format {
	case "csv", "":
		cw := csv.NewWriter(w)
		report.WriteTableCSV(cw, report.DerivedTable(matches))
		cw.Flush()
		return cw.Error()
	case "json":
		return report.WriteJSON(w, matches, "  ")
	case "yaml", "yml":
		return report.WriteYAML(w, matches)
	default:
		return fmt.Errorf("unknown format %q (want csv, json or yaml)", format)
	}
}
