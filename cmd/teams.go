package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/matchstats/derive"
	"github.com/ridoystarlord/matchstats/loader"
	"github.com/ridoystarlord/matchstats/report"
	"github.com/ridoystarlord/matchstats/stats"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Show team appearances and win percentages",
	Long: `Chart how many matches each team played (team1 and team2 columns together)
and rank teams by the share of their matches they won.

Examples:
  matchstats teams --file matches.csv
  matchstats teams --file matches.csv --format json
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTeams(os.Stdout, outputFormat(cmd, teamsFormat, teamsFormats...)); err != nil {
			fail("Team statistics failed: %v", err)
			return
		}
	},
}

var (
	teamsFormat  string
	teamsFormats = []string{"text", "json", "yaml"}
)

func init() {
	teamsCmd.Flags().StringVar(&teamsFormat, "format", "text", "Output format (text, json, yaml)")
}

// TeamStats is the machine-readable form of the teams command.
type TeamStats struct {
	Appearances    []stats.Count      `json:"appearances" yaml:"appearances"`
	WinPercentages []stats.TeamWinPct `json:"win_percentages" yaml:"win_percentages"`
}

func runTeams(w io.Writer, format string) error {
	records, _, err := loadMatches()
	if errors.Is(err, loader.ErrMissingInput) {
		promptForInput(w)
		return nil
	}
	if err != nil {
		return err
	}

	appearances, pcts, err := stats.TeamTable(derive.All(records))
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return report.WriteJSON(w, TeamStats{Appearances: appearances, WinPercentages: pcts}, "  ")
	case "yaml", "yml":
		return report.WriteYAML(w, TeamStats{Appearances: appearances, WinPercentages: pcts})
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}

	heading := color.New(color.FgBlue, color.Bold)
	heading.Fprintln(w, "📊 Teams with most appearances")
	report.TextRenderer{}.WriteBars(w, report.AppearanceChart(appearances))
	fmt.Fprintln(w)
	heading.Fprintln(w, "🏅 Win percentage by team")
	report.WriteTableText(w, report.WinPctTable(pcts))
	return nil
}
