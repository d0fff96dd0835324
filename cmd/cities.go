package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/matchstats/derive"
	"github.com/ridoystarlord/matchstats/loader"
	"github.com/ridoystarlord/matchstats/report"
	"github.com/ridoystarlord/matchstats/stats"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "Rank cities by how often the side fielding first wins",
	Long: `For every city, show the percentage of its matches that were not won by
the side batting first.

Examples:
  matchstats cities --file matches.csv
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCities(os.Stdout); err != nil {
			fail("City statistics failed: %v", err)
			return
		}
	},
}

func runCities(w io.Writer) error {
	records, _, err := loadMatches()
	if errors.Is(err, loader.ErrMissingInput) {
		promptForInput(w)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "🧩 Cities where fielding gives higher chance of winning")
	report.WriteTableText(w, report.CityTable(stats.CityFieldingSuccess(derive.All(records))))
	return nil
}
