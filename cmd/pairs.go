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

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the most frequent team1 vs team2 pairings",
	Long: `Count matches per ordered (team1, team2) pair. A vs B and B vs A are
counted separately, exactly as the table records them.

Examples:
  matchstats pairs --file matches.csv
  matchstats pairs --file matches.csv --top 3
`,
	Run: func(cmd *cobra.Command, args []string) {
		top := cfg.Analysis.TopN
		if cmd.Flags().Changed("top") {
			top = pairsTop
		}
		if err := runPairs(os.Stdout, top); err != nil {
			fail("Pair statistics failed: %v", err)
			return
		}
	},
}

var pairsTop int

func init() {
	pairsCmd.Flags().IntVar(&pairsTop, "top", stats.DefaultOptions().TopN, "Number of pairs to show (0 for all)")
}

func runPairs(w io.Writer, top int) error {
	records, _, err := loadMatches()
	if errors.Is(err, loader.ErrMissingInput) {
		promptForInput(w)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "🤝 Most frequent opponent pairs")
	report.WriteTableText(w, report.PairTable(stats.TopPairs(derive.All(records), top)))
	return nil
}
