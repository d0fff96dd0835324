package cmd

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/matchstats/loader"
	"github.com/ridoystarlord/matchstats/report"
	"github.com/ridoystarlord/matchstats/schema"
	"github.com/ridoystarlord/matchstats/stats"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute every match statistic",
	Long: `Compute the full set of match statistics and print them in four sections:

- Key Insights: season winner, top city, batting/fielding first winners, toss impact
- Venue & City Analysis: busiest stadium, matches per city, home and away venues
- Deeper Statistics: win percentages, team appearances, batting vs fielding first
- Additional Insights: fielding-friendly cities, frequent pairs, home-win venues

If an output cannot be computed (for example no match was played in the
configured season) the outputs computed so far are printed and the command
exits with status 1.

Examples:
  matchstats analyze --file matches.csv
  matchstats analyze --file matches.csv --season 2010 --top 5
  matchstats analyze --file matches.csv --format json -o insights.json
`,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("season") {
			cfg.Analysis.Season = analyzeSeason
		}
		if cmd.Flags().Changed("top") {
			cfg.Analysis.TopN = analyzeTop
		}
		format := outputFormat(cmd, analyzeFormat, report.Formats...)

		w, closeOut, err := openOutput(analyzeOut)
		if err != nil {
			fail("%v", err)
			return
		}
		err = runAnalyze(w, format)
		if cerr := closeOut(); err == nil {
			err = cerr
		}
		if err != nil {
			fail("Analysis failed: %v", err)
			return
		}
	},
}

var (
	analyzeFormat string
	analyzeSeason int
	analyzeTop    int
	analyzeOut    string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Output format (text, json, yaml, csv, html)")
	analyzeCmd.Flags().IntVar(&analyzeSeason, "season", stats.DefaultOptions().Season, "Season for the most-wins output")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", stats.DefaultOptions().TopN, "Rows in the pair and home-win venue tables")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the report to a file instead of stdout")
}

// runAnalyze renders the report for the configured table. A partial report
// is still rendered when an aggregation comes up empty; the error is
// returned afterwards.
func runAnalyze(w io.Writer, format string) error {
	renderer, err := report.NewRenderer(format)
	if err != nil {
		return err
	}

	records, file, err := loadMatches()
	if errors.Is(err, loader.ErrMissingInput) {
		promptForInput(w)
		return nil
	}
	if err != nil {
		return err
	}

	rep, computeErr := analyzeRecords(records, file, analysisOptions(cfg), logrus.NewEntry(logger))
	if err := renderer.Render(w, rep); err != nil {
		return err
	}
	return computeErr
}

// analyzeRecords computes and lays out the statistics for records. When an
// output comes up empty the partial report carries the error.
func analyzeRecords(records []schema.MatchRecord, source string, opts stats.Options, log *logrus.Entry) (*report.Report, error) {
	insights, err := stats.Compute(records, opts)
	rep := report.Build(insights)
	rep.Source = source

	entry := log.WithFields(logrus.Fields{
		"records": len(records),
		"season":  opts.Season,
		"outputs": len(rep.Items()),
	})
	if err != nil {
		rep.Error = err.Error()
		entry.WithError(err).Warn("analysis stopped early")
		return rep, err
	}
	entry.Debug("analysis complete")
	return rep, nil
}
