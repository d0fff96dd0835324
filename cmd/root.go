package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/matchstats/config"
	"github.com/ridoystarlord/matchstats/utils"
)

var (
	cfgFile  string
	dataFile string
	noColor  bool
	verbose  bool

	cfg    = defaultConfig()
	logger = utils.NewLogger("info", os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:   "matchstats",
	Short: "Descriptive statistics for IPL cricket match tables",
	Long: `matchstats reads a headerless CSV of cricket matches and reports who wins,
where they win, and how much the toss matters.

Examples:

  matchstats analyze --file matches.csv
  matchstats analyze --file matches.csv --format json
  matchstats teams --file matches.csv
  matchstats dashboard --port 8080
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fail("%v", err)
	}
}

// Fatal messages go to stderr so stdout stays a clean document.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// fail prints a ❌ line on stderr and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(stderr, "❌ "+format+"\n", args...)
	exit(1)
}

// Register subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./matchstats.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "Headerless matches CSV to analyze")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	viper.BindPFlag("data.file", rootCmd.PersistentFlags().Lookup("file"))

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(citiesCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and prepares the logger before any command runs.
func setup() error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.Log.Level
	if verbose {
		level = logrus.DebugLevel.String()
	}
	logger = utils.NewLogger(level, os.Stderr)

	if noColor || !cfg.Output.Color {
		color.NoColor = true
	}
	logger.WithFields(logrus.Fields{
		"config": viper.ConfigFileUsed(),
		"file":   cfg.Data.File,
	}).Debug("configuration loaded")
	return nil
}

func defaultConfig() *config.Config {
	c := config.Default()
	return &c
}
