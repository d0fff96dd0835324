package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/matchstats/config"
	"github.com/ridoystarlord/matchstats/loader"
	"github.com/ridoystarlord/matchstats/schema"
	"github.com/ridoystarlord/matchstats/stats"
)

const (
	missingInputPrompt = "Please provide your IPL matches.csv file (--file) to begin analysis."
	loadedMessage      = "File uploaded successfully! Here's a preview:"
)

// inputFile resolves the match table: --file, then data.file, then
// MATCHSTATS_FILE. The last two are merged by config.Load.
func inputFile() string {
	if dataFile != "" {
		return dataFile
	}
	return cfg.Data.File
}

// loadMatches reads the configured table. ErrMissingInput is returned as is
// so callers can show the prompt instead of failing.
func loadMatches() ([]schema.MatchRecord, string, error) {
	file := inputFile()
	records, err := loader.LoadMatches(file)
	if err != nil {
		if errors.Is(err, loader.ErrMissingInput) {
			return nil, "", err
		}
		return nil, file, fmt.Errorf("failed to load %s: %w", file, err)
	}
	logger.WithFields(logrus.Fields{
		"file":    file,
		"records": len(records),
	}).Debug("match table loaded")
	return records, file, nil
}

func promptForInput(w io.Writer) {
	fmt.Fprintln(w, "👆", missingInputPrompt)
}

// analysisOptions applies configuration on top of the engine defaults.
func analysisOptions(c *config.Config) stats.Options {
	opts := stats.DefaultOptions()
	if c.Analysis.Season != 0 {
		opts.Season = c.Analysis.Season
	}
	if c.Analysis.TopN > 0 {
		opts.TopN = c.Analysis.TopN
	}
	return opts
}

// outputFormat returns the --format flag when it was given. Otherwise
// output.format from config wins if the command supports it.
func outputFormat(cmd *cobra.Command, flag string, supported ...string) string {
	if cmd.Flags().Changed("format") {
		return flag
	}
	if slices.Contains(supported, cfg.Output.Format) {
		return cfg.Output.Format
	}
	return flag
}

// openOutput returns stdout for an empty path, otherwise a created file.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}
