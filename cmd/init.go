package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/matchstats/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a matchstats.yaml with the default settings",
	Long: `Write a matchstats.yaml config file in the current directory.

Every setting can also be given as an environment variable with the
MATCHSTATS_ prefix (MATCHSTATS_ANALYSIS_SEASON, MATCHSTATS_DASHBOARD_PORT, ...)
or in a .env file. MATCHSTATS_FILE names the match table.

Examples:
  matchstats init
  matchstats init --data matches.csv
  matchstats init --force`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeDefaultConfig(initPath, initData, initForce); err != nil {
			fail("%v", err)
			return
		}
		fmt.Printf("✅ Created %s\n", initPath)
		fmt.Printf("📝 Edit %s to point data.file at your matches CSV\n", initPath)
		fmt.Println("🚀 Run 'matchstats analyze' to compute the statistics")
	},
}

var (
	initPath  string
	initData  string
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initPath, "path", config.DefaultFile, "Where to write the config file")
	initCmd.Flags().StringVar(&initData, "data", "", "Match table to record as data.file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

const configHeader = `# matchstats configuration
# Environment variables override these values, e.g. MATCHSTATS_ANALYSIS_TOP_N=5.
`

func writeDefaultConfig(path, file string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists! (use --force to overwrite)", path)
	}

	c := config.Default()
	c.Data.File = file
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), out...), 0644); err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	return nil
}
