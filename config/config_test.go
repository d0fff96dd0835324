package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MATCHSTATS_FILE", "")

	cfg, err := LoadFrom(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	content := `data:
  file: ipl/matches.csv
analysis:
  season: 2011
  top_n: 3
dashboard:
  port: "9090"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(content), 0644))

	cfg, err := LoadFrom(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "ipl/matches.csv", cfg.Data.File)
	assert.Equal(t, 2011, cfg.Analysis.Season)
	assert.Equal(t, 3, cfg.Analysis.TopN)
	assert.Equal(t, 5, cfg.Analysis.PreviewRows)
	assert.Equal(t, "9090", cfg.Dashboard.Port)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  season: 2011\n"), 0644))
	t.Setenv("MATCHSTATS_ANALYSIS_SEASON", "2013")
	t.Setenv("MATCHSTATS_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 2013, cfg.Analysis.Season)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDataFileFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MATCHSTATS_FILE", "from-env.csv")

	cfg, err := LoadFrom(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", cfg.Data.File)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := LoadFrom(viper.New(), "nope.yaml")
	assert.Error(t, err)
}
