package utils

import (
	"os"

	"github.com/joho/godotenv"
)

// DataFileEnv names the match file when neither a flag nor config sets one.
const DataFileEnv = "MATCHSTATS_FILE"

// LoadEnv loads .env into the process environment if one exists. Values
// already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

func GetDataFile() string {
	return os.Getenv(DataFileEnv)
}
