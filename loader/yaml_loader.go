package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/matchstats/schema"
)

// LoadMatches reads a match table, choosing the decoder by extension:
// .yaml, .yml and .json hold a list of records (as written by
// `matchstats derive`), anything else is a headerless CSV.
func LoadMatches(filename string) ([]schema.MatchRecord, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrMissingInput
	}
	if !IsYAML(filename) {
		return LoadMatchesFromCSV(filename)
	}
	return LoadMatchesFromYAML(filename)
}

// Parse decodes data the way LoadMatches would decode a file called name.
func Parse(name string, data []byte) ([]schema.MatchRecord, error) {
	if IsYAML(name) {
		return ParseMatchesYAML(data)
	}
	return ParseMatches(data)
}

func LoadMatchesFromYAML(filename string) ([]schema.MatchRecord, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrMissingInput
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading match file: %w", err)
	}
	return ParseMatchesYAML(data)
}

// ParseMatchesYAML decodes a YAML (or JSON) list of match records. Keys
// other than the record columns, such as derived columns, are ignored.
func ParseMatchesYAML(data []byte) ([]schema.MatchRecord, error) {
	var records []schema.MatchRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	return records, nil
}

// IsYAML reports whether name holds a YAML or JSON record list.
func IsYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
