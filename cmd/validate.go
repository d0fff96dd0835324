package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/matchstats/loader"
	"github.com/ridoystarlord/matchstats/report"
	"github.com/ridoystarlord/matchstats/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a match table before analyzing it",
	Long: `Validate a headerless match CSV against the expected column layout.
YAML and JSON tables written by 'matchstats derive' are decoded first and
get the same row checks.

Errors stop the table from loading:
- Malformed CSV or rows without exactly 11 fields
- Non-integer id or season values (often a header row left in the file)

Warnings point at rows the statistics treat loosely:
- Duplicate match ids and implausible seasons
- A team playing itself
- Toss winners or match winners that are not one of the two teams
- Toss decisions other than bat, field or bowl

Examples:
  matchstats validate --file matches.csv
  matchstats validate --file matches.csv --format json
`,
	Run: func(cmd *cobra.Command, args []string) {
		result, err := runValidate(os.Stdout, validateFormat)
		if err != nil {
			fail("Table validation failed: %v", err)
			return
		}
		if result != nil && !result.Valid {
			exit(1)
		}
	},
}

var validateFormat string

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
}

func runValidate(w io.Writer, format string) (*validator.ValidationResult, error) {
	file := inputFile()
	if file == "" {
		promptForInput(w)
		return nil, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	result, err := validateData(file, data)
	if err != nil {
		return nil, err
	}
	logger.WithField("file", file).WithField("valid", result.Valid).Debug("table validated")

	if format == "json" {
		return result, report.WriteJSON(w, result, "  ")
	}
	return result, outputText(w, result)
}

// validateData checks a CSV row by row, or decodes a YAML/JSON record list
// first and checks the records.
func validateData(file string, data []byte) (*validator.ValidationResult, error) {
	v := validator.NewTableValidator()
	if !loader.IsYAML(file) {
		result, err := v.ValidateTable(data)
		if err != nil {
			return nil, fmt.Errorf("failed to validate table: %w", err)
		}
		return result, nil
	}

	records, err := loader.ParseMatchesYAML(data)
	if err != nil {
		return &validator.ValidationResult{
			Errors: []validator.ValidationError{{
				Type:     "yaml_syntax",
				Message:  err.Error(),
				Severity: "error",
			}},
			Warnings: []validator.ValidationError{},
			Info:     []validator.ValidationError{},
		}, nil
	}
	return v.ValidateRecords(records), nil
}

func outputText(w io.Writer, result *validator.ValidationResult) error {
	// Print summary
	if result.Valid {
		color.New(color.FgGreen).Fprintln(w, "✅ Table validation passed!")
	} else {
		color.New(color.FgRed).Fprintln(w, "❌ Table validation failed!")
	}

	writeFindings(w, "🔴 Errors", result.Errors)
	writeFindings(w, "🟡 Warnings", result.Warnings)
	writeFindings(w, "🔵 Info", result.Info)

	// Print summary
	fmt.Fprintf(w, "\n📊 Summary:\n")
	fmt.Fprintf(w, "  • Rows: %d\n", result.Rows)
	fmt.Fprintf(w, "  • Errors: %d\n", len(result.Errors))
	fmt.Fprintf(w, "  • Warnings: %d\n", len(result.Warnings))
	fmt.Fprintf(w, "  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Fprintf(w, "\n🎉 Your table is ready for analysis!\n")
	} else {
		fmt.Fprintf(w, "\n💡 Fix the errors above before running analyze.\n")
	}
	return nil
}

func writeFindings(w io.Writer, title string, findings []validator.ValidationError) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", title, len(findings))
	for i, f := range findings {
		fmt.Fprintf(w, "  %d. ", i+1)
		if f.Line > 0 {
			fmt.Fprintf(w, "[line %d]", f.Line)
		}
		if f.Column != "" {
			fmt.Fprintf(w, ".%s", f.Column)
		}
		fmt.Fprintf(w, ": %s\n", f.Message)
	}
}
