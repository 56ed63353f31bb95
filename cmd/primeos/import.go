// Import commands for the primeos CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importKind string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a zip archive or JSON document",
	Long: `Import restores records from a .zip archive or a .json document. Records
are upserted by their stored IDs, so importing the same file twice leaves the
database unchanged.

Example:
  primeos import backup.zip
  primeos import goals.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importCSVCmd = &cobra.Command{
	Use:   "csv <file>",
	Short: "Import one collection from CSV",
	Long: `Import csv creates fresh records from a CSV file. Rows get new IDs, so
importing the same file twice duplicates its records.

Example:
  primeos import csv --type goals goals.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImportCSV,
}

func init() {
	importCSVCmd.Flags().StringVar(&importKind, "type", "", "collection: goals, progress, or notes (required)")
	_ = importCSVCmd.MarkFlagRequired("type")

	importCmd.AddCommand(importCSVCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("import", err)
	}
	defer a.close()

	counts, err := a.archiver.ImportFile(args[0])
	if err != nil {
		return fail("import", err)
	}

	if flagJSON {
		return printJSON(counts)
	}
	fmt.Println("Imported:")
	fmt.Printf("  goals:              %d\n", counts.Goals)
	fmt.Printf("  progress entries:   %d\n", counts.ProgressEntries)
	fmt.Printf("  goal categories:    %d\n", counts.GoalCategories)
	fmt.Printf("  log categories:     %d\n", counts.DailyLogCategories)
	fmt.Printf("  log entries:        %d\n", counts.DailyLogEntries)
	fmt.Printf("  note tags:          %d\n", counts.NoteTags)
	fmt.Printf("  notes:              %d\n", counts.Notes)
	fmt.Printf("  app settings:       %d\n", counts.AppSettings)
	return nil
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("import csv", err)
	}
	defer a.close()

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fail("import csv", err)
	}

	var count int
	switch importKind {
	case "goals":
		count, err = a.porter.ImportGoals(string(content))
	case "progress":
		count, err = a.porter.ImportProgress(string(content))
	case "notes":
		count, err = a.porter.ImportNotes(string(content))
	default:
		return fmt.Errorf("import csv: %w: unknown type %q (valid: goals, progress, notes)", errUsage, importKind)
	}
	if err != nil {
		return fail("import csv", err)
	}

	fmt.Printf("Imported %d %s record(s)\n", count, importKind)
	return nil
}
