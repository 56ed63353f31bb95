// Export commands for the primeos CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOut  string
	exportKind string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full database as a zip archive",
	Long: `Export writes a zip archive holding every table as JSON, CSV renditions
of goals, progress, and notes, and a metadata file. Soft-deleted records are
included.

Example:
  primeos export
  primeos export --out backup.zip`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export one collection as CSV to stdout or a file",
	Long: `Export csv renders the non-deleted records of one collection as CSV.

Example:
  primeos export csv --type goals
  primeos export csv --type notes --out notes.csv`,
	Args: cobra.NoArgs,
	RunE: runExportCSV,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "primeos-export.zip", "output archive path")

	exportCSVCmd.Flags().StringVar(&exportKind, "type", "", "collection: goals, progress, or notes (required)")
	exportCSVCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
	_ = exportCSVCmd.MarkFlagRequired("type")

	exportCmd.AddCommand(exportCSVCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("export", err)
	}
	defer a.close()

	if err := a.archiver.WriteFile(exportOut); err != nil {
		return fail("export", err)
	}
	fmt.Printf("Exported archive: %s\n", exportOut)
	return nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("export csv", err)
	}
	defer a.close()

	var content string
	switch exportKind {
	case "goals":
		content = a.porter.ExportGoals()
	case "progress":
		content = a.porter.ExportProgress()
	case "notes":
		content = a.porter.ExportNotes()
	default:
		return fmt.Errorf("export csv: %w: unknown type %q (valid: goals, progress, notes)", errUsage, exportKind)
	}

	if exportOut == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(content), 0o644); err != nil {
		return fail("export csv", err)
	}
	fmt.Printf("Exported %s CSV: %s\n", exportKind, exportOut)
	return nil
}
