// Daily log commands for the primeos CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage daily log entries",
}

var logCategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage daily log categories",
}

var (
	logDate         string
	logCategoryID   string
	logNote         string
	logCategoryName string
	logHard         bool
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a daily log entry",
	Long: `Add records a journal entry for one category on one day.

Example:
  primeos log add --date 2026-08-28 --category <cat-id> --note "Office, then gym"`,
	RunE: runLogAdd,
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List daily log entries, newest date first",
	RunE:  runLogList,
}

var logUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a daily log entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogUpdate,
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a daily log entry (soft by default)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogDelete,
}

var logRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a soft-deleted daily log entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogRestore,
}

var logCategoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a custom daily log category",
	RunE:  runLogCategoryAdd,
}

var logCategoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List daily log categories",
	RunE:  runLogCategoryList,
}

var logCategoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom daily log category",
	Long:  `Delete removes a custom daily log category. Seeded fixed categories cannot be deleted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLogCategoryDelete,
}

func init() {
	logAddCmd.Flags().StringVar(&logDate, "date", "", "log date, YYYY-MM-DD (required)")
	logAddCmd.Flags().StringVar(&logCategoryID, "category", "", "category ID (required)")
	logAddCmd.Flags().StringVar(&logNote, "note", "", "entry text")
	_ = logAddCmd.MarkFlagRequired("date")
	_ = logAddCmd.MarkFlagRequired("category")

	logListCmd.Flags().StringVar(&logDate, "date", "", "only entries for this date")

	logUpdateCmd.Flags().StringVar(&logDate, "date", "", "new date")
	logUpdateCmd.Flags().StringVar(&logCategoryID, "category", "", "new category ID")
	logUpdateCmd.Flags().StringVar(&logNote, "note", "", "new entry text")

	logDeleteCmd.Flags().BoolVar(&logHard, "hard", false, "physically remove instead of soft delete")

	logCategoryAddCmd.Flags().StringVar(&logCategoryName, "name", "", "category name (required)")
	_ = logCategoryAddCmd.MarkFlagRequired("name")

	logCategoryCmd.AddCommand(logCategoryAddCmd)
	logCategoryCmd.AddCommand(logCategoryListCmd)
	logCategoryCmd.AddCommand(logCategoryDeleteCmd)

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logUpdateCmd)
	logCmd.AddCommand(logDeleteCmd)
	logCmd.AddCommand(logRestoreCmd)
	logCmd.AddCommand(logCategoryCmd)
}

func runLogAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("log add", err)
	}
	defer a.close()

	entry, err := a.logs.AddEntry(types.DailyLogEntry{
		LogDate:    logDate,
		CategoryID: logCategoryID,
		Note:       logNote,
	})
	if err != nil {
		return fail("log add", err)
	}

	if flagJSON {
		return printJSON(entry)
	}
	fmt.Printf("Created log entry: %s\n", entry.ID)
	return nil
}

func runLogList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("log list", err)
	}
	defer a.close()

	a.logs.LoadEntries(logDate)
	entries, _ := a.logs.Entries().Latest()

	if flagJSON {
		return printJSON(entries)
	}
	printLogTable(entries)
	return nil
}

func runLogUpdate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("log update", err)
	}
	defer a.close()

	upd := types.LogEntryUpdate{
		LogDate:    changedString(cmd, "date", &logDate),
		CategoryID: changedString(cmd, "category", &logCategoryID),
		Note:       changedString(cmd, "note", &logNote),
	}
	entry, err := a.logs.UpdateEntry(args[0], upd)
	if err != nil {
		return fail("log update", err)
	}

	if flagJSON {
		return printJSON(entry)
	}
	fmt.Printf("Updated log entry: %s\n", entry.ID)
	return nil
}

func runLogDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("log delete", err)
	}
	defer a.close()

	if err := a.logs.DeleteEntry(args[0], !logHard); err != nil {
		return fail("log delete", err)
	}
	fmt.Printf("Deleted log entry: %s\n", args[0])
	return nil
}

func runLogRestore(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("log restore", err)
	}
	defer a.close()

	if err := a.logs.RestoreEntry(args[0]); err != nil {
		return fail("log restore", err)
	}
	fmt.Printf("Restored log entry: %s\n", args[0])
	return nil
}

func runLogCategoryAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("log category add", err)
	}
	defer a.close()

	cat, err := a.logs.AddCategory(logCategoryName)
	if err != nil {
		return fail("log category add", err)
	}

	if flagJSON {
		return printJSON(cat)
	}
	fmt.Printf("Created log category: %s\n", cat.ID)
	return nil
}

func runLogCategoryList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("log category list", err)
	}
	defer a.close()

	a.logs.LoadCategories()
	cats, _ := a.logs.Categories().Latest()

	if flagJSON {
		return printJSON(cats)
	}
	printLogCategoryTable(cats)
	return nil
}

func runLogCategoryDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("log category delete", err)
	}
	defer a.close()

	if err := a.logs.DeleteCategory(args[0]); err != nil {
		return fail("log category delete", err)
	}
	fmt.Printf("Deleted log category: %s\n", args[0])
	return nil
}

func printLogTable(entries []types.DailyLogEntry) {
	if len(entries) == 0 {
		fmt.Println("No log entries found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tNOTE")
	fmt.Fprintln(w, "--\t----\t--------\t----")
	for _, e := range entries {
		shortID := e.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		note := e.Note
		if len(note) > 50 {
			note = note[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID, e.LogDate, e.CategoryID, note)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d entry(ies)\n", len(entries))
}

func printLogCategoryTable(cats []types.DailyLogCategory) {
	if len(cats) == 0 {
		fmt.Println("No log categories found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tFIXED")
	fmt.Fprintln(w, "--\t----\t-----")
	for _, c := range cats {
		fmt.Fprintf(w, "%s\t%s\t%t\n", c.ID, c.Name, c.IsFixed)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d category(ies)\n", len(cats))
}
