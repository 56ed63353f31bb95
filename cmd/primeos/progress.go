// Progress commands for the primeos CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Manage progress entries",
}

var (
	progressGoal  string
	progressValue float64
	progressDate  string
	progressNote  string
	progressHard  bool
)

var progressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record progress against a goal",
	Long: `Add records a progress measurement for a goal.

Example:
  primeos progress add --goal <goal-id> --value 5 --date 2026-08-28
  primeos progress add --goal <goal-id> --value 2.5 --note "morning run"`,
	RunE: runProgressAdd,
}

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List progress entries, newest first",
	Long: `List fetches non-deleted progress entries, newest date first.

Example:
  primeos progress list
  primeos progress list --goal <goal-id>
  primeos progress list --json`,
	RunE: runProgressList,
}

var progressUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a progress entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressUpdate,
}

var progressDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a progress entry (soft by default)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressDelete,
}

var progressRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a soft-deleted progress entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressRestore,
}

func init() {
	progressAddCmd.Flags().StringVar(&progressGoal, "goal", "", "goal ID (required)")
	progressAddCmd.Flags().Float64Var(&progressValue, "value", 0, "measured value (required)")
	progressAddCmd.Flags().StringVar(&progressDate, "date", "", "measurement date (ISO)")
	progressAddCmd.Flags().StringVar(&progressNote, "note", "", "free-form note")
	_ = progressAddCmd.MarkFlagRequired("goal")
	_ = progressAddCmd.MarkFlagRequired("value")

	progressListCmd.Flags().StringVar(&progressGoal, "goal", "", "only entries for this goal")

	progressUpdateCmd.Flags().Float64Var(&progressValue, "value", 0, "new value")
	progressUpdateCmd.Flags().StringVar(&progressDate, "date", "", "new date")
	progressUpdateCmd.Flags().StringVar(&progressNote, "note", "", "new note")

	progressDeleteCmd.Flags().BoolVar(&progressHard, "hard", false, "physically remove instead of soft delete")

	progressCmd.AddCommand(progressAddCmd)
	progressCmd.AddCommand(progressListCmd)
	progressCmd.AddCommand(progressUpdateCmd)
	progressCmd.AddCommand(progressDeleteCmd)
	progressCmd.AddCommand(progressRestoreCmd)
}

func runProgressAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("progress add", err)
	}
	defer a.close()

	entry, err := a.progress.AddEntry(types.ProgressEntry{
		GoalID: progressGoal,
		Value:  progressValue,
		Date:   progressDate,
		Note:   progressNote,
	})
	if err != nil {
		return fail("progress add", err)
	}

	if flagJSON {
		return printJSON(entry)
	}
	fmt.Printf("Created progress entry: %s\n", entry.ID)
	return nil
}

func runProgressList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("progress list", err)
	}
	defer a.close()

	var entries []types.ProgressEntry
	if progressGoal != "" {
		entries = a.progress.EntriesForGoal(progressGoal)
	} else {
		a.progress.LoadEntries()
		entries, _ = a.progress.Entries().Latest()
	}

	if flagJSON {
		return printJSON(entries)
	}
	printProgressTable(entries)
	return nil
}

func runProgressUpdate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("progress update", err)
	}
	defer a.close()

	upd := types.ProgressUpdate{
		Value: changedFloat(cmd, "value", &progressValue),
		Date:  changedString(cmd, "date", &progressDate),
		Note:  changedString(cmd, "note", &progressNote),
	}
	entry, err := a.progress.UpdateEntry(args[0], upd)
	if err != nil {
		return fail("progress update", err)
	}

	if flagJSON {
		return printJSON(entry)
	}
	fmt.Printf("Updated progress entry: %s\n", entry.ID)
	return nil
}

func runProgressDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("progress delete", err)
	}
	defer a.close()

	if err := a.progress.DeleteEntry(args[0], !progressHard); err != nil {
		return fail("progress delete", err)
	}
	fmt.Printf("Deleted progress entry: %s\n", args[0])
	return nil
}

func runProgressRestore(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("progress restore", err)
	}
	defer a.close()

	if err := a.progress.RestoreEntry(args[0]); err != nil {
		return fail("progress restore", err)
	}
	fmt.Printf("Restored progress entry: %s\n", args[0])
	return nil
}

func printProgressTable(entries []types.ProgressEntry) {
	if len(entries) == 0 {
		fmt.Println("No progress entries found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tGOAL\tVALUE\tDATE\tNOTE")
	fmt.Fprintln(w, "--\t----\t-----\t----\t----")
	for _, e := range entries {
		shortID := e.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		shortGoal := e.GoalID
		if len(shortGoal) > 8 {
			shortGoal = shortGoal[:8]
		}
		note := e.Note
		if len(note) > 40 {
			note = note[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%s\n", shortID, shortGoal, e.Value, e.Date, note)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d entry(ies)\n", len(entries))
}
