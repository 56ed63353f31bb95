// Goal commands for the primeos CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
}

var (
	goalTitle       string
	goalDescription string
	goalCategory    string
	goalTargetDate  string
	goalStatus      string
	goalHard        bool
)

var goalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new goal",
	Long: `Add creates a new goal in a category.

Example:
  primeos goal add --title "Run a marathon" --category cat-fitness
  primeos goal add --title "Learn Go" --category cat-learning --status on-hold`,
	RunE: runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	Long: `List fetches all non-deleted goals.

Example:
  primeos goal list
  primeos goal list --status active
  primeos goal list --json`,
	RunE: runGoalList,
}

var goalUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalUpdate,
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal (soft by default)",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDelete,
}

var goalRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a soft-deleted goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalRestore,
}

func init() {
	goalAddCmd.Flags().StringVar(&goalTitle, "title", "", "goal title (required)")
	goalAddCmd.Flags().StringVar(&goalDescription, "description", "", "goal description")
	goalAddCmd.Flags().StringVar(&goalCategory, "category", "", "category ID (required)")
	goalAddCmd.Flags().StringVar(&goalTargetDate, "target-date", "", "target date (ISO timestamp)")
	goalAddCmd.Flags().StringVar(&goalStatus, "status", "", "status (active, completed, on-hold; default active)")
	_ = goalAddCmd.MarkFlagRequired("title")
	_ = goalAddCmd.MarkFlagRequired("category")

	goalListCmd.Flags().StringVar(&goalStatus, "status", "", "filter by status")

	goalUpdateCmd.Flags().StringVar(&goalTitle, "title", "", "new title")
	goalUpdateCmd.Flags().StringVar(&goalDescription, "description", "", "new description")
	goalUpdateCmd.Flags().StringVar(&goalCategory, "category", "", "new category ID")
	goalUpdateCmd.Flags().StringVar(&goalTargetDate, "target-date", "", "new target date")
	goalUpdateCmd.Flags().StringVar(&goalStatus, "status", "", "new status")

	goalDeleteCmd.Flags().BoolVar(&goalHard, "hard", false, "physically remove instead of soft delete")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalUpdateCmd)
	goalCmd.AddCommand(goalDeleteCmd)
	goalCmd.AddCommand(goalRestoreCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("goal add", err)
	}
	defer a.close()

	goal, err := a.goals.AddGoal(types.Goal{
		Title:       goalTitle,
		Description: goalDescription,
		CategoryID:  goalCategory,
		TargetDate:  goalTargetDate,
		Status:      goalStatus,
	})
	if err != nil {
		return fail("goal add", err)
	}

	if flagJSON {
		return printJSON(goal)
	}
	fmt.Printf("Created goal: %s\n", goal.ID)
	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("goal list", err)
	}
	defer a.close()

	a.goals.LoadGoals()
	goals, _ := a.goals.Goals().Latest()

	if goalStatus != "" {
		filtered := goals[:0]
		for _, g := range goals {
			if g.Status == goalStatus {
				filtered = append(filtered, g)
			}
		}
		goals = filtered
	}

	if flagJSON {
		return printJSON(goals)
	}
	printGoalTable(goals)
	return nil
}

func runGoalUpdate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("goal update", err)
	}
	defer a.close()

	upd := types.GoalUpdate{
		Title:       changedString(cmd, "title", &goalTitle),
		Description: changedString(cmd, "description", &goalDescription),
		CategoryID:  changedString(cmd, "category", &goalCategory),
		TargetDate:  changedString(cmd, "target-date", &goalTargetDate),
		Status:      changedString(cmd, "status", &goalStatus),
	}

	goal, err := a.goals.UpdateGoal(args[0], upd)
	if err != nil {
		return fail("goal update", err)
	}

	if flagJSON {
		return printJSON(goal)
	}
	fmt.Printf("Updated goal: %s\n", goal.ID)
	return nil
}

func runGoalDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("goal delete", err)
	}
	defer a.close()

	if err := a.goals.DeleteGoal(args[0], !goalHard); err != nil {
		return fail("goal delete", err)
	}
	fmt.Printf("Deleted goal: %s\n", args[0])
	return nil
}

func runGoalRestore(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("goal restore", err)
	}
	defer a.close()

	if err := a.goals.RestoreGoal(args[0]); err != nil {
		return fail("goal restore", err)
	}
	fmt.Printf("Restored goal: %s\n", args[0])
	return nil
}

// printGoalTable prints goals in a human-readable table format.
func printGoalTable(goals []types.Goal) {
	if len(goals) == 0 {
		fmt.Println("No goals found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tCREATED")
	fmt.Fprintln(w, "--\t-----\t--------\t------\t-------")
	for _, g := range goals {
		title := g.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		shortID := g.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID,
			title,
			g.CategoryID,
			g.Status,
			g.CreatedAt.Format("2006-01-02"),
		)
	}
	w.Flush()

	output := sb.String()
	lines := strings.Split(output, "\n")
	for _, line := range lines {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d goal(s)\n", len(goals))
}
