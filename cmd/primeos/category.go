// Goal category commands for the primeos CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage goal categories",
}

var (
	categoryName  string
	categoryColor string
)

var categoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a custom goal category",
	Long: `Add creates a custom goal category.

Example:
  primeos category add --name "Reading" --color "#795548"`,
	RunE: runCategoryAdd,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goal categories",
	RunE:  runCategoryList,
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a goal category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryUpdate,
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom goal category",
	Long:  `Delete removes a custom goal category. Seeded system categories cannot be deleted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryDelete,
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryName, "name", "", "category name (required)")
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "display color, e.g. #2196F3")
	_ = categoryAddCmd.MarkFlagRequired("name")

	categoryUpdateCmd.Flags().StringVar(&categoryName, "name", "", "new name")
	categoryUpdateCmd.Flags().StringVar(&categoryColor, "color", "", "new color")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryUpdateCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("category add", err)
	}
	defer a.close()

	cat, err := a.goals.AddCategory(categoryName, categoryColor)
	if err != nil {
		return fail("category add", err)
	}

	if flagJSON {
		return printJSON(cat)
	}
	fmt.Printf("Created category: %s\n", cat.ID)
	return nil
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("category list", err)
	}
	defer a.close()

	a.goals.LoadCategories()
	cats, _ := a.goals.Categories().Latest()

	if flagJSON {
		return printJSON(cats)
	}
	printCategoryTable(cats)
	return nil
}

func runCategoryUpdate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("category update", err)
	}
	defer a.close()

	upd := types.CategoryUpdate{
		Name:  changedString(cmd, "name", &categoryName),
		Color: changedString(cmd, "color", &categoryColor),
	}
	cat, err := a.goals.UpdateCategory(args[0], upd)
	if err != nil {
		return fail("category update", err)
	}

	if flagJSON {
		return printJSON(cat)
	}
	fmt.Printf("Updated category: %s\n", cat.ID)
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("category delete", err)
	}
	defer a.close()

	if err := a.goals.DeleteCategory(args[0]); err != nil {
		return fail("category delete", err)
	}
	fmt.Printf("Deleted category: %s\n", args[0])
	return nil
}

func printCategoryTable(cats []types.GoalCategory) {
	if len(cats) == 0 {
		fmt.Println("No categories found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tSYSTEM")
	fmt.Fprintln(w, "--\t----\t-----\t------")
	for _, c := range cats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", c.ID, c.Name, c.Color, c.IsSystem)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d category(ies)\n", len(cats))
}
