// Tag commands for the primeos CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage note tags",
}

var tagName string

var tagAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a tag",
	RunE:  runTagAdd,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE:  runTagList,
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tag and detach it from all notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagDelete,
}

func init() {
	tagAddCmd.Flags().StringVar(&tagName, "name", "", "tag name (required)")
	_ = tagAddCmd.MarkFlagRequired("name")

	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagDeleteCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("tag add", err)
	}
	defer a.close()

	tag, err := a.notes.AddTag(tagName)
	if err != nil {
		return fail("tag add", err)
	}

	if flagJSON {
		return printJSON(tag)
	}
	fmt.Printf("Created tag: %s\n", tag.ID)
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("tag list", err)
	}
	defer a.close()

	a.notes.LoadTags()
	tags, _ := a.notes.Tags().Latest()

	if flagJSON {
		return printJSON(tags)
	}
	printTagTable(tags)
	return nil
}

func runTagDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("tag delete", err)
	}
	defer a.close()

	if err := a.notes.DeleteTag(args[0]); err != nil {
		return fail("tag delete", err)
	}
	fmt.Printf("Deleted tag: %s\n", args[0])
	return nil
}

func printTagTable(tags []types.Tag) {
	if len(tags) == 0 {
		fmt.Println("No tags found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tCREATED")
	fmt.Fprintln(w, "--\t----\t-------")
	for _, t := range tags {
		shortID := t.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", shortID, t.Name, t.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d tag(s)\n", len(tags))
}
