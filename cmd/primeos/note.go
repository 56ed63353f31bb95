// Note commands for the primeos CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/primeos/internal/service"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var (
	noteTitle    string
	noteContent  string
	noteTags     []string
	noteArchived bool
	noteHard     bool
)

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Long: `Add creates a rich-text note. The content becomes a single plain-text
insert; tags may be given as existing tag IDs or as names, and unmatched
names create new tags.

Example:
  primeos note add --title "Meeting notes" --content "Discussed roadmap"
  primeos note add --title "Ideas" --tag brainstorm --tag roadmap`,
	RunE: runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recently updated first",
	RunE:  runNoteList,
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a note",
	Long: `Update modifies a note. Passing --tag flags replaces the note's tag set
in full; omitting them leaves the tags untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runNoteUpdate,
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note (soft by default)",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteDelete,
}

var noteRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a soft-deleted note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteRestore,
}

var noteArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteArchive,
}

var noteUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Unarchive a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteUnarchive,
}

func init() {
	noteAddCmd.Flags().StringVar(&noteTitle, "title", "", "note title (required)")
	noteAddCmd.Flags().StringVar(&noteContent, "content", "", "plain-text body")
	noteAddCmd.Flags().StringArrayVar(&noteTags, "tag", nil, "tag ID or name (repeatable)")
	noteAddCmd.Flags().BoolVar(&noteArchived, "archived", false, "create archived")
	_ = noteAddCmd.MarkFlagRequired("title")

	noteListCmd.Flags().BoolVar(&noteArchived, "archived", false, "only archived notes")

	noteUpdateCmd.Flags().StringVar(&noteTitle, "title", "", "new title")
	noteUpdateCmd.Flags().StringVar(&noteContent, "content", "", "new plain-text body")
	noteUpdateCmd.Flags().StringArrayVar(&noteTags, "tag", nil, "replacement tag set (repeatable)")
	noteUpdateCmd.Flags().BoolVar(&noteArchived, "archived", false, "new archived state")

	noteDeleteCmd.Flags().BoolVar(&noteHard, "hard", false, "physically remove instead of soft delete")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteUpdateCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(noteRestoreCmd)
	noteCmd.AddCommand(noteArchiveCmd)
	noteCmd.AddCommand(noteUnarchiveCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("note add", err)
	}
	defer a.close()

	tags := noteTags
	if tags == nil {
		tags = []string{}
	}
	note, err := a.notes.AddNote(service.NoteInput{
		Title:       noteTitle,
		RichContent: types.RichContent{Ops: []types.RichOp{{Insert: noteContent}}},
		Tags:        tags,
		Archived:    noteArchived,
	})
	if err != nil {
		return fail("note add", err)
	}

	if flagJSON {
		return printJSON(note)
	}
	fmt.Printf("Created note: %s\n", note.ID)
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("note list", err)
	}
	defer a.close()

	a.notes.LoadNotes()
	notes, _ := a.notes.Notes().Latest()

	if cmd.Flags().Changed("archived") {
		filtered := notes[:0]
		for _, n := range notes {
			if n.IsArchived == noteArchived {
				filtered = append(filtered, n)
			}
		}
		notes = filtered
	}

	if flagJSON {
		return printJSON(notes)
	}
	printNoteTable(notes)
	return nil
}

func runNoteUpdate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("note update", err)
	}
	defer a.close()

	upd := types.NoteUpdate{
		Title:    changedString(cmd, "title", &noteTitle),
		Archived: changedBool(cmd, "archived", &noteArchived),
	}
	if cmd.Flags().Changed("content") {
		upd.RichContent = &types.RichContent{Ops: []types.RichOp{{Insert: noteContent}}}
	}
	if cmd.Flags().Changed("tag") {
		upd.Tags = noteTags
		if upd.Tags == nil {
			upd.Tags = []string{}
		}
	}

	note, err := a.notes.UpdateNote(args[0], upd)
	if err != nil {
		return fail("note update", err)
	}

	if flagJSON {
		return printJSON(note)
	}
	fmt.Printf("Updated note: %s\n", note.ID)
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("note delete", err)
	}
	defer a.close()

	if err := a.notes.DeleteNote(args[0], !noteHard); err != nil {
		return fail("note delete", err)
	}
	fmt.Printf("Deleted note: %s\n", args[0])
	return nil
}

func runNoteRestore(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("note restore", err)
	}
	defer a.close()

	if err := a.notes.RestoreNote(args[0]); err != nil {
		return fail("note restore", err)
	}
	fmt.Printf("Restored note: %s\n", args[0])
	return nil
}

func runNoteArchive(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("note archive", err)
	}
	defer a.close()

	if err := a.notes.ArchiveNote(args[0]); err != nil {
		return fail("note archive", err)
	}
	fmt.Printf("Archived note: %s\n", args[0])
	return nil
}

func runNoteUnarchive(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("note unarchive", err)
	}
	defer a.close()

	if err := a.notes.UnarchiveNote(args[0]); err != nil {
		return fail("note unarchive", err)
	}
	fmt.Printf("Unarchived note: %s\n", args[0])
	return nil
}

func printNoteTable(notes []types.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tTAGS\tARCHIVED\tUPDATED")
	fmt.Fprintln(w, "--\t-----\t----\t--------\t-------")
	for _, n := range notes {
		shortID := n.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		title := n.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		names := make([]string, 0, len(n.Tags))
		for _, t := range n.Tags {
			names = append(names, t.Name)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			shortID,
			title,
			strings.Join(names, ","),
			n.IsArchived,
			n.UpdatedAt.Format("2006-01-02"),
		)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d note(s)\n", len(notes))
}
