// Search command for the primeos CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search goals, progress, daily logs, and notes",
	Long: `Search runs a case-insensitive substring match across all entity
families. Queries shorter than two characters return nothing.

Example:
  primeos search marathon
  primeos search "morning run" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("search", err)
	}
	defer a.close()

	results := a.search.Search(args[0])

	if flagJSON {
		return printJSON(results)
	}
	printSearchTable(results)
	return nil
}

func printSearchTable(results []types.SearchResult) {
	if len(results) == 0 {
		fmt.Println("No results found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "TYPE\tTITLE\tSNIPPET\tPATH")
	fmt.Fprintln(w, "----\t-----\t-------\t----")
	for _, r := range results {
		title := r.Title
		if len(title) > 32 {
			title = title[:29] + "..."
		}
		snippet := strings.ReplaceAll(r.Snippet, "\n", " ")
		if len(snippet) > 40 {
			snippet = snippet[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Type, title, snippet, r.Path)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d result(s)\n", len(results))
}
