// Settings commands for the primeos CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage app settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Create or update a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	RunE:  runSettingsList,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsListCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("settings get", err)
	}
	defer a.close()

	setting := a.settings.Get(args[0])
	if setting == nil {
		return fail("settings get", fmt.Errorf("setting %s: %w", args[0], types.ErrNotFound))
	}

	if flagJSON {
		return printJSON(setting)
	}
	fmt.Println(setting.Value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("settings set", err)
	}
	defer a.close()

	setting, err := a.settings.Put(args[0], args[1])
	if err != nil {
		return fail("settings set", err)
	}

	if flagJSON {
		return printJSON(setting)
	}
	fmt.Printf("Set %s = %s\n", setting.Key, setting.Value)
	return nil
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return fail("settings list", err)
	}
	defer a.close()

	a.settings.LoadSettings()
	settings, _ := a.settings.Settings().Latest()

	if flagJSON {
		return printJSON(settings)
	}

	if len(settings) == 0 {
		fmt.Println("No settings found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	fmt.Fprintln(w, "---\t-----")
	for _, s := range settings {
		fmt.Fprintf(w, "%s\t%s\n", s.Key, s.Value)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	return nil
}
