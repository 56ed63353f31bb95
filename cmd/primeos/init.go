// Init command for the primeos CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize primeos storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve config directory (flag > env > default) and ensure it
		// exists with a default config.yaml.
		configDir, err := resolveConfigDir()
		if err != nil {
			return fail("init", err)
		}
		if err := ensureConfigDir(configDir); err != nil {
			return fail("init", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return fail("init", err)
		}

		// Attach backend: creates the data directory, schema, and seeded
		// defaults.
		a, err := openApp()
		if err != nil {
			return fail("init", err)
		}
		defer a.close()

		dataDir, err := resolveDataDir()
		if err != nil {
			return fail("init", err)
		}

		fmt.Println("PrimeOS initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
