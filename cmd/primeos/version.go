// Version command for the primeos CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/primeos/pkg/primeos"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the primeos version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("primeos", primeos.Version)
	},
}
