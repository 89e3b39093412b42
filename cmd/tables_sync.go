package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var syncTablesCommand = cobra.Command{
	Use:   "sync",
	Short: "adds configuration for new schema tables",
	Long:  `Adds a disabled audit configuration for every schema table that has none yet`,
	Run: func(cmd *cobra.Command, args []string) {
		svc := mustResolveCLIServices()
		added, err := svc.tables.Sync(cmd.Context())
		if err != nil {
			fmt.Printf("Unable to sync tables: %s\r\n", err)
			os.Exit(1)
			return
		}
		if len(added) == 0 {
			fmt.Println("Audit configuration is up to date")
			return
		}
		fmt.Printf("Added %d tables: %s\r\n", len(added), strings.Join(added, ", "))
	},
}
