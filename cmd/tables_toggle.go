package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func toggleTable(cmd *cobra.Command, name string, enable bool) {
	svc := mustResolveCLIServices()
	if err := svc.tables.Toggle(cmd.Context(), name, enable, operator); err != nil {
		fmt.Printf("Unable to toggle audit of %s: %s\r\n", name, err)
		os.Exit(1)
		return
	}
	if enable {
		fmt.Printf("Audit enabled for %s\r\n", name)
		return
	}
	fmt.Printf("Audit disabled for %s\r\n", name)
}

var enableTableCommand = cobra.Command{
	Use:   "enable",
	Short: "enables auditing of a table",
	Long:  `Enables capturing changes of the given table`,
	Args:  requireTableName,
	Run: func(cmd *cobra.Command, args []string) {
		toggleTable(cmd, args[0], true)
	},
}

var disableTableCommand = cobra.Command{
	Use:   "disable",
	Short: "disables auditing of a table",
	Long:  `Stops capturing changes of the given table, already captured changes are kept`,
	Args:  requireTableName,
	Run: func(cmd *cobra.Command, args []string) {
		toggleTable(cmd, args[0], false)
	},
}

var enableAllTablesCommand = cobra.Command{
	Use:   "enable-all",
	Short: "enables auditing of every configured table",
	Long:  `Enables capturing changes of every table in the audit configuration`,
	Run: func(cmd *cobra.Command, args []string) {
		svc := mustResolveCLIServices()
		if err := svc.tables.EnableAll(cmd.Context(), operator); err != nil {
			fmt.Printf("Unable to enable all tables: %s\r\n", err)
			os.Exit(1)
			return
		}
		fmt.Println("Audit enabled for all tables")
	},
}
