package cmd

import (
	"fmt"
	"os"

	"github.com/israelmw/QuickAudit/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConfigFileLocation is of the config to load
var ConfigFileLocation string

// TopLevelLogger is the logger all loggers come from
var TopLevelLogger *zap.Logger

// LoadedConfig is the currently loaded configuration after initial bootstrapping
var LoadedConfig *config.Configuration

var rootCommand = cobra.Command{
	Use:   "quickaudit",
	Short: "quickaudit an audit log dashboard",
	Long: `quickaudit lists the tables of a database eligible for audit logging,
	toggles auditing per table and shows the captured row changes with an option to revert them`,
	Run: func(cmd *cobra.Command, args []string) {
		serveCommand.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {

	rootCommand.PersistentFlags().
		StringVar(&ConfigFileLocation, "config", "", "config file to be used")

	verifyCommand.AddCommand(&sendTestMailCommand)

	tablesCommand.PersistentFlags().StringVar(&operator, "operator", "cli", "operator recorded for changes")
	tablesCommand.AddCommand(&listTablesCommand)
	tablesCommand.AddCommand(&enableTableCommand)
	tablesCommand.AddCommand(&disableTableCommand)
	tablesCommand.AddCommand(&enableAllTablesCommand)
	tablesCommand.AddCommand(&syncTablesCommand)

	logsCommand.PersistentFlags().StringVar(&operator, "operator", "cli", "operator recorded for changes")
	listLogsCommand.Flags().StringVar(&logsFilter.Table, "table", "", "only show changes of this table")
	listLogsCommand.Flags().StringVar(&logsOperation, "operation", "", "only show INSERT, UPDATE or DELETE")
	listLogsCommand.Flags().StringVar(&logsFilter.Search, "search", "", "search table, user and row data")
	listLogsCommand.Flags().IntVar(&logsLimit, "limit", 0, "amount of recent changes to load (default behaviour.log-limit)")
	logsCommand.AddCommand(&listLogsCommand)
	logsCommand.AddCommand(&showLogCommand)
	logsCommand.AddCommand(&revertLogCommand)

	rootCommand.AddCommand(&verifyCommand)
	rootCommand.AddCommand(&tablesCommand)
	rootCommand.AddCommand(&logsCommand)
	rootCommand.AddCommand(&serveCommand)
	rootCommand.AddCommand(&versionCommand)
}
