package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// operator is recorded as the acting user of changes made from the command line
var operator string

var tablesCommand = cobra.Command{
	Use:   "tables",
	Short: "audit configuration commands",
	Long:  `this section harbors the commands managing which tables are audited`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func requireTableName(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || args[0] == "" {
		return errors.New("requires a table name")
	}
	return nil
}
