package cmd

import (
	"errors"
	"strconv"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/spf13/cobra"
)

var (
	logsFilter    audit.Filter
	logsOperation string
	logsLimit     int
)

var logsCommand = cobra.Command{
	Use:   "logs",
	Short: "audit log commands",
	Long:  `this section harbors the commands reading and reverting captured changes`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func requireEntryID(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errors.New("requires an audit log entry id")
	}
	if id, err := strconv.ParseInt(args[0], 10, 64); err != nil || id <= 0 {
		return errors.New("the audit log entry id needs to be a positive number")
	}
	return nil
}

func entryID(args []string) int64 {
	id, _ := strconv.ParseInt(args[0], 10, 64)
	return id
}
