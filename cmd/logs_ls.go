package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/spf13/cobra"
)

var listLogsCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists recent changes",
	Long:  `This will list the most recent captured changes, newest first`,
	Run: func(cmd *cobra.Command, args []string) {
		filter := logsFilter
		if logsOperation != "" {
			op, err := audit.ParseOperation(logsOperation)
			if err != nil {
				fmt.Printf("Invalid operation: %s\r\n", err)
				os.Exit(1)
				return
			}
			filter.Operation = op
		}
		if logsLimit > 0 {
			LoadedConfig.Behaviour.LogLimit = logsLimit
		}
		svc := mustResolveCLIServices()
		feed, err := svc.logs.Recent(cmd.Context(), filter)
		if err != nil {
			fmt.Printf("Unable to load audit logs: %s\r\n", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s \r\n", "ID", "Time", "Table", "Operation", "User", "Reverted", "Changes")
		for _, v := range feed.Entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%v\t%s \r\n",
				v.ID,
				v.Timestamp.Format("2006-01-02 15:04:05"),
				v.TableName,
				v.Operation,
				v.Actor,
				v.Reverted,
				v.Summary,
			)
		}
		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "Showing %d of %d audit logs\r\n", len(feed.Entries), feed.Total)
		w.Flush()
	},
}
