package cmd

import (
	"fmt"
	"os"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/spf13/cobra"
)

var showLogCommand = cobra.Command{
	Use:   "show",
	Short: "shows a single change",
	Long:  `Shows a captured change including its row images and the changed fields`,
	Args:  requireEntryID,
	Run: func(cmd *cobra.Command, args []string) {
		svc := mustResolveCLIServices()
		e, err := svc.logs.ByID(cmd.Context(), entryID(args))
		if err != nil {
			fmt.Printf("Unable to load audit log entry: %s\r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Entry:     %d\r\n", e.ID)
		fmt.Printf("Table:     %s\r\n", e.TableName)
		fmt.Printf("Operation: %s\r\n", e.Operation)
		fmt.Printf("User:      %s\r\n", e.Actor)
		fmt.Printf("Time:      %s\r\n", e.Timestamp.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("Reverted:  %v\r\n", e.Reverted)
		fmt.Printf("Summary:   %s\r\n", e.Summary)
		switch audit.Operation(e.Operation) {
		case audit.OperationUpdate:
			fmt.Println("Changes:")
			for _, c := range e.Changes {
				fmt.Printf("  %s\r\n", c)
			}
		case audit.OperationInsert:
			fmt.Printf("Inserted Data:\r\n%s\r\n", audit.FormatValue(e.RowData))
		default:
			fmt.Printf("Deleted Data:\r\n%s\r\n", audit.FormatValue(e.OldData))
		}
	},
}
