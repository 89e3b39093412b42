package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listTablesCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists the audit configuration",
	Long:  `This will list every configured table and whether auditing is enabled`,
	Run: func(cmd *cobra.Command, args []string) {
		svc := mustResolveCLIServices()
		lst, err := svc.tables.List(cmd.Context())
		if err != nil {
			fmt.Printf("Unable to load tables: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s \r\n", "ID", "Table", "Audit", "Created")
		enabled := 0
		for _, v := range lst {
			state := "inactive"
			if v.AuditEnabled {
				state = "active"
				enabled++
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s \r\n", v.ID, v.TableName, state, v.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d tables, %d with audit enabled\r\n", len(lst), enabled)
		w.Flush()
	},
}
