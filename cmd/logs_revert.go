package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var revertLogCommand = cobra.Command{
	Use:   "revert",
	Short: "reverts a change",
	Long: `Issues the compensating write of a captured change and marks it reverted,
	a change can only be reverted once`,
	Args: requireEntryID,
	Run: func(cmd *cobra.Command, args []string) {
		svc := mustResolveCLIServices()
		id := entryID(args)
		err := svc.logs.Revert(cmd.Context(), id, operator)
		svc.events.Wait()
		if err != nil {
			fmt.Printf("Unable to revert change %d: %s\r\n", id, err)
			os.Exit(1)
			return
		}
		fmt.Printf("Reverted change %d\r\n", id)
	},
}
