package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// build information, set by main
var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

var versionCommand = cobra.Command{
	Use:   "version",
	Short: "prints the version",
	Long:  `Prints version and build information`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quickaudit %s, built %s from %s (%s)\r\n", Version, BuildTime, GitCommit, GitRef)
	},
}
