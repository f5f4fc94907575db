package command

import (
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "list build types and projects of the generated tree",
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
