package command

import (
	"github.com/spf13/cobra"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Manage tracking codes",
}

func init() {
	rootCmd.AddCommand(codesCmd)
}
