package cmd

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "sweeper",
		Short: "Glimmer Story Sweeper",
		Long:  "",
	}
)

func init() {
	rootCmd.AddCommand(run)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
