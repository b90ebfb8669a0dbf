package cmd

import "github.com/spf13/cobra"

var (
	rootCmd = &cobra.Command{
		Use:   "notifications",
		Short: "Glimmer Notifications",
		Long:  "",
	}
)

func init() {
	rootCmd.AddCommand(workerCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
