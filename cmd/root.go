package cmd

import (
	"fmt"
	"os"

	"sharefm/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sharefm",
	Short: "ShareFM serves a personal music library as randomized, expiring shares.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
