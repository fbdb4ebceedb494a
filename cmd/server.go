package cmd

import (
	"sharefm/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the ShareFM server",
	Long:  `Start the HTTP server: draws, session-gated file access, and background catalog maintenance.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
