package cmd

import (
	"github.com/spf13/cobra"

	"gracefm/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the GraceFM server",
	Long:  `Start the GraceFM HTTP server: per-user sync endpoints plus the normalized content API.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
