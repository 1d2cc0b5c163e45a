package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"gracefm/server"
)

var rootCmd = &cobra.Command{
	Use:   "gracefm",
	Short: "GraceFM is a sermon and podcast listening backend.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting GraceFM server...")
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
