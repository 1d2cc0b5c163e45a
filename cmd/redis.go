package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gracefm/config"
	"gracefm/db"
)

var redisCmd = &cobra.Command{
	Use:   "redis-test",
	Short: "Verify the Redis connection",
	Long:  `Connect to Redis with the configured settings and run a set/get/del round trip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := db.ConnectRedis(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer db.CloseRedis()

		if err := db.TestRedis(); err != nil {
			fmt.Fprintf(os.Stderr, "Redis test failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Redis connection OK")
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
