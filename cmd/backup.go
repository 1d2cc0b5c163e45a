package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gracefm/config"
	"gracefm/storage"
)

var restoreObject string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the aggregate document to object storage",
	Long: `Upload the user data document to the configured MinIO bucket, or restore a
previously uploaded snapshot with --restore.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := storage.InitMinio(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "MinIO init failed: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if restoreObject != "" {
			if err := storage.DownloadSnapshot(ctx, cfg, restoreObject, cfg.UserDataFile); err != nil {
				fmt.Fprintf(os.Stderr, "Restore failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Restored %s to %s\n", restoreObject, cfg.UserDataFile)
			return
		}

		object, err := storage.UploadSnapshot(ctx, cfg, cfg.UserDataFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Backup failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Uploaded snapshot %s\n", object)
	},
}

func init() {
	backupCmd.Flags().StringVar(&restoreObject, "restore", "", "snapshot object name to restore")
	rootCmd.AddCommand(backupCmd)
}
