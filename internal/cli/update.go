package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinder-app/cinder/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update cinder to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking for updates...")

		result, err := updater.CheckForUpdate()
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}

		if !result.Available {
			fmt.Printf("%s (v%s).\n", styleSuccess.Render("Already up to date"), result.CurrentVersion)
			return nil
		}

		fmt.Printf("%s v%s → v%s\n", styleUpdate.Render("Update available:"), result.CurrentVersion, result.LatestVersion)
		fmt.Printf("%s %s\n", styleLabel.Render("Release:"), result.ReleaseURL)

		fmt.Println("Installing...")
		if err := updater.Apply(result.Release); err != nil {
			return fmt.Errorf("failed to install update: %w", err)
		}

		fmt.Printf("%s v%s. Restart Cinder to use it.\n", styleSuccess.Render("Updated to"), result.LatestVersion)
		return nil
	},
}
