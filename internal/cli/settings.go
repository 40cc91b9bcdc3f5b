package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinder-app/cinder/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GlobalSettingsFile()
		if err != nil {
			return err
		}
		settings, err := config.LoadSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		fmt.Printf("%s %s\n\n", styleLabel.Render("File:"), styleValue.Render(path))
		printSetting("frame", settings.Frame)
		printSetting("minimise_to_tray", settings.MinimiseToTray)
		printSetting("discord_rpc", settings.DiscordRPC)
		printSetting("start_minimised", settings.StartMinimised)
		printSetting("auto_update", settings.AutoUpdate)
		printSetting("auto_start", settings.AutoStart)
		printSetting("telemetry", settings.Telemetry)
		fmt.Printf("  %s %d\n", styleLabel.Render("zoom_level:"), settings.ZoomLevel)
		fmt.Printf("  %s %s\n", styleLabel.Render("dev_url:"), settings.DevURL)
		return nil
	},
}

func printSetting(name string, value bool) {
	rendered := styleError.Render("off")
	if value {
		rendered = styleSuccess.Render("on")
	}
	fmt.Printf("  %s %s\n", styleLabel.Render(name+":"), rendered)
}
