// Package cli implements the cinder CLI commands.
package cli

import (
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinder-app/cinder/internal/shell"
)

var (
	flagDev       bool
	flagMinimized bool
	flagRelaunch  bool
)

// uiAssets is the bundled web client, injected by main.
var uiAssets fs.FS

var rootCmd = &cobra.Command{
	Use:   "cinder",
	Short: "Desktop shell for the Cinder chat client",
	Long: `Cinder hosts the chat web client in a native window with tray
integration, single-instance coordination and a relaunch protocol.
Running cinder without a subcommand starts the shell.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return shell.Run(shell.Options{
			Assets:     uiAssets,
			DevMode:    flagDev,
			Minimized:  flagMinimized,
			Relaunched: flagRelaunch,
			Args:       originalArgs(),
		})
	},
}

// Execute runs the CLI with the bundled UI assets.
func Execute(assets fs.FS) error {
	uiAssets = assets
	return rootCmd.Execute()
}

// originalArgs returns argv[1:] with any relaunch marker stripped, so a
// relaunch never stacks markers.
func originalArgs() []string {
	var args []string
	for _, a := range os.Args[1:] {
		if a == "--relaunch" {
			continue
		}
		args = append(args, a)
	}
	return args
}

func init() {
	rootCmd.Flags().BoolVar(&flagDev, "dev", false, "Load the remote dev server instead of the bundled client")
	rootCmd.Flags().BoolVar(&flagMinimized, "minimized", false, "Start hidden to the tray")
	rootCmd.Flags().BoolVar(&flagRelaunch, "relaunch", false, "")
	_ = rootCmd.Flags().MarkHidden("relaunch")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}
