package shell

import (
	"fmt"
	"os"
	"os/exec"
)

// relaunchFlag marks a process spawned by the relaunch protocol.
const relaunchFlag = "--relaunch"

// appImageExtractFlag makes a packaged AppImage run without a FUSE
// mount; it must come first on the command line.
const appImageExtractFlag = "--appimage-extract-and-run"

// Respawn spawns a replacement process with the original arguments plus
// the relaunch flag, then lets the current process finish exiting.
func Respawn(args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	override, argv := respawnArgs(args, os.Getenv("APPIMAGE"))
	if override != "" {
		exe = override
	}

	cmd := exec.Command(exe, argv...)
	cmd.Env = os.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", exe, err)
	}
	return cmd.Process.Release()
}

// respawnArgs builds the relaunch argument vector. Inside an AppImage
// the spawned executable is the packaged image itself with the
// self-extract flag prepended.
func respawnArgs(args []string, appImage string) (exeOverride string, argv []string) {
	argv = append(append([]string{}, args...), relaunchFlag)
	if appImage != "" {
		return appImage, append([]string{appImageExtractFlag}, argv...)
	}
	return "", argv
}
