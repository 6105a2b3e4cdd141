package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenFolder shows a directory in the platform file manager without waiting
// for the viewer to exit.
func OpenFolder(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	// The file manager outlives us; reap the child in the background.
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
