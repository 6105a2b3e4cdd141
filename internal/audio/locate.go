package audio

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/oszuidwest/zwfm-wavsplit/internal/config"
	"github.com/oszuidwest/zwfm-wavsplit/pkg/logger"
)

// Tools holds resolved transcoder binary paths.
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// commonLocations are checked after the bundled directory and $PATH.
var commonLocations = []string{
	"/usr/local/bin",
	"/opt/homebrew/bin",
	"/usr/bin",
	"/usr/local/ffmpeg/bin",
}

// Locate resolves the ffmpeg and ffprobe binaries. Explicit configuration
// wins; otherwise each binary is searched for in the ffmpeg/ directory under
// the application root, then $PATH, then common install locations. Both
// binaries must resolve.
func Locate(cfg *config.Config) (Tools, error) {
	bundledDir := filepath.Join(cfg.AppRoot, "ffmpeg")

	tools := Tools{
		FFmpeg:  cfg.Transcoder.FFmpegPath,
		FFprobe: cfg.Transcoder.FFprobePath,
	}
	if tools.FFmpeg == "" {
		tools.FFmpeg = findBinary("ffmpeg", bundledDir)
	}
	if tools.FFprobe == "" {
		tools.FFprobe = findBinary("ffprobe", bundledDir)
	}

	if tools.FFmpeg == "" {
		logger.Error("FFmpeg not found")
	} else {
		logger.Info("Using FFmpeg at: %s", tools.FFmpeg)
	}
	if tools.FFprobe == "" {
		logger.Error("FFprobe not found")
	} else {
		logger.Info("Using FFprobe at: %s", tools.FFprobe)
	}

	if tools.FFmpeg == "" || tools.FFprobe == "" {
		return Tools{}, ErrToolsNotFound
	}

	return tools, nil
}

// findBinary looks for a single transcoder binary, returning "" when it is
// nowhere to be found.
func findBinary(name, bundledDir string) string {
	bin := binaryName(name)

	inApp := filepath.Join(bundledDir, bin)
	if fileExists(inApp) {
		logger.Debug("Found %s in app directory: %s", name, inApp)
		return inApp
	}

	if path, err := exec.LookPath(bin); err == nil {
		logger.Debug("Found %s on PATH: %s", name, path)
		return path
	}

	for _, dir := range commonLocations {
		path := filepath.Join(dir, bin)
		if fileExists(path) {
			logger.Debug("Found %s in common location: %s", name, path)
			return path
		}
	}

	return ""
}

func binaryName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
