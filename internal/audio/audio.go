// Package audio wraps the external FFmpeg toolchain for probing audio files
// and extracting individual channels as mono WAV.
package audio

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/oszuidwest/zwfm-wavsplit/pkg/logger"
)

// Service runs FFmpeg operations against resolved tool paths.
type Service struct {
	tools Tools
}

// NewService creates a new audio processing service.
func NewService(tools Tools) *Service {
	return &Service{tools: tools}
}

// ExtractChannel writes one mono WAV file containing channel index ch
// (0-based) of the probed input, at the source sample rate and with the PCM
// codec matching the source bit depth.
func (s *Service) ExtractChannel(ctx context.Context, info *FileInfo, ch int, outputPath string) error {
	if ch < 0 || ch >= info.Channels {
		return NewExtractError(outputPath, "", "",
			fmt.Errorf("channel index %d out of range for %d channel(s)", ch, info.Channels))
	}

	sampleFmt, ok := info.BitDepth.SampleFormat()
	if !ok {
		return NewExtractError(outputPath, "", "",
			fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, info.BitDepth))
	}

	args := extractArgs(info, ch, sampleFmt.Codec(), outputPath)
	command := commandLine(s.tools.FFmpeg, args)
	logger.Debug("Running ffmpeg command: %s", command)

	// #nosec G204 - the binary path comes from Locate/config, args are constructed internally
	cmd := exec.CommandContext(ctx, s.tools.FFmpeg, args...)

	// Capture stderr for error reporting
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return NewExtractError(outputPath, command, "", fmt.Errorf("failed to create stderr pipe: %w", err))
	}

	if err := cmd.Start(); err != nil {
		return NewExtractError(outputPath, command, "", fmt.Errorf("failed to start ffmpeg: %w", err))
	}

	stderrBytes, readErr := io.ReadAll(stderr)
	if readErr != nil {
		logger.Error("Failed to read ffmpeg stderr: %v", readErr)
	}

	if err := cmd.Wait(); err != nil {
		return NewExtractError(outputPath, command, string(stderrBytes), err)
	}

	return nil
}

// extractArgs builds the ffmpeg argument list for a single channel export.
// The pan filter picks one source channel into a mono stream.
func extractArgs(info *FileInfo, ch int, codec Codec, outputPath string) []string {
	return []string{
		"-i", info.Path,
		"-af", fmt.Sprintf("pan=mono|c0=c%d", ch),
		"-ar", strconv.Itoa(info.SampleRate),
		"-acodec", string(codec),
		"-y", outputPath,
	}
}

func commandLine(bin string, args []string) string {
	return bin + " " + strings.Join(args, " ")
}
