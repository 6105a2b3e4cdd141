package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/oszuidwest/zwfm-wavsplit/pkg/logger"
)

// FileInfo describes a probed audio file.
type FileInfo struct {
	Path       string
	SampleRate int
	Channels   int
	BitDepth   BitDepth
	// Tags holds the container-level metadata tags, if any.
	Tags map[string]string
}

// probeResult mirrors the parts of ffprobe's JSON output we consume.
type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	// ffprobe reports sample_rate as a string
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	BitsPerSample int    `json:"bits_per_sample"`
}

type probeFormat struct {
	Tags map[string]string `json:"tags"`
}

// Probe reads sample rate, channel count, bits per sample and metadata tags
// from the first audio stream of the file, in a single ffprobe call.
func (s *Service) Probe(ctx context.Context, filePath string) (*FileInfo, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "a:0",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	}
	command := commandLine(s.tools.FFprobe, args)
	logger.Debug("Running ffprobe command: %s", command)

	// #nosec G204 - the binary path comes from Locate/config, args are constructed internally
	cmd := exec.CommandContext(ctx, s.tools.FFprobe, args...)

	output, err := cmd.Output()
	if err != nil {
		var stderr string
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr = string(exitErr.Stderr)
		}
		return nil, NewProbeError(filePath, command, stderr, err)
	}

	info, err := parseProbeOutput(output, filePath)
	if err != nil {
		return nil, NewProbeError(filePath, command, "", err)
	}

	logger.Debug("Probed '%s': %d Hz, %d channel(s), %d bits per sample",
		filePath, info.SampleRate, info.Channels, info.BitDepth)
	if len(info.Tags) > 0 {
		logger.Debug("Metadata tags for '%s': %v", filePath, info.Tags)
	}

	return info, nil
}

// parseProbeOutput decodes ffprobe JSON into a FileInfo.
func parseProbeOutput(data []byte, filePath string) (*FileInfo, error) {
	var result probeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if len(result.Streams) == 0 {
		return nil, errors.New("no audio streams found")
	}
	stream := result.Streams[0]

	rate, err := strconv.Atoi(stream.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("invalid sample rate %q: %w", stream.SampleRate, err)
	}
	if stream.Channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", stream.Channels)
	}

	return &FileInfo{
		Path:       filePath,
		SampleRate: rate,
		Channels:   stream.Channels,
		BitDepth:   BitDepth(stream.BitsPerSample),
		Tags:       result.Format.Tags,
	}, nil
}
