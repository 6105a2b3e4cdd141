// Package splitter implements the batch engine that turns multi-channel WAV
// files into per-channel mono files.
//
// A run scans the input directory (non-recursive), probes every WAV file and
// exports one mono file per channel through the external transcoder. Per-file
// failures are reported and skipped; the batch only aborts when there is
// nothing to do or the toolchain is unavailable.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/oszuidwest/zwfm-wavsplit/internal/apperrors"
	"github.com/oszuidwest/zwfm-wavsplit/internal/audio"
	"github.com/oszuidwest/zwfm-wavsplit/internal/utils"
	"github.com/oszuidwest/zwfm-wavsplit/pkg/logger"
)

// Transcoder probes input files and extracts single channels.
type Transcoder interface {
	Probe(ctx context.Context, filePath string) (*audio.FileInfo, error)
	ExtractChannel(ctx context.Context, info *audio.FileInfo, ch int, outputPath string) error
}

// Verifier re-checks exported channel files against the source properties.
type Verifier interface {
	VerifyMono(outputPath string, sampleRate int, depth audio.BitDepth) error
}

// Service runs split batches sequentially on a single background worker.
type Service struct {
	transcoder Transcoder
	verifier   Verifier // nil disables output verification
	queue      *Queue
}

// NewService creates a new batch splitter service.
func NewService(transcoder Transcoder, verifier Verifier, queue *Queue) *Service {
	return &Service{
		transcoder: transcoder,
		verifier:   verifier,
		queue:      queue,
	}
}

// Result summarizes one batch run.
type Result struct {
	JobID     string
	Files     int
	Exported  int
	Failed    int
	OutputDir string
}

// Run executes one batch. It returns an error only when the run aborts
// before processing (missing toolchain, missing input directory, no WAV
// files); per-file failures are reported through the queue and counted in
// the Result. Every run ends with an EventDone on the queue.
func (s *Service) Run(ctx context.Context, inputDir, outputDir string) (*Result, error) {
	jobID := uuid.New().String()
	result := &Result{JobID: jobID, OutputDir: outputDir}

	logger.Info("Starting split job %s: input=%s output=%s", jobID, inputDir, outputDir)

	if err := s.runBatch(ctx, inputDir, outputDir, jobID, result); err != nil {
		var appErr *apperrors.Error
		if !errors.As(err, &appErr) {
			appErr = apperrors.Unexpected(err)
		}
		s.reportError(appErr)
		s.queue.Put(Event{Kind: EventDone, OutputDir: outputDir, Aborted: true})
		logger.Error("Split job %s aborted", jobID)
		return result, appErr
	}

	logger.Info("Split job %s finished: %d file(s), %d channel(s) exported, %d failure(s)",
		jobID, result.Files, result.Exported, result.Failed)

	s.queue.Put(Event{
		Kind:    EventInfo,
		Title:   "Success",
		Message: fmt.Sprintf("Audio files have been successfully split.\nOutput Directory: %s", outputDir),
	})
	s.queue.Put(Event{Kind: EventDone, OutputDir: outputDir})

	return result, nil
}

func (s *Service) runBatch(ctx context.Context, inputDir, outputDir, jobID string, result *Result) error {
	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		return apperrors.InputDirMissing(inputDir)
	}

	files, err := scanWAVFiles(inputDir)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	if len(files) == 0 {
		return apperrors.NoInputFiles(inputDir)
	}

	result.Files = len(files)
	logger.Info("Found %d .wav file(s) to process", len(files))

	// The output directory is only created once there is something to write.
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return apperrors.Unexpected(err)
	}

	s.queue.Put(Event{Kind: EventProgress, Percent: 0})

	for i, name := range files {
		if err := ctx.Err(); err != nil {
			return apperrors.Unexpected(err)
		}

		s.processFile(ctx, inputDir, outputDir, name, jobID, result)
		s.queue.Put(Event{Kind: EventProgress, Percent: (i + 1) * 100 / len(files)})
	}

	return nil
}

// processFile probes one input file and exports every channel. Failures are
// reported per file (or per channel) and never stop the batch.
func (s *Service) processFile(ctx context.Context, inputDir, outputDir, name, jobID string, result *Result) {
	inputPath := filepath.Join(inputDir, name)
	logger.Info("Processing file: %s", inputPath)

	info, err := s.transcoder.Probe(ctx, inputPath)
	if err != nil {
		s.reportError(apperrors.TranslateAudioError(err))
		result.Failed++
		return
	}

	logger.Info("Original sample rate: %d Hz", info.SampleRate)
	logger.Info("Original bit depth: %d bits", info.BitDepth)
	logger.Info("Number of channels in '%s': %d", name, info.Channels)

	if info.BitDepth == 0 {
		s.reportError(apperrors.UndeterminedBitDepth(name))
		result.Failed++
		return
	}
	if !info.BitDepth.IsValid() {
		s.reportError(apperrors.UnsupportedBitDepth(int(info.BitDepth), name))
		result.Failed++
		return
	}

	for ch := 1; ch <= info.Channels; ch++ {
		outputPath := utils.GetChannelPath(outputDir, name, ch)
		if appErr := s.exportChannel(ctx, info, ch, outputPath, jobID); appErr != nil {
			s.reportError(appErr)
			result.Failed++
			continue
		}
		result.Exported++
		logger.Info("Exported: %s", outputPath)
	}
}

// exportChannel extracts one channel to a temp path, renames it into place
// and optionally verifies the result. ch is 1-based.
func (s *Service) exportChannel(ctx context.Context, info *audio.FileInfo, ch int, outputPath, jobID string) *apperrors.Error {
	tmpPath := utils.GetTempExportPath(outputPath, jobID)

	if err := s.transcoder.ExtractChannel(ctx, info, ch-1, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		// reuse the translator's internal detail but name the final file
		translated := apperrors.TranslateAudioError(err)
		return apperrors.ExportFailed(outputPath).WithInternal("%s", translated.Internal).Wrap(err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return apperrors.ExportFailed(outputPath).WithInternal("rename: %v", err).Wrap(err)
	}

	if s.verifier != nil {
		if err := s.verifier.VerifyMono(outputPath, info.SampleRate, info.BitDepth); err != nil {
			return apperrors.TranslateAudioError(err)
		}
	}

	return nil
}

// reportError logs the full detail and queues the user-safe message.
func (s *Service) reportError(appErr *apperrors.Error) {
	if appErr.Internal != "" {
		logger.Error("[%s] %s (%s)", appErr.Code, appErr.Message, appErr.Internal)
	} else {
		logger.Error("[%s] %s", appErr.Code, appErr.Message)
	}
	s.queue.Put(Event{Kind: EventError, Title: "Error", Message: appErr.Message})
}

// scanWAVFiles lists the WAV files directly inside dir, sorted by name.
// The extension match is case-insensitive and subdirectories are ignored.
func scanWAVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}
