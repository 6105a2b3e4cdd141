package splitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oszuidwest/zwfm-wavsplit/internal/apperrors"
	"github.com/oszuidwest/zwfm-wavsplit/internal/audio"
)

// fakeTranscoder serves canned probe results and writes real mono WAV files
// in place of ffmpeg, so the real verifier can inspect the outputs.
type fakeTranscoder struct {
	t           *testing.T
	infos       map[string]*audio.FileInfo // keyed by input base name
	probeFail   map[string]error           // keyed by input base name
	extractFail map[string]error           // keyed by final output base name
	forceRate   int                        // when set, written files use this rate instead of the probed one
	extracted   []string                   // output paths as handed to ExtractChannel
}

func (f *fakeTranscoder) Probe(_ context.Context, filePath string) (*audio.FileInfo, error) {
	name := filepath.Base(filePath)
	if err, ok := f.probeFail[name]; ok {
		return nil, err
	}
	info, ok := f.infos[name]
	if !ok {
		f.t.Fatalf("unexpected probe of %s", filePath)
	}
	probed := *info
	probed.Path = filePath
	return &probed, nil
}

func (f *fakeTranscoder) ExtractChannel(_ context.Context, info *audio.FileInfo, ch int, outputPath string) error {
	if ch < 0 || ch >= info.Channels {
		f.t.Fatalf("channel %d out of range for %s", ch, info.Path)
	}

	final := filepath.Base(outputPath)
	if i := strings.Index(final, ".part-"); i >= 0 {
		final = final[:i]
	}
	if err, ok := f.extractFail[final]; ok {
		return err
	}

	rate := info.SampleRate
	if f.forceRate != 0 {
		rate = f.forceRate
	}
	writeMonoWAV(f.t, outputPath, rate, int(info.BitDepth))
	f.extracted = append(f.extracted, outputPath)
	return nil
}

func writeMonoWAV(t *testing.T, path string, sampleRate, bitDepth int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)
	buf := &gaudio.IntBuffer{
		Data:           make([]int, 32),
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func touchWAV(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("RIFF"), 0o644))
}

func progressPercents(events []Event) []int {
	var percents []int
	for _, ev := range events {
		if ev.Kind == EventProgress {
			percents = append(percents, ev.Percent)
		}
	}
	return percents
}

func errorMessages(events []Event) []string {
	var messages []string
	for _, ev := range events {
		if ev.Kind == EventError {
			messages = append(messages, ev.Message)
		}
	}
	return messages
}

func TestRunExportsEveryChannel(t *testing.T) {
	inputDir := t.TempDir()
	touchWAV(t, inputDir, "stereo.wav")
	touchWAV(t, inputDir, "mono.wav")
	outputDir := filepath.Join(t.TempDir(), "out")

	fake := &fakeTranscoder{
		t: t,
		infos: map[string]*audio.FileInfo{
			"stereo.wav": {SampleRate: 48000, Channels: 2, BitDepth: audio.Depth24},
			"mono.wav":   {SampleRate: 44100, Channels: 1, BitDepth: audio.Depth16},
		},
	}
	queue := NewQueue(64)
	svc := NewService(fake, audio.NewService(audio.Tools{}), queue)

	result, err := svc.Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	assert.NotEmpty(t, result.JobID)
	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 3, result.Exported)
	assert.Equal(t, 0, result.Failed)

	for _, name := range []string{"mono_chan1.wav", "stereo_chan1.wav", "stereo_chan2.wav"} {
		assert.FileExists(t, filepath.Join(outputDir, name))
	}

	// every extraction goes through a temp path and nothing is left behind
	for _, path := range fake.extracted {
		assert.Contains(t, filepath.Base(path), ".part-")
	}
	leftovers, err := filepath.Glob(filepath.Join(outputDir, "*.part-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	events := queue.Drain()
	require.NotEmpty(t, events)
	assert.Equal(t, []int{0, 50, 100}, progressPercents(events))

	last := events[len(events)-1]
	assert.Equal(t, EventDone, last.Kind)
	assert.False(t, last.Aborted)
	assert.Equal(t, outputDir, last.OutputDir)

	info := events[len(events)-2]
	assert.Equal(t, EventInfo, info.Kind)
	assert.Equal(t, "Success", info.Title)
	assert.Equal(t, fmt.Sprintf("Audio files have been successfully split.\nOutput Directory: %s", outputDir), info.Message)
}

func TestRunProgressCountsFiles(t *testing.T) {
	inputDir := t.TempDir()
	for _, name := range []string{"a.wav", "b.wav", "c.wav"} {
		touchWAV(t, inputDir, name)
	}
	outputDir := filepath.Join(t.TempDir(), "out")

	info := &audio.FileInfo{SampleRate: 48000, Channels: 1, BitDepth: audio.Depth16}
	fake := &fakeTranscoder{
		t:     t,
		infos: map[string]*audio.FileInfo{"a.wav": info, "b.wav": info, "c.wav": info},
	}
	queue := NewQueue(64)
	svc := NewService(fake, nil, queue)

	_, err := svc.Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 33, 66, 100}, progressPercents(queue.Drain()))
}

func TestRunEmptyDirectoryAborts(t *testing.T) {
	inputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("x"), 0o644))
	outputDir := filepath.Join(t.TempDir(), "out")

	queue := NewQueue(16)
	svc := NewService(&fakeTranscoder{t: t}, nil, queue)

	_, err := svc.Run(context.Background(), inputDir, outputDir)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNoInputFiles, appErr.Code)
	assert.Equal(t, fmt.Sprintf("No .wav files found in directory '%s'.", inputDir), appErr.Message)

	_, statErr := os.Stat(outputDir)
	assert.True(t, os.IsNotExist(statErr), "aborted run must not create the output directory")

	events := queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventError, events[0].Kind)
	assert.Equal(t, appErr.Message, events[0].Message)
	assert.Equal(t, EventDone, events[1].Kind)
	assert.True(t, events[1].Aborted)
}

func TestRunMissingInputDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	outputDir := filepath.Join(t.TempDir(), "out")

	queue := NewQueue(16)
	svc := NewService(&fakeTranscoder{t: t}, nil, queue)

	_, err := svc.Run(context.Background(), missing, outputDir)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInputDirMissing, appErr.Code)
	assert.Equal(t, fmt.Sprintf("Input directory '%s' does not exist.", missing), appErr.Message)
}

func TestRunSkipsFilesWithUnusableBitDepth(t *testing.T) {
	inputDir := t.TempDir()
	touchWAV(t, inputDir, "float.wav")
	touchWAV(t, inputDir, "good.wav")
	touchWAV(t, inputDir, "odd.wav")
	outputDir := filepath.Join(t.TempDir(), "out")

	fake := &fakeTranscoder{
		t: t,
		infos: map[string]*audio.FileInfo{
			"float.wav": {SampleRate: 48000, Channels: 2, BitDepth: 0},
			"good.wav":  {SampleRate: 48000, Channels: 1, BitDepth: audio.Depth16},
			"odd.wav":   {SampleRate: 48000, Channels: 2, BitDepth: audio.BitDepth(20)},
		},
	}
	queue := NewQueue(64)
	svc := NewService(fake, audio.NewService(audio.Tools{}), queue)

	result, err := svc.Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Files)
	assert.Equal(t, 1, result.Exported)
	assert.Equal(t, 2, result.Failed)
	assert.FileExists(t, filepath.Join(outputDir, "good_chan1.wav"))

	messages := errorMessages(queue.Drain())
	assert.Contains(t, messages, "Could not determine bit depth of 'float.wav'")
	assert.Contains(t, messages, "Unsupported bit depth: 20 bits in 'odd.wav'")
}

func TestRunContinuesAfterExportFailure(t *testing.T) {
	inputDir := t.TempDir()
	touchWAV(t, inputDir, "stereo.wav")
	outputDir := filepath.Join(t.TempDir(), "out")

	fake := &fakeTranscoder{
		t: t,
		infos: map[string]*audio.FileInfo{
			"stereo.wav": {SampleRate: 48000, Channels: 2, BitDepth: audio.Depth16},
		},
		extractFail: map[string]error{
			"stereo_chan1.wav": errors.New("pan filter failed"),
		},
	}
	queue := NewQueue(64)
	svc := NewService(fake, audio.NewService(audio.Tools{}), queue)

	result, err := svc.Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Exported)
	assert.Equal(t, 1, result.Failed)
	assert.NoFileExists(t, filepath.Join(outputDir, "stereo_chan1.wav"))
	assert.FileExists(t, filepath.Join(outputDir, "stereo_chan2.wav"))

	leftovers, err := filepath.Glob(filepath.Join(outputDir, "*.part-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	messages := errorMessages(queue.Drain())
	require.Len(t, messages, 1)
	assert.Equal(t, fmt.Sprintf("Error exporting file '%s'", filepath.Join(outputDir, "stereo_chan1.wav")), messages[0])
}

func TestRunReportsProbeFailure(t *testing.T) {
	inputDir := t.TempDir()
	touchWAV(t, inputDir, "broken.wav")
	touchWAV(t, inputDir, "good.wav")
	outputDir := filepath.Join(t.TempDir(), "out")

	fake := &fakeTranscoder{
		t: t,
		infos: map[string]*audio.FileInfo{
			"good.wav": {SampleRate: 48000, Channels: 1, BitDepth: audio.Depth16},
		},
		probeFail: map[string]error{
			"broken.wav": audio.NewProbeError(filepath.Join(inputDir, "broken.wav"), "ffprobe ...", "invalid data", errors.New("exit status 1")),
		},
	}
	queue := NewQueue(64)
	svc := NewService(fake, nil, queue)

	result, err := svc.Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Exported)
	assert.Equal(t, 1, result.Failed)

	messages := errorMessages(queue.Drain())
	require.Len(t, messages, 1)
	assert.Equal(t, fmt.Sprintf("Error loading audio file '%s'", filepath.Join(inputDir, "broken.wav")), messages[0])
	assert.NotContains(t, messages[0], "invalid data")
}

func TestRunVerifierRejectsWrongSampleRate(t *testing.T) {
	inputDir := t.TempDir()
	touchWAV(t, inputDir, "mono.wav")
	outputDir := filepath.Join(t.TempDir(), "out")

	fake := &fakeTranscoder{
		t: t,
		infos: map[string]*audio.FileInfo{
			"mono.wav": {SampleRate: 48000, Channels: 1, BitDepth: audio.Depth16},
		},
		forceRate: 44100,
	}
	queue := NewQueue(64)
	svc := NewService(fake, audio.NewService(audio.Tools{}), queue)

	result, err := svc.Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Exported)
	assert.Equal(t, 1, result.Failed)

	messages := errorMessages(queue.Drain())
	require.Len(t, messages, 1)
	assert.Equal(t, fmt.Sprintf("Exported file '%s' failed verification", filepath.Join(outputDir, "mono_chan1.wav")), messages[0])
}

func TestRunCanceledContextAborts(t *testing.T) {
	inputDir := t.TempDir()
	touchWAV(t, inputDir, "mono.wav")
	outputDir := filepath.Join(t.TempDir(), "out")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeTranscoder{
		t: t,
		infos: map[string]*audio.FileInfo{
			"mono.wav": {SampleRate: 48000, Channels: 1, BitDepth: audio.Depth16},
		},
	}
	queue := NewQueue(64)
	svc := NewService(fake, nil, queue)

	result, err := svc.Run(ctx, inputDir, outputDir)
	require.Error(t, err)
	assert.Equal(t, 0, result.Exported)

	events := queue.Drain()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventDone, last.Kind)
	assert.True(t, last.Aborted)
}

func TestScanWAVFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.WAV", "a.wav", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.wav"), 0o750))

	files, err := scanWAVFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wav", "b.WAV"}, files)

	_, err = scanWAVFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
