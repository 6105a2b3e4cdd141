package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// VerifyMono re-opens an exported channel file and checks that it is a valid
// single-channel WAV matching the source sample rate and bit depth.
func (s *Service) VerifyMono(outputPath string, sampleRate int, depth BitDepth) error {
	f, err := os.Open(outputPath) // #nosec G304 - outputPath is constructed internally
	if err != nil {
		return NewVerifyError(outputPath, err)
	}
	defer func() {
		_ = f.Close()
	}()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return NewVerifyError(outputPath, errors.New("not a valid WAV file"))
	}

	if decoder.NumChans != 1 {
		return NewVerifyError(outputPath, fmt.Errorf("expected 1 channel, got %d", decoder.NumChans))
	}
	if int(decoder.SampleRate) != sampleRate {
		return NewVerifyError(outputPath, fmt.Errorf("sample rate mismatch: got %d Hz, want %d Hz", decoder.SampleRate, sampleRate))
	}
	if BitDepth(decoder.BitDepth) != depth {
		return NewVerifyError(outputPath, fmt.Errorf("bit depth mismatch: got %d bits, want %d bits", decoder.BitDepth, depth))
	}

	return nil
}
