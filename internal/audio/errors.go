package audio

import (
	"errors"
	"fmt"
)

// ErrToolsNotFound indicates the FFmpeg toolchain could not be located.
var ErrToolsNotFound = errors.New("ffmpeg and/or ffprobe not found")

// Operation represents the type of audio operation
type Operation string

const (
	OpProbe   Operation = "probe"
	OpExtract Operation = "extract"
	OpVerify  Operation = "verify"
)

// AudioError represents a structured audio processing error
type AudioError struct {
	Op         Operation
	FilePath   string
	Command    string
	Stderr     string
	Underlying error
}

func (e *AudioError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("audio %s failed for %s: %v", e.Op, e.FilePath, e.Underlying)
	}
	return fmt.Sprintf("audio %s failed for %s", e.Op, e.FilePath)
}

func (e *AudioError) Unwrap() error {
	return e.Underlying
}

// NewProbeError creates an error for file probing failures
func NewProbeError(filePath, command, stderr string, err error) *AudioError {
	return &AudioError{
		Op:         OpProbe,
		FilePath:   filePath,
		Command:    command,
		Stderr:     stderr,
		Underlying: err,
	}
}

// NewExtractError creates an error for channel extraction failures
func NewExtractError(filePath, command, stderr string, err error) *AudioError {
	return &AudioError{
		Op:         OpExtract,
		FilePath:   filePath,
		Command:    command,
		Stderr:     stderr,
		Underlying: err,
	}
}

// NewVerifyError creates an error for output verification failures
func NewVerifyError(filePath string, err error) *AudioError {
	return &AudioError{
		Op:         OpVerify,
		FilePath:   filePath,
		Underlying: err,
	}
}
