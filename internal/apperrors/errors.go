// Package apperrors provides typed error handling for the splitter.
// It uses struct-based errors with separate user-safe and internal messages:
// the Message field becomes dialog text, the Internal field is logged only.
package apperrors

import "fmt"

// Code categorizes errors for consistent handling across the application.
type Code int

// Error codes for categorizing application errors.
const (
	// CodeUnknown indicates an unspecified error type
	CodeUnknown Code = iota
	// CodeTranscoderNotFound indicates the FFmpeg toolchain is unavailable
	CodeTranscoderNotFound
	// CodeInputDirMissing indicates the input directory does not exist
	CodeInputDirMissing
	// CodeNoInputFiles indicates the input directory holds no WAV files
	CodeNoInputFiles
	// CodeProbeFailed indicates ffprobe could not read a file
	CodeProbeFailed
	// CodeUndeterminedBitDepth indicates the probe reported no usable bit depth
	CodeUndeterminedBitDepth
	// CodeUnsupportedBitDepth indicates a bit depth outside {8,16,24,32}
	CodeUnsupportedBitDepth
	// CodeExportFailed indicates ffmpeg failed to write a channel file
	CodeExportFailed
	// CodeVerifyFailed indicates an exported file did not match the source
	CodeVerifyFailed
)

// Error represents a domain error with separate user-safe and internal messages.
// The Message field is always safe to show in a dialog.
// The Internal field contains debugging details and should only be logged.
type Error struct {
	Code     Code   // Error category
	Message  string // User-safe message (always exposable)
	Internal string // Internal details (for logging only)
	File     string // Optional: which file caused the error
	Err      error  // Wrapped underlying error
}

// Error implements the error interface.
// Returns the user-safe message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithInternal adds internal debugging details to the error.
func (e *Error) WithInternal(format string, args ...any) *Error {
	e.Internal = fmt.Sprintf(format, args...)
	return e
}

// WithFile records which file caused the error.
func (e *Error) WithFile(file string) *Error {
	e.File = file
	return e
}

// Wrap wraps an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeUnknown:
		return "unknown"
	case CodeTranscoderNotFound:
		return "transcoder_not_found"
	case CodeInputDirMissing:
		return "input_dir_missing"
	case CodeNoInputFiles:
		return "no_input_files"
	case CodeProbeFailed:
		return "probe_failed"
	case CodeUndeterminedBitDepth:
		return "undetermined_bit_depth"
	case CodeUnsupportedBitDepth:
		return "unsupported_bit_depth"
	case CodeExportFailed:
		return "export_failed"
	case CodeVerifyFailed:
		return "verify_failed"
	default:
		return fmt.Sprintf("unknown_code_%d", c)
	}
}

// Is reports whether target matches this error's code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// TranscoderNotFound creates an error for a missing FFmpeg toolchain.
func TranscoderNotFound() *Error {
	return &Error{
		Code:    CodeTranscoderNotFound,
		Message: "FFmpeg and/or FFprobe not found.",
	}
}

// InputDirMissing creates an error for a nonexistent input directory.
func InputDirMissing(dir string) *Error {
	return &Error{
		Code:    CodeInputDirMissing,
		Message: fmt.Sprintf("Input directory '%s' does not exist.", dir),
	}
}

// NoInputFiles creates an error for an input directory without WAV files.
func NoInputFiles(dir string) *Error {
	return &Error{
		Code:    CodeNoInputFiles,
		Message: fmt.Sprintf("No .wav files found in directory '%s'.", dir),
	}
}

// ProbeFailed creates an error for a file that could not be probed.
func ProbeFailed(file string) *Error {
	return &Error{
		Code:    CodeProbeFailed,
		Message: fmt.Sprintf("Error loading audio file '%s'", file),
		File:    file,
	}
}

// UndeterminedBitDepth creates an error for a probe without a usable bit depth.
func UndeterminedBitDepth(file string) *Error {
	return &Error{
		Code:    CodeUndeterminedBitDepth,
		Message: fmt.Sprintf("Could not determine bit depth of '%s'", file),
		File:    file,
	}
}

// UnsupportedBitDepth creates an error for a bit depth outside the PCM table.
func UnsupportedBitDepth(bits int, file string) *Error {
	return &Error{
		Code:    CodeUnsupportedBitDepth,
		Message: fmt.Sprintf("Unsupported bit depth: %d bits in '%s'", bits, file),
		File:    file,
	}
}

// ExportFailed creates an error for a channel file that could not be written.
func ExportFailed(outputPath string) *Error {
	return &Error{
		Code:    CodeExportFailed,
		Message: fmt.Sprintf("Error exporting file '%s'", outputPath),
		File:    outputPath,
	}
}

// VerifyFailed creates an error for an exported file that failed verification.
func VerifyFailed(outputPath string) *Error {
	return &Error{
		Code:    CodeVerifyFailed,
		Message: fmt.Sprintf("Exported file '%s' failed verification", outputPath),
		File:    outputPath,
	}
}

// Unexpected wraps an arbitrary failure with the generic user-facing message.
func Unexpected(err error) *Error {
	e := &Error{
		Code:    CodeUnknown,
		Message: "An unexpected error occurred",
	}
	if err != nil {
		e.Err = err
		e.Internal = err.Error()
	}
	return e
}
