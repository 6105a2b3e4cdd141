package apperrors

import (
	"errors"

	"github.com/oszuidwest/zwfm-wavsplit/internal/audio"
)

// TranslateAudioError converts audio toolchain errors to domain errors with
// user-safe messages. The command line and stderr tail end up in the Internal
// field, never in dialog text. Returns nil if err is nil.
func TranslateAudioError(err error) *Error {
	if err == nil {
		return nil
	}

	var audioErr *audio.AudioError
	if errors.As(err, &audioErr) {
		var translated *Error
		switch audioErr.Op {
		case audio.OpProbe:
			translated = ProbeFailed(audioErr.FilePath)
		case audio.OpExtract:
			translated = ExportFailed(audioErr.FilePath)
		case audio.OpVerify:
			translated = VerifyFailed(audioErr.FilePath)
		default:
			translated = &Error{Code: CodeUnknown, Message: "An unexpected error occurred", File: audioErr.FilePath}
		}

		if audioErr.Stderr != "" {
			translated.WithInternal("%v; command: %s; stderr: %s", audioErr.Underlying, audioErr.Command, audioErr.Stderr)
		} else {
			translated.WithInternal("%v; command: %s", audioErr.Underlying, audioErr.Command)
		}
		return translated.Wrap(err)
	}

	if errors.Is(err, audio.ErrToolsNotFound) {
		return TranscoderNotFound().Wrap(err)
	}

	e := &Error{Code: CodeUnknown, Message: "An unexpected error occurred"}
	return e.WithInternal("%v", err).Wrap(err)
}
