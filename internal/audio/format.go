package audio

import "errors"

// ErrUnsupportedBitDepth indicates a bit depth outside the supported PCM set.
var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// BitDepth represents bits per sample of PCM audio
type BitDepth int

// Supported bit depths.
const (
	// Depth8 represents 8-bit PCM audio
	Depth8 BitDepth = 8
	// Depth16 represents 16-bit PCM audio
	Depth16 BitDepth = 16
	// Depth24 represents 24-bit PCM audio
	Depth24 BitDepth = 24
	// Depth32 represents 32-bit PCM audio
	Depth32 BitDepth = 32
)

// SampleFormat represents FFmpeg's sample format tag.
type SampleFormat string

// Sample formats for supported bit depths.
const (
	SampleFormatS8  SampleFormat = "s8"
	SampleFormatS16 SampleFormat = "s16"
	SampleFormatS24 SampleFormat = "s24"
	SampleFormatS32 SampleFormat = "s32"
)

// Codec represents the audio encoding format.
type Codec string

// PCM codecs for encoding.
const (
	// CodecPCMS8 is 8-bit signed PCM
	CodecPCMS8 Codec = "pcm_s8"
	// CodecPCMS16LE is 16-bit signed little-endian PCM
	CodecPCMS16LE Codec = "pcm_s16le"
	// CodecPCMS24LE is 24-bit signed little-endian PCM
	CodecPCMS24LE Codec = "pcm_s24le"
	// CodecPCMS32LE is 32-bit signed little-endian PCM
	CodecPCMS32LE Codec = "pcm_s32le"
)

var sampleFormats = map[BitDepth]SampleFormat{
	Depth8:  SampleFormatS8,
	Depth16: SampleFormatS16,
	Depth24: SampleFormatS24,
	Depth32: SampleFormatS32,
}

var codecs = map[SampleFormat]Codec{
	SampleFormatS8:  CodecPCMS8,
	SampleFormatS16: CodecPCMS16LE,
	SampleFormatS24: CodecPCMS24LE,
	SampleFormatS32: CodecPCMS32LE,
}

// IsValid reports whether the bit depth maps to a supported sample format.
func (d BitDepth) IsValid() bool {
	_, ok := sampleFormats[d]
	return ok
}

// SampleFormat returns the FFmpeg sample format for the bit depth.
func (d BitDepth) SampleFormat() (SampleFormat, bool) {
	f, ok := sampleFormats[d]
	return f, ok
}

// Codec returns the PCM codec for the sample format. Unknown formats fall
// back to 16-bit PCM.
func (f SampleFormat) Codec() Codec {
	if c, ok := codecs[f]; ok {
		return c
	}
	return CodecPCMS16LE
}
