package audio

import (
	"fmt"
	"strings"
)

// Format is a supported audio output format
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
)

// DefaultFormat is used when no format is configured
const DefaultFormat = FormatMP3

// SupportedFormats lists every format the converter can produce, in display order
var SupportedFormats = []Format{FormatMP3, FormatWAV}

// DefaultVideoExtensions are the video container extensions picked up in batch mode
var DefaultVideoExtensions = []string{"mp4", "avi", "mov", "mkv", "wmv", "flv", "webm"}

// ParseFormat parses a user supplied format name (case-insensitive)
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return DefaultFormat, nil
	}
	for _, f := range SupportedFormats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, s, formatList())
}

// Extension returns the file extension including the leading dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Codec returns the ffmpeg audio encoder for the format
func (f Format) Codec() string {
	switch f {
	case FormatWAV:
		return "pcm_s16le"
	default:
		return "libmp3lame"
	}
}

// HasBitrate reports whether the format's encoder honours a target bitrate.
// PCM has a fixed rate determined by sample format and sample rate.
func (f Format) HasBitrate() bool {
	return f != FormatWAV
}

func (f Format) String() string {
	return string(f)
}

func formatList() string {
	names := make([]string, len(SupportedFormats))
	for i, f := range SupportedFormats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
