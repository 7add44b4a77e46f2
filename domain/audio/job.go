package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultQuality is the default audio bitrate token
const DefaultQuality = "192k"

// ConversionJob is one unit of conversion work: a single input video converted
// to a single audio file
type ConversionJob struct {
	InputPath  string
	OutputPath string
	Format     Format
	Quality    string
}

// NewConversionJob creates a ConversionJob with validation.
// The quality token is passed through unchanged; only emptiness is defaulted.
func NewConversionJob(inputPath, outputPath string, format Format, quality string) (ConversionJob, error) {
	if inputPath == "" {
		return ConversionJob{}, fmt.Errorf("input path is required")
	}
	if outputPath == "" {
		return ConversionJob{}, fmt.Errorf("output path is required")
	}
	format, err := ParseFormat(string(format))
	if err != nil {
		return ConversionJob{}, err
	}
	if quality == "" {
		quality = DefaultQuality
	}

	return ConversionJob{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Format:     format,
		Quality:    quality,
	}, nil
}

// OutputFilename derives the audio file name for a video file name by
// replacing its extension with the format's extension
func OutputFilename(inputPath string, format Format) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + format.Extension()
}

// OutputPathIn returns the output path for inputPath inside outputDir
func OutputPathIn(outputDir, inputPath string, format Format) string {
	return filepath.Join(outputDir, OutputFilename(inputPath, format))
}
