package audio

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by conversion operations
var (
	ErrInputNotFound     = errors.New("input not found")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrConversionFailed  = errors.New("conversion failed")
	ErrOutputPath        = errors.New("output path error")
)

// ConversionError is returned when the external converter fails for a job
type ConversionError struct {
	Job    ConversionJob
	Stderr string // last non-empty line the converter wrote to stderr
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrConversionFailed, e.Job.InputPath)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += " (" + e.Stderr + ")"
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConversionFailed) match any ConversionError
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversionFailed
}
