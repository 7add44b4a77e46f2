package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"video2audio/domain/audio"
)

// ErrNotInstalled is returned when the ffmpeg executable cannot be run
var ErrNotInstalled = errors.New("ffmpeg not found or not executable")

// Converter implements audio.Converter using ffmpeg
type Converter struct {
	ffmpegPath string
	runner     CommandRunner
	logger     *slog.Logger
}

// Option is a functional option for configuring Converter
type Option func(*Converter)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) Option {
	return func(c *Converter) {
		if path != "" {
			c.ffmpegPath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) Option {
	return func(c *Converter) {
		c.runner = runner
	}
}

// WithLogger sets the logger used for command tracing
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// NewConverter creates a new FFmpeg-based audio converter
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BuildArgs returns the ffmpeg argument list for a job
func BuildArgs(job audio.ConversionJob) []string {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-y", // Overwrite output file if it exists
		"-i", positional(job.InputPath),
		"-vn", // No video
		"-c:a", job.Format.Codec(),
	}
	if job.Format.HasBitrate() {
		args = append(args, "-b:a", job.Quality)
	}
	args = append(args, "-f", string(job.Format), positional(job.OutputPath))
	return args
}

// positional keeps a relative path that starts with "-" from being parsed
// as an ffmpeg option
func positional(path string) string {
	if strings.HasPrefix(path, "-") {
		return "." + string(filepath.Separator) + path
	}
	return path
}

// Convert implements audio.Converter
func (c *Converter) Convert(ctx context.Context, job audio.ConversionJob) error {
	args := BuildArgs(job)
	c.logger.Debug("running ffmpeg", "command", c.ffmpegPath+" "+strings.Join(args, " "))

	stderr, err := c.runner.Run(ctx, c.ffmpegPath, args...)
	if err != nil {
		return &audio.ConversionError{
			Job:    job,
			Stderr: lastLine(stderr),
			Err:    err,
		}
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (c *Converter) VerifyInstalled(ctx context.Context) error {
	if _, err := c.Version(ctx); err != nil {
		return err
	}
	return nil
}

// Version returns the first line of `ffmpeg -version`
func (c *Converter) Version(ctx context.Context) (string, error) {
	out, err := c.runner.Output(ctx, c.ffmpegPath, "-version")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotInstalled, c.ffmpegPath, err)
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(first), nil
}

// lastLine returns the last non-empty line of ffmpeg's stderr
func lastLine(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// Ensure Converter implements audio.Converter
var _ audio.Converter = (*Converter)(nil)
