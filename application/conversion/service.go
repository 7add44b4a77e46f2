package conversion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"video2audio/domain/audio"

	"github.com/google/uuid"
)

// Service drives single-file and batch conversions
type Service struct {
	converter  audio.Converter
	fsys       audio.FileSystem
	logger     *slog.Logger
	progress   Progress
	extensions []string
	now        func() time.Time
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithProgress sets the batch progress reporter
func WithProgress(p Progress) Option {
	return func(s *Service) {
		if p != nil {
			s.progress = p
		}
	}
}

// WithExtensions overrides the video extensions used for batch discovery
func WithExtensions(exts []string) Option {
	return func(s *Service) {
		if len(exts) > 0 {
			s.extensions = exts
		}
	}
}

// NewService creates a new conversion Service
func NewService(converter audio.Converter, fsys audio.FileSystem, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		converter:  converter,
		fsys:       fsys,
		logger:     logger,
		progress:   noopProgress{},
		extensions: audio.DefaultVideoExtensions,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FileInput represents the input for a single-file conversion
type FileInput struct {
	InputPath  string
	OutputPath string
	Format     audio.Format
	Quality    string
}

// BatchInput represents the input for a batch conversion
type BatchInput struct {
	InputDir  string
	OutputDir string
	Format    audio.Format
	Quality   string
}

// ConvertFile converts one video file to the exact output path requested
func (s *Service) ConvertFile(ctx context.Context, input FileInput) (*audio.BatchResult, error) {
	if !s.fsys.IsFile(input.InputPath) {
		return nil, fmt.Errorf("%w: %s", audio.ErrInputNotFound, input.InputPath)
	}

	job, err := audio.NewConversionJob(input.InputPath, input.OutputPath, input.Format, input.Quality)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(job.OutputPath); !s.fsys.IsDir(dir) {
		if err := s.fsys.MkdirAll(dir); err != nil {
			return nil, fmt.Errorf("%w: cannot create %s: %v", audio.ErrOutputPath, dir, err)
		}
	}

	result := s.run(ctx, s.logger, job)
	if !result.Succeeded {
		return &result, result.Err
	}
	return &result, nil
}

// ConvertBatch converts every supported video directly inside input.InputDir
// into input.OutputDir. A failed job is recorded and the batch continues.
func (s *Service) ConvertBatch(ctx context.Context, input BatchInput) (*audio.BatchReport, error) {
	if !s.fsys.IsDir(input.InputDir) {
		return nil, fmt.Errorf("%w: %s is not a directory", audio.ErrInputNotFound, input.InputDir)
	}

	format, err := audio.ParseFormat(string(input.Format))
	if err != nil {
		return nil, err
	}

	if err := s.fsys.MkdirAll(input.OutputDir); err != nil {
		return nil, fmt.Errorf("%w: cannot create %s: %v", audio.ErrOutputPath, input.OutputDir, err)
	}

	files, err := Discover(s.fsys, input.InputDir, s.extensions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrInputNotFound, err)
	}

	report := &audio.BatchReport{
		ID:        uuid.NewString(),
		InputDir:  input.InputDir,
		OutputDir: input.OutputDir,
		Results:   make([]audio.BatchResult, 0, len(files)),
		StartedAt: s.now(),
	}
	logger := s.logger.With("batch_id", report.ID)

	if len(files) == 0 {
		logger.Warn("no video files found", "input", input.InputDir)
		return report, nil
	}

	logger.Info("starting batch conversion", "files", len(files), "format", format, "quality", input.Quality)

	s.progress.Start(len(files))
	for _, path := range files {
		job, err := audio.NewConversionJob(path, audio.OutputPathIn(input.OutputDir, path, format), format, input.Quality)
		var result audio.BatchResult
		if err != nil {
			result = audio.NewBatchResult(audio.ConversionJob{InputPath: path, Format: format, Quality: input.Quality}, err)
		} else {
			result = s.run(ctx, logger, job)
		}
		report.Results = append(report.Results, result)
		s.progress.Advance(result)
	}
	s.progress.Finish()

	report.Duration = s.now().Sub(report.StartedAt)
	logger.Info("batch conversion finished",
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
		"duration", report.Duration.Round(time.Millisecond))

	return report, nil
}

// run invokes the converter for one job and records the outcome
func (s *Service) run(ctx context.Context, logger *slog.Logger, job audio.ConversionJob) audio.BatchResult {
	logger.Debug("converting",
		"input", job.InputPath,
		"output", job.OutputPath,
		"format", job.Format,
		"quality", job.Quality)

	err := s.converter.Convert(ctx, job)
	if err != nil && !errors.Is(err, audio.ErrConversionFailed) {
		err = &audio.ConversionError{Job: job, Err: err}
	}
	if err != nil {
		logger.Error("conversion failed", "input", job.InputPath, "error", err)
	} else {
		logger.Info("converted",
			"input", filepath.Base(job.InputPath),
			"output", filepath.Base(job.OutputPath))
	}
	return audio.NewBatchResult(job, err)
}
