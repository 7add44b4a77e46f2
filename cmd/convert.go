package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"video2audio/application/conversion"
	"video2audio/domain/audio"
	"video2audio/infrastructure/config"
	"video2audio/infrastructure/ffmpeg"
	"video2audio/infrastructure/filesystem"
	"video2audio/infrastructure/logging"
	"video2audio/infrastructure/progress"

	"github.com/spf13/cobra"
)

// ErrBatchIncomplete is returned when at least one file of a batch failed
var ErrBatchIncomplete = errors.New("batch finished with failures")

// ConvertOptions holds the conversion flags
type ConvertOptions struct {
	Input   string
	Output  string
	Format  string
	Quality string
	Batch   bool
	Verbose bool
}

var convertOpts ConvertOptions

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&convertOpts.Input, "input", "i", "", "Input video file, or directory in batch mode (required)")
	flags.StringVarP(&convertOpts.Output, "output", "o", "", "Output audio file, or directory in batch mode (required)")
	flags.StringVarP(&convertOpts.Format, "format", "f", "", "Output format: mp3 or wav (default from config or mp3)")
	flags.StringVarP(&convertOpts.Quality, "quality", "q", "", "Audio bitrate, e.g. 128k, 192k, 320k (default from config or 192k)")
	flags.BoolVarP(&convertOpts.Batch, "batch", "b", false, "Convert every video directly inside the input directory")
	flags.BoolVarP(&convertOpts.Verbose, "verbose", "v", false, "Show debug logs and ffmpeg output")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")
}

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("configuration not loaded: %w", err)
	}

	opts := convertOpts
	opts.Format = config.Resolve(opts.Format, cfg.Audio.Format, string(audio.DefaultFormat))
	opts.Quality = config.Resolve(opts.Quality, cfg.Audio.Quality, audio.DefaultQuality)

	stderr := cmd.ErrOrStderr()
	var svcOpts []conversion.Option
	svcOpts = append(svcOpts, conversion.WithExtensions(cfg.Batch.Extensions))

	logger := logging.New(stderr, opts.Verbose)
	if opts.Batch && !opts.Verbose && progress.IsTerminal(stderr) {
		// Keep the bar readable: only warnings and errors interleave with it
		logger = logging.Quiet(stderr)
		svcOpts = append(svcOpts, conversion.WithProgress(progress.NewBar(stderr)))
	}

	runner := &ffmpeg.ExecCommandRunner{}
	if opts.Verbose {
		runner.Stream = stderr
	}

	// Create dependencies using production implementations
	converter := ffmpeg.NewConverter(
		ffmpeg.WithFFmpegPath(config.Resolve(ffmpegPath, cfg.FFmpeg.Path, "ffmpeg")),
		ffmpeg.WithCommandRunner(runner),
		ffmpeg.WithLogger(logger),
	)

	return RunConvertWithDependencies(
		cmd.Context(),
		converter,
		filesystem.New(),
		opts,
		logger,
		cmd.OutOrStdout(),
		svcOpts...,
	)
}

// RunConvertWithDependencies runs a conversion with injected dependencies (for testing)
func RunConvertWithDependencies(
	ctx context.Context,
	converter audio.Converter,
	fsys audio.FileSystem,
	opts ConvertOptions,
	logger *slog.Logger,
	output OutputWriter,
	svcOpts ...conversion.Option,
) error {
	// Reject the format before anything touches the filesystem or ffmpeg
	format, err := audio.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	quality := opts.Quality
	if quality == "" {
		quality = audio.DefaultQuality
	}

	// Verify ffmpeg is available if converter supports it
	if verifiable, ok := converter.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}

	service := conversion.NewService(converter, fsys, logger, svcOpts...)

	if opts.Batch {
		return runBatch(ctx, service, opts, format, quality, output)
	}

	fmt.Fprintf(output, "Extracting audio from %s as %s (%s)...\n", opts.Input, format, quality)

	result, err := service.ConvertFile(ctx, conversion.FileInput{
		InputPath:  opts.Input,
		OutputPath: opts.Output,
		Format:     format,
		Quality:    quality,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s\n", result.Job.OutputPath)
	return nil
}

func runBatch(ctx context.Context, service *conversion.Service, opts ConvertOptions, format audio.Format, quality string, output OutputWriter) error {
	fmt.Fprintf(output, "Extracting audio from videos in %s to %s as %s (%s)...\n", opts.Input, opts.Output, format, quality)

	report, err := service.ConvertBatch(ctx, conversion.BatchInput{
		InputDir:  opts.Input,
		OutputDir: opts.Output,
		Format:    format,
		Quality:   quality,
	})
	if err != nil {
		return err
	}

	printSummary(output, report)

	if !report.OK() {
		return fmt.Errorf("%w: %d of %d files failed", ErrBatchIncomplete, report.Failed(), report.Total())
	}
	return nil
}

func printSummary(output OutputWriter, report *audio.BatchReport) {
	if report.Total() == 0 {
		fmt.Fprintf(output, "No video files found in %s\n", report.InputDir)
		return
	}

	fmt.Fprintf(output, "Batch complete: %d converted, %d failed (%d files) in %s\n",
		report.Succeeded(), report.Failed(), report.Total(), report.Duration.Round(time.Millisecond))

	failed := report.FailedResults()
	if len(failed) == 0 {
		return
	}
	fmt.Fprintln(output, "Failed:")
	for _, res := range failed {
		fmt.Fprintf(output, "  - %s: %s\n", res.Job.InputPath, res.ErrorMessage())
	}
}
