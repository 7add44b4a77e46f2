package cmd

import (
	"context"
	"fmt"
	"time"

	"video2audio/infrastructure/config"
	"video2audio/infrastructure/ffmpeg"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that ffmpeg is installed",
	Long: `Runs "ffmpeg -version" and prints the version line.

The ffmpeg executable is taken from --ffmpeg, the config file, or PATH,
in that order.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// Versioner reports the version of the external converter
type Versioner interface {
	Version(ctx context.Context) (string, error)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return fmt.Errorf("configuration not loaded: %w", err)
	}

	converter := ffmpeg.NewConverter(ffmpeg.WithFFmpegPath(config.Resolve(ffmpegPath, cfg.FFmpeg.Path, "ffmpeg")))
	return RunCheckWithDependencies(cmd.Context(), converter, cmd.OutOrStdout())
}

// RunCheckWithDependencies runs the check command with injected dependencies (for testing)
func RunCheckWithDependencies(ctx context.Context, versioner Versioner, output OutputWriter) error {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	version, err := versioner.Version(checkCtx)
	if err != nil {
		fmt.Fprintln(output, "ffmpeg: not found")
		fmt.Fprintln(output, "Install FFmpeg from https://ffmpeg.org/download.html")
		return err
	}

	fmt.Fprintf(output, "ffmpeg: %s\n", version)
	return nil
}
