package cmd

import (
	"errors"
	"fmt"
	"os"

	"video2audio/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	ffmpegPath string
	cfg        *config.Config
	cfgErr     error
)

var rootCmd = &cobra.Command{
	Use:   "video2audio",
	Short: "Extract the audio track from video files",
	Long: `video2audio extracts the audio track from a video file, or from every
video in a directory, using ffmpeg.

  - Output as MP3 (libmp3lame) or WAV (PCM 16-bit)
  - Choose the MP3 bitrate with --quality
  - Convert a whole directory with --batch; one failed file does not stop the rest

Example:
  video2audio -i video.mp4 -o audio.mp3
  video2audio -i ./videos -o ./audio --batch --format wav`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runConvert,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&ffmpegPath, "ffmpeg", "", "Path to the ffmpeg executable (default from config or ffmpeg)")
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}

	loaded, err := config.Load(path)
	switch {
	case err == nil:
		cfg, cfgErr = loaded, nil
	case cfgFile == "" && errors.Is(err, os.ErrNotExist):
		// The default config file is optional
		cfg, cfgErr = config.Default(), nil
	default:
		cfg, cfgErr = nil, err
	}
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

// configPath returns the path setup writes to
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath
}
