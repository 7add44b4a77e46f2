package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"video2audio/domain/audio"
	"video2audio/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

The configuration holds the ffmpeg executable, the default output format and
bitrate, and the video extensions picked up in batch mode. Flags given on the
command line always take precedence over the file.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, configPath(), cmd.OutOrStdout())
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, output OutputWriter) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm(filepath.Base(configPath)+" already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(output, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(output, "Welcome to video2audio setup!")
	fmt.Fprintln(output)

	cfg := config.Default()

	if err := promptFFmpeg(prompter, cfg); err != nil {
		return err
	}

	if err := promptAudio(prompter, cfg); err != nil {
		return err
	}

	if err := promptBatch(prompter, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Save configuration
	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Configuration saved to %s\n", configPath)
	return nil
}

func promptFFmpeg(prompter Prompter, cfg *config.Config) error {
	path, err := prompter.Input("Path to the ffmpeg executable?", cfg.FFmpeg.Path)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if path = strings.TrimSpace(path); path != "" {
		cfg.FFmpeg.Path = path
	}
	return nil
}

func promptAudio(prompter Prompter, cfg *config.Config) error {
	options := make([]string, len(audio.SupportedFormats))
	for i, f := range audio.SupportedFormats {
		options[i] = string(f)
	}

	format, err := prompter.Select("Default output format?", options, cfg.Audio.Format)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if format != "" {
		cfg.Audio.Format = format
	}

	quality, err := prompter.Input("Default bitrate for mp3 output?", cfg.Audio.Quality)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if quality = strings.TrimSpace(quality); quality != "" {
		cfg.Audio.Quality = quality
	}
	return nil
}

func promptBatch(prompter Prompter, cfg *config.Config) error {
	current := strings.Join(cfg.Batch.Extensions, ", ")
	answer, err := prompter.Input("Video extensions to convert in batch mode?", current)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}

	exts := parseExtensionList(answer)
	if len(exts) == 0 {
		return fmt.Errorf("at least one video extension is required")
	}
	cfg.Batch.Extensions = exts
	return nil
}

// parseExtensionList splits "mp4, .MOV avi" into [mp4 mov avi]
func parseExtensionList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	var exts []string
	for _, f := range fields {
		f = strings.ToLower(strings.TrimPrefix(f, "."))
		if f != "" {
			exts = append(exts, f)
		}
	}
	return exts
}
