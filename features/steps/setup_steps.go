//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"strings"

	"video2audio/cmd"
	"video2audio/infrastructure/config"

	"github.com/cucumber/godog"
)

// mockPrompter returns scripted answers, falling back to the prompt default
type mockPrompter struct {
	inputs   []string
	confirms []bool
	selects  []string
}

func (m *mockPrompter) Input(message string, defaultValue string) (string, error) {
	if len(m.inputs) == 0 {
		return defaultValue, nil
	}
	v := m.inputs[0]
	m.inputs = m.inputs[1:]
	return v, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if len(m.confirms) == 0 {
		return defaultValue, nil
	}
	v := m.confirms[0]
	m.confirms = m.confirms[1:]
	return v, nil
}

func (m *mockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	if len(m.selects) == 0 {
		return defaultValue, nil
	}
	v := m.selects[0]
	m.selects = m.selects[1:]
	return v, nil
}

// setupContext holds test state for setup scenarios
type setupContext struct {
	configPath string
}

// SharedSetupContext is reset before each scenario via Before hook
var SharedSetupContext *setupContext

func getSetupContext() *setupContext {
	return SharedSetupContext
}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedSetupContext = &setupContext{
			configPath: getWorld().path("config/config.yaml"),
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedSetupContext = nil
		return c, nil
	})

	ctx.Step(`^a config file already exists$`, aConfigFileAlreadyExists)
	ctx.Step(`^I run setup answering format "([^"]*)", quality "([^"]*)" and extensions "([^"]*)"$`, iRunSetupAnswering)
	ctx.Step(`^I run setup and decline to overwrite$`, iRunSetupAndDeclineToOverwrite)
	ctx.Step(`^the config file should have format "([^"]*)"$`, theConfigFileShouldHaveFormat)
	ctx.Step(`^the config file should have quality "([^"]*)"$`, theConfigFileShouldHaveQuality)
	ctx.Step(`^the config file should have extensions "([^"]*)"$`, theConfigFileShouldHaveExtensions)
}

func aConfigFileAlreadyExists() error {
	s := getSetupContext()
	if err := os.MkdirAll(getWorld().path("config"), 0755); err != nil {
		return err
	}
	return config.Save(config.Default(), s.configPath)
}

func iRunSetupAnswering(format, quality, extensions string) error {
	w := getWorld()
	s := getSetupContext()
	prompter := &mockPrompter{
		inputs:  []string{"ffmpeg", quality, extensions},
		selects: []string{format},
	}
	w.err = cmd.RunSetupWithPrompter(prompter, s.configPath, w.output)
	return w.err
}

func iRunSetupAndDeclineToOverwrite() error {
	w := getWorld()
	s := getSetupContext()
	w.err = cmd.RunSetupWithPrompter(&mockPrompter{confirms: []bool{false}}, s.configPath, w.output)
	return w.err
}

func loadScenarioConfig() (*config.Config, error) {
	cfg, err := config.Load(getSetupContext().configPath)
	if err != nil {
		return nil, fmt.Errorf("config file not readable: %w", err)
	}
	return cfg, nil
}

func theConfigFileShouldHaveFormat(format string) error {
	cfg, err := loadScenarioConfig()
	if err != nil {
		return err
	}
	if cfg.Audio.Format != format {
		return fmt.Errorf("expected format %q, got %q", format, cfg.Audio.Format)
	}
	return nil
}

func theConfigFileShouldHaveQuality(quality string) error {
	cfg, err := loadScenarioConfig()
	if err != nil {
		return err
	}
	if cfg.Audio.Quality != quality {
		return fmt.Errorf("expected quality %q, got %q", quality, cfg.Audio.Quality)
	}
	return nil
}

func theConfigFileShouldHaveExtensions(extensions string) error {
	cfg, err := loadScenarioConfig()
	if err != nil {
		return err
	}
	if got := strings.Join(cfg.Batch.Extensions, ","); got != extensions {
		return fmt.Errorf("expected extensions %q, got %q", extensions, got)
	}
	return nil
}
